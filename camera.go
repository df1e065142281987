package scenic

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// CameraSource is the capability interface behaviors implement to act as a
// scene's view point. Scene.MainCamera returns the first behavior exposing
// it.
type CameraSource interface {
	Behavior

	// View returns the world-to-view matrix.
	View() mgl32.Mat4

	// Projection returns the view-to-clip matrix.
	Projection() mgl32.Mat4
}

// Default camera parameters, applied when the zero value is used.
const (
	defaultFOV    = 60 * math32.Pi / 180
	defaultAspect = 16.0 / 9.0
	defaultNear   = 0.1
	defaultFar    = 1000.0
)

// Camera is a behavior that derives a view matrix from its entity's
// transform and a projection matrix from its parameters. The zero value is
// a usable perspective camera with a 60° vertical field of view.
type Camera struct {
	NopBehavior

	// FOV is the vertical field of view in radians (perspective only).
	FOV float32

	// Aspect is the viewport width over height.
	Aspect float32

	Near float32
	Far  float32

	// Orthographic switches the projection; OrthoSize is the half-height
	// of the view volume.
	Orthographic bool
	OrthoSize    float32
}

// Kind returns KindCamera.
func (c *Camera) Kind() Kind {
	return KindCamera
}

// View returns the inverse of the owning transform's world matrix, or
// identity when the camera is unattached or its transform is degenerate.
func (c *Camera) View() mgl32.Mat4 {
	if o := c.Owner(); o != nil {
		w := o.Transform().World()
		if w.Det() != 0 {
			return w.Inv()
		}
	}
	return mgl32.Ident4()
}

// Projection returns the projection matrix for the camera's parameters.
func (c *Camera) Projection() mgl32.Mat4 {
	aspect := c.Aspect
	if aspect == 0 {
		aspect = defaultAspect
	}
	near, far := c.Near, c.Far
	if near == 0 {
		near = defaultNear
	}
	if far == 0 {
		far = defaultFar
	}

	if c.Orthographic {
		h := c.OrthoSize
		if h == 0 {
			h = 1
		}
		w := h * aspect
		return mgl32.Ortho(-w, w, -h, h, near, far)
	}

	fov := c.FOV
	if fov == 0 {
		fov = defaultFOV
	}
	return mgl32.Perspective(fov, aspect, near, far)
}
