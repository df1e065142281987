package scenic

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Matrix decomposition helpers. Local and world matrices are plain
// translation·rotation·scale compositions; decomposition assumes no shear
// (basis columns orthogonal up to scale). Skewed matrices decompose into
// garbage, which is accepted: nothing in this package produces shear.

// matTranslation returns the translation column of m.
func matTranslation(m mgl32.Mat4) mgl32.Vec3 {
	return m.Col(3).Vec3()
}

// setTranslation replaces the translation column of m.
func setTranslation(m *mgl32.Mat4, v mgl32.Vec3) {
	m.SetCol(3, v.Vec4(1))
}

// matScale returns the scale encoded in m: the length of each basis column.
// Only correct for shear-free matrices.
func matScale(m mgl32.Mat4) mgl32.Vec3 {
	return mgl32.Vec3{
		m.Col(0).Vec3().Len(),
		m.Col(1).Vec3().Len(),
		m.Col(2).Vec3().Len(),
	}
}

// matRotation returns the rotation encoded in m, with scale divided out of
// each basis column. Falls back to the identity quaternion when any scale
// component is zero, since the basis cannot be normalized.
func matRotation(m mgl32.Mat4) mgl32.Quat {
	s := matScale(m)
	if s.X() == 0 || s.Y() == 0 || s.Z() == 0 {
		return mgl32.QuatIdent()
	}
	r := mgl32.Ident4()
	r.SetCol(0, m.Col(0).Vec3().Mul(1/s.X()).Vec4(0))
	r.SetCol(1, m.Col(1).Vec3().Mul(1/s.Y()).Vec4(0))
	r.SetCol(2, m.Col(2).Vec3().Mul(1/s.Z()).Vec4(0))
	return mgl32.Mat4ToQuat(r)
}

// composeTRS builds the affine matrix translate(t) · rotate(r) · scale(s).
func composeTRS(t mgl32.Vec3, r mgl32.Quat, s mgl32.Vec3) mgl32.Mat4 {
	m := r.Mat4()
	m.SetCol(0, m.Col(0).Vec3().Mul(s.X()).Vec4(0))
	m.SetCol(1, m.Col(1).Vec3().Mul(s.Y()).Vec4(0))
	m.SetCol(2, m.Col(2).Vec3().Mul(s.Z()).Vec4(0))
	m.SetCol(3, t.Vec4(1))
	return m
}
