package scenic

import (
	"github.com/go-gl/mathgl/mgl32"
)

// LightType distinguishes the kinds of light a scene can carry.
type LightType uint8

const (
	LightPoint LightType = iota
	LightDirectional
	LightSpot
	LightAmbient
)

// String returns the string representation of the light type.
func (t LightType) String() string {
	switch t {
	case LightPoint:
		return "Point"
	case LightDirectional:
		return "Directional"
	case LightSpot:
		return "Spot"
	case LightAmbient:
		return "Ambient"
	default:
		return "Unknown"
	}
}

// Lighting is a scene's per-frame lighting aggregate: an ambient color plus
// every active Light behavior in the scene. Rendering behaviors read it when
// dispatching their uniforms.
type Lighting struct {
	// Ambient is the scene-wide ambient color.
	Ambient mgl32.Vec3

	lights []*Light
}

// Lights returns a snapshot of the registered lights in registration order.
func (l *Lighting) Lights() []*Light {
	out := make([]*Light, len(l.lights))
	copy(out, l.lights)
	return out
}

func (l *Lighting) add(light *Light) {
	for _, existing := range l.lights {
		if existing == light {
			return
		}
	}
	l.lights = append(l.lights, light)
}

func (l *Lighting) remove(light *Light) {
	for i, existing := range l.lights {
		if existing == light {
			l.lights = append(l.lights[:i], l.lights[i+1:]...)
			return
		}
	}
}

// Light is a behavior that contributes to its scene's lighting aggregate.
// It registers itself on BeginPlay and unregisters on EndPlay, so a light
// is only ever visible to renderers while its entity is live.
type Light struct {
	NopBehavior

	Type      LightType
	Color     mgl32.Vec3
	Intensity float32

	// Range limits point and spot lights.
	Range float32

	// ConeAngle is the full cone angle in radians for spot lights.
	ConeAngle float32
}

// Kind returns KindLight.
func (l *Light) Kind() Kind {
	return KindLight
}

// BeginPlay registers the light with the owning scene's lighting data.
func (l *Light) BeginPlay() {
	if o := l.Owner(); o != nil && o.Scene() != nil {
		o.Scene().Lighting().add(l)
	}
}

// EndPlay unregisters the light from the owning scene's lighting data.
func (l *Light) EndPlay() {
	if o := l.Owner(); o != nil && o.Scene() != nil {
		o.Scene().Lighting().remove(l)
	}
}
