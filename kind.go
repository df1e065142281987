package scenic

import (
	"math/bits"
)

// Kind is a closed enumeration of behavior categories. Capability queries
// over an entity tree (find the camera, collect the lights) go through kinds
// instead of open-ended runtime type lookup.
type Kind uint8

const (
	// KindScript is the default kind for gameplay logic behaviors.
	KindScript Kind = iota

	// KindCamera marks behaviors that provide a view point.
	KindCamera

	// KindLight marks behaviors that contribute to scene lighting.
	KindLight

	// KindMesh marks behaviors that submit geometry for rendering.
	KindMesh

	// KindController marks input-driven behaviors.
	KindController

	kindCount
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindScript:
		return "Script"
	case KindCamera:
		return "Camera"
	case KindLight:
		return "Light"
	case KindMesh:
		return "Mesh"
	case KindController:
		return "Controller"
	default:
		return "Unknown"
	}
}

// KindMask is a bitmask over behavior kinds, tracking which kinds are
// present on an entity's active behavior list.
type KindMask uint64

// MaskOf returns a mask with the given kinds set.
func MaskOf(kinds ...Kind) KindMask {
	var m KindMask
	for _, k := range kinds {
		m.Set(k)
	}
	return m
}

// Set sets the bit for the given kind.
func (m *KindMask) Set(k Kind) {
	*m |= 1 << k
}

// Clear clears the bit for the given kind.
func (m *KindMask) Clear(k Kind) {
	*m &^= 1 << k
}

// Has returns true if the bit for the given kind is set.
func (m KindMask) Has(k Kind) bool {
	return m&(1<<k) != 0
}

// ContainsAll returns true if all bits set in other are also set in m.
func (m KindMask) ContainsAll(other KindMask) bool {
	return m&other == other
}

// ContainsAny returns true if any bit set in other is also set in m.
func (m KindMask) ContainsAny(other KindMask) bool {
	return m&other != 0
}

// IsZero returns true if no bits are set.
func (m KindMask) IsZero() bool {
	return m == 0
}

// Count returns the number of kinds set.
func (m KindMask) Count() int {
	return bits.OnesCount64(uint64(m))
}
