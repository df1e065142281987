package scenic

import (
	"iter"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
)

// Transform is the spatial element of an Entity: a single local affine
// matrix plus a position in the scene hierarchy. World-space values are
// computed by walking the parent chain on every call; nothing is cached, so
// a read never returns a stale value, even between a SetParent request and
// its commit.
//
// The parent reference is weak: a transform does not own its parent, and
// ownership flows strictly downward through the child list.
type Transform struct {
	owner *Entity

	// local combines translation, rotation and scale in one matrix.
	local mgl32.Mat4

	parent   *Transform
	children []*Transform

	// pendingParent is the reparent target requested by SetParent, valid
	// only while dirty is set. nil with dirty set means "become a root".
	pendingParent *Transform
	dirty         bool
}

func newTransform(owner *Entity) *Transform {
	return &Transform{
		owner: owner,
		local: mgl32.Ident4(),
	}
}

// Owner returns the entity this transform belongs to.
func (t *Transform) Owner() *Entity {
	return t.owner
}

// Parent returns the current committed parent, or nil for roots.
// A pending SetParent does not change the result until it commits.
func (t *Transform) Parent() *Transform {
	return t.parent
}

// Children returns the direct children as a restartable sequence in
// insertion order. Iterate only outside the commit phase; structural
// mutation mid-iteration has no defined behavior.
func (t *Transform) Children() iter.Seq[*Transform] {
	return func(yield func(*Transform) bool) {
		for _, c := range t.children {
			if !yield(c) {
				return
			}
		}
	}
}

// ChildCount returns the number of direct children.
func (t *Transform) ChildCount() int {
	return len(t.children)
}

// Local returns the local matrix.
func (t *Transform) Local() mgl32.Mat4 {
	return t.local
}

// SetLocal replaces the local matrix wholesale.
func (t *Transform) SetLocal(m mgl32.Mat4) {
	t.local = m
}

// World returns the world matrix: the local matrix composed with every
// ancestor's, recomputed on each call. A root's world matrix is its local
// matrix.
func (t *Transform) World() mgl32.Mat4 {
	if t.parent == nil {
		return t.local
	}
	return t.parent.World().Mul4(t.local)
}

// Position returns the world-space position.
func (t *Transform) Position() mgl32.Vec3 {
	return matTranslation(t.World())
}

// SetPosition sets the world-space position. When a parent exists the value
// is re-expressed in the parent's local space; if the parent's world matrix
// is not invertible the write is silently dropped, so callers must not
// assume it took effect.
func (t *Transform) SetPosition(p mgl32.Vec3) {
	if t.parent == nil {
		setTranslation(&t.local, p)
		return
	}
	pw := t.parent.World()
	if pw.Det() == 0 {
		slog.Debug("scenic: dropped world-space position write through singular parent")
		return
	}
	setTranslation(&t.local, pw.Inv().Mul4x1(p.Vec4(1)).Vec3())
}

// LocalPosition returns the translation component of the local matrix.
func (t *Transform) LocalPosition() mgl32.Vec3 {
	return matTranslation(t.local)
}

// SetLocalPosition sets the translation component of the local matrix.
func (t *Transform) SetLocalPosition(p mgl32.Vec3) {
	setTranslation(&t.local, p)
}

// Rotation returns the world-space rotation. Identity if any ancestor
// carries a zero scale component.
func (t *Transform) Rotation() mgl32.Quat {
	return matRotation(t.World())
}

// SetRotation sets the world-space rotation, preserving local translation
// and scale. Silently dropped when the parent's world matrix is not
// invertible.
func (t *Transform) SetRotation(q mgl32.Quat) {
	local := q
	if t.parent != nil {
		pw := t.parent.World()
		if pw.Det() == 0 {
			slog.Debug("scenic: dropped world-space rotation write through singular parent")
			return
		}
		local = matRotation(pw).Inverse().Mul(q).Normalize()
	}
	t.local = composeTRS(matTranslation(t.local), local, matScale(t.local))
}

// LocalRotation returns the rotation component of the local matrix.
func (t *Transform) LocalRotation() mgl32.Quat {
	return matRotation(t.local)
}

// SetLocalRotation sets the rotation component of the local matrix,
// preserving translation and scale.
func (t *Transform) SetLocalRotation(q mgl32.Quat) {
	t.local = composeTRS(matTranslation(t.local), q, matScale(t.local))
}

// Scale returns the world-space scale.
func (t *Transform) Scale() mgl32.Vec3 {
	return matScale(t.World())
}

// LocalScale returns the scale component of the local matrix.
func (t *Transform) LocalScale() mgl32.Vec3 {
	return matScale(t.local)
}

// SetLocalScale sets the scale component of the local matrix, preserving
// translation and rotation.
func (t *Transform) SetLocalScale(s mgl32.Vec3) {
	t.local = composeTRS(matTranslation(t.local), matRotation(t.local), s)
}

// Forward returns the world-space forward direction (-Z rotated).
func (t *Transform) Forward() mgl32.Vec3 {
	return t.Rotation().Rotate(mgl32.Vec3{0, 0, -1})
}

// Up returns the world-space up direction (+Y rotated).
func (t *Transform) Up() mgl32.Vec3 {
	return t.Rotation().Rotate(mgl32.Vec3{0, 1, 0})
}

// Right returns the world-space right direction (+X rotated).
func (t *Transform) Right() mgl32.Vec3 {
	return t.Rotation().Rotate(mgl32.Vec3{1, 0, 0})
}

// SetParent requests a reparent to p (nil to become a root). The hierarchy
// does not change until the next commit; until then reads still see the old
// parent.
func (t *Transform) SetParent(p *Transform) {
	t.pendingParent = p
	t.dirty = true
}

// ApplyChanges commits a pending reparent. No-op unless a reparent was
// requested. The node's world transform is preserved across the move by
// re-expressing the captured world matrix in the new parent's space, or
// adopting it directly when the node becomes a root.
//
// A reparent that would make the node an ancestor of itself is rejected.
func (t *Transform) ApplyChanges() {
	if !t.dirty {
		return
	}
	next := t.pendingParent
	t.dirty = false
	t.pendingParent = nil

	if next == t.parent {
		return
	}
	if next != nil && (next == t || t.isAncestorOf(next)) {
		slog.Warn("scenic: rejected reparent that would form a cycle")
		return
	}

	old := t.parent
	world := t.World()

	if old != nil {
		old.removeChild(t)
	}
	t.parent = next

	if next == nil {
		t.local = world
	} else {
		next.children = append(next.children, t)
		pw := next.World()
		if pw.Det() == 0 {
			// Local matrix kept as-is; the world pose cannot be
			// preserved under a singular parent.
			slog.Debug("scenic: reparented under singular parent without preserving world transform")
		} else {
			t.local = pw.Inv().Mul4(world)
		}
	}

	if t.owner != nil {
		t.owner.dispatch(EventReparent{Transform: t, Old: old, New: next})
	}
}

// isAncestorOf reports whether t appears on o's parent chain.
func (t *Transform) isAncestorOf(o *Transform) bool {
	for p := o.parent; p != nil; p = p.parent {
		if p == t {
			return true
		}
	}
	return false
}

func (t *Transform) removeChild(c *Transform) {
	for i, child := range t.children {
		if child == c {
			t.children = append(t.children[:i], t.children[i+1:]...)
			return
		}
	}
}

// attachTo immediately parents t under p without touching the local matrix.
// Used by the scene commit to fold parentless spawns under the root.
func (t *Transform) attachTo(p *Transform) {
	if t.parent != nil || p == nil || p == t {
		return
	}
	t.parent = p
	p.children = append(p.children, t)
}

// childSnapshot returns a copy of the child list, safe to iterate while
// commits restructure the hierarchy.
func (t *Transform) childSnapshot() []*Transform {
	if len(t.children) == 0 {
		return nil
	}
	out := make([]*Transform, len(t.children))
	copy(out, t.children)
	return out
}
