package scenic

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const matEps = 1e-4

func assertMat4Near(t *testing.T, want, got mgl32.Mat4) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], matEps, "matrix element %d", i)
	}
}

func assertVec3Near(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], matEps, "vector element %d", i)
	}
}

func TestWorldMatrixComposition(t *testing.T) {
	root := newTransform(nil)
	root.SetLocalPosition(mgl32.Vec3{1, 2, 3})
	root.SetLocalRotation(EulerToQuat(0, 0.5, 0))

	mid := newTransform(nil)
	mid.SetParent(root)
	mid.ApplyChanges()
	mid.SetLocalPosition(mgl32.Vec3{-4, 0, 7})
	mid.SetLocalScale(mgl32.Vec3{2, 2, 2})

	leaf := newTransform(nil)
	leaf.SetParent(mid)
	leaf.ApplyChanges()
	leaf.SetLocalPosition(mgl32.Vec3{0, 1, 0})

	assertMat4Near(t, root.local, root.World())
	assertMat4Near(t, root.World().Mul4(mid.local), mid.World())
	assertMat4Near(t, mid.World().Mul4(leaf.local), leaf.World())
}

func TestWorldPositionThroughParent(t *testing.T) {
	parent := newTransform(nil)
	parent.SetLocalPosition(mgl32.Vec3{5, 0, 0})

	child := newTransform(nil)
	child.SetParent(parent)
	child.ApplyChanges()
	child.SetLocalPosition(mgl32.Vec3{1, 0, 0})

	assertVec3Near(t, mgl32.Vec3{6, 0, 0}, child.Position())
}

func TestReparentPreservesWorld(t *testing.T) {
	a := newTransform(nil)
	a.SetLocalPosition(mgl32.Vec3{3, -1, 2})
	a.SetLocalRotation(EulerToQuat(0.3, 1.1, -0.4))
	a.SetLocalScale(mgl32.Vec3{2, 2, 2})

	b := newTransform(nil)
	b.SetLocalPosition(mgl32.Vec3{-7, 4, 0})
	b.SetLocalRotation(EulerToQuat(-0.2, 0.6, 0.9))

	n := newTransform(nil)
	n.SetLocalPosition(mgl32.Vec3{1, 1, 1})
	n.SetLocalRotation(EulerToQuat(0.1, -0.5, 0.2))
	n.SetParent(a)
	n.ApplyChanges()

	// a → b
	before := n.World()
	n.SetParent(b)
	n.ApplyChanges()
	require.Same(t, b, n.Parent())
	assertMat4Near(t, before, n.World())

	// b → root
	before = n.World()
	n.SetParent(nil)
	n.ApplyChanges()
	require.Nil(t, n.Parent())
	assertMat4Near(t, before, n.World())

	// root → a
	before = n.World()
	n.SetParent(a)
	n.ApplyChanges()
	require.Same(t, a, n.Parent())
	assertMat4Near(t, before, n.World())
}

func TestReparentIsDeferred(t *testing.T) {
	p := newTransform(nil)
	n := newTransform(nil)

	n.SetParent(p)
	assert.Nil(t, n.Parent(), "hierarchy must not change before commit")
	assert.Equal(t, 0, p.ChildCount())

	n.ApplyChanges()
	assert.Same(t, p, n.Parent())
	assert.Equal(t, 1, p.ChildCount())

	// Committing again with no pending request is a no-op.
	n.ApplyChanges()
	assert.Equal(t, 1, p.ChildCount())
}

func TestReparentCycleRejected(t *testing.T) {
	a := newTransform(nil)
	b := newTransform(nil)
	b.SetParent(a)
	b.ApplyChanges()

	a.SetParent(b)
	a.ApplyChanges()

	assert.Nil(t, a.Parent(), "cycle-forming reparent must be rejected")
	assert.Same(t, a, b.Parent())

	a.SetParent(a)
	a.ApplyChanges()
	assert.Nil(t, a.Parent(), "self-parenting must be rejected")
}

func TestSetPositionSingularParentNoOp(t *testing.T) {
	parent := newTransform(nil)
	parent.SetLocalScale(mgl32.Vec3{0, 1, 1})

	child := newTransform(nil)
	child.SetParent(parent)
	child.ApplyChanges()
	child.SetLocalPosition(mgl32.Vec3{1, 2, 3})

	before := child.Local()
	child.SetPosition(mgl32.Vec3{9, 9, 9})
	assertMat4Near(t, before, child.Local())

	child.SetRotation(EulerToQuat(0.4, 0.4, 0.4))
	assertMat4Near(t, before, child.Local())
}

func TestSetWorldPositionConvertsToLocal(t *testing.T) {
	parent := newTransform(nil)
	parent.SetLocalPosition(mgl32.Vec3{5, 0, 0})
	parent.SetLocalRotation(EulerToQuat(0, mgl32.DegToRad(90), 0))

	child := newTransform(nil)
	child.SetParent(parent)
	child.ApplyChanges()

	child.SetPosition(mgl32.Vec3{6, 0, 0})
	assertVec3Near(t, mgl32.Vec3{6, 0, 0}, child.Position())
}

func TestSetWorldRotation(t *testing.T) {
	parent := newTransform(nil)
	parent.SetLocalRotation(EulerToQuat(0, mgl32.DegToRad(45), 0))

	child := newTransform(nil)
	child.SetParent(parent)
	child.ApplyChanges()

	want := EulerToQuat(0, mgl32.DegToRad(90), 0)
	child.SetRotation(want)

	got := child.Rotation()
	// q and -q encode the same rotation.
	if got.W*want.W+got.V.Dot(want.V) < 0 {
		got = got.Scale(-1)
	}
	assert.InDelta(t, want.W, got.W, matEps)
	assertVec3Near(t, want.V, got.V)
}

func TestScaleAndRotationExtraction(t *testing.T) {
	tr := newTransform(nil)
	rot := EulerToQuat(0.3, -0.7, 0.1)
	tr.SetLocal(composeTRS(mgl32.Vec3{1, 2, 3}, rot, mgl32.Vec3{2, 3, 4}))

	assertVec3Near(t, mgl32.Vec3{2, 3, 4}, tr.LocalScale())
	assertVec3Near(t, mgl32.Vec3{1, 2, 3}, tr.LocalPosition())

	got := tr.LocalRotation()
	if got.W*rot.W+got.V.Dot(rot.V) < 0 {
		got = got.Scale(-1)
	}
	assert.InDelta(t, rot.W, got.W, matEps)
	assertVec3Near(t, rot.V, got.V)
}

func TestZeroScaleRotationFallsBackToIdentity(t *testing.T) {
	tr := newTransform(nil)
	tr.SetLocal(composeTRS(mgl32.Vec3{}, EulerToQuat(0.5, 0.5, 0.5), mgl32.Vec3{0, 1, 1}))

	got := tr.LocalRotation()
	assert.InDelta(t, 1, got.W, matEps)
	assertVec3Near(t, mgl32.Vec3{}, got.V)
}

func TestDirectionVectors(t *testing.T) {
	tr := newTransform(nil)

	assertVec3Near(t, mgl32.Vec3{0, 0, -1}, tr.Forward())
	assertVec3Near(t, mgl32.Vec3{0, 1, 0}, tr.Up())
	assertVec3Near(t, mgl32.Vec3{1, 0, 0}, tr.Right())

	// Yaw 90° turns forward from -Z to -X and right from +X to -Z.
	tr.SetLocalRotation(EulerToQuat(0, mgl32.DegToRad(90), 0))
	assertVec3Near(t, mgl32.Vec3{-1, 0, 0}, tr.Forward())
	assertVec3Near(t, mgl32.Vec3{0, 1, 0}, tr.Up())
	assertVec3Near(t, mgl32.Vec3{0, 0, -1}, tr.Right())
}

func TestChildrenIterationOrder(t *testing.T) {
	p := newTransform(nil)
	var kids []*Transform
	for range 3 {
		c := newTransform(nil)
		c.SetParent(p)
		c.ApplyChanges()
		kids = append(kids, c)
	}

	var got []*Transform
	for c := range p.Children() {
		got = append(got, c)
	}
	require.Equal(t, kids, got, "iteration order must match insertion order")

	// The sequence is restartable.
	count := 0
	for range p.Children() {
		count++
	}
	assert.Equal(t, 3, count)
}
