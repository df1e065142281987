package scenic

import (
	"fmt"
	"iter"
	"time"

	"github.com/google/uuid"
)

// Entity is a node in the scene graph. It owns exactly one Transform, an
// ordered list of active behaviors, and the pending queues that buffer
// behavior attach/detach requests until the next commit.
//
// Entities are created through Scene.Spawn and removed through
// Scene.Destroy; both are deferred to the commit phase.
type Entity struct {
	// id is assigned at spawn and never changes.
	id uuid.UUID

	name string
	tags *Tags

	transform *Transform
	scene     *Scene

	// active holds committed behaviors in attach order.
	active []Behavior

	// adds and removes buffer behavior lifecycle requests. A behavior is
	// never in active and adds at the same time.
	adds    opQueue[Behavior]
	removes opQueue[Behavior]

	// kinds mirrors the kinds present in active, rebuilt each commit.
	kinds KindMask

	destroyed bool
}

func newEntity(scene *Scene, name string) *Entity {
	e := &Entity{
		id:    uuid.New(),
		name:  name,
		tags:  newTags(),
		scene: scene,
	}
	e.transform = newTransform(e)
	return e
}

// ID returns the entity's unique identifier.
func (e *Entity) ID() uuid.UUID {
	return e.id
}

// Name returns the entity's name. Names are labels, not keys; they need not
// be unique.
func (e *Entity) Name() string {
	return e.name
}

// SetName renames the entity.
func (e *Entity) SetName(name string) {
	e.name = name
}

// Tags returns the entity's tag set.
func (e *Entity) Tags() *Tags {
	return e.tags
}

// Transform returns the entity's transform.
func (e *Entity) Transform() *Transform {
	return e.transform
}

// Scene returns the scene this entity belongs to.
func (e *Entity) Scene() *Scene {
	return e.scene
}

// Parent returns the entity owning the parent transform, or nil for roots.
func (e *Entity) Parent() *Entity {
	if p := e.transform.parent; p != nil {
		return p.owner
	}
	return nil
}

// Children returns the entities owning the direct child transforms, in
// child-list order.
func (e *Entity) Children() iter.Seq[*Entity] {
	return func(yield func(*Entity) bool) {
		for _, ct := range e.transform.children {
			if ct.owner == nil {
				continue
			}
			if !yield(ct.owner) {
				return
			}
		}
	}
}

// Behaviors returns a snapshot of the active behavior list in attach order.
// Pending behaviors are not included.
func (e *Entity) Behaviors() []Behavior {
	out := make([]Behavior, len(e.active))
	copy(out, e.active)
	return out
}

// HasKind reports whether any active behavior is of the given kind.
func (e *Entity) HasKind(k Kind) bool {
	return e.kinds.Has(k)
}

// Kinds returns the mask of kinds present on the active behavior list.
func (e *Entity) Kinds() KindMask {
	return e.kinds
}

// OfKind returns the active behaviors of the given kind, in attach order.
func (e *Entity) OfKind(k Kind) []Behavior {
	if !e.kinds.Has(k) {
		return nil
	}
	var out []Behavior
	for _, b := range e.active {
		if b.Kind() == k {
			out = append(out, b)
		}
	}
	return out
}

// Destroyed reports whether the entity has been committed for destruction.
func (e *Entity) Destroyed() bool {
	return e.destroyed
}

// BeginPlay initializes every active behavior that has not begun yet, in
// list order, then recurses depth-first into child entities. Behaviors
// promoted during a commit have already begun and are skipped, so BeginPlay
// fires exactly once per activation.
func (e *Entity) BeginPlay() {
	for _, b := range e.Behaviors() {
		base := b.base()
		if !base.began {
			base.began = true
			b.BeginPlay()
		}
	}
	for _, c := range e.childEntities() {
		c.BeginPlay()
	}
}

// Tick runs per-frame logic on every enabled active behavior in list order,
// then recurses depth-first into child entities.
func (e *Entity) Tick(dt time.Duration) {
	for _, b := range e.Behaviors() {
		if b.Enabled() {
			b.Tick(dt)
		}
	}
	for _, c := range e.childEntities() {
		c.Tick(dt)
	}
}

// Render draws every enabled active behavior in list order, then recurses
// depth-first into child entities. Rendering must not mutate the graph.
func (e *Entity) Render() {
	for _, b := range e.Behaviors() {
		if b.Enabled() {
			b.Render()
		}
	}
	for _, c := range e.childEntities() {
		c.Render()
	}
}

// EndPlay finalizes every active behavior that has begun, in list order,
// then recurses depth-first into child entities. A later BeginPlay (scene
// reload) initializes them again.
func (e *Entity) EndPlay() {
	for _, b := range e.Behaviors() {
		base := b.base()
		if base.began {
			base.began = false
			b.EndPlay()
		}
	}
	for _, c := range e.childEntities() {
		c.EndPlay()
	}
}

// ApplyChanges drains this entity's pending behavior queues, commits its
// own reparent request, then recurses into child entities. Order matters:
// adds are promoted (and begun) before removes are finalized, and both
// before any child processing, so a child hook never observes a half-applied
// parent.
func (e *Entity) ApplyChanges() {
	for _, b := range e.adds.drain() {
		base := b.base()
		base.state = stateActive
		e.active = append(e.active, b)
		base.began = true
		b.BeginPlay()
		e.dispatch(EventAttach{Entity: e, Behavior: b})
	}

	e.drainRemoves()

	e.rebuildKinds()

	e.transform.ApplyChanges()

	// Reparents move nodes between child lists, so recurse over a
	// snapshot taken before any child commits.
	for _, ct := range e.transform.childSnapshot() {
		ct.ApplyChanges()
		if ct.owner != nil {
			ct.owner.ApplyChanges()
		}
	}
}

// drainRemoves finalizes and detaches every queued removal. Shared between
// the regular commit and the destroy commit, which finalizes removals but
// must not promote pending adds.
func (e *Entity) drainRemoves() {
	for _, b := range e.removes.drain() {
		idx := -1
		for i, a := range e.active {
			if a == b {
				idx = i
				break
			}
		}
		if idx < 0 {
			continue
		}
		e.active = append(e.active[:idx], e.active[idx+1:]...)
		base := b.base()
		if base.began {
			base.began = false
			b.EndPlay()
		}
		base.state = stateRemoved
		e.dispatch(EventDetach{Entity: e, Behavior: b})
	}
}

// cancelAdds discards every queued add without activating it; the behaviors
// never receive BeginPlay or EndPlay.
func (e *Entity) cancelAdds() {
	for _, b := range e.adds.drain() {
		b.base().state = stateRemoved
	}
}

func (e *Entity) rebuildKinds() {
	var m KindMask
	for _, b := range e.active {
		m.Set(b.Kind())
	}
	e.kinds = m
}

func (e *Entity) childEntities() []*Entity {
	cts := e.transform.childSnapshot()
	if len(cts) == 0 {
		return nil
	}
	out := make([]*Entity, 0, len(cts))
	for _, ct := range cts {
		if ct.owner != nil {
			out = append(out, ct.owner)
		}
	}
	return out
}

// dispatch forwards a structural event to the registry, if reachable.
func (e *Entity) dispatch(event any) {
	if e.scene != nil && e.scene.registry != nil {
		e.scene.registry.Dispatch(event)
	}
}

// String returns a string representation of the entity for debugging.
func (e *Entity) String() string {
	return fmt.Sprintf("Entity{Name: %s, ID: %s, Behaviors: %d, Children: %d}",
		e.name, e.id, len(e.active), e.transform.ChildCount())
}
