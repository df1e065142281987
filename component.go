package scenic

import (
	"log/slog"
)

// behaviorPtr constrains PT to a pointer to T that satisfies Behavior, which
// lets Add infer the concrete type from its argument.
type behaviorPtr[T any] interface {
	*T
	Behavior
}

// Add queues a behavior for attachment to the entity and returns it
// immediately, so the caller can configure fields before it activates. The
// behavior's owner reference is set here and never changes.
//
// The behavior stays pending — invisible to Get and friends, BeginPlay not
// yet called — until the next commit.
func Add[T any, PT behaviorPtr[T]](e *Entity, b PT) PT {
	if e == nil || b == nil {
		return b
	}
	behavior := Behavior(b)
	base := behavior.base()
	if base.owner != nil {
		slog.Warn("scenic: behavior already attached, ignoring Add", "entity", e.Name())
		return b
	}
	base.owner = e
	base.state = statePending
	e.adds.push(behavior)
	return b
}

// Remove queues a behavior for detachment from the entity.
//
// If the behavior is still pending it never activates: it is scrubbed from
// both queues and neither BeginPlay nor EndPlay ever fires. If it is active,
// it is finalized (EndPlay) and detached at the next commit. Removing a
// behavior twice is a no-op.
func Remove(e *Entity, b Behavior) {
	if e == nil || b == nil || b.Owner() != e {
		return
	}
	if e.adds.remove(b) {
		e.removes.remove(b)
		b.base().state = stateRemoved
		return
	}
	for _, a := range e.active {
		if a == b {
			e.removes.push(b)
			return
		}
	}
}

// Get returns the first active behavior of type T on the entity, or nil.
// Pending behaviors are not visible until committed.
func Get[T any](e *Entity) *T {
	if e == nil {
		return nil
	}
	for _, b := range e.active {
		// Assert through any: *T is a pointer to a type parameter, so a
		// direct interface assertion does not compile.
		if c, ok := any(b).(*T); ok {
			return c
		}
	}
	return nil
}

// GetAll returns every active behavior of type T on the entity, in attach
// order.
func GetAll[T any](e *Entity) []*T {
	if e == nil {
		return nil
	}
	var out []*T
	for _, b := range e.active {
		if c, ok := any(b).(*T); ok {
			out = append(out, c)
		}
	}
	return out
}

// Has reports whether the entity has an active behavior of type T.
func Has[T any](e *Entity) bool {
	return Get[T](e) != nil
}

// GetInChildren returns every active behavior of type T on the entity's
// direct children, in child-list order. Only one level of children is
// searched; the lookup deliberately does not recurse into grandchildren.
func GetInChildren[T any](e *Entity) []*T {
	if e == nil {
		return nil
	}
	var out []*T
	for child := range e.Children() {
		out = append(out, GetAll[T](child)...)
	}
	return out
}

// GetInParent returns every active behavior of type T on the entity's
// ancestor chain, nearest ancestor first, up to and including the root.
func GetInParent[T any](e *Entity) []*T {
	if e == nil {
		return nil
	}
	var out []*T
	for p := e.Parent(); p != nil; p = p.Parent() {
		out = append(out, GetAll[T](p)...)
	}
	return out
}
