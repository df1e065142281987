package scenic

// Structural events are dispatched to registry subscribers as the commit
// phase applies buffered mutations. Subscribers run synchronously on the
// loop goroutine; mutation requests they make are buffered for the next
// commit like any other.

// EventSceneLoad is emitted when a scene finishes activating.
type EventSceneLoad struct {
	Scene *Scene
}

// EventSceneUnload is emitted when a scene finishes deactivating.
type EventSceneUnload struct {
	Scene *Scene
}

// EventEntitySpawn is emitted when a spawned entity goes live.
type EventEntitySpawn struct {
	Entity *Entity
}

// EventEntityDestroy is emitted when an entity is detached for destruction.
type EventEntityDestroy struct {
	Entity *Entity
}

// EventAttach is emitted when a behavior is promoted to active.
type EventAttach struct {
	Entity   *Entity
	Behavior Behavior
}

// EventDetach is emitted when a behavior is finalized and detached.
type EventDetach struct {
	Entity   *Entity
	Behavior Behavior
}

// EventReparent is emitted when a transform's reparent request commits.
// Old and New may each be nil for moves out of or into root position.
type EventReparent struct {
	Transform *Transform
	Old       *Transform
	New       *Transform
}
