package scenic

import (
	"time"

	"github.com/google/uuid"
)

// sceneState tracks a scene's position in the registry lifecycle:
// Registered → LoadPending → Active → UnloadPending → Registered.
type sceneState uint8

const (
	sceneRegistered sceneState = iota
	sceneLoadPending
	sceneActive
	sceneUnloadPending
)

// String returns the string representation of the state.
func (s sceneState) String() string {
	switch s {
	case sceneRegistered:
		return "Registered"
	case sceneLoadPending:
		return "LoadPending"
	case sceneActive:
		return "Active"
	case sceneUnloadPending:
		return "UnloadPending"
	default:
		return "Unknown"
	}
}

// Scene is a named, independently loadable collection of entities rooted at
// one root entity. Scene content is built imperatively, typically from the
// OnLoaded hook; nothing is deserialized.
//
// Hooks are chained at construction:
//
//	scenic.NewScene("arena").
//	    OnLoaded(func(s *scenic.Scene) { ... }).
//	    OnTick(func(s *scenic.Scene, dt time.Duration) { ... })
type Scene struct {
	name string

	// root is always present and never destroyable. Every entity in the
	// scene is, transitively, a descendant of it.
	root *Entity

	registry *Registry
	state    sceneState

	lighting Lighting

	// spawns and destroys buffer entity lifecycle requests until commit.
	spawns   opQueue[*Entity]
	destroys opQueue[*Entity]

	onLoaded   func(*Scene)
	onUnloaded func(*Scene)
	onTick     func(*Scene, time.Duration)
	onRender   func(*Scene)
}

// NewScene creates a scene with the given name. The name is the scene's key
// within a registry and must be unique there.
func NewScene(name string) *Scene {
	s := &Scene{name: name}
	s.root = newEntity(s, name+"/root")
	return s
}

// OnLoaded sets the hook invoked when the scene activates, before the root
// entity's BeginPlay. Returns the scene for chaining.
func (s *Scene) OnLoaded(fn func(*Scene)) *Scene {
	s.onLoaded = fn
	return s
}

// OnUnloaded sets the hook invoked when the scene deactivates, before the
// root entity's EndPlay. Returns the scene for chaining.
func (s *Scene) OnUnloaded(fn func(*Scene)) *Scene {
	s.onUnloaded = fn
	return s
}

// OnTick sets the scene-level per-frame logic hook. It runs before any
// entity in any active scene ticks. Returns the scene for chaining.
func (s *Scene) OnTick(fn func(*Scene, time.Duration)) *Scene {
	s.onTick = fn
	return s
}

// OnRender sets the scene-level per-frame draw hook. Returns the scene for
// chaining.
func (s *Scene) OnRender(fn func(*Scene)) *Scene {
	s.onRender = fn
	return s
}

// Name returns the scene's name.
func (s *Scene) Name() string {
	return s.name
}

// Root returns the scene's root entity.
func (s *Scene) Root() *Entity {
	return s.root
}

// Registry returns the registry the scene is registered with, or nil.
func (s *Scene) Registry() *Registry {
	return s.registry
}

// Active reports whether the scene is currently in the active set. A scene
// with a queued unload is still active; it leaves the set when the unload
// commits on the next Tick.
func (s *Scene) Active() bool {
	return s.state == sceneActive || s.state == sceneUnloadPending
}

// Lighting returns the scene's lighting data.
func (s *Scene) Lighting() *Lighting {
	return &s.lighting
}

// Spawn creates an entity bound to this scene and queues it for activation
// at the next commit. The entity is returned immediately so the caller can
// attach behaviors and set its transform before it goes live. An entity
// without an explicit parent by commit time is parented to the scene root.
func (s *Scene) Spawn(name string) *Entity {
	e := newEntity(s, name)
	s.spawns.push(e)
	return e
}

// Destroy queues an entity for removal at the next commit. The root entity
// cannot be destroyed; requests for it (or for entities of other scenes)
// are ignored.
func (s *Scene) Destroy(e *Entity) {
	if e == nil || e == s.root || e.scene != s || e.destroyed {
		return
	}
	s.destroys.push(e)
}

// Tick runs the scene-level logic hook.
func (s *Scene) Tick(dt time.Duration) {
	if s.onTick != nil {
		s.onTick(s, dt)
	}
}

// Render runs the scene-level draw hook.
func (s *Scene) Render() {
	if s.onRender != nil {
		s.onRender(s)
	}
}

// MainCamera returns the first behavior exposing the camera capability,
// found by deterministic pre-order depth-first search from the root, or nil
// if the scene has no camera. Absent structural change the result is stable
// across frames.
func (s *Scene) MainCamera() CameraSource {
	return findCamera(s.root)
}

func findCamera(e *Entity) CameraSource {
	for _, b := range e.active {
		if c, ok := b.(CameraSource); ok {
			return c
		}
	}
	for _, c := range e.childEntities() {
		if cam := findCamera(c); cam != nil {
			return cam
		}
	}
	return nil
}

// Find returns the first entity with the given name in pre-order from the
// root, or nil.
func (s *Scene) Find(name string) *Entity {
	return findEntity(s.root, func(e *Entity) bool { return e.name == name })
}

// FindByID returns the entity with the given id, or nil.
func (s *Scene) FindByID(id uuid.UUID) *Entity {
	return findEntity(s.root, func(e *Entity) bool { return e.id == id })
}

// FindByTag returns every entity carrying the tag, in pre-order.
func (s *Scene) FindByTag(tag string) []*Entity {
	var out []*Entity
	walkEntities(s.root, func(e *Entity) {
		if e.tags.Has(tag) {
			out = append(out, e)
		}
	})
	return out
}

func findEntity(e *Entity, match func(*Entity) bool) *Entity {
	if match(e) {
		return e
	}
	for _, c := range e.childEntities() {
		if found := findEntity(c, match); found != nil {
			return found
		}
	}
	return nil
}

func walkEntities(e *Entity, visit func(*Entity)) {
	visit(e)
	for _, c := range e.childEntities() {
		walkEntities(c, visit)
	}
}

// ApplyChanges commits pending spawns, then pending destroys, then sweeps
// the entity tree for buffered behavior and reparent requests.
//
// A destroyed entity is only detached from the hierarchy; EndPlay is not
// cascaded over its subtree. Callers needing teardown hooks must Remove the
// behaviors explicitly before destroying.
func (s *Scene) ApplyChanges() {
	for _, e := range s.spawns.drain() {
		if e.destroyed {
			continue
		}
		e.ApplyChanges()
		e.BeginPlay()
		if e.transform.parent == nil {
			e.transform.attachTo(s.root.transform)
		}
		s.dispatch(EventEntitySpawn{Entity: e})
	}

	for _, e := range s.destroys.drain() {
		if e == s.root || e.destroyed {
			continue
		}
		// An explicit Remove issued alongside the Destroy still
		// finalizes its behavior, but pending adds are cancelled: a
		// behavior added in the destroy frame must never activate,
		// since the orphaned entity has no EndPlay path left.
		e.drainRemoves()
		e.cancelAdds()
		e.rebuildKinds()
		e.transform.SetParent(nil)
		e.transform.ApplyChanges()
		e.destroyed = true
		s.dispatch(EventEntityDestroy{Entity: e})
	}

	s.root.ApplyChanges()
}

func (s *Scene) dispatch(event any) {
	if s.registry != nil {
		s.registry.Dispatch(event)
	}
}

// loaded runs the OnLoaded hook.
func (s *Scene) loaded() {
	if s.onLoaded != nil {
		s.onLoaded(s)
	}
}

// unloaded runs the OnUnloaded hook.
func (s *Scene) unloaded() {
	if s.onUnloaded != nil {
		s.onUnloaded(s)
	}
}
