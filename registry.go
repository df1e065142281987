package scenic

import (
	"errors"
	"fmt"
	"log/slog"
	"time"
)

var (
	// ErrDuplicateScene is returned by AddScene when the name is taken.
	ErrDuplicateScene = errors.New("scenic: scene name already registered")

	// ErrUnknownScene is returned by Load and Unload for names that were
	// never registered.
	ErrUnknownScene = errors.New("scenic: unknown scene")
)

// sceneOp is a buffered scene state transition.
type sceneOp struct {
	scene *Scene
	load  bool
}

// Registry owns every registered scene and the subset currently active, and
// drives the per-frame sweep across them. Construct one explicitly (directly
// or through Builder) and hand it to the host loop; there is no process-wide
// instance.
//
// All methods must be called from the loop goroutine. Mutation entry points
// only buffer work; the graph changes exclusively inside the commit phase of
// Tick.
type Registry struct {
	// scenes is the registration table, distinct from activation.
	scenes map[string]*Scene

	// active holds loaded scenes in load order.
	active []*Scene

	// pending buffers load/unload transitions until the next Tick.
	pending opQueue[sceneOp]

	subscribers []func(any)

	phase Phase
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		scenes: make(map[string]*Scene),
	}
}

// AddScene registers a scene under its name. Registration alone does not
// activate anything; call Load for that. Registering a second scene with an
// already-taken name fails with ErrDuplicateScene, since it indicates a
// setup bug.
func (r *Registry) AddScene(s *Scene) error {
	if s == nil {
		return fmt.Errorf("scenic: AddScene with nil scene")
	}
	if _, ok := r.scenes[s.name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateScene, s.name)
	}
	s.registry = r
	r.scenes[s.name] = s
	return nil
}

// Scene returns the registered scene with the given name, or nil.
func (r *Registry) Scene(name string) *Scene {
	return r.scenes[name]
}

// Load queues activation of the named scene for the next Tick. Loading an
// unregistered name fails with ErrUnknownScene. Loading a scene that is
// already active or already queued is a no-op, so callers may Load
// idempotently.
func (r *Registry) Load(name string) error {
	s, ok := r.scenes[name]
	if !ok {
		return fmt.Errorf("load %q: %w", name, ErrUnknownScene)
	}
	if s.state != sceneRegistered {
		slog.Debug("scenic: load ignored", "scene", name, "state", s.state.String())
		return nil
	}
	s.state = sceneLoadPending
	r.pending.push(sceneOp{scene: s, load: true})
	return nil
}

// Unload queues deactivation of the named scene for the next Tick.
// Unloading an unregistered name fails with ErrUnknownScene; unloading a
// scene that is not active is a no-op.
func (r *Registry) Unload(name string) error {
	s, ok := r.scenes[name]
	if !ok {
		return fmt.Errorf("unload %q: %w", name, ErrUnknownScene)
	}
	if s.state != sceneActive {
		slog.Debug("scenic: unload ignored", "scene", name, "state", s.state.String())
		return nil
	}
	s.state = sceneUnloadPending
	r.pending.push(sceneOp{scene: s, load: false})
	return nil
}

// Current returns the first active scene, or nil when nothing is loaded.
// With additive composition the first loaded scene is the primary one.
func (r *Registry) Current() *Scene {
	if len(r.active) == 0 {
		return nil
	}
	return r.active[0]
}

// Active returns a snapshot of the active scenes in load order.
func (r *Registry) Active() []*Scene {
	out := make([]*Scene, len(r.active))
	copy(out, r.active)
	return out
}

// Phase returns the current frame phase.
func (r *Registry) Phase() Phase {
	return r.phase
}

// Subscribe registers a handler for structural events. Handlers run
// synchronously during the commit phase, in subscription order.
func (r *Registry) Subscribe(fn func(event any)) {
	if fn != nil {
		r.subscribers = append(r.subscribers, fn)
	}
}

// Dispatch delivers an event to every subscriber.
func (r *Registry) Dispatch(event any) {
	for _, fn := range r.subscribers {
		fn(event)
	}
}

// Tick advances one frame of logic:
//
//  1. Commit pending scene loads and unloads.
//  2. Scene-level Tick for every active scene.
//  3. Root-entity Tick for every active scene.
//  4. Commit every buffered structural mutation (spawns, destroys,
//     attaches, detaches, reparents).
//
// The two tick passes are separate so scene-level logic across all active
// scenes runs before any entity-level logic sees the frame.
func (r *Registry) Tick(dt time.Duration) {
	r.phase = PhaseCommit
	r.commitSceneOps()

	r.phase = PhaseTick
	scenes := r.Active()
	for _, s := range scenes {
		s.Tick(dt)
	}
	for _, s := range scenes {
		s.root.Tick(dt)
	}

	r.phase = PhaseCommit
	for _, s := range r.Active() {
		s.ApplyChanges()
	}

	r.phase = PhaseIdle
}

// Render draws one frame, mirroring Tick's two-pass shape with no commit
// step: scene-level Render for every active scene, then root-entity Render.
// Rendering never mutates the graph.
func (r *Registry) Render() {
	r.phase = PhaseRender
	scenes := r.Active()
	for _, s := range scenes {
		s.Render()
	}
	for _, s := range scenes {
		s.root.Render()
	}
	r.phase = PhaseIdle
}

// UnloadAll synchronously unloads every active scene. It snapshots the
// active list, queues an unload for each, and commits immediately. Meant
// for shutdown.
func (r *Registry) UnloadAll() {
	for _, s := range r.Active() {
		_ = r.Unload(s.name)
	}
	r.phase = PhaseCommit
	r.commitSceneOps()
	r.phase = PhaseIdle
}

// commitSceneOps drains the pending load/unload queue in FIFO order.
func (r *Registry) commitSceneOps() {
	for _, op := range r.pending.drain() {
		s := op.scene
		if op.load {
			if s.state != sceneLoadPending {
				continue
			}
			s.loaded()
			s.root.BeginPlay()
			r.active = append(r.active, s)
			s.state = sceneActive
			slog.Debug("scenic: scene loaded", "scene", s.name)
			r.Dispatch(EventSceneLoad{Scene: s})
		} else {
			if s.state != sceneUnloadPending {
				continue
			}
			s.unloaded()
			s.root.EndPlay()
			r.removeActive(s)
			s.state = sceneRegistered
			slog.Debug("scenic: scene unloaded", "scene", s.name)
			r.Dispatch(EventSceneUnload{Scene: s})
		}
	}
}

func (r *Registry) removeActive(s *Scene) {
	for i, active := range r.active {
		if active == s {
			r.active = append(r.active[:i], r.active[i+1:]...)
			return
		}
	}
}
