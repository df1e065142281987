package scenic

import (
	"time"
)

// Behavior is a unit of logic or rendering attached to an Entity.
//
// All behaviors embed NopBehavior, which supplies empty hook defaults and
// the owner backref; concrete behaviors override the subset of hooks they
// need. Hooks are only ever invoked from the loop goroutine:
//
//   - BeginPlay runs once when the behavior is promoted from pending to
//     active during a commit, and again after a scene reload.
//   - Tick and Render run every frame while the behavior is enabled.
//   - EndPlay runs once when the behavior is detached or its scene unloads.
type Behavior interface {
	BeginPlay()
	Tick(dt time.Duration)
	Render()
	EndPlay()

	// Owner returns the entity this behavior is attached to, or nil if it
	// has not been attached yet. The owner never changes once set.
	Owner() *Entity

	// Enabled reports whether the behavior receives Tick and Render.
	// BeginPlay and EndPlay fire regardless of the enabled flag.
	Enabled() bool
	SetEnabled(enabled bool)

	// Kind categorizes the behavior for capability queries. Defaults to
	// KindScript; override on behaviors that provide a camera, light,
	// mesh or controller capability.
	Kind() Kind

	base() *NopBehavior
}

// behaviorState tracks where a behavior is in its lifecycle.
// Transitions happen only during the commit phase.
type behaviorState uint8

const (
	// statePending means the behavior is queued but not yet initialized.
	statePending behaviorState = iota

	// stateActive means BeginPlay has run and the behavior receives hooks.
	stateActive

	// stateRemoved means the behavior has been finalized and detached.
	stateRemoved
)

// NopBehavior implements Behavior with empty hooks. Embed it in concrete
// behaviors and override what you need:
//
//	type Health struct {
//	    scenic.NopBehavior
//	    Current, Max int
//	}
type NopBehavior struct {
	owner    *Entity
	state    behaviorState
	began    bool
	disabled bool
}

// BeginPlay does nothing by default.
func (n *NopBehavior) BeginPlay() {}

// Tick does nothing by default.
func (n *NopBehavior) Tick(time.Duration) {}

// Render does nothing by default.
func (n *NopBehavior) Render() {}

// EndPlay does nothing by default.
func (n *NopBehavior) EndPlay() {}

// Owner returns the entity this behavior is attached to.
func (n *NopBehavior) Owner() *Entity {
	return n.owner
}

// Enabled reports whether the behavior receives Tick and Render.
// Behaviors start enabled.
func (n *NopBehavior) Enabled() bool {
	return !n.disabled
}

// SetEnabled toggles Tick and Render delivery for this behavior.
func (n *NopBehavior) SetEnabled(enabled bool) {
	n.disabled = !enabled
}

// Kind returns KindScript.
func (n *NopBehavior) Kind() Kind {
	return KindScript
}

func (n *NopBehavior) base() *NopBehavior {
	return n
}
