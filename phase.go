package scenic

// Phase identifies where the current frame is.
// A frame advances in phase order: Commit → Tick → Commit → Render.
type Phase int

const (
	// PhaseIdle means no frame is in progress. All structural state is
	// settled and safe to inspect.
	PhaseIdle Phase = iota

	// PhaseCommit is the exclusive-writer phase. Buffered loads, unloads,
	// spawns, destroys, attaches, detaches and reparents drain here.
	PhaseCommit

	// PhaseTick is the logic phase. Mutation requests made here are
	// buffered until the next commit.
	PhaseTick

	// PhaseRender is the draw phase. Rendering must not mutate the graph;
	// requests made here are buffered like any other.
	PhaseRender
)

// String returns the string representation of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseCommit:
		return "Commit"
	case PhaseTick:
		return "Tick"
	case PhaseRender:
		return "Render"
	default:
		return "Unknown"
	}
}
