package archive

// Phase names a step reported through a ProgressFunc.
type Phase string

const (
	// PhaseOpened is reported once the container file is open.
	PhaseOpened Phase = "opened"
	// PhaseEntry is reported after each entry is written or extracted.
	PhaseEntry Phase = "entry"
	// PhaseCompleted is reported after the container is closed successfully.
	PhaseCompleted Phase = "completed"
)

// Event describes one progress step.
type Event struct {
	// Phase is the step being reported.
	Phase Phase
	// Container is the path of the container being written or read.
	Container string
	// Name is the slash-separated entry name; empty outside PhaseEntry.
	Name string
	// Index is the zero-based entry position; -1 outside PhaseEntry.
	Index int
	// Size is the uncompressed entry size in bytes.
	Size int64
}

// ProgressFunc receives progress events. A nil ProgressFunc is valid.
type ProgressFunc func(Event)

func (f ProgressFunc) emit(event Event) {
	if f != nil {
		f(event)
	}
}

func (f ProgressFunc) phase(phase Phase, container string) {
	f.emit(Event{Phase: phase, Container: container, Index: -1})
}
