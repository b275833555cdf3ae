package domain

// ClipPair holds the interview and clip resolved for one lesson source.
// Either side is nil when the store has no such document.
type ClipPair struct {
	Interview *Interview `json:"interview"`
	Clip      *Clip      `json:"clip"`
}

// CompositeView is the result of one aggregation run.
// Every configured term and source key is present; nil marks "not found".
type CompositeView struct {
	Terms map[string]*GlossaryTerm `json:"termDetails"`
	Clips map[string]ClipPair      `json:"clipDetails"`
}

// NewCompositeView returns an empty view.
func NewCompositeView() *CompositeView {
	return &CompositeView{
		Terms: make(map[string]*GlossaryTerm),
		Clips: make(map[string]ClipPair),
	}
}

// Phase is the position of a run in the load state machine.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseDone    Phase = "done"
	PhaseError   Phase = "error"
)

// LoadState is the observable state of the lesson plan aggregation.
// View is nil whenever Err is set; partial views are never exposed.
type LoadState struct {
	Loading bool
	Err     error
	View    *CompositeView

	// Generation identifies the run that produced this state.
	Generation uint64

	// Collection is the collection the run resolved.
	Collection Collection
}

// Phase derives the state machine position from the state fields.
func (s LoadState) Phase() Phase {
	switch {
	case s.Loading:
		return PhaseLoading
	case s.Err != nil:
		return PhaseError
	case s.View != nil:
		return PhaseDone
	default:
		return PhaseIdle
	}
}
