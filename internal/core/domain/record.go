package domain

// Interview is the canonical interview record consumed by presentation code.
// Optional fields are nil when the source document does not carry them.
type Interview struct {
	// ID always equals the store id of the source document.
	ID string `json:"id"`

	// DocumentName is the interviewee's display name.
	DocumentName *string `json:"documentName,omitempty"`

	// RoleSimplified is the short role label (e.g. "Activist").
	RoleSimplified *string `json:"roleSimplified,omitempty"`

	// Role is the long-form role description.
	Role *string `json:"role,omitempty"`

	// MainSummary is the interview-level summary text.
	MainSummary *string `json:"mainSummary,omitempty"`

	// VideoURL links the interview media.
	VideoURL *string `json:"videoUrl,omitempty"`
}

// Clip is the canonical clip (sub-summary) record.
// It is scoped to the interview it was read under.
type Clip struct {
	// ID always equals the store id of the source document.
	ID string `json:"id"`

	// InterviewID is the normalised key of the parent interview.
	InterviewID string `json:"interviewId,omitempty"`

	Topic     *string  `json:"topic,omitempty"`
	Summary   *string  `json:"summary,omitempty"`
	Timestamp *string  `json:"timestamp,omitempty"`
	Keywords  []string `json:"keywords,omitempty"`
}

// GlossaryTerm is the canonical glossary entry.
// Terms are keyed by configuration ids and are collection independent.
type GlossaryTerm struct {
	ID          string  `json:"id"`
	EventTopic  *string `json:"eventTopic,omitempty"`
	Description *string `json:"description,omitempty"`
}

// StringOr returns *s, or fallback when s is nil.
// Presentation code uses it to default absent fields.
func StringOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
