package domain

import (
	"fmt"
	"strings"
)

// KeySeparator joins interview and clip ids in composite view keys.
const KeySeparator = "::"

// SourceRef names one (interview, clip) pair a lesson requires.
type SourceRef struct {
	InterviewID string `toml:"interview_id" yaml:"interview_id" json:"interviewId"`
	ClipID      string `toml:"clip_id" yaml:"clip_id" json:"clipId"`

	// Note is display text shown next to the clip.
	Note string `toml:"note,omitempty" yaml:"note,omitempty" json:"note,omitempty"`
}

// Key returns the composite view key "interviewId::clipId".
// The key uses the logical interview id, not the normalised store key.
func (s SourceRef) Key() string {
	return s.InterviewID + KeySeparator + s.ClipID
}

// LessonContent is the static descriptor a lesson plan page is built from.
// It is read once and never mutated.
type LessonContent struct {
	Title     string      `toml:"title" yaml:"title" json:"title"`
	Rationale string      `toml:"rationale" yaml:"rationale" json:"rationale"`
	Prompts   []string    `toml:"prompts" yaml:"prompts" json:"prompts,omitempty"`
	Terms     []string    `toml:"terms" yaml:"terms" json:"terms"`
	Sources   []SourceRef `toml:"sources" yaml:"sources" json:"sources"`
}

// Validate checks the descriptor for entries that would produce empty or
// ambiguous view keys. The first problem found is returned as a *LessonError.
func (l *LessonContent) Validate() error {
	if l == nil {
		return &LessonError{Field: "content", Index: -1, Reason: "missing"}
	}
	if len(l.Terms) == 0 && len(l.Sources) == 0 {
		return &LessonError{Field: "content", Index: -1, Reason: "no terms or sources"}
	}

	seenTerms := make(map[string]struct{}, len(l.Terms))
	for i, id := range l.Terms {
		if err := checkID(id); err != "" {
			return &LessonError{Field: "terms", Index: i, Reason: err}
		}
		if _, dup := seenTerms[id]; dup {
			return &LessonError{Field: "terms", Index: i, Reason: fmt.Sprintf("duplicate term %q", id)}
		}
		seenTerms[id] = struct{}{}
	}

	seenSources := make(map[string]struct{}, len(l.Sources))
	for i, src := range l.Sources {
		if err := checkID(src.InterviewID); err != "" {
			return &LessonError{Field: "sources", Index: i, Reason: "interview id " + err}
		}
		if err := checkID(src.ClipID); err != "" {
			return &LessonError{Field: "sources", Index: i, Reason: "clip id " + err}
		}
		key := src.Key()
		if _, dup := seenSources[key]; dup {
			return &LessonError{Field: "sources", Index: i, Reason: fmt.Sprintf("duplicate source %q", key)}
		}
		seenSources[key] = struct{}{}
	}
	return nil
}

func checkID(id string) string {
	switch {
	case strings.TrimSpace(id) == "":
		return "is empty"
	case strings.Contains(id, KeySeparator):
		return fmt.Sprintf("%q contains %q", id, KeySeparator)
	case strings.Contains(id, "/"):
		return fmt.Sprintf("%q contains a path separator", id)
	}
	return ""
}
