// Package messages defines Bubbletea message types for the TUI.
package messages

import (
	"github.com/custodia-labs/crhp-archive/internal/core/domain"
)

// StateChanged carries a load state published by the lesson plan service.
type StateChanged struct {
	State domain.LoadState
}

// ReloadRequested asks for a fresh aggregation run.
type ReloadRequested struct{}

// ViewChanged is sent when switching between sections.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which section of the lesson is shown.
type ViewType int

const (
	// ViewTerms lists the glossary terms.
	ViewTerms ViewType = iota
	// ViewClips lists the interview clips.
	ViewClips
	// ViewHelp shows keybindings.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewTerms:
		return "terms"
	case ViewClips:
		return "clips"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// Next cycles between the lesson sections.
func (v ViewType) Next() ViewType {
	if v == ViewTerms {
		return ViewClips
	}
	return ViewTerms
}
