// Package status provides the status bar component for the TUI.
package status

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/crhp-archive/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/crhp-archive/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/crhp-archive/internal/core/domain"
)

// Bar displays the load phase and keybinding hints.
type Bar struct {
	styles     *styles.Styles
	keymap     *keymap.KeyMap
	phase      domain.Phase
	message    string
	collection domain.Collection
	generation uint64
	width      int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		phase:  domain.PhaseIdle,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(_ tea.Msg) (*Bar, tea.Cmd) {
	// Passive; updated via SetState.
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()
	style := s.styles.StatusBar

	inner := s.width - style.GetHorizontalFrameSize()
	padding := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return style.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (s *Bar) renderLeft() string {
	switch s.phase {
	case domain.PhaseLoading:
		return s.styles.Muted.Render("Loading...")
	case domain.PhaseError:
		if s.message != "" {
			return s.styles.Error.Render(fmt.Sprintf("Error: %s", s.message))
		}
		return s.styles.Error.Render("Error")
	case domain.PhaseDone:
		return s.styles.Normal.Render(fmt.Sprintf("%s · run %d", s.collection, s.generation))
	default:
		return s.styles.Muted.Render("Idle")
	}
}

func (s *Bar) renderRight() string {
	bindings := s.keymap.ShortHelp()
	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState updates the bar from a load state.
func (s *Bar) SetState(state domain.LoadState) {
	s.phase = state.Phase()
	s.collection = state.Collection
	s.generation = state.Generation
	s.message = ""
	if state.Err != nil {
		s.message = state.Err.Error()
	}
}

// Phase returns the displayed phase.
func (s *Bar) Phase() domain.Phase {
	return s.phase
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}
