package status

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/crhp-archive/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/crhp-archive/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/crhp-archive/internal/core/domain"
)

func TestNewBar(t *testing.T) {
	bar := NewBar(styles.DefaultStyles(), keymap.DefaultKeyMap())

	require.NotNil(t, bar)
	assert.Equal(t, domain.PhaseIdle, bar.Phase())
	assert.Equal(t, "", bar.Message())
	assert.Equal(t, 80, bar.Width())
}

func TestNewBar_NilStyles(t *testing.T) {
	bar := NewBar(nil, nil)

	require.NotNil(t, bar)
	assert.NotNil(t, bar.styles)
	assert.NotNil(t, bar.keymap)
}

func TestStatusBar_InitAndUpdate(t *testing.T) {
	bar := NewBar(nil, nil)

	assert.Nil(t, bar.Init())
	updated, cmd := bar.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, bar, updated)
	assert.Nil(t, cmd)
}

func TestStatusBar_SetState(t *testing.T) {
	bar := NewBar(nil, nil)

	bar.SetState(domain.LoadState{Loading: true, Generation: 1})
	assert.Equal(t, domain.PhaseLoading, bar.Phase())
	assert.Contains(t, bar.View(), "Loading")

	bar.SetState(domain.LoadState{Err: errors.New("permission denied"), Generation: 1})
	assert.Equal(t, domain.PhaseError, bar.Phase())
	assert.Equal(t, "permission denied", bar.Message())
	assert.Contains(t, bar.View(), "permission denied")

	bar.SetState(domain.LoadState{View: domain.NewCompositeView(), Generation: 2, Collection: "interviewsV2"})
	assert.Equal(t, domain.PhaseDone, bar.Phase())
	assert.Empty(t, bar.Message())
	assert.Contains(t, bar.View(), "interviewsV2")
}

func TestStatusBar_ViewShowsHints(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(120)

	view := bar.View()

	assert.Contains(t, view, "r: reload")
	assert.Contains(t, view, "q: quit")
	assert.Equal(t, 120, bar.Width())
}

func TestStatusBar_ViewFitsOnOneLine(t *testing.T) {
	bar := NewBar(nil, nil)

	for _, width := range []int{80, 100, 120} {
		bar.SetWidth(width)
		view := bar.View()

		assert.NotContains(t, view, "\n", "width=%d", width)
		assert.Equal(t, width, lipgloss.Width(view), "width=%d", width)
	}
}
