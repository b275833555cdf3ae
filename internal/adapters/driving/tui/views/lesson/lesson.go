// Package lesson renders the composite view of a lesson plan.
package lesson

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/crhp-archive/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/crhp-archive/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/crhp-archive/internal/core/domain"
)

const notFound = "not in archive"

// View shows the terms or clips section of a loaded lesson.
type View struct {
	styles   *styles.Styles
	content  domain.LessonContent
	view     *domain.CompositeView
	section  messages.ViewType
	viewport viewport.Model
	width    int
	height   int
}

// NewView creates a lesson view for content.
func NewView(s *styles.Styles, content domain.LessonContent) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:   s,
		content:  content,
		section:  messages.ViewTerms,
		viewport: viewport.New(80, 20),
		width:    80,
		height:   20,
	}
}

// SetView replaces the composite view being rendered.
func (v *View) SetView(view *domain.CompositeView) {
	v.view = view
	v.refresh()
}

// SetSection switches between terms and clips.
func (v *View) SetSection(section messages.ViewType) {
	v.section = section
	v.viewport.GotoTop()
	v.refresh()
}

// Section returns the visible section.
func (v *View) Section() messages.ViewType {
	return v.section
}

// SetDimensions sizes the scrollable body.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.viewport.Width = width
	v.viewport.Height = height
	v.refresh()
}

// Update forwards scrolling keys to the viewport.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return v, cmd
}

// View renders the tab bar and the visible section.
func (v *View) View() string {
	return v.tabs() + "\n\n" + v.viewport.View()
}

// Body returns the unclipped text of the visible section.
func (v *View) Body() string {
	if v.view == nil {
		return ""
	}
	if v.section == messages.ViewClips {
		return v.renderClips()
	}
	return v.renderTerms()
}

func (v *View) refresh() {
	v.viewport.SetContent(v.Body())
}

func (v *View) tabs() string {
	terms := fmt.Sprintf("Terms (%d)", len(v.content.Terms))
	clips := fmt.Sprintf("Clips (%d)", len(v.content.Sources))
	if v.section == messages.ViewClips {
		return v.styles.Tab.Render(terms) + v.styles.ActiveTab.Render(clips)
	}
	return v.styles.ActiveTab.Render(terms) + v.styles.Tab.Render(clips)
}

func (v *View) renderTerms() string {
	var b strings.Builder
	for _, id := range v.content.Terms {
		term := v.view.Terms[id]
		if term == nil {
			b.WriteString(v.styles.Card.Render(
				v.styles.Subtitle.Render(id) + "\n" + v.styles.Muted.Render(notFound)))
			b.WriteString("\n")
			continue
		}

		lines := []string{v.styles.Subtitle.Render(domain.StringOr(term.EventTopic, id))}
		if term.Description != nil {
			lines = append(lines, v.styles.Normal.Render(*term.Description))
		}
		b.WriteString(v.styles.Card.Render(strings.Join(lines, "\n")))
		b.WriteString("\n")
	}
	return b.String()
}

func (v *View) renderClips() string {
	var b strings.Builder
	for _, src := range v.content.Sources {
		pair := v.view.Clips[src.Key()]

		name := src.InterviewID
		if pair.Interview != nil {
			name = domain.StringOr(pair.Interview.DocumentName, name)
		}
		lines := []string{v.styles.Subtitle.Render(name)}

		if pair.Interview != nil && pair.Interview.RoleSimplified != nil {
			lines = append(lines, v.styles.Muted.Render(*pair.Interview.RoleSimplified))
		}

		if pair.Clip == nil {
			lines = append(lines, v.styles.Muted.Render(src.ClipID+": "+notFound))
		} else {
			heading := domain.StringOr(pair.Clip.Topic, src.ClipID)
			if pair.Clip.Timestamp != nil {
				heading = fmt.Sprintf("[%s] %s", *pair.Clip.Timestamp, heading)
			}
			lines = append(lines, v.styles.Normal.Render(heading))
			if pair.Clip.Summary != nil {
				lines = append(lines, v.styles.Muted.Render(*pair.Clip.Summary))
			}
		}

		if src.Note != "" {
			lines = append(lines, v.styles.Warning.Render(src.Note))
		}
		b.WriteString(v.styles.Card.Render(strings.Join(lines, "\n")))
		b.WriteString("\n")
	}
	return b.String()
}
