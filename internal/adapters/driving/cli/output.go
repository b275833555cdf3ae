package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/custodia-labs/crhp-archive/internal/core/domain"
)

// printer writes command output, styled only when writing to a terminal.
type printer struct {
	w       io.Writer
	title   lipgloss.Style
	heading lipgloss.Style
	muted   lipgloss.Style
	alert   lipgloss.Style
}

func newPrinter(w io.Writer) *printer {
	p := &printer{
		w:       w,
		title:   lipgloss.NewStyle(),
		heading: lipgloss.NewStyle(),
		muted:   lipgloss.NewStyle(),
		alert:   lipgloss.NewStyle(),
	}
	if isTerminal(w) {
		p.title = p.title.Bold(true).Foreground(lipgloss.Color("#B45309"))
		p.heading = p.heading.Bold(true).Foreground(lipgloss.Color("#0E7490"))
		p.muted = p.muted.Foreground(lipgloss.Color("#78716C"))
		p.alert = p.alert.Foreground(lipgloss.Color("#EF4444"))
	}
	return p
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (p *printer) line(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

// field prints "label: value" when value is set.
func (p *printer) field(label string, value *string) {
	if value == nil {
		return
	}
	p.line("  %-15s %s", label+":", *value)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// lessonJSON is the --json form of a loaded lesson.
type lessonJSON struct {
	Title      string                          `json:"title"`
	Collection string                          `json:"collection"`
	Generation uint64                          `json:"generation"`
	Terms      map[string]*domain.GlossaryTerm `json:"termDetails"`
	Clips      map[string]domain.ClipPair      `json:"clipDetails"`
}

func (p *printer) lesson(content domain.LessonContent, state domain.LoadState) {
	p.line("%s", p.title.Render(content.Title))
	if content.Rationale != "" {
		p.line("%s", p.muted.Render(strings.TrimSpace(content.Rationale)))
	}
	p.line("%s", p.muted.Render(fmt.Sprintf("collection %s, run %d", state.Collection, state.Generation)))

	if len(content.Prompts) > 0 {
		p.line("")
		p.line("%s", p.heading.Render("Discussion prompts"))
		for i, prompt := range content.Prompts {
			p.line("  %d. %s", i+1, prompt)
		}
	}

	p.line("")
	p.line("%s", p.heading.Render("Glossary"))
	for _, id := range content.Terms {
		term := state.View.Terms[id]
		if term == nil {
			p.line("  %s %s", id, p.muted.Render("(not in archive)"))
			continue
		}
		p.line("  %s", domain.StringOr(term.EventTopic, id))
		if term.Description != nil {
			p.line("    %s", *term.Description)
		}
	}

	p.line("")
	p.line("%s", p.heading.Render("Clips"))
	for _, src := range content.Sources {
		pair := state.View.Clips[src.Key()]
		name := src.InterviewID
		if pair.Interview != nil {
			name = domain.StringOr(pair.Interview.DocumentName, name)
		}
		p.line("  %s", name)

		if pair.Clip == nil {
			p.line("    %s %s", src.ClipID, p.muted.Render("(not in archive)"))
		} else {
			p.line("    [%s] %s",
				domain.StringOr(pair.Clip.Timestamp, "--:--:--"),
				domain.StringOr(pair.Clip.Topic, src.ClipID))
			if pair.Clip.Summary != nil {
				p.line("    %s", p.muted.Render(*pair.Clip.Summary))
			}
		}
		if src.Note != "" {
			p.line("    note: %s", src.Note)
		}
	}
}

func (p *printer) unavailable() {
	p.line("%s", p.alert.Render("Content unavailable."))
}

func (p *printer) interview(rec *domain.Interview) {
	p.line("%s", p.title.Render("Interview: "+rec.ID))
	p.field("Name", rec.DocumentName)
	p.field("Role", rec.Role)
	p.field("Role (short)", rec.RoleSimplified)
	p.field("Video", rec.VideoURL)
	if rec.MainSummary != nil {
		p.line("")
		p.line("%s", *rec.MainSummary)
	}
}

func (p *printer) clip(rec *domain.Clip) {
	p.line("%s", p.title.Render("Clip: "+rec.ID))
	if rec.InterviewID != "" {
		p.line("  %-15s %s", "Interview:", rec.InterviewID)
	}
	p.field("Topic", rec.Topic)
	p.field("Timestamp", rec.Timestamp)
	if len(rec.Keywords) > 0 {
		p.line("  %-15s %s", "Keywords:", strings.Join(rec.Keywords, ", "))
	}
	if rec.Summary != nil {
		p.line("")
		p.line("%s", *rec.Summary)
	}
}

func (p *printer) term(rec *domain.GlossaryTerm) {
	p.line("%s", p.title.Render("Term: "+rec.ID))
	p.field("Topic", rec.EventTopic)
	if rec.Description != nil {
		p.line("")
		p.line("%s", *rec.Description)
	}
}
