package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/crhp-archive/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/crhp-archive/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/crhp-archive/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/crhp-archive/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/crhp-archive/internal/adapters/driving/tui/views/lesson"
	"github.com/custodia-labs/crhp-archive/internal/core/domain"
)

// headerLines is the height reserved for the title, tabs and status bar.
const headerLines = 7

// App is the TUI application following the Elm architecture.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap

	spinner    spinner.Model
	lessonView *lesson.View
	statusBar  *status.Bar

	state     domain.LoadState
	reloading bool
	ticking   bool
	showHelp  bool

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Subtitle

	return &App{
		ports:      ports,
		ctx:        context.Background(),
		styles:     s,
		keymap:     km,
		spinner:    sp,
		lessonView: lesson.NewView(s, ports.Lesson.Content()),
		statusBar:  status.NewBar(s, km),
		state:      ports.Lesson.State(),
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model. It starts the first aggregation run.
func (a *App) Init() tea.Cmd {
	a.reloading = true
	return tea.Batch(
		tea.SetWindowTitle("crhp - "+a.ports.Lesson.Content().Title),
		a.startSpinner(),
		a.runCmd(),
	)
}

// runCmd runs the lesson plan and reports the resulting state.
func (a *App) runCmd() tea.Cmd {
	ctx := a.ctx
	svc := a.ports.Lesson
	return func() tea.Msg {
		return messages.StateChanged{State: svc.Run(ctx)}
	}
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case spinner.TickMsg:
		if !a.Loading() {
			a.ticking = false
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case messages.StateChanged:
		return a, a.applyState(msg.State)

	case messages.ReloadRequested:
		return a, a.reload()

	case messages.ViewChanged:
		if msg.View == messages.ViewHelp {
			a.showHelp = true
			return a, nil
		}
		a.showHelp = false
		a.lessonView.SetSection(msg.View)
		return a, nil
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()
	switch {
	case keymap.Matches(k, a.keymap.Quit):
		return a, tea.Quit
	case keymap.Matches(k, a.keymap.Help):
		a.showHelp = !a.showHelp
		return a, nil
	case a.showHelp && k == "esc":
		a.showHelp = false
		return a, nil
	case keymap.Matches(k, a.keymap.Reload):
		return a, a.reload()
	case keymap.Matches(k, a.keymap.Tab):
		a.lessonView.SetSection(a.lessonView.Section().Next())
		return a, nil
	}

	var cmd tea.Cmd
	a.lessonView, cmd = a.lessonView.Update(msg)
	return a, cmd
}

func (a *App) reload() tea.Cmd {
	if a.reloading {
		return nil
	}
	a.reloading = true
	return tea.Batch(a.startSpinner(), a.runCmd())
}

// startSpinner starts the tick loop unless it is already running.
// The loop ends on the first tick after loading finishes.
func (a *App) startSpinner() tea.Cmd {
	if a.ticking {
		return nil
	}
	a.ticking = true
	return a.spinner.Tick
}

// Spinning reports whether the spinner tick loop is running.
func (a *App) Spinning() bool {
	return a.ticking
}

// applyState takes a published state unless it belongs to an older run.
// Runs started elsewhere (config reloads) restart the spinner.
func (a *App) applyState(state domain.LoadState) tea.Cmd {
	if state.Generation < a.state.Generation {
		return nil
	}
	a.state = state
	if !state.Loading {
		a.reloading = false
	}
	a.statusBar.SetState(state)
	if state.View != nil {
		a.lessonView.SetView(state.View)
	}
	if state.Loading {
		return a.startSpinner()
	}
	return nil
}

// Loading reports whether a run is in flight.
func (a *App) Loading() bool {
	return a.reloading || a.state.Loading
}

// View implements tea.Model.
func (a *App) View() string {
	if a.showHelp {
		return a.viewHelp()
	}

	content := a.ports.Lesson.Content()

	var b strings.Builder
	b.WriteString(a.styles.Title.Render(content.Title))
	b.WriteString("\n")
	if content.Rationale != "" {
		b.WriteString(a.styles.Muted.Render(content.Rationale))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case a.Loading():
		b.WriteString(a.spinner.View() + " " + a.styles.Normal.Render("Loading lesson..."))
	case a.state.Err != nil:
		b.WriteString(a.styles.Error.Render("Content unavailable."))
		b.WriteString("\n")
		b.WriteString(a.styles.Muted.Render("Press r to try again."))
	case a.state.View != nil:
		b.WriteString(a.lessonView.View())
	default:
		b.WriteString(a.styles.Muted.Render("Nothing loaded yet."))
	}

	b.WriteString("\n\n")
	b.WriteString(a.statusBar.View())
	return b.String()
}

func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")
	for _, group := range a.keymap.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %-8s %s\n", h.Key, h.Desc))
		}
		b.WriteString("\n")
	}
	b.WriteString(a.styles.Help.Render("[esc] back"))
	return b.String()
}

// Run starts the TUI. States published through fwd are delivered to the
// running program.
func (a *App) Run(fwd *Forwarder) error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	if fwd != nil {
		fwd.attach(p)
		defer fwd.attach(nil)
	}
	_, err := p.Run()
	return err
}

// State returns the last applied load state.
func (a *App) State() domain.LoadState {
	return a.state
}

// Section returns the visible lesson section.
func (a *App) Section() messages.ViewType {
	return a.lessonView.Section()
}

// ShowingHelp reports whether the help view is shown.
func (a *App) ShowingHelp() bool {
	return a.showHelp
}

// Ready returns whether the app has received its dimensions.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	body := height - headerLines
	if body < 1 {
		body = 1
	}
	a.lessonView.SetDimensions(width, body)
	a.statusBar.SetWidth(width)
}

// Forwarder relays state changes from the lesson plan service into a
// running program. Pass Publish to services.WithOnChange.
type Forwarder struct {
	mu      sync.Mutex
	program *tea.Program
}

// Publish sends state to the attached program, if any.
func (f *Forwarder) Publish(state domain.LoadState) {
	f.mu.Lock()
	p := f.program
	f.mu.Unlock()
	if p != nil {
		p.Send(messages.StateChanged{State: state})
	}
}

func (f *Forwarder) attach(p *tea.Program) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.program = p
}
