package app

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/wordsprout/wordsprout/internal/practice"
	"github.com/wordsprout/wordsprout/internal/router"
	"github.com/wordsprout/wordsprout/internal/screen"
	"github.com/wordsprout/wordsprout/internal/screens/grow"
	"github.com/wordsprout/wordsprout/internal/screens/home"
	"github.com/wordsprout/wordsprout/internal/screens/welcome"
	"github.com/wordsprout/wordsprout/internal/ui/layout"
)

// dueRefreshInterval is how often the header due count is recomputed while
// the app sits idle.
const dueRefreshInterval = time.Minute

// Options holds the dependencies of the TUI.
type Options struct {
	Service *practice.Service

	// Grow generates new words. Nil hides the feature.
	Grow grow.Func

	Logger *slog.Logger
}

type dueMsg struct {
	due int
	err error
}

type dueTickMsg time.Time

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	svc    *practice.Service
	logger *slog.Logger
	due    int
	width  int
	height int
}

// newAppModel creates an AppModel that opens on the welcome splash.
func newAppModel(opts Options) AppModel {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	splash := welcome.New(func() screen.Screen {
		return home.New(opts.Service, opts.Grow)
	})
	return AppModel{
		router: router.New(splash),
		svc:    opts.Service,
		logger: logger,
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.router.Active().Init(), m.refreshDue(), tickDue())
}

func (m AppModel) refreshDue() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		n, err := svc.DueCount(context.Background())
		return dueMsg{due: n, err: err}
	}
}

func tickDue() tea.Cmd {
	return tea.Tick(dueRefreshInterval, func(t time.Time) tea.Msg { return dueTickMsg(t) })
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case dueMsg:
		if msg.err != nil {
			m.logger.Warn("due count", slog.String("error", msg.err.Error()))
			return m, nil
		}
		m.due = msg.due
		return m, nil

	case dueTickMsg:
		return m, tea.Batch(m.refreshDue(), tickDue())

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.svc.SaveSnapshot(context.Background())
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	if router.IsNavigation(msg) {
		cmd = tea.Batch(cmd, m.refreshDue())
	}
	return m, cmd
}

// headerInfo reads the selected category from the tracker.
func (m AppModel) headerInfo() layout.HeaderInfo {
	info := layout.HeaderInfo{Due: m.due}
	state := m.svc.Tracker().State()
	if state.CategoryID == "" {
		return info
	}
	if cat, err := m.svc.Catalog().Category(state.CategoryID); err == nil {
		info.Category = cat.Label()
		info.Locked = state.Locked()
	}
	return info
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	header := layout.RenderHeader(m.title(), m.headerInfo(), m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// title is the breadcrumb of open screens, or just the active one when the
// trail does not fit a third of the header.
func (m AppModel) title() string {
	titles := slices.DeleteFunc(m.router.Titles(), func(t string) bool { return t == "" })
	trail := strings.Join(titles, " › ")
	if lipgloss.Width(trail) > m.width/3 {
		return m.router.Active().Title()
	}
	return trail
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		return append(p.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the TUI and blocks until it exits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	if opts.Service == nil {
		return fmt.Errorf("app: practice service is required")
	}
	p := tea.NewProgram(newAppModel(opts), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("app: %w", err)
	}
	opts.Service.SaveSnapshot(context.Background())
	return nil
}
