package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/prodline/internal/cli/formatter"
	"github.com/alexanderramin/prodline/internal/domain"
	"github.com/alexanderramin/prodline/internal/service"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

type dashboardKeys struct {
	PrevDay  key.Binding
	NextDay  key.Binding
	NextArea key.Binding
	PrevArea key.Binding
	Today    key.Binding
	Refresh  key.Binding
	Quit     key.Binding
}

func newDashboardKeys() dashboardKeys {
	return dashboardKeys{
		PrevDay:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "prev day")),
		NextDay:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "next day")),
		NextArea: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next area")),
		PrevArea: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev area")),
		Today:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k dashboardKeys) short() []key.Binding {
	return []key.Binding{k.PrevDay, k.NextDay, k.NextArea, k.Today, k.Refresh, k.Quit}
}

// dashboardLoadedMsg carries one snapshot's reports back to the model. req
// identifies the selection it was built for so stale loads are dropped.
type dashboardLoadedMsg struct {
	req  service.DashboardRequest
	data *service.Dashboard
	err  error
}

// chromeHeight is the title line plus the help line.
const chromeHeight = 3

// dashboardModel shows today's area report, the month to date, the main-line
// flow and the month plan, rebuilt from a fresh snapshot on every move.
type dashboardModel struct {
	app  *App
	ctx  context.Context
	req  service.DashboardRequest
	keys dashboardKeys
	help help.Model
	vp   viewport.Model

	data    *service.Dashboard
	err     error
	loading bool
}

func newDashboardModel(ctx context.Context, app *App, req service.DashboardRequest) dashboardModel {
	vp := viewport.New(100, 30)
	return dashboardModel{
		app:     app,
		ctx:     ctx,
		req:     req,
		keys:    newDashboardKeys(),
		help:    help.New(),
		vp:      vp,
		loading: true,
	}
}

func (m dashboardModel) load() tea.Cmd {
	ctx, app, req := m.ctx, m.app, m.req
	return func() tea.Msg {
		d, err := app.Reports.Dashboard(ctx, req)
		return dashboardLoadedMsg{req: req, data: d, err: err}
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return m.load()
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.vp.Width = msg.Width
		m.vp.Height = max(msg.Height-chromeHeight, 1)
		m.help.Width = msg.Width
		return m, nil

	case dashboardLoadedMsg:
		if !sameRequest(msg.req, m.req) {
			return m, nil
		}
		m.loading = false
		m.data, m.err = msg.data, msg.err
		if m.err == nil {
			m.vp.SetContent(formatter.FormatDashboard(m.data))
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.PrevDay):
			m.req.Date = m.req.Date.AddDate(0, 0, -1)
		case key.Matches(msg, m.keys.NextDay):
			m.req.Date = m.req.Date.AddDate(0, 0, 1)
		case key.Matches(msg, m.keys.Today):
			m.req.Date = m.app.today()
		case key.Matches(msg, m.keys.NextArea):
			m.req.Area = cycleArea(m.req.Area, 1)
		case key.Matches(msg, m.keys.PrevArea):
			m.req.Area = cycleArea(m.req.Area, -1)
		case key.Matches(msg, m.keys.Refresh):
		default:
			var cmd tea.Cmd
			m.vp, cmd = m.vp.Update(msg)
			return m, cmd
		}
		m.loading = true
		return m, m.load()
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func sameRequest(a, b service.DashboardRequest) bool {
	return a.Area == b.Area && a.Model == b.Model && a.Date.Equal(b.Date)
}

func cycleArea(current domain.Area, step int) domain.Area {
	n := len(domain.AllAreas)
	for i, a := range domain.AllAreas {
		if a == current {
			return domain.AllAreas[((i+step)%n+n)%n]
		}
	}
	return domain.AllAreas[0]
}

func (m dashboardModel) View() string {
	var b strings.Builder
	title := fmt.Sprintf("PRODLINE · %s · %s", m.req.Area, formatter.HumanDate(m.req.Date))
	b.WriteString(formatter.StyleHeader.Render(title))
	if m.loading {
		b.WriteString(" " + formatter.Dim("loading…"))
	}
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(formatter.StyleRed.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	case m.data == nil:
		b.WriteString(formatter.Dim("Loading..."))
		b.WriteString("\n")
	default:
		b.WriteString(m.vp.View())
		b.WriteString("\n")
	}

	b.WriteString(m.help.ShortHelpView(m.keys.short()))
	return b.String()
}
