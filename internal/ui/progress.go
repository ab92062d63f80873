package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"micaup/internal/upgrade"
)

type runModel struct {
	title      string
	events     <-chan upgrade.Event
	spinner    spinner.Model
	prog       progress.Model
	units      []unitItem
	index      map[string]int
	phaseLabel string
	cycle      int
	width      int
	done       bool
}

type unitItem struct {
	path    string
	status  string
	patches int
}

type eventMsg upgrade.Event
type doneMsg struct{}

// NewRunModel returns a Bubble Tea model that renders migration progress:
// one line per unit plus the current driver phase. The model quits when
// the event channel closes.
func NewRunModel(title string, units []string, events <-chan upgrade.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	items := make([]unitItem, 0, len(units))
	index := make(map[string]int, len(units))
	for i, unit := range units {
		items = append(items, unitItem{path: unit, status: "queued"})
		index[unit] = i
	}
	return &runModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		units:   items,
		index:   index,
		width:   80,
	}
}

// RunProgress drives the model until the event channel closes.
func RunProgress(title string, units []string, events <-chan upgrade.Event) error {
	p := tea.NewProgram(NewRunModel(title, units, events))
	_, err := p.Run()
	return err
}

func (m *runModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *runModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(upgrade.Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		progModel, cmd := m.prog.Update(msg)
		m.prog = progModel.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *runModel) View() string {
	if len(m.units) == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := m.title
	if m.phaseLabel != "" {
		header = fmt.Sprintf("%s (cycle %d, %s)", header, m.cycle, m.phaseLabel)
	}
	if m.done {
		header = fmt.Sprintf("done: %s", m.title)
	} else {
		header = fmt.Sprintf("%s %s", m.spinner.View(), header)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	statusWidth := 12
	nameWidth := m.width - statusWidth - 4
	if nameWidth < 20 {
		nameWidth = 20
	}

	for _, item := range m.units {
		name := truncate(item.path, nameWidth)
		status := item.status
		if item.patches > 0 {
			status = fmt.Sprintf("patched x%d", item.patches)
		}
		statusStyled := styleStatus(item.status).Render(fmt.Sprintf("%12s", status))
		b.WriteString(fmt.Sprintf("  %s %s\n", statusStyled, name))
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")

	return b.String()
}

func (m *runModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *runModel) applyEvent(ev upgrade.Event) tea.Cmd {
	m.cycle = ev.Cycle
	m.phaseLabel = ev.Phase.String()

	switch ev.Phase {
	case upgrade.PhasePatching:
		if ev.Change != nil {
			if idx, ok := m.index[ev.Change.Unit]; ok {
				m.units[idx].status = "patched"
				m.units[idx].patches++
			}
		}
	case upgrade.PhaseBlocked:
		for i := range m.units {
			if m.units[i].patches == 0 {
				m.units[i].status = "blocked"
			}
		}
	case upgrade.PhaseReporting, upgrade.PhaseDone:
		for i := range m.units {
			if m.units[i].patches == 0 {
				m.units[i].status = "clean"
			}
		}
	}

	// сходимость не знает числа итераций заранее, процент асимптотический
	pct := 1.0 - 1.0/float64(m.cycle+1)
	if ev.Phase == upgrade.PhaseDone || ev.Phase == upgrade.PhaseReporting {
		pct = 1.0
	}
	return m.prog.SetPercent(pct)
}

func styleStatus(status string) lipgloss.Style {
	switch status {
	case "patched", "clean":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case "blocked":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case "compiling", "patching", "reporting":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
