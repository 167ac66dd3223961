package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Dicklesworthstone/cpumon/internal/model"
)

// rowsPerColumn caps how many core gauges stack before a new column starts.
const rowsPerColumn = 16

// Model renders live samples from the harvester.
type Model struct {
	latest    model.Sample
	stream    <-chan model.Sample
	ctxCancel context.CancelFunc
	width     int
	height    int
}

// New renders samples from stream; cancel is called when the user quits.
func New(stream <-chan model.Sample, cancel context.CancelFunc) *Model {
	return &Model{
		latest:    model.Zero(),
		stream:    stream,
		ctxCancel: cancel,
		width:     120,
		height:    40,
	}
}

// Messages
type tickMsg struct{}

func tickCmd() tea.Cmd { return tea.Tick(time.Second/5, func(time.Time) tea.Msg { return tickMsg{} }) }

func (m *Model) Init() tea.Cmd { return tickCmd() }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.ctxCancel()
			return m, tea.Quit
		}
	case tickMsg:
		select {
		case samp, ok := <-m.stream:
			if ok {
				m.latest = samp
			}
		default:
		}
		return m, tickCmd()
	}
	return m, nil
}

// Styles
var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("45"))
	subtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Bold(true)
	gaugeFill   = "█"
	gaugeEmpty  = "░"
	cardStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("60")).
			Padding(0, 1).
			MarginRight(1)
)

func (m *Model) View() string {
	s := m.latest
	header := titleStyle.Render("CPU Monitor") + "  " +
		subtleStyle.Render(s.Timestamp.Format("Mon Jan 2 15:04:05 MST 2006")) + "  " +
		subtleStyle.Render(fmt.Sprintf("load %.2f %.2f %.2f", s.Load.Load1, s.Load.Load5, s.Load.Load15))

	if len(s.CPU) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, header, subtleStyle.Render("waiting for first sample…"))
	}

	var cards []string
	rest := s.CPU
	if rest[0].Index == nil {
		cards = append(cards, card("Average", gaugeRow(rest[0], 28)))
		rest = rest[1:]
	}
	for start := 0; start < len(rest); start += rowsPerColumn {
		end := min(start+rowsPerColumn, len(rest))
		lines := make([]string, 0, end-start)
		for _, r := range rest[start:end] {
			lines = append(lines, gaugeRow(r, 20))
		}
		cards = append(cards, card(fmt.Sprintf("Cores %d-%d", start, end-1), strings.Join(lines, "\n")))
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
}

// Helpers
func gaugeRow(r model.CPURecord, width int) string {
	return fmt.Sprintf("%-6s %s", r.Name(), gaugeBar(r.UsagePercent, width))
}

// gaugeBar clamps only the bar; the printed value is the raw reading.
func gaugeBar(pct float64, width int) string {
	fill := pct
	if fill < 0 {
		fill = 0
	}
	if fill > 100 {
		fill = 100
	}
	filled := int((fill / 100) * float64(width))
	if filled > width {
		filled = width
	}
	return fmt.Sprintf("[%s%s] %5.1f%%",
		strings.Repeat(gaugeFill, filled),
		strings.Repeat(gaugeEmpty, width-filled),
		pct)
}

func card(title, body string) string {
	titleStr := labelStyle.Render(title)
	content := titleStr + "\n" + body
	return cardStyle.Render(content)
}

// RunTUI starts the Bubble Tea program.
func RunTUI(stream <-chan model.Sample, cancel context.CancelFunc) error {
	prog := tea.NewProgram(New(stream, cancel), tea.WithAltScreen())
	_, err := prog.Run()
	return err
}
