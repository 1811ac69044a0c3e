// Package tui provides a post-debate transcript and rehearsal-trace viewer
// built on Bubble Tea. It is read-only: the debate itself runs headless and
// the viewer renders the finished artifacts.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"

	"DebateRehearsal/pkg/debate"
	"DebateRehearsal/pkg/transcript"
	"DebateRehearsal/pkg/utils"
)

// Trace is one agent's final rehearsal path, shown after the transcript.
type Trace struct {
	Position string
	Path     []*debate.Node
}

// Model is the Bubble Tea model for the viewer.
type Model struct {
	tr       *transcript.Transcript
	traces   []Trace
	viewport viewport.Model
	ready    bool
	width    int
	height   int
}

// NewModel creates a viewer over a finished transcript and optional traces.
func NewModel(tr *transcript.Transcript, traces []Trace) Model {
	return Model{tr: tr, traces: traces}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		headerHeight := 2
		footerHeight := 2
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			m.viewport.SetContent(m.renderContent())
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerHeight - footerHeight
			m.viewport.SetContent(m.renderContent())
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	title := TitleStyle.Render(fmt.Sprintf("Debate: %s (%s)", m.tr.Topic(), m.tr.Variant()))
	footer := FooterStyle.Render("↑/↓ scroll · PgUp/PgDn page · q quit")
	return title + "\n\n" + m.viewport.View() + "\n\n" + footer
}

func (m Model) renderContent() string {
	width := m.width - 4
	if width < 40 {
		width = 40
	}

	var sb strings.Builder
	divider := DividerStyle.Render(strings.Repeat("─", min(width, 60)))

	lastRound := 0
	for _, turn := range m.tr.Turns() {
		if turn.Round != lastRound {
			sb.WriteString(RoundStyle.Render(fmt.Sprintf("ROUND %d", turn.Round)))
			sb.WriteString("\n")
			lastRound = turn.Round
		}

		label := ProLabelStyle
		if strings.HasPrefix(strings.ToUpper(turn.Speaker), "CON") {
			label = ConLabelStyle
		}
		sb.WriteString(fmt.Sprintf("%s · %s\n",
			label.Render(turn.Speaker), turn.Timestamp.Format("15:04:05")))
		sb.WriteString(wordwrap.String(turn.Content, width))
		sb.WriteString("\n")
		sb.WriteString(divider)
		sb.WriteString("\n")
	}

	for _, trace := range m.traces {
		sb.WriteString("\n")
		sb.WriteString(TraceHeaderStyle.Render(fmt.Sprintf("%s REHEARSAL PATH", trace.Position)))
		sb.WriteString("\n")
		for i, node := range trace.Path {
			excerpt := utils.CollapseWhitespace(node.Content)
			excerpt = utils.Truncate(excerpt, 80)
			sb.WriteString(fmt.Sprintf("Step %d %s %s\n",
				i+1,
				ScoreStyle.Render(fmt.Sprintf("[%.2f]", node.Score)),
				wordwrap.String(excerpt, width-12)))
		}
	}

	return sb.String()
}

// Run shows the viewer until the user quits.
func Run(tr *transcript.Transcript, traces []Trace) error {
	p := tea.NewProgram(NewModel(tr, traces), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
