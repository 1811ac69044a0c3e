package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"DebateRehearsal/pkg/debate"
	"DebateRehearsal/pkg/transcript"
)

func sampleModel() Model {
	tr := transcript.New("test topic", "baseline")
	tr.Add("PRO", 1, "opening argument for the motion")
	tr.Add("CON", 1, "opening argument against the motion")

	traces := []Trace{
		{Position: "PRO", Path: []*debate.Node{
			{Content: "seed", Score: 0.5},
			{Content: "chosen rebuttal", Score: 0.71},
		}},
	}
	return NewModel(tr, traces)
}

func TestViewer_RenderContent(t *testing.T) {
	m := sampleModel()
	m.width = 80

	out := m.renderContent()
	for _, want := range []string{
		"ROUND 1",
		"PRO",
		"CON",
		"opening argument for the motion",
		"PRO REHEARSAL PATH",
		"[0.71]",
		"chosen rebuttal",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered view missing %q", want)
		}
	}
}

func TestViewer_NotReadyBeforeFirstResize(t *testing.T) {
	m := sampleModel()
	if !strings.Contains(m.View(), "loading") {
		t.Error("View() before WindowSizeMsg should show loading state")
	}

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = updated.(Model)
	if !m.ready {
		t.Error("model not ready after WindowSizeMsg")
	}
	if strings.Contains(m.View(), "loading") {
		t.Error("View() still loading after WindowSizeMsg")
	}
}

func TestViewer_QuitKeys(t *testing.T) {
	m := sampleModel()
	for _, key := range []string{"q", "esc", "ctrl+c"} {
		_, cmd := m.Update(keyMsg(key))
		if cmd == nil {
			t.Errorf("key %q did not produce a quit command", key)
		}
	}
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}
