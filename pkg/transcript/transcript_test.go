package transcript

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTranscript_AddAndRender(t *testing.T) {
	tr := New("AI in education", "baseline")
	tr.Add("PRO", 1, "opening argument")
	tr.Add("CON", 1, "counter argument")
	tr.Add("PRO", 2, "second round")

	if tr.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", tr.Len())
	}

	out := tr.String()
	for _, want := range []string{
		"BASELINE DEBATE",
		"TOPIC: AI in education",
		"ROUND 1",
		"ROUND 2",
		"PRO: opening argument",
		"CON: counter argument",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered transcript missing %q:\n%s", want, out)
		}
	}

	// Round headers appear once each, not per turn.
	if strings.Count(out, "ROUND 1") != 1 {
		t.Errorf("ROUND 1 header repeated:\n%s", out)
	}
}

func TestTranscript_TurnsIsACopy(t *testing.T) {
	tr := New("topic", "baseline")
	tr.Add("PRO", 1, "original")

	turns := tr.Turns()
	turns[0].Content = "mutated"

	if tr.Turns()[0].Content != "original" {
		t.Error("Turns() exposed internal state")
	}
}

func TestTranscript_Save(t *testing.T) {
	tmpDir := t.TempDir()

	tr := New("topic", "enhanced")
	tr.Add("PRO+", 1, "argument")

	path, err := tr.Save(filepath.Join(tmpDir, "outputs"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if !strings.Contains(filepath.Base(path), "debate_enhanced_") {
		t.Errorf("file name = %q, want variant in it", filepath.Base(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading saved transcript: %v", err)
	}
	if !strings.Contains(string(data), "argument") {
		t.Error("saved transcript missing turn content")
	}
}
