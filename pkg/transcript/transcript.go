// Package transcript records debate turns and saves them under the outputs
// directory. The transcript both feeds the next round's input and serves the
// post-debate viewer.
package transcript

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Turn is one utterance in the debate.
type Turn struct {
	Speaker   string
	Round     int
	Content   string
	Timestamp time.Time
}

// Transcript is an append-only log of a single debate.
type Transcript struct {
	topic     string
	variant   string // e.g. "baseline", "enhanced"
	startedAt time.Time
	mu        sync.RWMutex
	turns     []Turn
}

// New creates an empty transcript for the given topic and debate variant.
func New(topic, variant string) *Transcript {
	return &Transcript{
		topic:     topic,
		variant:   variant,
		startedAt: time.Now(),
	}
}

// Topic returns the debate topic.
func (t *Transcript) Topic() string { return t.topic }

// Variant returns the debate variant label.
func (t *Transcript) Variant() string { return t.variant }

// Add appends a turn.
func (t *Transcript) Add(speaker string, round int, content string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.turns = append(t.turns, Turn{
		Speaker:   speaker,
		Round:     round,
		Content:   content,
		Timestamp: time.Now(),
	})
}

// Turns returns a copy of the recorded turns.
func (t *Transcript) Turns() []Turn {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]Turn(nil), t.turns...)
}

// Len returns the number of recorded turns.
func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.turns)
}

// String renders the transcript as plain text.
func (t *Transcript) String() string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- %s DEBATE ---\n", strings.ToUpper(t.variant))
	fmt.Fprintf(&sb, "TOPIC: %s\n", t.topic)
	fmt.Fprintf(&sb, "STARTED: %s\n\n", t.startedAt.Format("2006-01-02 15:04:05"))

	lastRound := 0
	for _, turn := range t.turns {
		if turn.Round != lastRound {
			fmt.Fprintf(&sb, "ROUND %d\n", turn.Round)
			lastRound = turn.Round
		}
		fmt.Fprintf(&sb, "[%s] %s: %s\n",
			turn.Timestamp.Format("15:04:05"), turn.Speaker, turn.Content)
	}
	return sb.String()
}

// Save writes the transcript under dir and returns the file path.
func (t *Transcript) Save(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	name := fmt.Sprintf("debate_%s_%s.log", t.variant, t.startedAt.Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(t.String()), 0644); err != nil {
		return "", fmt.Errorf("failed to write transcript: %w", err)
	}
	return path, nil
}
