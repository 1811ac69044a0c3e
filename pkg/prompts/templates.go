// Package prompts builds the prompt templates the debate engine sends to the
// generation service: candidate rebuttals, scoring rubrics, and opponent
// analysis requests.
package prompts

import (
	"fmt"
	"strings"

	"DebateRehearsal/pkg/utils"
)

const (
	// StatementExcerptLimit bounds how much of the opponent's statement is
	// embedded in a rebuttal prompt. A cost control, not a semantic one.
	StatementExcerptLimit = 200

	// AnalysisExcerptLimit bounds the statement slice sent for opponent
	// analysis. Analysis benefits from more context than a rebuttal does.
	AnalysisExcerptLimit = 500
)

// Rebuttal builds the baseline candidate-generation prompt: acknowledge one
// point from the opponent, counter with sampled knowledge-base facts, close
// with a position statement.
func Rebuttal(position, statement string, facts []string, maxSentences int) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "As a %s debater, craft a response that:\n", position)
	fmt.Fprintf(&sb, "1. Acknowledges 1 valid point from: %s\n",
		utils.Truncate(statement, StatementExcerptLimit))
	fmt.Fprintf(&sb, "2. Presents %d counterpoint(s) drawing on: %s\n",
		len(facts), strings.Join(facts, ", "))
	sb.WriteString("3. Concludes with a strong position statement\n")
	fmt.Fprintf(&sb, "Respond in exactly %d sentences:", maxSentences)

	return sb.String()
}

// Rating builds the scoring rubric prompt. The model is asked for a JSON
// object with three 1-10 ratings; the scorer reduces them to one value.
func Rating(response string) string {
	var sb strings.Builder

	sb.WriteString("Rate this response on a scale of 1-10 for:\n")
	sb.WriteString("1. Logical consistency\n")
	sb.WriteString("2. Evidence quality\n")
	sb.WriteString("3. Persuasiveness\n\n")
	fmt.Fprintf(&sb, "Response: %s\n\n", response)
	sb.WriteString(`Return only a JSON object with numeric keys "logic", "evidence", "persuasiveness".`)

	return sb.String()
}

// OpponentAnalysis builds the theory-of-mind analysis prompt used to refresh
// the opponent model from the opponent's latest statement.
func OpponentAnalysis(statement string) string {
	var sb strings.Builder

	sb.WriteString("Analyze this debate statement for:\n")
	sb.WriteString("1. Core beliefs (list of strings)\n")
	sb.WriteString("2. Emotional state (one of: angry, calm, defensive, neutral)\n")
	sb.WriteString("3. Argument style (one of: direct, emotional, technical, neutral)\n")
	sb.WriteString("4. Logical weaknesses (list of strings)\n\n")
	fmt.Fprintf(&sb, "Statement: %s\n\n", utils.Truncate(statement, AnalysisExcerptLimit))
	sb.WriteString(`Return only a JSON object with keys "beliefs", "emotional_state", "argument_style", "weaknesses".`)

	return sb.String()
}

// StrategicRebuttal builds the opponent-aware candidate-generation prompt.
// It embeds the current opponent-model snapshot and the tone/approach pair
// derived from the opponent's emotional state.
func StrategicRebuttal(position, statement, fact string, emotionalState, argumentStyle string,
	beliefs []string, weakness, tone, approach string, maxSentences int) string {

	var sb strings.Builder

	fmt.Fprintf(&sb, "As a %s debater:\n", position)
	fmt.Fprintf(&sb, "- Opponent is feeling %s and argues in a %s style\n", emotionalState, argumentStyle)
	if len(beliefs) > 0 {
		fmt.Fprintf(&sb, "- Opponent appears to believe: %s\n", strings.Join(beliefs, "; "))
	}
	fmt.Fprintf(&sb, "- Strategy: %s (tone: %s)\n", approach, tone)
	if weakness == "" {
		weakness = "unknown"
	}
	fmt.Fprintf(&sb, "- Target weakness: %s\n\n", weakness)
	fmt.Fprintf(&sb, "Respond to: %q\n", utils.Truncate(statement, StatementExcerptLimit))
	fmt.Fprintf(&sb, "Use: %s\n", fact)
	fmt.Fprintf(&sb, "Max %d sentences.", maxSentences)

	return sb.String()
}

// Warmup is the trivial prompt sent once at startup to pre-load the model.
func Warmup() string {
	return "ping"
}
