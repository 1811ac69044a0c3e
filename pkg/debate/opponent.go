package debate

import "strings"

// EmotionalState is the closed set of inferred opponent moods.
type EmotionalState string

const (
	EmotionNeutral   EmotionalState = "neutral"
	EmotionAngry     EmotionalState = "angry"
	EmotionCalm      EmotionalState = "calm"
	EmotionDefensive EmotionalState = "defensive"
)

// ArgumentStyle is the closed set of inferred argumentation styles.
type ArgumentStyle string

const (
	StyleNeutral   ArgumentStyle = "neutral"
	StyleDirect    ArgumentStyle = "direct"
	StyleEmotional ArgumentStyle = "emotional"
	StyleTechnical ArgumentStyle = "technical"
)

// OpponentModel is the theory-of-mind belief state one agent keeps about the
// other. It lives for the lifetime of the agent, is refreshed from each new
// opponent statement, and is never reset mid-debate.
type OpponentModel struct {
	Beliefs        []string
	EmotionalState EmotionalState
	ArgumentStyle  ArgumentStyle
	Weaknesses     []string
}

// NewOpponentModel returns the neutral initial belief state.
func NewOpponentModel() OpponentModel {
	return OpponentModel{
		EmotionalState: EmotionNeutral,
		ArgumentStyle:  StyleNeutral,
	}
}

// opponentAnalysis is the parsed shape of an analysis response. Pointer and
// nil-able fields distinguish "absent" from "present but empty" so the merge
// only touches what the analysis actually produced.
type opponentAnalysis struct {
	Beliefs        []string `json:"beliefs"`
	EmotionalState *string  `json:"emotional_state"`
	ArgumentStyle  *string  `json:"argument_style"`
	Weaknesses     []string `json:"weaknesses"`
}

// merge overwrites model fields with well-typed parsed values and leaves
// everything else untouched. Enum fields outside the closed sets are ignored
// rather than guessed at.
func (m *OpponentModel) merge(a opponentAnalysis) {
	if a.Beliefs != nil {
		m.Beliefs = a.Beliefs
	}
	if a.EmotionalState != nil {
		if es, ok := parseEmotionalState(*a.EmotionalState); ok {
			m.EmotionalState = es
		}
	}
	if a.ArgumentStyle != nil {
		if st, ok := parseArgumentStyle(*a.ArgumentStyle); ok {
			m.ArgumentStyle = st
		}
	}
	if a.Weaknesses != nil {
		m.Weaknesses = a.Weaknesses
	}
}

func parseEmotionalState(s string) (EmotionalState, bool) {
	switch EmotionalState(normalizeEnum(s)) {
	case EmotionNeutral:
		return EmotionNeutral, true
	case EmotionAngry:
		return EmotionAngry, true
	case EmotionCalm:
		return EmotionCalm, true
	case EmotionDefensive:
		return EmotionDefensive, true
	}
	return "", false
}

func parseArgumentStyle(s string) (ArgumentStyle, bool) {
	switch ArgumentStyle(normalizeEnum(s)) {
	case StyleNeutral:
		return StyleNeutral, true
	case StyleDirect:
		return StyleDirect, true
	case StyleEmotional:
		return StyleEmotional, true
	case StyleTechnical:
		return StyleTechnical, true
	}
	return "", false
}

func normalizeEnum(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Strategy maps the opponent's inferred mood to the tone and approach the
// next candidate prompt should steer toward.
type Strategy struct {
	Tone     string
	Approach string
}

// StrategyFor returns the phrasing strategy for the current model state:
// angry opponents get calm acknowledgement, defensive ones get common
// ground, calm ones get a reasoned rebuttal, anything else a direct reply.
func (m OpponentModel) StrategyFor() Strategy {
	switch m.EmotionalState {
	case EmotionAngry:
		return Strategy{Tone: "calm", Approach: "acknowledge, then refute"}
	case EmotionDefensive:
		return Strategy{Tone: "supportive", Approach: "find common ground"}
	case EmotionCalm:
		return Strategy{Tone: "reasoned", Approach: "logical rebuttal"}
	default:
		return Strategy{Tone: "neutral", Approach: "direct"}
	}
}

// clone returns a deep copy so callers cannot alias the agent's live state.
func (m OpponentModel) clone() OpponentModel {
	out := m
	out.Beliefs = append([]string(nil), m.Beliefs...)
	out.Weaknesses = append([]string(nil), m.Weaknesses...)
	return out
}
