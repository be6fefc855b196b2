package quiz

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"unicode"

	"github.com/gokatarajesh/chaturn/internal/similarity"
)

// GradingConfig holds the fuzzy-matching thresholds used by Grader.
type GradingConfig struct {
	// Thresholds are tried in order against each acceptable answer, strictest first.
	Thresholds []float64
	// OptionThreshold gates the option fallback pass.
	OptionThreshold float64
}

// DefaultGradingConfig returns production defaults.
func DefaultGradingConfig() GradingConfig {
	return GradingConfig{
		Thresholds:      []float64{0.95, 0.90, 0.85},
		OptionThreshold: similarity.DefaultThreshold,
	}
}

// Grader judges free-text answers and builds hints.
type Grader struct {
	config GradingConfig
	rng    *rand.Rand
}

// NewGrader creates a grader. rng drives hint option elimination.
func NewGrader(config GradingConfig, rng *rand.Rand) *Grader {
	if len(config.Thresholds) == 0 {
		config.Thresholds = DefaultGradingConfig().Thresholds
	}
	if config.OptionThreshold <= 0 {
		config.OptionThreshold = similarity.DefaultThreshold
	}
	return &Grader{config: config, rng: rng}
}

// CheckAnswer grades raw against a multiple-choice question. A bare option
// number selects that option. Exact matches are tried before fuzzy ones, and a
// near-miss of an option's text counts when that option is itself correct.
// Questions without options always grade false.
func (g *Grader) CheckAnswer(q Question, raw string) bool {
	if !q.MultipleChoice() {
		return false
	}
	answer := resolveOption(q, strings.TrimSpace(raw))
	acceptable := q.AcceptableAnswers()

	normalized := strings.ToLower(answer)
	for _, acc := range acceptable {
		if normalized == acc {
			return true
		}
	}

	for _, threshold := range g.config.Thresholds {
		for _, acc := range acceptable {
			if similarity.IsAnswerSimilar(answer, acc, threshold) {
				return true
			}
		}
	}

	for _, option := range q.Options {
		if !similarity.IsAnswerSimilar(answer, option, g.config.OptionThreshold) {
			continue
		}
		for _, acc := range acceptable {
			if similarity.IsAnswerSimilar(option, acc, g.config.OptionThreshold) {
				return true
			}
		}
	}
	return false
}

func resolveOption(q Question, answer string) string {
	if answer == "" || strings.IndexFunc(answer, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
		return answer
	}
	idx, err := strconv.Atoi(answer)
	if err != nil || idx < 1 || idx > len(q.Options) {
		return answer
	}
	return q.Options[idx-1]
}

const personalHint = "Hint: There are no wrong answers here. Just share what you like!"

// Hint returns the stored hint, or eliminates up to two wrong options, or
// falls back to a keyword hint and finally the answer's first letter. The
// keyword fallback also covers questions whose options all look correct.
func (g *Grader) Hint(q Question) string {
	if q.Hint != "" {
		return q.Hint
	}
	acceptable := q.AcceptableAnswers()
	if len(acceptable) == 0 {
		return personalHint
	}

	if wrong := g.wrongOptions(q, acceptable); len(wrong) > 0 {
		if len(wrong) > 2 {
			picked := make([]string, 0, 2)
			for _, i := range g.rng.Perm(len(wrong))[:2] {
				picked = append(picked, wrong[i])
			}
			wrong = picked
		}
		return "Hint: These options are incorrect: " + strings.Join(wrong, ", ")
	}

	text := strings.ToLower(q.Text)
	switch {
	case strings.Contains(text, "planet"):
		return "Hint: This is one of the planets in our solar system."
	case strings.Contains(text, "temperature"):
		return "Hint: Think about the planet's distance from the Sun."
	case strings.Contains(text, "largest"):
		return "Hint: Consider the gas giants."
	case strings.Contains(text, "smallest"):
		return "Hint: Look at the inner planets."
	case strings.Contains(text, "galaxy"):
		return "Hint: We live in this galaxy."
	}

	first := []rune(acceptable[0])
	if len(first) == 0 {
		return personalHint
	}
	return fmt.Sprintf("Hint: The answer starts with '%c'", unicode.ToUpper(first[0]))
}

// wrongOptions keeps options that neither appear inside the first answer form
// nor match any acceptable form.
func (g *Grader) wrongOptions(q Question, acceptable []string) []string {
	var wrong []string
	for _, option := range q.Options {
		lowered := strings.ToLower(option)
		if strings.Contains(acceptable[0], lowered) {
			continue
		}
		correct := false
		for _, acc := range acceptable {
			if similarity.IsAnswerSimilar(option, acc, g.config.OptionThreshold) {
				correct = true
				break
			}
		}
		if !correct {
			wrong = append(wrong, option)
		}
	}
	return wrong
}
