package quiz

import "strings"

// Type selects the question set and grading mode of an attempt.
type Type string

const (
	TypeTraditional Type = "traditional"
	TypePersonal    Type = "personal"
)

// Phase is the lifecycle state of a Session.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseAwaitingSelection
	PhaseActive
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingSelection:
		return "awaiting_selection"
	case PhaseActive:
		return "active"
	default:
		return "idle"
	}
}

// Question is one static quiz item. Answer lists acceptable forms separated by
// "/" and is empty for personal questions. Hint overrides generated hints.
type Question struct {
	Text    string   `yaml:"question"`
	Options []string `yaml:"options"`
	Answer  string   `yaml:"answer"`
	Hint    string   `yaml:"hint,omitempty"`
}

// MultipleChoice reports whether the question lists options.
func (q Question) MultipleChoice() bool {
	return len(q.Options) > 0
}

// AcceptableAnswers returns the lowercased, trimmed answer forms.
func (q Question) AcceptableAnswers() []string {
	if strings.TrimSpace(q.Answer) == "" {
		return nil
	}
	parts := strings.Split(strings.ToLower(q.Answer), "/")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// DisplayAnswer is the first answer form with its original casing.
func (q Question) DisplayAnswer() string {
	first, _, _ := strings.Cut(q.Answer, "/")
	return strings.TrimSpace(first)
}

// Progress is a read-only snapshot of an attempt.
type Progress struct {
	AttemptID     string
	Type          Type
	Index         int
	Total         int
	Score         int
	HintsUsed     int
	Wrong         []Question
	ResponseTimes []float64 // seconds
	Preferences   map[string]string
}
