package intent

// Tag identifies the purpose of a user utterance.
type Tag int

const (
	Unknown Tag = iota
	Help
	ListEntities
	ListCategory
	RandomFact
	StartQuiz
	AnswerQuiz
	AskAbout
	Compare
	ExitQuiz
	SkipQuestion
	Greeting
)

var tagNames = [...]string{
	Unknown:      "UNKNOWN",
	Help:         "HELP",
	ListEntities: "LIST_PLANETS",
	ListCategory: "LIST_CATEGORY",
	RandomFact:   "RANDOM_FACT",
	StartQuiz:    "START_QUIZ",
	AnswerQuiz:   "ANSWER_QUIZ",
	AskAbout:     "ASK_ABOUT",
	Compare:      "COMPARE",
	ExitQuiz:     "EXIT_QUIZ",
	SkipQuestion: "SKIP_QUESTION",
	Greeting:     "GREETINGS",
}

func (t Tag) String() string {
	if t < 0 || int(t) >= len(tagNames) {
		return tagNames[Unknown]
	}
	return tagNames[t]
}

// Command is the structured result of classifying one input.
// Unused params are empty.
type Command struct {
	Intent Tag
	Param1 string
	Param2 string
}
