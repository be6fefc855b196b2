package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gokatarajesh/chaturn/internal/lexicon"
)

func newTestClassifier() *Classifier {
	return NewClassifier(lexicon.Default())
}

func TestClassifyIdle(t *testing.T) {
	c := newTestClassifier()

	cases := []struct {
		input string
		want  Command
	}{
		{"list planets", Command{Intent: ListEntities}},
		{"Show me the planets", Command{Intent: ListEntities}},
		{"quiz", Command{Intent: StartQuiz}},
		{"list quiz facts", Command{Intent: StartQuiz}},
		{"trivia please", Command{Intent: StartQuiz}},
		{"Hello there!", Command{Intent: Greeting}},
		{"help", Command{Intent: Help}},
		{"show me commands", Command{Intent: Help}},
		{"random fact", Command{Intent: RandomFact}},
		{"show me the galaxies", Command{Intent: ListCategory, Param1: "galaxies"}},
		{"list blackholes", Command{Intent: ListCategory, Param1: "black holes"}},
		{"list the black holes", Command{Intent: ListCategory, Param1: "black holes"}},
		{"tell me about Earth", Command{Intent: AskAbout, Param1: "earth"}},
		{"what about saturn?", Command{Intent: AskAbout, Param1: "saturn"}},
		{"mars vs venus", Command{Intent: AskAbout, Param1: "mars"}},
		{"compare mars and jupiter", Command{Intent: Compare, Param1: "mars", Param2: "jupiter"}},
		{"mars and jupiter", Command{Intent: Compare, Param1: "mars", Param2: "jupiter"}},
		{"difference between earth and the sun", Command{Intent: Compare, Param1: "earth", Param2: "sun"}},
		{"tell me about mars and its moons", Command{Intent: AskAbout, Param1: "mars"}},
		{"earth and the sun", Command{Intent: AskAbout, Param1: "earth"}},
		{"what about venus and its clouds", Command{Intent: AskAbout, Param1: "venus"}},
		{"the difference between comets and asteroids", Command{Intent: Compare, Param1: "comets", Param2: "asteroids"}},
		{"compare and", Command{Intent: Unknown}},
		{"how are you", Command{Intent: Unknown}},
		{"", Command{Intent: Unknown}},
	}
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.want, c.Classify(tc.input, false))
		})
	}
}

func TestClassifyQuizActive(t *testing.T) {
	c := newTestClassifier()

	assert.Equal(t, Command{Intent: ExitQuiz}, c.Classify("I want to QUIT", true))
	assert.Equal(t, Command{Intent: SkipQuestion}, c.Classify("skip", true))
	assert.Equal(t, Command{Intent: AnswerQuiz, Param1: "Milky Way"}, c.Classify("Milky Way", true))
	assert.Equal(t, Command{Intent: AnswerQuiz, Param1: "quiz"}, c.Classify("quiz", true), "quiz words are answers while active")
}

func TestExtractTopicsNeedsSingleSeparator(t *testing.T) {
	c := newTestClassifier()

	_, _, ok := c.extractTopics([]string{"rock", "and", "roll", "and", "jazz"})
	assert.False(t, ok)

	first, second, ok := c.extractTopics([]string{"tell", "me", "about", "the", "sun", "versus", "a", "moon"})
	assert.True(t, ok)
	assert.Equal(t, "sun", first)
	assert.Equal(t, "moon", second)
}

func TestTagString(t *testing.T) {
	assert.Equal(t, "LIST_PLANETS", ListEntities.String())
	assert.Equal(t, "GREETINGS", Greeting.String())
	assert.Equal(t, "UNKNOWN", Tag(99).String())
}
