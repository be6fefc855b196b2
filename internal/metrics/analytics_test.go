package metrics

import (
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordInteraction(t *testing.T) {
	a := NewAnalytics()

	a.RecordInteraction("HELP")
	a.RecordInteraction("ASK_ABOUT")
	a.RecordInteraction("ASK_ABOUT")

	assert.Equal(t, 3, a.TotalInteractions())
	assert.Equal(t, 2.0, testutil.ToFloat64(a.interactions.WithLabelValues("ASK_ABOUT")))
	assert.Equal(t, 1.0, testutil.ToFloat64(a.interactions.WithLabelValues("HELP")))

	top, ok := a.MostFrequent()
	require.True(t, ok)
	assert.Equal(t, CommandCount{Intent: "ASK_ABOUT", Count: 2}, top)
	assert.Equal(t, []CommandCount{{"ASK_ABOUT", 2}, {"HELP", 1}}, a.Stats())
}

func TestMostFrequentEmptyAndTies(t *testing.T) {
	a := NewAnalytics()

	_, ok := a.MostFrequent()
	assert.False(t, ok)

	a.RecordInteraction("QUIZ")
	a.RecordInteraction("FACT")
	top, _ := a.MostFrequent()
	assert.Equal(t, "FACT", top.Intent)
}

func TestQuizCounters(t *testing.T) {
	a := NewAnalytics()

	a.QuizAnswered(true)
	a.QuizAnswered(false)
	a.QuizAnswered(true)
	a.QuizFinished("traditional", true)
	a.QuizFinished("personal", false)

	expected := `
# HELP chaturn_quiz_answers_total Graded quiz answers, by result.
# TYPE chaturn_quiz_answers_total counter
chaturn_quiz_answers_total{result="correct"} 2
chaturn_quiz_answers_total{result="incorrect"} 1
# HELP chaturn_quiz_completions_total Quiz attempts that reached the last question, by quiz type.
# TYPE chaturn_quiz_completions_total counter
chaturn_quiz_completions_total{type="traditional"} 1
`
	err := testutil.GatherAndCompare(a.Registry(), strings.NewReader(expected),
		"chaturn_quiz_answers_total", "chaturn_quiz_completions_total")
	assert.NoError(t, err)
}

func TestRecordInteractionConcurrent(t *testing.T) {
	a := NewAnalytics()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				a.RecordInteraction("UNKNOWN")
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 800, a.TotalInteractions())
	assert.Equal(t, 800.0, testutil.ToFloat64(a.interactions.WithLabelValues("UNKNOWN")))
}
