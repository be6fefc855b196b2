package quiz

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAnalyze(t *testing.T) {
	planetQ := Question{Text: "Which planet is hottest?"}
	galaxyQ := Question{Text: "What is the name of our galaxy?"}
	a := &attempt{
		quizType:      TypeTraditional,
		questions:     []Question{planetQ, galaxyQ, {Text: "a"}, {Text: "b"}},
		score:         2,
		hintsUsed:     3,
		wrong:         []Question{planetQ, galaxyQ},
		responseTimes: []time.Duration{10 * time.Second, 40 * time.Second},
	}

	r := analyze(a)

	assert.Equal(t, 4, r.Total)
	assert.InDelta(t, 50.0, r.Accuracy, 1e-9)
	assert.InDelta(t, 25.0, r.AverageSeconds, 1e-9)
	assert.Equal(t, "Average", r.SpeedRating())
	assert.Equal(t, []TopicCount{{"Planets", 1}, {"Galaxies", 1}}, r.Topics)
	assert.Equal(t, []string{
		"• Review the basic astronomy concepts",
		"• Try to answer without hints to improve retention",
		"• Focus on studying Planets",
	}, r.Suggestions)

	text := r.String()
	assert.Contains(t, text, "Accuracy: [██████████░░░░░░░░░░] 50.0%")
	assert.Contains(t, text, "Response Time: 25.0 seconds (Rating: Average)")
	assert.Contains(t, text, "Hints Used: 3 out of 4 questions")
	assert.Contains(t, text, "• Planets: 75.0% accuracy")
	assert.Contains(t, text, "💡 Suggestions for Improvement:")
}

func TestAnalyzePerfectRun(t *testing.T) {
	a := &attempt{
		quizType:      TypeTraditional,
		questions:     []Question{{Text: "a"}, {Text: "b"}},
		score:         2,
		responseTimes: []time.Duration{2 * time.Second, 4 * time.Second},
	}

	r := analyze(a)

	assert.Empty(t, r.Suggestions)
	assert.Equal(t, "Fast", r.SpeedRating())
	assert.Contains(t, r.String(), "• Perfect score across all topics!")
	assert.NotContains(t, r.String(), "Suggestions")
}

func TestTopicOf(t *testing.T) {
	tests := map[string]string{
		"Which planet is red?":                "Planets",
		"Name our galaxy":                     "Galaxies",
		"What is the temperature on Venus?":   "Planetary Conditions",
		"What is the distance to the Moon?":   "Astronomical Distances",
		"Who discovered Halley's comet orbit?": "General",
	}
	for text, want := range tests {
		assert.Equal(t, want, topicOf(Question{Text: text}), text)
	}
}

func TestSpeedRating(t *testing.T) {
	assert.Equal(t, "Fast", Report{AverageSeconds: 14.9}.SpeedRating())
	assert.Equal(t, "Average", Report{AverageSeconds: 15}.SpeedRating())
	assert.Equal(t, "Take your time", Report{AverageSeconds: 30}.SpeedRating())
}

func TestEmptyReport(t *testing.T) {
	assert.Equal(t, "No quiz data available.", Report{}.String())
}

func TestBar(t *testing.T) {
	assert.Equal(t, "██░░", bar(2, 4))
	assert.Equal(t, "░░░░", bar(-1, 4))
	assert.Equal(t, "████", bar(9, 4))
}
