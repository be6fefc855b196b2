package quiz

import (
	"fmt"
	"strings"
)

const barWidth = 20

// TopicCount is the number of missed questions in one topic.
type TopicCount struct {
	Topic string
	Count int
}

// Report summarizes a finished traditional attempt.
type Report struct {
	Total          int
	Score          int
	HintsUsed      int
	Accuracy       float64 // percent
	AverageSeconds float64
	Topics         []TopicCount // in order of first mistake
	Suggestions    []string
}

// SpeedRating buckets the average response time.
func (r Report) SpeedRating() string {
	switch {
	case r.AverageSeconds < 15:
		return "Fast"
	case r.AverageSeconds < 30:
		return "Average"
	default:
		return "Take your time"
	}
}

// String renders the report as the performance analysis text.
func (r Report) String() string {
	if r.Total == 0 {
		return "No quiz data available."
	}

	var b strings.Builder
	b.WriteString("📊 Performance Analysis:\n\n")
	fmt.Fprintf(&b, "Accuracy: [%s] %.1f%%\n", bar(int(r.Accuracy/5), barWidth), r.Accuracy)
	fmt.Fprintf(&b, "Response Time: %.1f seconds (Rating: %s)\n", r.AverageSeconds, r.SpeedRating())
	fmt.Fprintf(&b, "Hints Used: %d out of %d questions\n\n", r.HintsUsed, r.Total)
	b.WriteString("🎯 Topic Performance:")
	if len(r.Topics) == 0 {
		b.WriteString("\n• Perfect score across all topics!")
	}
	for _, tc := range r.Topics {
		topicAccuracy := 100 * (1 - float64(tc.Count)/float64(r.Total))
		fmt.Fprintf(&b, "\n• %s: %.1f%% accuracy", tc.Topic, topicAccuracy)
	}
	if len(r.Suggestions) > 0 {
		b.WriteString("\n\n💡 Suggestions for Improvement:\n")
		b.WriteString(strings.Join(r.Suggestions, "\n"))
	}
	return b.String()
}

func analyze(a *attempt) Report {
	r := Report{
		Total:     len(a.questions),
		Score:     a.score,
		HintsUsed: a.hintsUsed,
	}
	if r.Total == 0 {
		return r
	}
	r.Accuracy = float64(a.score) / float64(r.Total) * 100

	if len(a.responseTimes) > 0 {
		var sum float64
		for _, d := range a.responseTimes {
			sum += d.Seconds()
		}
		r.AverageSeconds = sum / float64(len(a.responseTimes))
	}

	for _, q := range a.wrong {
		r.Topics = addMistake(r.Topics, topicOf(q))
	}

	if r.Accuracy < 60 {
		r.Suggestions = append(r.Suggestions, "• Review the basic astronomy concepts")
	}
	if float64(r.HintsUsed) > float64(r.Total)/2 {
		r.Suggestions = append(r.Suggestions, "• Try to answer without hints to improve retention")
	}
	if r.AverageSeconds > 30 {
		r.Suggestions = append(r.Suggestions, "• Work on quick recall of astronomy facts")
	}
	if worst, ok := worstTopic(r.Topics); ok {
		r.Suggestions = append(r.Suggestions, "• Focus on studying "+worst)
	}
	return r
}

func topicOf(q Question) string {
	text := strings.ToLower(q.Text)
	switch {
	case strings.Contains(text, "planet"):
		return "Planets"
	case strings.Contains(text, "galaxy"):
		return "Galaxies"
	case strings.Contains(text, "temperature"):
		return "Planetary Conditions"
	case strings.Contains(text, "distance"):
		return "Astronomical Distances"
	default:
		return "General"
	}
}

func addMistake(topics []TopicCount, topic string) []TopicCount {
	for i := range topics {
		if topics[i].Topic == topic {
			topics[i].Count++
			return topics
		}
	}
	return append(topics, TopicCount{Topic: topic, Count: 1})
}

// worstTopic picks the topic with most mistakes; ties go to the earliest.
func worstTopic(topics []TopicCount) (string, bool) {
	if len(topics) == 0 {
		return "", false
	}
	worst := topics[0]
	for _, tc := range topics[1:] {
		if tc.Count > worst.Count {
			worst = tc
		}
	}
	return worst.Topic, true
}

func bar(filled, width int) string {
	filled = max(0, min(filled, width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
