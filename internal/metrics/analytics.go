package metrics

import (
	"sort"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Analytics counts interactions by intent and quiz outcomes. Counters are
// exported on its own registry; per-intent totals are also kept in memory
// for the in-conversation stats view.
type Analytics struct {
	registry     *prometheus.Registry
	interactions *prometheus.CounterVec
	answers      *prometheus.CounterVec
	completions  *prometheus.CounterVec

	mu     sync.Mutex
	total  int
	counts map[string]int
}

// CommandCount is one intent and how often it was seen.
type CommandCount struct {
	Intent string
	Count  int
}

// NewAnalytics creates counters on a fresh registry together with the
// standard Go and process collectors.
func NewAnalytics() *Analytics {
	a := &Analytics{
		registry: prometheus.NewRegistry(),
		interactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chaturn",
			Name:      "interactions_total",
			Help:      "User messages handled, by classified intent.",
		}, []string{"intent"}),
		answers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chaturn",
			Name:      "quiz_answers_total",
			Help:      "Graded quiz answers, by result.",
		}, []string{"result"}),
		completions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chaturn",
			Name:      "quiz_completions_total",
			Help:      "Quiz attempts that reached the last question, by quiz type.",
		}, []string{"type"}),
		counts: make(map[string]int),
	}
	a.registry.MustRegister(
		a.interactions,
		a.answers,
		a.completions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return a
}

// Registry is the gatherer served on /metrics.
func (a *Analytics) Registry() *prometheus.Registry {
	return a.registry
}

// RecordInteraction counts one message classified as intent.
func (a *Analytics) RecordInteraction(intent string) {
	a.interactions.WithLabelValues(intent).Inc()

	a.mu.Lock()
	a.total++
	a.counts[intent]++
	a.mu.Unlock()
}

// QuizAnswered counts a graded answer.
func (a *Analytics) QuizAnswered(correct bool) {
	result := "incorrect"
	if correct {
		result = "correct"
	}
	a.answers.WithLabelValues(result).Inc()
}

// QuizFinished counts attempts that ran to the end. Early exits are ignored.
func (a *Analytics) QuizFinished(quizType string, completed bool) {
	if completed {
		a.completions.WithLabelValues(quizType).Inc()
	}
}

func (a *Analytics) TotalInteractions() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.total
}

// MostFrequent returns the most common intent. Ties resolve alphabetically.
func (a *Analytics) MostFrequent() (CommandCount, bool) {
	stats := a.Stats()
	if len(stats) == 0 {
		return CommandCount{}, false
	}
	return stats[0], true
}

// Stats lists intent counts, most frequent first.
func (a *Analytics) Stats() []CommandCount {
	a.mu.Lock()
	out := make([]CommandCount, 0, len(a.counts))
	for intent, n := range a.counts {
		out = append(out, CommandCount{Intent: intent, Count: n})
	}
	a.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Intent < out[j].Intent
	})
	return out
}
