package chat

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/chaturn/internal/intent"
	"github.com/gokatarajesh/chaturn/internal/lexicon"
	"github.com/gokatarajesh/chaturn/internal/metrics"
	"github.com/gokatarajesh/chaturn/internal/quiz"
)

type mockKnowledge struct {
	mock.Mock
}

func (m *mockKnowledge) Lookup(name string) (map[string]string, bool) {
	args := m.Called(name)
	return args.Get(0).(map[string]string), args.Bool(1)
}

func (m *mockKnowledge) ByCategory(category string) []string {
	args := m.Called(category)
	return args.Get(0).([]string)
}

func newTestBot(t *testing.T, store *mockKnowledge) (*Bot, *metrics.Analytics) {
	t.Helper()
	analytics := metrics.NewAnalytics()
	session := quiz.NewSession(quiz.DefaultBank(), quiz.Options{
		Rand:     rand.New(rand.NewSource(3)),
		Recorder: analytics,
	}, zerolog.Nop())
	bot := NewBot(intent.NewClassifier(lexicon.Default()), session, store, analytics, Options{
		UserName: "Ada",
		Rand:     rand.New(rand.NewSource(3)),
	}, zerolog.Nop())
	return bot, analytics
}

func emptyKnowledge() *mockKnowledge {
	m := &mockKnowledge{}
	m.On("Lookup", mock.Anything).Return(map[string]string(nil), false).Maybe()
	m.On("ByCategory", mock.Anything).Return([]string(nil)).Maybe()
	return m
}

func TestRespondStaticIntents(t *testing.T) {
	bot, analytics := newTestBot(t, emptyKnowledge())
	content := DefaultContent()

	assert.Equal(t, content.Help, bot.Respond("help"))
	assert.Equal(t, content.PlanetList, bot.Respond("list planets"))
	assert.Equal(t, "Hello Ada! How can I help you today?", bot.Respond("hi there"))
	assert.Contains(t, content.Facts, bot.Respond("random fact"))

	assert.Equal(t, 4, analytics.TotalInteractions())
	series, err := testutil.GatherAndCount(analytics.Registry(), "chaturn_interactions_total")
	require.NoError(t, err)
	assert.Equal(t, 4, series)
}

func TestRespondEmptyInput(t *testing.T) {
	bot, analytics := newTestBot(t, emptyKnowledge())

	assert.Equal(t, "Please type something. I'm excited to chat about space! 💭", bot.Respond("   "))
	assert.Equal(t, 0, analytics.TotalInteractions())
}

func TestRespondUnknownUsesCasualThenFallback(t *testing.T) {
	bot, _ := newTestBot(t, emptyKnowledge())
	content := DefaultContent()

	assert.Equal(t, "I'm functioning perfectly and excited to explore the cosmos with you! How can I help? 🌟", bot.Respond("How are you"))
	assert.Contains(t, content.Jokes, bot.Respond("tell me a joke"))
	assert.Equal(t, content.Help, bot.Respond("what can you do"))
	assert.Equal(t, "I'm not sure what you mean. Type 'help' to see what I can do!", bot.Respond("blorp"))
}

func TestRespondStats(t *testing.T) {
	bot, _ := newTestBot(t, emptyKnowledge())

	bot.Respond("help")
	bot.Respond("help")
	bot.Respond("list planets")
	out := bot.Respond("stats")

	assert.Contains(t, out, "Total Interactions: 4")
	assert.Contains(t, out, "Most Frequent: HELP (2)")
	assert.Contains(t, out, "• UNKNOWN: 1")
}

func TestRespondListCategory(t *testing.T) {
	store := &mockKnowledge{}
	store.On("ByCategory", "galaxies").Return([]string{"Andromeda", "Milky Way"}).Once()
	store.On("ByCategory", "comets").Return([]string(nil)).Once()
	bot, _ := newTestBot(t, store)

	out := bot.Respond("show me the galaxies")
	assert.Equal(t, "Here are the galaxies I know about:\n\n1. Andromeda\n2. Milky Way", out)

	out = bot.Respond("list comets")
	assert.Equal(t, "I don't have a catalogue of comets yet. Try 'list planets' or ask me about a planet!", out)

	store.AssertExpectations(t)
}

func TestRespondAskAbout(t *testing.T) {
	store := &mockKnowledge{}
	store.On("Lookup", "mars").Return(map[string]string{"name": "Mars", "moons": "2"}, true).Once()
	bot, _ := newTestBot(t, store)

	out := bot.Respond("tell me about Mars")

	assert.True(t, strings.HasPrefix(out, "🌎 Mars:\n\nKnown as the Red Planet"))
	assert.Contains(t, out, "📏 Distance: 227.9 million km from the Sun")
	assert.Contains(t, out, "• Mars has the largest volcano in the solar system - Olympus Mons!")
	assert.True(t, strings.HasSuffix(out, "📚 From the catalogue:\n• moons: 2"))
	store.AssertExpectations(t)
}

func TestRespondAskAboutWithConjunction(t *testing.T) {
	store := &mockKnowledge{}
	store.On("Lookup", "mars").Return(map[string]string(nil), false).Once()
	bot, _ := newTestBot(t, store)

	out := bot.Respond("tell me about mars and its moons")

	assert.True(t, strings.HasPrefix(out, "🌎 Mars:\n\nKnown as the Red Planet"))
	store.AssertExpectations(t)
}

func TestDescribeCatalogueOnlyAndUnknown(t *testing.T) {
	store := &mockKnowledge{}
	store.On("Lookup", "sirius").Return(map[string]string{"name": "Sirius", "type": "Star"}, true)
	store.On("Lookup", "vulcan").Return(map[string]string(nil), false)
	bot, _ := newTestBot(t, store)

	assert.Equal(t, "🌎 Sirius:\n\n• type: Star", bot.describe("sirius"))
	assert.Equal(t, "I don't have information about vulcan. Try asking about one of the planets in our solar system!", bot.describe("vulcan"))
}

func TestRespondCompare(t *testing.T) {
	bot, _ := newTestBot(t, emptyKnowledge())

	out := bot.Respond("compare mars and jupiter")

	assert.True(t, strings.HasPrefix(out, "🌟 Comparing Mars and Jupiter 🌟"))
	assert.Contains(t, out, "Relative Size:\nMars: ░░░░░░░░░░\nJupiter: ██████████\n")
	assert.Contains(t, out, "Distance from Sun:\nMars: ░░░░░░░░░░\nJupiter: █░░░░░░░░░\n")
	assert.Contains(t, out, "• Jupiter is 20.6x larger than Mars")
	assert.Contains(t, out, "• These planets are 550.6 million km apart in their orbits")
	assert.Contains(t, out, "• Mars is known as the Red Planet")
	assert.True(t, strings.HasSuffix(out, "• Jupiter is the largest planet"))
}

func TestRespondCompareNonPlanets(t *testing.T) {
	bot, _ := newTestBot(t, emptyKnowledge())

	out := bot.Respond("the difference between comets and asteroids")

	assert.Equal(t, DefaultContent().CompareUnsupported, out)
}

func TestCompareSamePlanet(t *testing.T) {
	bot, _ := newTestBot(t, emptyKnowledge())

	assert.Equal(t, "Mars and Mars are the same planet! Try comparing two different planets.", bot.compare("mars", "Mars"))
}

func TestRespondRoutesQuizByPhase(t *testing.T) {
	bot, analytics := newTestBot(t, emptyKnowledge())

	out := bot.Respond("start quiz")
	assert.Contains(t, out, "Please choose the type of quiz")
	assert.False(t, bot.Idle())

	// selection input bypasses the classifier, so "1" is not an unknown intent
	out = bot.Respond("1")
	assert.Contains(t, out, "Question 1/7")

	out = bot.Respond("2")
	assert.True(t, strings.HasPrefix(out, "✨ Correct! "))

	out = bot.Respond("help")
	assert.True(t, strings.HasPrefix(out, "❌ Not quite."), "help is an answer while a quiz runs")

	out = bot.Respond("exit")
	assert.True(t, strings.HasPrefix(out, "Quiz ended! Final Results:"))
	assert.True(t, bot.Idle())

	stats := analytics.Stats()
	require.NotEmpty(t, stats)
	assert.Equal(t, metrics.CommandCount{Intent: "ANSWER_QUIZ", Count: 2}, stats[0])
	assert.Equal(t, 4, analytics.TotalInteractions())
}

func TestWelcome(t *testing.T) {
	bot, _ := newTestBot(t, emptyKnowledge())

	assert.Contains(t, bot.Welcome(), "Welcome, Ada!")
}
