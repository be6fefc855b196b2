package chat

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/gokatarajesh/chaturn/internal/intent"
	"github.com/gokatarajesh/chaturn/internal/metrics"
	"github.com/gokatarajesh/chaturn/internal/quiz"
)

const compareBarWidth = 10

// knowledgeSource is the read side of knowledge.Store used by the bot.
type knowledgeSource interface {
	Lookup(name string) (map[string]string, bool)
	ByCategory(category string) []string
}

// Options configures a Bot. Zero values get defaults.
type Options struct {
	UserName string
	Content  *Content
	Rand     *rand.Rand
}

// Bot routes each message either to the quiz session or to an intent handler.
// Like the session it owns, it serves a single conversation.
type Bot struct {
	classifier *intent.Classifier
	session    *quiz.Session
	store      knowledgeSource
	analytics  *metrics.Analytics
	content    Content
	casual     map[string]CasualReply
	userName   string
	rng        *rand.Rand
	title      cases.Caser
	logger     zerolog.Logger
}

func NewBot(classifier *intent.Classifier, session *quiz.Session, store knowledgeSource, analytics *metrics.Analytics, opts Options, logger zerolog.Logger) *Bot {
	content := DefaultContent()
	if opts.Content != nil {
		content = *opts.Content
	}
	if opts.UserName == "" {
		opts.UserName = "Space Explorer"
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Bot{
		classifier: classifier,
		session:    session,
		store:      store,
		analytics:  analytics,
		content:    content,
		casual:     content.casualIndex(),
		userName:   opts.UserName,
		rng:        opts.Rand,
		title:      cases.Title(language.English),
		logger:     logger.With().Str("component", "chat").Logger(),
	}
}

// Welcome is the first line shown to the user.
func (b *Bot) Welcome() string {
	return fmt.Sprintf(b.content.Welcome, b.userName)
}

// Idle reports whether no quiz is running or being set up.
func (b *Bot) Idle() bool {
	return b.session.Phase() == quiz.PhaseIdle
}

// Respond produces the reply to one user message. It never fails.
func (b *Bot) Respond(input string) string {
	message := strings.TrimSpace(input)
	if message == "" {
		return b.content.EmptyInput
	}

	switch b.session.Phase() {
	case quiz.PhaseAwaitingSelection:
		return b.session.SelectType(message)
	case quiz.PhaseActive:
		b.record(b.classifier.Classify(message, true))
		return b.session.Submit(message)
	}

	cmd := b.classifier.Classify(message, false)
	b.record(cmd)

	switch cmd.Intent {
	case intent.Help:
		return b.content.Help
	case intent.RandomFact:
		return b.pick(b.content.Facts)
	case intent.ListEntities:
		return b.content.PlanetList
	case intent.ListCategory:
		return b.listCategory(cmd.Param1)
	case intent.AskAbout:
		return b.describe(cmd.Param1)
	case intent.Compare:
		return b.compare(cmd.Param1, cmd.Param2)
	case intent.StartQuiz:
		return b.session.RequestStart()
	case intent.Greeting:
		return fmt.Sprintf(b.content.Greeting, b.userName)
	}

	if reply, ok := b.casualReply(message); ok {
		return reply
	}
	return b.content.Fallback
}

func (b *Bot) record(cmd intent.Command) {
	if b.analytics != nil {
		b.analytics.RecordInteraction(cmd.Intent.String())
	}
	b.logger.Debug().
		Str("intent", cmd.Intent.String()).
		Str("param1", cmd.Param1).
		Str("param2", cmd.Param2).
		Msg("classified message")
}

func (b *Bot) pick(options []string) string {
	return options[b.rng.Intn(len(options))]
}

func (b *Bot) casualReply(message string) (string, bool) {
	r, ok := b.casual[strings.ToLower(message)]
	if !ok {
		return "", false
	}
	switch r.Action {
	case actionHelp:
		return b.content.Help, true
	case actionJoke:
		return b.pick(b.content.Jokes), true
	case actionStats:
		return b.stats(), true
	}
	return r.Reply, true
}

func (b *Bot) stats() string {
	if b.analytics == nil || b.analytics.TotalInteractions() == 0 {
		return "No interactions recorded yet."
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "📈 Session Stats:\nTotal Interactions: %d", b.analytics.TotalInteractions())
	if top, ok := b.analytics.MostFrequent(); ok {
		fmt.Fprintf(&sb, "\nMost Frequent: %s (%d)", top.Intent, top.Count)
	}
	for _, c := range b.analytics.Stats() {
		fmt.Fprintf(&sb, "\n• %s: %d", c.Intent, c.Count)
	}
	return sb.String()
}

func (b *Bot) listCategory(category string) string {
	var names []string
	if b.store != nil {
		names = b.store.ByCategory(category)
	}
	if len(names) == 0 {
		return fmt.Sprintf(b.content.NoCategory, category)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Here are the %s I know about:\n", category)
	for i, name := range names {
		fmt.Fprintf(&sb, "\n%d. %s", i+1, name)
	}
	return sb.String()
}

// describe renders the planet profile followed by any catalogue attributes.
func (b *Bot) describe(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	profile, hasProfile := b.content.Planets[key]
	var attrs map[string]string
	if b.store != nil {
		attrs, _ = b.store.Lookup(key)
	}
	if !hasProfile && len(attrs) == 0 {
		return fmt.Sprintf(b.content.UnknownEntity, name)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "🌎 %s:", b.title.String(key))
	if hasProfile {
		fmt.Fprintf(&sb, "\n\n%s\n📏 Distance: %s\n\n🌟 Interesting Facts:", profile.Description, profile.Distance)
		for _, fact := range profile.Facts {
			sb.WriteString("\n• " + fact)
		}
	}

	delete(attrs, "name")
	if len(attrs) > 0 {
		keys := make([]string, 0, len(attrs))
		for k := range attrs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		if hasProfile {
			sb.WriteString("\n\n📚 From the catalogue:")
		} else {
			sb.WriteString("\n")
		}
		for _, k := range keys {
			fmt.Fprintf(&sb, "\n• %s: %s", k, attrs[k])
		}
	}
	return sb.String()
}

func (b *Bot) compare(first, second string) string {
	k1 := strings.ToLower(strings.TrimSpace(first))
	k2 := strings.ToLower(strings.TrimSpace(second))
	p1, ok1 := b.content.Planets[k1]
	p2, ok2 := b.content.Planets[k2]
	if !ok1 || !ok2 {
		return b.content.CompareUnsupported
	}
	name1, name2 := b.title.String(k1), b.title.String(k2)
	if k1 == k2 {
		return fmt.Sprintf("%s and %s are the same planet! Try comparing two different planets.", name1, name2)
	}

	var maxSize, maxDistance float64
	for _, p := range b.content.Planets {
		maxSize = max(maxSize, p.SizeKm)
		maxDistance = max(maxDistance, p.DistanceMkm)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "🌟 Comparing %s and %s 🌟\n\n", name1, name2)
	fmt.Fprintf(&sb, "%s\n\n%s\n\nKey Differences:\n", b.describe(k1), b.describe(k2))
	sb.WriteString(comparisonBars("Relative Size", name1, name2, p1.SizeKm, p2.SizeKm, maxSize))
	sb.WriteString(comparisonBars("Distance from Sun", name1, name2, p1.DistanceMkm, p2.DistanceMkm, maxDistance))

	sb.WriteString("\n🔍 Interesting Comparisons:\n")
	if p1.SizeKm > p2.SizeKm {
		fmt.Fprintf(&sb, "• %s is %.1fx larger than %s\n", name1, p1.SizeKm/p2.SizeKm, name2)
	} else {
		fmt.Fprintf(&sb, "• %s is %.1fx larger than %s\n", name2, p2.SizeKm/p1.SizeKm, name1)
	}
	gap := p1.DistanceMkm - p2.DistanceMkm
	if gap < 0 {
		gap = -gap
	}
	fmt.Fprintf(&sb, "• These planets are %.1f million km apart in their orbits\n", gap)

	sb.WriteString("\n🌟 Notable Features:\n")
	fmt.Fprintf(&sb, "• %s is %s\n", name1, p1.Feature)
	fmt.Fprintf(&sb, "• %s is %s", name2, p2.Feature)
	return sb.String()
}

func comparisonBars(label, name1, name2 string, v1, v2, maxValue float64) string {
	render := func(v float64) string {
		filled := int(v / maxValue * compareBarWidth)
		filled = max(0, min(filled, compareBarWidth))
		return strings.Repeat("█", filled) + strings.Repeat("░", compareBarWidth-filled)
	}
	return fmt.Sprintf("%s:\n%s: %s\n%s: %s\n", label, name1, render(v1), name2, render(v2))
}
