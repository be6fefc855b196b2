package intent

import (
	"strings"
	"unicode"

	"github.com/gokatarajesh/chaturn/internal/lexicon"
)

// Classifier maps raw input to a Command by keyword matching against a lexicon.
type Classifier struct {
	help     lexicon.WordSet
	list     lexicon.WordSet
	fact     lexicon.WordSet
	quiz     lexicon.WordSet
	compare  lexicon.WordSet
	exit     lexicon.WordSet
	greeting lexicon.WordSet
	skip     lexicon.WordSet
	fillers  lexicon.WordSet

	planets    []string
	planetSet  lexicon.WordSet
	categories []string
	separators []string
	prefixes   [][]string
}

// NewClassifier builds a classifier over the given vocabulary.
func NewClassifier(lex lexicon.Lexicon) *Classifier {
	prefixes := make([][]string, 0, len(lex.TopicPrefixes))
	for _, p := range lex.TopicPrefixes {
		if fields := strings.Fields(p); len(fields) > 0 {
			prefixes = append(prefixes, fields)
		}
	}
	return &Classifier{
		help:       lexicon.NewWordSet(lex.HelpWords),
		list:       lexicon.NewWordSet(lex.ListWords),
		fact:       lexicon.NewWordSet(lex.FactWords),
		quiz:       lexicon.NewWordSet(lex.QuizWords),
		compare:    lexicon.NewWordSet(lex.CompareWords),
		exit:       lexicon.NewWordSet(lex.ExitWords),
		greeting:   lexicon.NewWordSet(lex.GreetingWords),
		skip:       lexicon.NewWordSet(lex.SkipWords),
		fillers:    lexicon.NewWordSet(lex.FillerWords),
		planets:    lex.Planets,
		planetSet:  lexicon.NewWordSet(lex.Planets),
		categories: lex.Categories,
		separators: lex.CompareSeparators,
		prefixes:   prefixes,
	}
}

// Classify turns raw input into a Command. While a quiz is active only exit,
// skip and answer are recognized, and the answer keeps the raw text.
func (c *Classifier) Classify(raw string, quizActive bool) Command {
	lowered := strings.ToLower(raw)
	tokens := tokenize(lowered)

	if quizActive {
		switch {
		case c.exit.Any(tokens):
			return Command{Intent: ExitQuiz}
		case c.skip.Any(tokens):
			return Command{Intent: SkipQuestion}
		default:
			return Command{Intent: AnswerQuiz, Param1: raw}
		}
	}

	// Order matters: "list quiz facts" is a quiz request.
	switch {
	case c.quiz.Any(tokens):
		return Command{Intent: StartQuiz}
	case c.greeting.Any(tokens):
		return Command{Intent: Greeting}
	case c.help.Any(tokens):
		return Command{Intent: Help}
	case c.fact.Any(tokens):
		return Command{Intent: RandomFact}
	}

	if c.list.Any(tokens) {
		if containsToken(tokens, "planets") {
			return Command{Intent: ListEntities}
		}
		if category, ok := c.matchCategory(tokens); ok {
			return Command{Intent: ListCategory, Param1: category}
		}
	}

	compare, compareOK := c.matchCompare(tokens)
	if planet, ok := c.matchPlanet(lowered, tokens); ok {
		// A bare "and" only makes it a comparison when both sides are planets.
		if compareOK && (c.explicitCompare(tokens) || c.planetSet.Has(compare.Param1) && c.planetSet.Has(compare.Param2)) {
			return compare
		}
		return Command{Intent: AskAbout, Param1: planet}
	}
	if compareOK {
		return compare
	}
	return Command{Intent: Unknown}
}

// tokenize splits on whitespace and trims surrounding punctuation so that
// "hello!" and "mars?" still match their words.
func tokenize(lowered string) []string {
	fields := strings.Fields(lowered)
	tokens := fields[:0]
	for _, f := range fields {
		if t := strings.TrimFunc(f, unicode.IsPunct); t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

func containsToken(tokens []string, word string) bool {
	for _, t := range tokens {
		if t == word {
			return true
		}
	}
	return false
}

func (c *Classifier) matchCategory(tokens []string) (string, bool) {
	for _, category := range c.categories {
		if containsPhrase(tokens, strings.Fields(category)) || containsToken(tokens, strings.ReplaceAll(category, " ", "")) {
			return category, true
		}
	}
	return "", false
}

func containsPhrase(tokens, phrase []string) bool {
	if len(phrase) == 0 {
		return false
	}
	for i := range tokens {
		if hasTokenPrefix(tokens[i:], phrase) {
			return true
		}
	}
	return false
}

// matchPlanet requires a planet token, then reports the first planet in
// lexicon order that occurs anywhere in the input.
func (c *Classifier) matchPlanet(lowered string, tokens []string) (string, bool) {
	if !c.planetSet.Any(tokens) {
		return "", false
	}
	for _, planet := range c.planets {
		if strings.Contains(lowered, planet) {
			return planet, true
		}
	}
	return "", false
}

func (c *Classifier) matchCompare(tokens []string) (Command, bool) {
	if !c.compare.Any(tokens) || !containsToken(tokens, "and") {
		return Command{}, false
	}
	first, second, ok := c.extractTopics(tokens)
	if !ok {
		return Command{}, false
	}
	return Command{Intent: Compare, Param1: first, Param2: second}, true
}

// explicitCompare reports a compare word other than the conjunctions.
func (c *Classifier) explicitCompare(tokens []string) bool {
	for _, t := range tokens {
		if t != "and" && t != "or" && c.compare.Has(t) {
			return true
		}
	}
	return false
}

// extractTopics splits on the first separator (in lexicon order) that occurs
// exactly once and cleans both halves. Both topics must survive cleaning.
func (c *Classifier) extractTopics(tokens []string) (string, string, bool) {
	for _, sep := range c.separators {
		at, count := -1, 0
		for i, t := range tokens {
			if t == sep {
				at = i
				count++
			}
		}
		if count != 1 {
			continue
		}
		first := c.cleanTopic(tokens[:at])
		second := c.cleanTopic(tokens[at+1:])
		if first != "" && second != "" {
			return first, second, true
		}
	}
	return "", "", false
}

func (c *Classifier) cleanTopic(tokens []string) string {
	for changed := true; changed; {
		changed = false
		for len(tokens) > 0 && c.fillers.Has(tokens[0]) {
			tokens = tokens[1:]
			changed = true
		}
		for _, prefix := range c.prefixes {
			if hasTokenPrefix(tokens, prefix) {
				tokens = tokens[len(prefix):]
				changed = true
				break
			}
		}
	}

	kept := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if !c.fillers.Has(t) {
			kept = append(kept, t)
		}
	}
	return strings.Join(kept, " ")
}

func hasTokenPrefix(tokens, prefix []string) bool {
	if len(tokens) < len(prefix) {
		return false
	}
	for i, p := range prefix {
		if tokens[i] != p {
			return false
		}
	}
	return true
}
