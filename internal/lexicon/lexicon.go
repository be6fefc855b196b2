package lexicon

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// Lexicon holds the static vocabularies the classifier and quiz session match against.
type Lexicon struct {
	HelpWords         []string `yaml:"help_words"`
	ListWords         []string `yaml:"list_words"`
	FactWords         []string `yaml:"fact_words"`
	QuizWords         []string `yaml:"quiz_words"`
	CompareWords      []string `yaml:"compare_words"`
	ExitWords         []string `yaml:"exit_words"`
	GreetingWords     []string `yaml:"greeting_words"`
	SkipWords         []string `yaml:"skip_words"`
	Planets           []string `yaml:"planets"`
	Categories        []string `yaml:"categories"`
	CompareSeparators []string `yaml:"compare_separators"`
	TopicPrefixes     []string `yaml:"topic_prefixes"`
	FillerWords       []string `yaml:"filler_words"`
}

// Default returns the built-in vocabulary.
func Default() Lexicon {
	lex, err := parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded lexicon: %v", err))
	}
	return lex
}

// Load reads a lexicon override file. Lists missing from the file keep their
// built-in values. An empty path yields Default().
func Load(path string) (Lexicon, error) {
	base := Default()
	if path == "" {
		return base, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Lexicon{}, fmt.Errorf("read lexicon: %w", err)
	}
	override, err := parse(data)
	if err != nil {
		return Lexicon{}, fmt.Errorf("parse lexicon %s: %w", path, err)
	}
	return base.merge(override), nil
}

func parse(data []byte) (Lexicon, error) {
	var lex Lexicon
	if err := yaml.Unmarshal(data, &lex); err != nil {
		return Lexicon{}, err
	}
	lex.normalize()
	return lex, nil
}

func (l *Lexicon) normalize() {
	for _, list := range l.lists() {
		for i, w := range *list {
			(*list)[i] = strings.ToLower(strings.TrimSpace(w))
		}
	}
}

func (l *Lexicon) lists() []*[]string {
	return []*[]string{
		&l.HelpWords, &l.ListWords, &l.FactWords, &l.QuizWords, &l.CompareWords,
		&l.ExitWords, &l.GreetingWords, &l.SkipWords, &l.Planets, &l.Categories,
		&l.CompareSeparators, &l.TopicPrefixes, &l.FillerWords,
	}
}

func (l Lexicon) merge(o Lexicon) Lexicon {
	dst := l.lists()
	src := o.lists()
	for i := range dst {
		if len(*src[i]) > 0 {
			*dst[i] = *src[i]
		}
	}
	return l
}

// IsPlanet reports whether name (any case) is a known planet.
func (l Lexicon) IsPlanet(name string) bool {
	return NewWordSet(l.Planets).Has(name)
}

// WordSet is a case-insensitive membership set.
type WordSet map[string]struct{}

func NewWordSet(words []string) WordSet {
	s := make(WordSet, len(words))
	for _, w := range words {
		s[strings.ToLower(w)] = struct{}{}
	}
	return s
}

func (s WordSet) Has(word string) bool {
	_, ok := s[strings.ToLower(word)]
	return ok
}

// Any reports whether at least one token is in the set.
func (s WordSet) Any(tokens []string) bool {
	for _, t := range tokens {
		if s.Has(t) {
			return true
		}
	}
	return false
}
