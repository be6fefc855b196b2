package chat

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed content.yaml
var defaultContentYAML []byte

// PlanetProfile is the canned description of one planet. SizeKm and
// DistanceMkm drive the comparison bars.
type PlanetProfile struct {
	Description string   `yaml:"description"`
	Distance    string   `yaml:"distance"`
	SizeKm      float64  `yaml:"size_km"`
	DistanceMkm float64  `yaml:"distance_mkm"`
	Feature     string   `yaml:"feature"`
	Facts       []string `yaml:"facts"`
}

// CasualReply answers any of Phrases, either with Reply or with an action.
type CasualReply struct {
	Phrases []string `yaml:"phrases"`
	Reply   string   `yaml:"reply,omitempty"`
	Action  string   `yaml:"action,omitempty"`
}

const (
	actionHelp  = "help"
	actionJoke  = "joke"
	actionStats = "stats"
)

// Content is every canned text the bot can say.
type Content struct {
	Help               string                   `yaml:"help"`
	PlanetList         string                   `yaml:"planet_list"`
	Fallback           string                   `yaml:"fallback"`
	EmptyInput         string                   `yaml:"empty_input"`
	Greeting           string                   `yaml:"greeting"`
	Welcome            string                   `yaml:"welcome"`
	NoCategory         string                   `yaml:"no_category"`
	UnknownEntity      string                   `yaml:"unknown_entity"`
	CompareUnsupported string                   `yaml:"compare_unsupported"`
	Facts              []string                 `yaml:"facts"`
	Jokes              []string                 `yaml:"jokes"`
	Planets            map[string]PlanetProfile `yaml:"planets"`
	Casual             []CasualReply            `yaml:"casual"`
}

// DefaultContent returns the embedded content.
func DefaultContent() Content {
	c, err := decodeContent(defaultContentYAML)
	if err == nil {
		err = c.validate()
	}
	if err != nil {
		panic(fmt.Sprintf("embedded chat content: %v", err))
	}
	return c
}

// LoadContent applies an override file on top of DefaultContent. An empty
// path returns the defaults unchanged.
func LoadContent(path string) (Content, error) {
	base := DefaultContent()
	if path == "" {
		return base, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Content{}, fmt.Errorf("read chat content: %w", err)
	}
	override, err := decodeContent(data)
	if err != nil {
		return Content{}, fmt.Errorf("parse chat content %s: %w", path, err)
	}
	merged := base.merge(override)
	if err := merged.validate(); err != nil {
		return Content{}, fmt.Errorf("validate chat content %s: %w", path, err)
	}
	return merged, nil
}

func decodeContent(data []byte) (Content, error) {
	var c Content
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Content{}, err
	}
	normalized := make(map[string]PlanetProfile, len(c.Planets))
	for name, p := range c.Planets {
		normalized[strings.ToLower(strings.TrimSpace(name))] = p
	}
	c.Planets = normalized
	return c, nil
}

// merge overlays the non-empty values of o. Planet profiles merge by name.
func (c Content) merge(o Content) Content {
	texts := []struct{ dst, src *string }{
		{&c.Help, &o.Help},
		{&c.PlanetList, &o.PlanetList},
		{&c.Fallback, &o.Fallback},
		{&c.EmptyInput, &o.EmptyInput},
		{&c.Greeting, &o.Greeting},
		{&c.Welcome, &o.Welcome},
		{&c.NoCategory, &o.NoCategory},
		{&c.UnknownEntity, &o.UnknownEntity},
		{&c.CompareUnsupported, &o.CompareUnsupported},
	}
	for _, t := range texts {
		if *t.src != "" {
			*t.dst = *t.src
		}
	}
	if len(o.Facts) > 0 {
		c.Facts = o.Facts
	}
	if len(o.Jokes) > 0 {
		c.Jokes = o.Jokes
	}
	if len(o.Casual) > 0 {
		c.Casual = o.Casual
	}

	planets := make(map[string]PlanetProfile, len(c.Planets)+len(o.Planets))
	for name, p := range c.Planets {
		planets[name] = p
	}
	for name, p := range o.Planets {
		planets[name] = p
	}
	c.Planets = planets
	return c
}

func (c Content) validate() error {
	if len(c.Facts) == 0 {
		return fmt.Errorf("no facts")
	}
	if len(c.Jokes) == 0 {
		return fmt.Errorf("no jokes")
	}
	for name, p := range c.Planets {
		if p.SizeKm <= 0 || p.DistanceMkm <= 0 {
			return fmt.Errorf("planet %s: size_km and distance_mkm must be positive", name)
		}
	}
	for i, r := range c.Casual {
		switch r.Action {
		case "", actionHelp, actionJoke, actionStats:
		default:
			return fmt.Errorf("casual reply %d: unknown action %q", i+1, r.Action)
		}
	}
	return nil
}

// casualIndex maps each lowercased phrase to its reply.
func (c Content) casualIndex() map[string]CasualReply {
	idx := make(map[string]CasualReply)
	for _, r := range c.Casual {
		for _, p := range r.Phrases {
			idx[strings.ToLower(strings.TrimSpace(p))] = r
		}
	}
	return idx
}
