package quiz

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed bank.yaml
var defaultBankYAML []byte

// Bank holds the static question sets. It is loaded once and never mutated.
type Bank struct {
	Traditional []Question `yaml:"traditional"`
	Personal    []Question `yaml:"personal"`
}

// DefaultBank returns the embedded question sets.
func DefaultBank() Bank {
	bank, err := parseBank(defaultBankYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded quiz bank: %v", err))
	}
	return bank
}

// LoadBank reads a bank file, or returns DefaultBank for an empty path.
func LoadBank(path string) (Bank, error) {
	if path == "" {
		return DefaultBank(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Bank{}, fmt.Errorf("read quiz bank: %w", err)
	}
	bank, err := parseBank(data)
	if err != nil {
		return Bank{}, fmt.Errorf("parse quiz bank %s: %w", path, err)
	}
	return bank, nil
}

func parseBank(data []byte) (Bank, error) {
	var bank Bank
	if err := yaml.Unmarshal(data, &bank); err != nil {
		return Bank{}, err
	}
	if err := bank.validate(); err != nil {
		return Bank{}, err
	}
	return bank, nil
}

func (b Bank) validate() error {
	if len(b.Traditional) == 0 {
		return fmt.Errorf("no traditional questions")
	}
	if len(b.Personal) == 0 {
		return fmt.Errorf("no personal questions")
	}
	for i, q := range b.Traditional {
		if q.Text == "" || q.Answer == "" {
			return fmt.Errorf("traditional question %d: text and answer are required", i+1)
		}
	}
	for i, q := range b.Personal {
		if q.Text == "" {
			return fmt.Errorf("personal question %d: text is required", i+1)
		}
	}
	return nil
}

// Questions returns the set for t.
func (b Bank) Questions(t Type) []Question {
	if t == TypePersonal {
		return b.Personal
	}
	return b.Traditional
}
