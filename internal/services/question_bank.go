package services

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"alfredoptarigan/talentscout/internal/models"
)

//go:embed questions.yaml
var defaultQuestionBank []byte

type BankEntry struct {
	Slot models.Slot `yaml:"slot"`
	Text string      `yaml:"text"`
}

type bankFile struct {
	Questions []BankEntry `yaml:"questions"`
}

// QuestionBank holds the display text of every basic-info slot.
type QuestionBank struct {
	entries []BankEntry
	bySlot  map[models.Slot]string
}

func DefaultQuestionBank() *QuestionBank {
	bank, err := ParseQuestionBank(defaultQuestionBank)
	if err != nil {
		panic(fmt.Sprintf("embedded question bank is invalid: %v", err))
	}
	return bank
}

// LoadQuestionBank reads a bank from path, or returns the embedded one when
// path is empty.
func LoadQuestionBank(path string) (*QuestionBank, error) {
	if path == "" {
		return DefaultQuestionBank(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read question bank %s: %w", path, err)
	}

	return ParseQuestionBank(data)
}

func ParseQuestionBank(data []byte) (*QuestionBank, error) {
	var file bankFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse question bank: %w", err)
	}

	if err := validateBank(file.Questions); err != nil {
		return nil, fmt.Errorf("invalid question bank: %w", err)
	}

	bank := &QuestionBank{
		entries: file.Questions,
		bySlot:  make(map[models.Slot]string, len(file.Questions)),
	}
	for _, e := range file.Questions {
		bank.bySlot[e.Slot] = e.Text
	}

	return bank, nil
}

// validateBank requires exactly one entry per slot, in slot order.
func validateBank(entries []BankEntry) error {
	if len(entries) != len(models.Slots) {
		return fmt.Errorf("expected %d questions, got %d", len(models.Slots), len(entries))
	}

	for i, e := range entries {
		if e.Slot != models.Slots[i] {
			return fmt.Errorf("question %d has slot %q, expected %q", i+1, e.Slot, models.Slots[i])
		}
		if e.Text == "" {
			return fmt.Errorf("question %d (%s) must have text", i+1, e.Slot)
		}
	}

	return nil
}

func (b *QuestionBank) Text(slot models.Slot) string {
	return b.bySlot[slot]
}

func (b *QuestionBank) Len() int {
	return len(b.entries)
}

// Headers returns the question texts in slot order.
func (b *QuestionBank) Headers() []string {
	out := make([]string, 0, len(b.entries))
	for _, e := range b.entries {
		out = append(out, e.Text)
	}
	return out
}
