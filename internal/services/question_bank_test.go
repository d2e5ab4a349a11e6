package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/talentscout/internal/models"
)

func TestDefaultQuestionBank(t *testing.T) {
	bank := DefaultQuestionBank()

	require.Equal(t, len(models.Slots), bank.Len())
	assert.Equal(t, "What is your full name?", bank.Text(models.SlotFullName))
	assert.Equal(t, "Please list your tech stack (languages, frameworks, and tools you know).", bank.Text(models.SlotTechStack))

	headers := bank.Headers()
	require.Len(t, headers, 7)
	assert.Equal(t, "What is your email address?", headers[1])
	assert.Equal(t, "How many years of experience do you have?", headers[3])
}

func TestParseQuestionBank_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not yaml", "questions: [unterminated"},
		{"too few", "questions:\n  - slot: full_name\n    text: Name?\n"},
		{"wrong order", `questions:
  - slot: email
    text: a
  - slot: full_name
    text: b
  - slot: phone
    text: c
  - slot: experience_years
    text: d
  - slot: position
    text: e
  - slot: location
    text: f
  - slot: tech_stack
    text: g
`},
		{"empty text", `questions:
  - slot: full_name
    text: a
  - slot: email
    text: ""
  - slot: phone
    text: c
  - slot: experience_years
    text: d
  - slot: position
    text: e
  - slot: location
    text: f
  - slot: tech_stack
    text: g
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseQuestionBank([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestLoadQuestionBank(t *testing.T) {
	bank, err := LoadQuestionBank("")
	require.NoError(t, err)
	assert.Equal(t, 7, bank.Len())

	custom := `questions:
  - slot: full_name
    text: Your name?
  - slot: email
    text: Your email?
  - slot: phone
    text: Your phone?
  - slot: experience_years
    text: Years of experience?
  - slot: position
    text: Desired role?
  - slot: location
    text: Based where?
  - slot: tech_stack
    text: Tools you use?
`
	path := filepath.Join(t.TempDir(), "bank.yaml")
	require.NoError(t, os.WriteFile(path, []byte(custom), 0644))

	bank, err = LoadQuestionBank(path)
	require.NoError(t, err)
	assert.Equal(t, "Desired role?", bank.Text(models.SlotPosition))

	_, err = LoadQuestionBank(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
