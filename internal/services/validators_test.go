package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/talentscout/internal/models"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"john@example.com", true},
		{"first.last+tag@sub.domain.io", true},
		{"a_b%c-d@x-y.org", true},
		{"john@example", false},
		{"john@example.c", false},
		{"john.example.com", false},
		{"john@@example.com", false},
		{"john@example.com extra", false},
		{" john@example.com", false},
		{"", false},
		{"john@example.c0m", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateEmail(tt.input)
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, "email", ve.Field)
			assert.Equal(t, "INVALID_EMAIL", ve.Code)
		})
	}
}

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"(555) 123-4567", true},
		{"+1 555 123 4567", true},
		{"5551234567", true},
		{"555-123", false},
		{"phone: 123456789", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidatePhone(tt.input) == nil)
		})
	}
}

func TestValidateExperience(t *testing.T) {
	tests := []struct {
		input string
		max   int
		valid bool
	}{
		{"0", 50, true},
		{"50", 50, true},
		{"3.5", 50, true},
		{" 7 ", 50, true},
		{"60", 50, false},
		{"-1", 50, false},
		{"five", 50, false},
		{"", 50, false},
		{"NaN", 50, false},
		{"10", 5, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidateExperience(tt.input, tt.max) == nil)
		})
	}
}

func TestValidateExperience_MessageNamesBound(t *testing.T) {
	err := ValidateExperience("60", 50)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "0-50")
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("Jo", 2))
	assert.NoError(t, ValidateName("  Ada Lovelace  ", 2))
	assert.Error(t, ValidateName("J", 2))
	assert.Error(t, ValidateName("   ", 2))
}

func TestValidateTechStack(t *testing.T) {
	assert.NoError(t, ValidateTechStack("Go!"))
	assert.NoError(t, ValidateTechStack("Python, Go"))
	assert.Error(t, ValidateTechStack("Go"))
	assert.Error(t, ValidateTechStack("  C  "))
}

func TestValidateTechAnswer(t *testing.T) {
	assert.Error(t, ValidateTechAnswer("ok", 10))
	assert.NoError(t, ValidateTechAnswer("goroutines are cheap", 10))
	assert.Error(t, ValidateTechAnswer("   short   ", 10))
}

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"collapses whitespace", "  John\t\n  Smith  ", "John Smith"},
		{"strips unsafe characters", `<b>"Tom" & 'Jerry'; 100% (ok)+</b>`, "bTom Jerry 100 ok/b"},
		{"keeps commas", "Python, Go", "Python, Go"},
		{"only unsafe characters", `<>"'%;()&+`, ""},
		{"space left by stripped token", "a ; b", "a b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeInput(tt.input))
		})
	}
}

func TestSanitizeInput_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"a ; b",
		"x & y + z",
		"  (555)  123-4567 ",
		`"quoted",  value `,
		"tab\there\nnewline",
		"( ) ( )",
		"ünïcödé  text ;",
	}

	for _, in := range inputs {
		once := SanitizeInput(in)
		assert.Equal(t, once, SanitizeInput(once), "input %q", in)
	}
}

func TestSlotValidators_CoverEverySlot(t *testing.T) {
	validators := SlotValidators(DefaultMaxExperienceYears)

	for _, slot := range models.Slots {
		_, ok := validators[slot]
		assert.True(t, ok, "missing validator for %s", slot)
	}

	assert.NoError(t, validators[models.SlotPosition]("Backend Engineer"))
	assert.NoError(t, validators[models.SlotLocation]("Jakarta"))
	assert.Error(t, validators[models.SlotExperienceYears]("51"))
}
