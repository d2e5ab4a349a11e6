package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"alfredoptarigan/talentscout/internal/models"
)

const (
	DefaultMaxExperienceYears = 50
	DefaultMinNameLength      = 2
	MinTechStackLength        = 3
)

var (
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	whitespaceRun   = regexp.MustCompile(`\s+`)
	unsafeInputChar = regexp.MustCompile(`[<>"'%;()&+]`)
)

// ValidationError describes why an answer was refused. Message is safe to
// show to the candidate.
type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

func ValidateEmail(s string) error {
	if !emailPattern.MatchString(s) {
		return &ValidationError{
			Field:   string(models.SlotEmail),
			Code:    "INVALID_EMAIL",
			Message: "⚠️ Please enter a valid email address (e.g., john@example.com)",
		}
	}
	return nil
}

func ValidatePhone(s string) error {
	digits := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			digits++
		}
	}

	if digits < 10 {
		return &ValidationError{
			Field:   string(models.SlotPhone),
			Code:    "INVALID_PHONE",
			Message: "⚠️ Please enter a valid phone number (at least 10 digits)",
		}
	}
	return nil
}

func ValidateExperience(s string, maxYears int) error {
	years, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || !(years >= 0 && years <= float64(maxYears)) {
		return &ValidationError{
			Field:   string(models.SlotExperienceYears),
			Code:    "INVALID_EXPERIENCE",
			Message: fmt.Sprintf("⚠️ Please enter a valid number of years (0-%d)", maxYears),
		}
	}
	return nil
}

func ValidateName(s string, minLength int) error {
	if utf8.RuneCountInString(strings.TrimSpace(s)) < minLength {
		return &ValidationError{
			Field:   string(models.SlotFullName),
			Code:    "INVALID_NAME",
			Message: fmt.Sprintf("⚠️ Please enter your full name (at least %d characters)", minLength),
		}
	}
	return nil
}

func ValidateTechStack(s string) error {
	if utf8.RuneCountInString(strings.TrimSpace(s)) < MinTechStackLength {
		return &ValidationError{
			Field:   string(models.SlotTechStack),
			Code:    "INVALID_TECH_STACK",
			Message: "⚠️ Please provide more details about your technology stack",
		}
	}
	return nil
}

func ValidateTechAnswer(s string, minLength int) error {
	if utf8.RuneCountInString(strings.TrimSpace(s)) < minLength {
		return &ValidationError{
			Field: "technical_answer",
			Code:  "ANSWER_TOO_SHORT",
			Message: fmt.Sprintf(
				"⚠️ Please provide a more detailed answer (at least %d characters). Technical questions require thoughtful responses.",
				minLength,
			),
		}
	}
	return nil
}

// SanitizeInput collapses whitespace and deletes characters that could break
// downstream rendering or storage. Applying it twice changes nothing.
func SanitizeInput(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	s = unsafeInputChar.ReplaceAllString(s, "")
	s = whitespaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

type SlotValidator func(answer string) error

// SlotValidators maps every basic-info slot to its validation rule.
func SlotValidators(maxExperienceYears int) map[models.Slot]SlotValidator {
	return map[models.Slot]SlotValidator{
		models.SlotFullName: func(s string) error { return ValidateName(s, DefaultMinNameLength) },
		models.SlotEmail:    ValidateEmail,
		models.SlotPhone:    ValidatePhone,
		models.SlotExperienceYears: func(s string) error {
			return ValidateExperience(s, maxExperienceYears)
		},
		models.SlotPosition:  func(string) error { return nil },
		models.SlotLocation:  func(string) error { return nil },
		models.SlotTechStack: ValidateTechStack,
	}
}
