package contacts

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"go.uber.org/multierr"
)

const (
	nameMinLen    = 2
	nameMaxLen    = 100
	messageMinLen = 10
	messageMaxLen = 2000
	companyMaxLen = 100
)

var (
	phoneSeparators = regexp.MustCompile(`[\s\p{Zs}\-()]`)
	phoneE164       = regexp.MustCompile(`^\+[1-9]\d{7,14}$`)
	phoneLocal      = regexp.MustCompile(`^0?\d{9,15}$`)
)

// FieldError is a single form violation.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return e.Message
}

// NormalizePhone strips whitespace (Unicode spaces included), dashes and
// parentheses.
func NormalizePhone(phone string) string {
	return phoneSeparators.ReplaceAllString(phone, "")
}

// ValidPhone accepts E.164 numbers and local numbers of 9 to 15 digits with
// an optional leading zero.
func ValidPhone(phone string) bool {
	normalized := NormalizePhone(phone)
	return phoneE164.MatchString(normalized) || phoneLocal.MatchString(normalized)
}

// ValidateForm checks every field and returns all violations combined, or
// nil when the form is acceptable.
func ValidateForm(form SubmitForm) error {
	var errs error

	if runeLen(strings.TrimSpace(form.Name)) < nameMinLen {
		errs = multierr.Append(errs, FieldError{Field: "name", Message: "Name must be at least 2 characters long"})
	}
	if runeLen(form.Name) > nameMaxLen {
		errs = multierr.Append(errs, FieldError{Field: "name", Message: "Name must be less than 100 characters"})
	}
	if form.Phone != "" && !ValidPhone(form.Phone) {
		errs = multierr.Append(errs, FieldError{Field: "phone", Message: "Please provide a valid phone number"})
	}
	if runeLen(strings.TrimSpace(form.Message)) < messageMinLen {
		errs = multierr.Append(errs, FieldError{Field: "message", Message: "Message must be at least 10 characters long"})
	}
	if runeLen(form.Message) > messageMaxLen {
		errs = multierr.Append(errs, FieldError{Field: "message", Message: "Message must be less than 2000 characters"})
	}
	if runeLen(form.Company) > companyMaxLen {
		errs = multierr.Append(errs, FieldError{Field: "company", Message: "Company name must be less than 100 characters"})
	}

	return errs
}

// Violations flattens a ValidateForm result into its messages.
func Violations(err error) []string {
	errs := multierr.Errors(err)
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Error())
	}
	return out
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
