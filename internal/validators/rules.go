// Package validators checks and normalizes the fields a customer submits
// during registration and the columns of a bulk customer import.
//
// Every check returns either the normalized value or a *Error describing
// what is wrong. Errors carry a stable Code and arguments so the chat layer
// can render them in the customer's language.
package validators

import (
	"fmt"
	"strings"
)

// Rules carries the business constants the checks depend on.
type Rules struct {
	DocumentPrefixes    []string // allowed two-letter passport prefixes
	RegionalLetter      string   // first letter of regional passports, any second letter
	PinflDigits         string   // digits allowed at PINFL index 2
	ExpiryWarningMonths int      // soft warning window before passport expiry
	MinAge              int
	MaxAge              int
}

// DefaultRules returns the rules the bot ships with.
func DefaultRules() Rules {
	return Rules{
		DocumentPrefixes:    []string{"AA", "AB", "AD", "AE"},
		RegionalLetter:      "K",
		PinflDigits:         "3456",
		ExpiryWarningMonths: 6,
		MinAge:              18,
		MaxAge:              100,
	}
}

// Field identifies the input a validation error belongs to.
type Field string

const (
	FieldPhone      Field = "phone"
	FieldDocument   Field = "document_number"
	FieldPinfl      Field = "pinfl"
	FieldBirthDate  Field = "birth_date"
	FieldFullName   Field = "full_name"
	FieldAddress    Field = "address"
	FieldClientCode Field = "client_code"
)

// Code is a stable identifier of a validation failure.
type Code string

const (
	CodeEmpty           Code = "empty"
	CodePhoneFormat     Code = "phone_format"
	CodePhoneLength     Code = "phone_length"
	CodePhoneMobile     Code = "phone_mobile"
	CodeDocumentLength  Code = "document_length"
	CodeDocumentPrefix  Code = "document_prefix"
	CodeDocumentDigits  Code = "document_digits"
	CodeDocumentSeries  Code = "document_series"
	CodePinflLength     Code = "pinfl_length"
	CodePinflDigit      Code = "pinfl_digit"
	CodeDateFormat      Code = "date_format"
	CodeTooYoung        Code = "too_young"
	CodeTooOld          Code = "too_old"
	CodeNameTooShort    Code = "name_too_short"
	CodeAddressTooShort Code = "address_too_short"
)

// Error is a user-correctable validation failure.
type Error struct {
	Field Field
	Code  Code
	Args  []any
}

func (e *Error) Error() string {
	if len(e.Args) == 0 {
		return fmt.Sprintf("%s: %s", e.Field, e.Code)
	}
	return fmt.Sprintf("%s: %s %v", e.Field, e.Code, e.Args)
}

func fail(field Field, code Code, args ...any) *Error {
	return &Error{Field: field, Code: code, Args: args}
}

// digitsOnly keeps ASCII digits.
func digitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
