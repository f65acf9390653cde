package validators

import "strings"

const (
	pinflLength     = 14
	pinflCheckIndex = 2
)

// Pinfl checks a 14-digit personal identifier whose third digit must be one
// of the configured set.
func (r Rules) Pinfl(raw string) (string, error) {
	digits := digitsOnly(raw)
	if len(digits) != pinflLength {
		return "", fail(FieldPinfl, CodePinflLength, pinflLength)
	}

	if !strings.ContainsRune(r.PinflDigits, rune(digits[pinflCheckIndex])) {
		return "", fail(FieldPinfl, CodePinflDigit, string(digits[pinflCheckIndex]), r.PinflDigits)
	}

	return digits, nil
}
