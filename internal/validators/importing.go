package validators

import (
	"math/big"
	"strings"
	"unicode"
)

// The checks below are the relaxed variants applied to spreadsheet rows.
// Operators export these sheets from an older system, so numbers often come
// back as floats ("31234567890123.0", "3.1234567890123E+13").

// ClientCode removes all whitespace and uppercases the code.
func ClientCode(raw string) (string, error) {
	code := strings.ToUpper(strings.Join(strings.Fields(raw), ""))
	if code == "" {
		return "", fail(FieldClientCode, CodeEmpty)
	}
	return code, nil
}

// RequiredText trims raw and rejects an empty value for field.
func RequiredText(field Field, raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" || strings.EqualFold(s, "nan") {
		return "", fail(field, CodeEmpty)
	}
	return s, nil
}

// DocumentSeries accepts any value of at least two characters whose first
// two characters are letters. A trailing ".0" artifact is dropped.
func DocumentSeries(raw string) (string, error) {
	s := strings.ToUpper(strings.TrimSuffix(strings.TrimSpace(raw), ".0"))
	s = strings.ReplaceAll(s, " ", "")
	runes := []rune(s)
	if len(runes) < 2 || !unicode.IsLetter(runes[0]) || !unicode.IsLetter(runes[1]) {
		return "", fail(FieldDocument, CodeDocumentSeries)
	}
	return s, nil
}

// ImportPinfl converts a numeric cell to its integer text before applying
// the regular PINFL check.
func (r Rules) ImportPinfl(raw string) (string, error) {
	return r.Pinfl(NumericText(raw))
}

// ImportPhone converts a numeric cell to its integer text before applying
// the regular phone check. Imported numbers must be mobile numbers, whose
// subscriber part starts with 9.
func ImportPhone(raw string) (string, error) {
	phone, err := Phone(NumericText(raw))
	if err != nil {
		return "", err
	}
	if phone[1+len(countryCode)] != mobilePrefix {
		return "", fail(FieldPhone, CodePhoneMobile)
	}
	return phone, nil
}

// NumericText turns spreadsheet renderings of integers back into plain digit
// strings. Values that are not numbers are returned trimmed and unchanged.
func NumericText(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return s
	}
	if strings.HasSuffix(s, ".0") && isDigits(strings.TrimSuffix(s, ".0")) {
		return strings.TrimSuffix(s, ".0")
	}
	if strings.ContainsAny(s, "eE") {
		r, ok := new(big.Rat).SetString(s)
		if ok && r.IsInt() && r.Sign() >= 0 {
			return r.Num().String()
		}
	}
	return s
}
