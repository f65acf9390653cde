package validators

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	minNameLength    = 5
	minAddressLength = 10
)

// FullName collapses whitespace, requires at least five characters and
// capitalizes every word.
func FullName(raw string) (string, error) {
	words := strings.Fields(raw)
	name := strings.Join(words, " ")
	if utf8.RuneCountInString(name) < minNameLength {
		return "", fail(FieldFullName, CodeNameTooShort, minNameLength)
	}

	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " "), nil
}

// Address trims the input and requires at least ten characters.
func Address(raw string) (string, error) {
	clean := strings.TrimSpace(raw)
	if utf8.RuneCountInString(clean) < minAddressLength {
		return "", fail(FieldAddress, CodeAddressTooShort, minAddressLength)
	}
	return clean, nil
}

func capitalize(w string) string {
	r, size := utf8.DecodeRuneInString(w)
	if r == utf8.RuneError {
		return w
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(w[size:])
}
