package validators

import (
	"slices"
	"strings"
	"unicode"
)

const documentLength = 9

// DocumentNumber checks a passport number: two letters from the allow-list
// (or the regional letter plus any letter) followed by seven digits.
// Spaces and hyphens are removed and the result is uppercased.
func (r Rules) DocumentNumber(raw string) (string, error) {
	clean := strings.ToUpper(strings.TrimSpace(strings.NewReplacer(" ", "", "-", "").Replace(raw)))

	if len([]rune(clean)) != documentLength {
		return "", fail(FieldDocument, CodeDocumentLength, documentLength)
	}

	prefix := clean[:2]
	if !r.documentPrefixAllowed(prefix) {
		return "", fail(FieldDocument, CodeDocumentPrefix, prefix, strings.Join(r.DocumentPrefixes, ", "), r.RegionalLetter)
	}

	if !isDigits(clean[2:]) {
		return "", fail(FieldDocument, CodeDocumentDigits)
	}

	return clean, nil
}

func (r Rules) documentPrefixAllowed(prefix string) bool {
	if len(prefix) != 2 || !isLatinLetter(rune(prefix[0])) || !isLatinLetter(rune(prefix[1])) {
		return false
	}
	if slices.Contains(r.DocumentPrefixes, prefix) {
		return true
	}
	return r.RegionalLetter != "" && prefix[:1] == strings.ToUpper(r.RegionalLetter)
}

func isLatinLetter(r rune) bool {
	return r < unicode.MaxASCII && unicode.IsLetter(r)
}
