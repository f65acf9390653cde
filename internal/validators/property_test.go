//go:build property
// +build property

package validators

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func digitString(n int) gopter.Gen {
	return gen.SliceOfN(n, gen.RuneRange('0', '9')).Map(func(ds []rune) string {
		return string(ds)
	})
}

// TestDocumentNumberProperties checks that well-formed numbers are accepted
// in normalized form and malformed ones are rejected.
func TestDocumentNumberProperties(t *testing.T) {
	r := DefaultRules()
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("allow-listed prefix + 7 digits is accepted", prop.ForAll(
		func(prefix string, digits string, lower bool) bool {
			in := prefix + digits
			if lower {
				in = " " + strings.ToLower(in) + " "
			}
			got, err := r.DocumentNumber(in)
			return err == nil && got == prefix+digits
		},
		gen.OneConstOf("AA", "AB", "AD", "AE"),
		digitString(7),
		gen.Bool(),
	))

	properties.Property("regional letter + any letter + 7 digits is accepted", prop.ForAll(
		func(second rune, digits string) bool {
			in := "K" + string(second) + digits
			got, err := r.DocumentNumber(in)
			return err == nil && got == in
		},
		gen.RuneRange('A', 'Z'),
		digitString(7),
	))

	properties.Property("other prefixes are rejected", prop.ForAll(
		func(a, b rune, digits string) bool {
			prefix := string([]rune{a, b})
			if a == 'K' || prefix == "AA" || prefix == "AB" || prefix == "AD" || prefix == "AE" {
				return true
			}
			_, err := r.DocumentNumber(prefix + digits)
			return err != nil
		},
		gen.RuneRange('A', 'Z'),
		gen.RuneRange('A', 'Z'),
		digitString(7),
	))

	properties.Property("wrong length is rejected", prop.ForAll(
		func(n int) bool {
			if n == 7 {
				return true
			}
			_, err := r.DocumentNumber("AA" + strings.Repeat("1", n))
			return err != nil
		},
		gen.IntRange(0, 12),
	))

	properties.TestingRun(t)
}

func TestPinflProperties(t *testing.T) {
	r := DefaultRules()
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("14 digits with third digit in set is accepted", prop.ForAll(
		func(head string, third rune, tail string) bool {
			in := head + string(third) + tail
			got, err := r.Pinfl(in)
			return err == nil && got == in
		},
		digitString(2),
		gen.RuneRange('3', '6'),
		digitString(11),
	))

	properties.Property("third digit outside set is rejected", prop.ForAll(
		func(head string, third rune, tail string) bool {
			if strings.ContainsRune("3456", third) {
				return true
			}
			_, err := r.Pinfl(head + string(third) + tail)
			return err != nil
		},
		digitString(2),
		gen.RuneRange('0', '9'),
		digitString(11),
	))

	properties.Property("13 or 15 digits are rejected", prop.ForAll(
		func(n int, body string) bool {
			_, err := r.Pinfl(("33" + body)[:n])
			return err != nil
		},
		gen.OneConstOf(13, 15),
		digitString(14),
	))

	properties.TestingRun(t)
}

func TestBirthDateProperties(t *testing.T) {
	r := DefaultRules()
	ref := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)

	properties.Property("age bounds and expiry presence", prop.ForAll(
		func(daysAgo int) bool {
			birth := ref.AddDate(0, 0, -daysAgo)
			in := fmt.Sprintf("%02d.%02d.%04d", birth.Day(), birth.Month(), birth.Year())
			age := ageAt(birth, ref)

			got, err := r.BirthDate(in, ref)
			switch {
			case age < 18 || age > 100:
				return err != nil
			case err != nil:
				return false
			case got.Formatted != in:
				return false
			case age >= 45:
				return got.Expiry == nil
			default:
				again, _ := r.BirthDate(in, ref)
				return got.Expiry != nil && again.Expiry != nil && got.Expiry.Equal(*again.Expiry)
			}
		},
		gen.IntRange(0, 110*366),
	))

	properties.TestingRun(t)
}
