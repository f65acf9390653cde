package validators

import "strings"

const (
	countryCode      = "998"
	subscriberDigits = 9
	phoneDigits      = len(countryCode) + subscriberDigits
	mobilePrefix     = '9'
)

// Phone normalizes a phone number to +998XXXXXXXXX. Non-digits are dropped;
// the country code is prepended only when exactly nine subscriber digits
// remain.
func Phone(raw string) (string, error) {
	digits := digitsOnly(raw)
	if digits == "" {
		return "", fail(FieldPhone, CodeEmpty)
	}

	if !strings.HasPrefix(digits, countryCode) {
		if len(digits) != subscriberDigits {
			return "", fail(FieldPhone, CodePhoneFormat)
		}
		digits = countryCode + digits
	}

	if len(digits) != phoneDigits {
		return "", fail(FieldPhone, CodePhoneLength, phoneDigits)
	}

	return "+" + digits, nil
}

// PhoneQuery strips '+', spaces and hyphens from a phone fragment used for
// substring lookups.
func PhoneQuery(raw string) string {
	return strings.NewReplacer("+", "", " ", "", "-", "").Replace(strings.TrimSpace(raw))
}
