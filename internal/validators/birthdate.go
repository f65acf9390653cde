package validators

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/cargobot/internal/timex"
)

// DateLayout is the display and storage layout for birth and expiry dates.
const DateLayout = "02.01.2006"

// ExpiryWarning classifies how close a passport is to its expiry date.
type ExpiryWarning int

const (
	ExpiryNone ExpiryWarning = iota
	ExpirySoon
	ExpiryExpired
)

// BirthDate is the accepted form of a birth date together with the passport
// expiry derived from it.
type BirthDate struct {
	Date       time.Time
	Formatted  string     // dd.mm.yyyy
	Expiry     *time.Time // nil once the holder is in the permanent-document bracket
	Warning    ExpiryWarning
	MonthsLeft int // months until Expiry; meaningful for ExpirySoon
}

// ExpiryFormatted returns the expiry as dd.mm.yyyy or "" when there is none.
func (b BirthDate) ExpiryFormatted() string {
	if b.Expiry == nil {
		return ""
	}
	return b.Expiry.Format(DateLayout)
}

var (
	dayFirst  = regexp.MustCompile(`^(\d{1,2})[./-](\d{1,2})[./-](\d{4})$`)
	yearFirst = regexp.MustCompile(`^(\d{4})[./-](\d{1,2})[./-](\d{1,2})$`)
)

// passport replacement ages: a passport issued before 25 expires at 25, one
// issued before 45 expires at 45, after that it is permanent.
var expiryAges = []int{25, 45}

// BirthDate parses d.m.yyyy or yyyy.m.d (separators '.', '/' or '-'),
// enforces the age bounds relative to now and derives the passport expiry.
// The same (raw, now) pair always yields the same result.
func (r Rules) BirthDate(raw string, now time.Time) (BirthDate, error) {
	date, ok := parseDate(strings.TrimSpace(raw), now.Location())
	if !ok {
		return BirthDate{}, fail(FieldBirthDate, CodeDateFormat)
	}

	age := ageAt(date, now)
	if age < r.MinAge {
		return BirthDate{}, fail(FieldBirthDate, CodeTooYoung, r.MinAge)
	}
	if age > r.MaxAge {
		return BirthDate{}, fail(FieldBirthDate, CodeTooOld)
	}

	res := BirthDate{Date: date, Formatted: date.Format(DateLayout)}

	for _, limit := range expiryAges {
		if age < limit {
			expiry := anniversary(date, limit)
			res.Expiry = &expiry
			res.Warning, res.MonthsLeft = r.CheckExpiry(expiry, now)
			break
		}
	}

	return res, nil
}

// CheckExpiry reports whether expiry has passed or falls within the warning
// window, together with the whole calendar months left.
func (r Rules) CheckExpiry(expiry, now time.Time) (ExpiryWarning, int) {
	months := (expiry.Year()-now.Year())*12 + int(expiry.Month()-now.Month())

	switch {
	case timex.Date(expiry).Before(timex.Date(now)):
		return ExpiryExpired, months
	case months <= r.ExpiryWarningMonths:
		return ExpirySoon, months
	default:
		return ExpiryNone, months
	}
}

// ParseStoredDate parses a date previously produced with DateLayout.
func ParseStoredDate(s string) (time.Time, bool) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	return t, err == nil
}

func parseDate(s string, loc *time.Location) (time.Time, bool) {
	if m := dayFirst.FindStringSubmatch(s); m != nil {
		return makeDate(m[3], m[2], m[1], loc)
	}
	if m := yearFirst.FindStringSubmatch(s); m != nil {
		return makeDate(m[1], m[2], m[3], loc)
	}
	return time.Time{}, false
}

// makeDate rejects calendar-invalid dates such as 31.02.1990 instead of
// letting time.Date normalize them.
func makeDate(ys, ms, ds string, loc *time.Location) (time.Time, bool) {
	y, _ := strconv.Atoi(ys)
	m, _ := strconv.Atoi(ms)
	d, _ := strconv.Atoi(ds)

	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, loc)
	if t.Year() != y || int(t.Month()) != m || t.Day() != d {
		return time.Time{}, false
	}
	return t, true
}

func ageAt(birth, now time.Time) int {
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age
}

// anniversary returns the date the holder turns years old; 29 February
// falls back to 28 February in non-leap years.
func anniversary(birth time.Time, years int) time.Time {
	return timex.AddMonths(birth, years*12)
}
