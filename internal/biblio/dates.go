package biblio

import (
	"fmt"
	"strings"
)

// MalformedDateError reports a date token whose compact digit string is not
// 4, 6, or 8 characters long.
type MalformedDateError struct {
	Token string
}

func (e *MalformedDateError) Error() string {
	return fmt.Sprintf("malformed date %q: want YYYY, YYYYMM, or YYYYMMDD", e.Token)
}

// ParseDate parses a compact "YYYY[MM[DD]] [time]" token into a PubDate.
//
// An optional space-separated time component is kept verbatim in Time; a
// trailing "~" marks the date as approximate. The length check runs before
// the circa marker is stripped, so short ancient years like "130~" are
// accepted. The digit string is sliced positionally into year/month/day
// with no calendar validation (the source data is hand-authored; month
// "13" passes through as a string).
func ParseDate(token string) (PubDate, error) {
	var d PubDate

	compact := token
	if i := strings.Index(compact, " "); i >= 0 {
		d.Time = compact[i+1:]
		compact = compact[:i]
	}

	switch len(compact) {
	case 4, 6, 8:
	default:
		return PubDate{}, &MalformedDateError{Token: token}
	}

	if strings.HasSuffix(compact, "~") {
		d.Circa = true
		compact = strings.TrimSuffix(compact, "~")
	}
	for _, r := range compact {
		if r < '0' || r > '9' {
			return PubDate{}, &MalformedDateError{Token: token}
		}
	}

	d.Year = sliceDigits(compact, 0, 4)
	d.Month = sliceDigits(compact, 4, 6)
	d.Day = sliceDigits(compact, 6, 8)
	return d, nil
}

// sliceDigits slices [lo:hi) clamped to the string length, empty when out
// of range.
func sliceDigits(s string, lo, hi int) string {
	if len(s) <= lo {
		return ""
	}
	if len(s) < hi {
		hi = len(s)
	}
	return s[lo:hi]
}
