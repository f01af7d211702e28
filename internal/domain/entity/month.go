// Package entity defines the core business entities for the domain layer.
package entity

import (
	"fmt"
	"strconv"
	"time"
)

// monthAbbreviations maps months to fixed English abbreviations so labels never
// depend on the runtime locale.
var monthAbbreviations = map[time.Month]string{
	time.January:   "Jan",
	time.February:  "Feb",
	time.March:     "Mar",
	time.April:     "Apr",
	time.May:       "May",
	time.June:      "Jun",
	time.July:      "Jul",
	time.August:    "Aug",
	time.September: "Sep",
	time.October:   "Oct",
	time.November:  "Nov",
	time.December:  "Dec",
}

// MonthKey identifies a calendar month. Keys order chronologically.
type MonthKey struct {
	Year  int
	Month time.Month
}

// ParseMonthKey parses a "YYYY-MM" key.
func ParseMonthKey(s string) (MonthKey, error) {
	if len(s) != 7 || s[4] != '-' || !isDigits(s[:4]) || !isDigits(s[5:]) {
		return MonthKey{}, fmt.Errorf("month key %q must have the form YYYY-MM", s)
	}

	year, err := strconv.Atoi(s[:4])
	if err != nil {
		return MonthKey{}, fmt.Errorf("month key %q has an invalid year", s)
	}

	month, err := strconv.Atoi(s[5:])
	if err != nil || month < 1 || month > 12 {
		return MonthKey{}, fmt.Errorf("month key %q has an invalid month", s)
	}

	return MonthKey{Year: year, Month: time.Month(month)}, nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}

// MonthKeyOf returns the month containing t, in t's location.
func MonthKeyOf(t time.Time) MonthKey {
	return MonthKey{Year: t.Year(), Month: t.Month()}
}

// String returns the "YYYY-MM" form of the key.
func (k MonthKey) String() string {
	return fmt.Sprintf("%04d-%02d", k.Year, int(k.Month))
}

// Label returns the display label, e.g. "Jan 2024".
func (k MonthKey) Label() string {
	return fmt.Sprintf("%s %04d", monthAbbreviations[k.Month], k.Year)
}

// Before reports whether k is chronologically earlier than other.
func (k MonthKey) Before(other MonthKey) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	return k.Month < other.Month
}

// Compare returns -1, 0 or +1 depending on whether k is before, equal to or after other.
func (k MonthKey) Compare(other MonthKey) int {
	switch {
	case k.Before(other):
		return -1
	case other.Before(k):
		return 1
	default:
		return 0
	}
}

// MarshalText encodes the key as "YYYY-MM".
func (k MonthKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a "YYYY-MM" key.
func (k *MonthKey) UnmarshalText(text []byte) error {
	parsed, err := ParseMonthKey(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
