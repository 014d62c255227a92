package provider

import (
	"fmt"
	"strconv"
	"time"
)

// DateKey identifies one daily rate document. Values are not checked
// against the calendar; an impossible date simply maps to a path the
// upstream does not serve.
type DateKey struct {
	Year  int
	Month int
	Day   int
}

// DateOf returns the DateKey for the calendar day of t.
func DateOf(t time.Time) DateKey {
	return DateKey{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

// ParseDateKey parses a "YYYY-MM-DD" string.
func ParseDateKey(s string) (DateKey, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return DateKey{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// Path returns the document path relative to the base endpoint, e.g. "2010/06/25.xml".
func (d DateKey) Path() string {
	return strconv.Itoa(d.Year) + "/" + pad2(d.Month) + "/" + pad2(d.Day) + ".xml"
}

// String renders the date as "YYYY-MM-DD".
func (d DateKey) String() string {
	return strconv.Itoa(d.Year) + "-" + pad2(d.Month) + "-" + pad2(d.Day)
}

func pad2(v int) string {
	if v < 10 {
		return "0" + strconv.Itoa(v)
	}
	return strconv.Itoa(v)
}
