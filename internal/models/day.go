package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// DayLayout is the wire format for calendar days.
const DayLayout = "2006-01-02"

// Day is a calendar date without a time component, stored as a SQL DATE and
// serialized as YYYY-MM-DD.
type Day struct {
	datatypes.Date
}

// NewDay truncates t to its calendar day in t's own location.
func NewDay(t time.Time) Day {
	y, m, d := t.Date()
	return Day{datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))}
}

// ParseDay parses a YYYY-MM-DD string.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(DayLayout, strings.TrimSpace(s))
	if err != nil {
		return Day{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return NewDay(t), nil
}

// Time returns the day as midnight UTC.
func (d Day) Time() time.Time {
	return time.Time(d.Date)
}

func (d Day) IsZero() bool {
	return d.Time().IsZero()
}

func (d Day) String() string {
	return d.Time().Format(DayLayout)
}

// AddDays returns the day n days later (or earlier for negative n).
func (d Day) AddDays(n int) Day {
	return NewDay(d.Time().AddDate(0, 0, n))
}

func (d Day) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Day) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*d = Day{}
		return nil
	}
	// Accept full timestamps too; only the calendar part is kept.
	if len(s) > len(DayLayout) {
		s = s[:len(DayLayout)]
	}
	parsed, err := ParseDay(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
