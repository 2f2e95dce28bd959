package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
	ClockLayout = "15:04"
)

// Period is a half-open date range [Start, End). The zero Period matches every date.
type Period struct {
	Start time.Time
	End   time.Time
}

// MonthPeriod returns the period from the first day of month to the first day of the next month.
func MonthPeriod(year, month int) Period {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return Period{Start: start, End: start.AddDate(0, 1, 0)}
}

// YearPeriod covers January 1 of year up to January 1 of the next year.
func YearPeriod(year int) Period {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return Period{Start: start, End: start.AddDate(1, 0, 0)}
}

// NewPeriod builds a period covering from..to, both days inclusive.
func NewPeriod(from, to time.Time) Period {
	return Period{Start: Day(from), End: Day(to).AddDate(0, 0, 1)}
}

// DayPeriod covers a single calendar day.
func DayPeriod(day time.Time) Period {
	return NewPeriod(day, day)
}

func (p Period) IsZero() bool {
	return p.Start.IsZero() && p.End.IsZero()
}

// Contains reports whether the calendar day of t lies in the period.
func (p Period) Contains(t time.Time) bool {
	if p.IsZero() {
		return true
	}
	d := Day(t)
	return !d.Before(p.Start) && d.Before(p.End)
}

// Days enumerates every day in the period.
func (p Period) Days() []time.Time {
	if p.IsZero() {
		return nil
	}
	var days []time.Time
	for d := p.Start; d.Before(p.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// LastDay returns the inclusive end of the period.
func (p Period) LastDay() time.Time {
	return p.End.AddDate(0, 0, -1)
}

func (p Period) String() string {
	if p.IsZero() {
		return "all-time"
	}
	return FormatDate(p.Start) + ".." + FormatDate(p.LastDay())
}

// Day truncates t to midnight UTC of the same calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a zero-padded "YYYY-MM-DD" string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseClock converts "HH:MM" into minutes since midnight.
func ParseClock(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return h*60 + m, nil
}

// IsValidClock reports whether s is a valid "HH:MM" time of day.
func IsValidClock(s string) bool {
	_, err := ParseClock(s)
	return err == nil
}

// MonthDays enumerates every day of the given month.
func MonthDays(year, month int) []time.Time {
	return MonthPeriod(year, month).Days()
}

func IsWeekend(day time.Time) bool {
	wd := day.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsHoliday reports whether day falls on one of the holiday dates.
func IsHoliday(day time.Time, holidays []time.Time) bool {
	d := Day(day)
	for _, h := range holidays {
		if Day(h).Equal(d) {
			return true
		}
	}
	return false
}

// WorkingDaysInMonth returns the weekdays of the month that are not holidays.
func WorkingDaysInMonth(year, month int, holidays []time.Time) []time.Time {
	var days []time.Time
	for _, d := range MonthDays(year, month) {
		if IsWeekend(d) || IsHoliday(d, holidays) {
			continue
		}
		days = append(days, d)
	}
	return days
}
