package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMonthPeriod(t *testing.T) {
	p := MonthPeriod(2024, 2)
	assert.Equal(t, date(2024, time.February, 1), p.Start)
	assert.Equal(t, date(2024, time.March, 1), p.End)
	assert.Len(t, p.Days(), 29)
	assert.Equal(t, date(2024, time.February, 29), p.LastDay())

	dec := MonthPeriod(2023, 12)
	assert.Equal(t, date(2024, time.January, 1), dec.End)
}

func TestYearPeriod(t *testing.T) {
	p := YearPeriod(2024)
	assert.Len(t, p.Days(), 366)
	assert.True(t, p.Contains(date(2024, time.December, 31)))
	assert.False(t, p.Contains(date(2025, time.January, 1)))
}

func TestPeriod_Contains(t *testing.T) {
	p := MonthPeriod(2024, 3)

	assert.True(t, p.Contains(date(2024, time.March, 1)))
	assert.True(t, p.Contains(date(2024, time.March, 31)))
	assert.True(t, p.Contains(time.Date(2024, time.March, 31, 23, 59, 0, 0, time.UTC)))
	assert.False(t, p.Contains(date(2024, time.April, 1)))
	assert.False(t, p.Contains(date(2024, time.February, 29)))

	var all Period
	assert.True(t, all.IsZero())
	assert.True(t, all.Contains(date(1999, time.January, 1)))
}

func TestNewPeriod_InclusiveEnd(t *testing.T) {
	p := NewPeriod(date(2024, time.January, 10), date(2024, time.January, 12))
	assert.Len(t, p.Days(), 3)
	assert.True(t, p.Contains(date(2024, time.January, 12)))
	assert.False(t, p.Contains(date(2024, time.January, 13)))
	assert.Equal(t, "2024-01-10..2024-01-12", p.String())
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-05-07")
	require.NoError(t, err)
	assert.Equal(t, date(2024, time.May, 7), d)

	invalid := []string{"2024-5-7", "07-05-2024", "2024/05/07", "", "2024-13-01"}
	for _, s := range invalid {
		_, err := ParseDate(s)
		assert.Error(t, err, s)
	}
}

func TestParseClock(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"00:00", 0},
		{"09:00", 540},
		{"18:30", 1110},
		{"23:59", 1439},
	}
	for _, c := range cases {
		got, err := ParseClock(c.in)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, got, c.in)
	}

	for _, s := range []string{"24:00", "9", "09:60", "ab:cd", ""} {
		assert.False(t, IsValidClock(s), s)
	}
}

func TestWorkingDaysInMonth(t *testing.T) {
	// March 2024 has 21 weekdays.
	assert.Len(t, WorkingDaysInMonth(2024, 3, nil), 21)

	holidays := []time.Time{
		date(2024, time.March, 25), // Monday
		date(2024, time.March, 30), // Saturday, already excluded
	}
	days := WorkingDaysInMonth(2024, 3, holidays)
	assert.Len(t, days, 20)
	assert.True(t, IsHoliday(time.Date(2024, time.March, 25, 15, 0, 0, 0, time.UTC), holidays))
	assert.True(t, IsWeekend(date(2024, time.March, 30)))
	assert.False(t, IsWeekend(date(2024, time.March, 29)))
}
