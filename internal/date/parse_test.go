package date

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2024-01-15 is a Monday.
func fixedParser(y int, m time.Month, d int) *Parser {
	at := time.Date(y, m, d, 9, 30, 0, 0, time.Local)
	return NewParser(WithClock(func() time.Time { return at }))
}

func TestParseResolvesExpressions(t *testing.T) {
	p := fixedParser(2024, time.January, 15)

	tests := []struct {
		input string
		want  Date
	}{
		{"", New(2024, 1, 15)},
		{"   ", New(2024, 1, 15)},
		{"today", New(2024, 1, 15)},
		{"TOMORROW", New(2024, 1, 16)},
		{"yesterday", New(2024, 1, 14)},
		{"next week", New(2024, 1, 22)},
		{"next month", New(2024, 2, 15)},
		{"next year", New(2025, 1, 15)},
		{"end of week", New(2024, 1, 21)},
		{"end of month", New(2024, 1, 31)},
		{"end of year", New(2024, 12, 31)},
		{"monday", New(2024, 1, 22)},
		{"mon", New(2024, 1, 22)},
		{"next monday", New(2024, 1, 22)},
		{"  Next   Friday ", New(2024, 1, 19)},
		{"fri", New(2024, 1, 19)},
		{"sunday", New(2024, 1, 21)},
		{"in 3 days", New(2024, 1, 18)},
		{"in 1 day", New(2024, 1, 16)},
		{"in 2 weeks", New(2024, 1, 29)},
		{"in 1 month", New(2024, 2, 15)},
		{"in 2 years", New(2026, 1, 15)},
		{"in 10 years", New(2034, 1, 15)},
		{"2024-03-05", New(2024, 3, 5)},
		{"12/25/2024", New(2024, 12, 25)},
		{"25/12/2024", New(2024, 12, 25)},
		{"3 March 2025", New(2025, 3, 3)},
		{"Mar 3, 2025", New(2025, 3, 3)},
		{"3 march", New(2024, 3, 3)},
		{"Mar 3", New(2024, 3, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := p.Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRejectsBadInput(t *testing.T) {
	p := fixedParser(2024, time.January, 15)

	inputs := []string{
		"in 0 days",
		"in -1 days",
		"in two days",
		"in 3 fortnights",
		"next tuesdayish",
		"next decade",
		"gibberish",
		"in 11 years",
		"2040-01-01",
		"next",
		"in 3661 days",
		"in 531 weeks",
		"in 121 months",
		"in 768614336404564651 years",
		"in 9223372036854775807 days",
		"in 200000000000000 days",
		"in 1537228672809129302 weeks",
		"in 99999999999999999999 days",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			got, err := p.Parse(input)
			require.Error(t, err)
			assert.True(t, got.IsZero(), "failed parse must not return a date")

			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, input, perr.Input)
		})
	}
}

func TestParseTooFarInFutureMessage(t *testing.T) {
	p := fixedParser(2024, time.January, 15)

	_, err := p.Parse("in 520 weeks")
	require.NoError(t, err, "520 weeks is still inside the window")

	_, err = p.Parse("in 600 weeks")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too far in the future")
}

func TestParseHugeAmountsAreTooFar(t *testing.T) {
	p := fixedParser(2024, time.January, 15)

	for _, input := range []string{
		"in 9223372036854775807 days",
		"in 1537228672809129302 weeks",
		"in 768614336404564651 years",
	} {
		_, err := p.Parse(input)
		require.Error(t, err, input)
		assert.Contains(t, err.Error(), "too far in the future", input)
	}
}

func TestParseFallsBackToLenientLayouts(t *testing.T) {
	p := fixedParser(2024, time.January, 15)

	tests := []struct {
		input string
		want  Date
	}{
		{"2024-1-20", New(2024, 1, 20)},
		{"2024-2-5", New(2024, 2, 5)},
		{"2024-01-20 10:00", New(2024, 1, 20)},
		{"2025-6-30 8:15:00", New(2025, 6, 30)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := p.Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := p.Parse("2040-1-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too far in the future")
}

func TestParseWeekdayIsAlwaysStrictlyFuture(t *testing.T) {
	for day := 14; day <= 20; day++ {
		p := fixedParser(2024, time.January, day)
		today := New(2024, 1, day)
		for name, wd := range weekdays {
			got, err := p.Parse(name)
			require.NoError(t, err)
			assert.True(t, got.After(today), "%s from %s", name, today)
			assert.LessOrEqual(t, today.DaysUntil(got), 7)
			assert.Equal(t, wd, got.Weekday())
		}
	}
}

func TestParseEndOfWeekOnSundayIsToday(t *testing.T) {
	p := fixedParser(2024, time.January, 14)

	got, err := p.Parse("end of week")
	require.NoError(t, err)
	assert.Equal(t, New(2024, 1, 14), got)
}

func TestParseMonthArithmeticClamps(t *testing.T) {
	p := fixedParser(2024, time.January, 31)

	got, err := p.Parse("in 1 month")
	require.NoError(t, err)
	assert.Equal(t, New(2024, 2, 29), got)

	got, err = p.Parse("next month")
	require.NoError(t, err)
	assert.Equal(t, New(2024, 2, 29), got)
}
