package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthRange(t *testing.T) {
	tests := []struct {
		name     string
		year     int
		month    int
		wantLast string
	}{
		{name: "leap february", year: 2024, month: 2, wantLast: "2024-02-29"},
		{name: "regular february", year: 2023, month: 2, wantLast: "2023-02-28"},
		{name: "century non-leap", year: 1900, month: 2, wantLast: "1900-02-28"},
		{name: "four hundred leap", year: 2000, month: 2, wantLast: "2000-02-29"},
		{name: "thirty days", year: 2024, month: 6, wantLast: "2024-06-30"},
		{name: "december", year: 2024, month: 12, wantLast: "2024-12-31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, last, err := MonthRange(tt.year, tt.month)
			require.NoError(t, err)
			assert.Equal(t, 1, first.Day())
			assert.Equal(t, time.Month(tt.month), first.Month())
			assert.Equal(t, tt.wantLast, last.Format("2006-01-02"))
		})
	}
}

func TestMonthRange_Invalid(t *testing.T) {
	_, _, err := MonthRange(2024, 0)
	assert.ErrorIs(t, err, ErrInvalidMonth)

	_, _, err = MonthRange(2024, 13)
	assert.ErrorIs(t, err, ErrInvalidMonth)
}

func TestParseMonth(t *testing.T) {
	year, month, err := ParseMonth("2024-2")
	require.NoError(t, err)
	assert.Equal(t, 2024, year)
	assert.Equal(t, 2, month)

	year, month, err = ParseMonth("2024-02")
	require.NoError(t, err)
	assert.Equal(t, 2024, year)
	assert.Equal(t, 2, month)

	for _, bad := range []string{"", "2024", "2024-13", "2024-0", "24-02", "2024-+2", "2024-02-01", "abcd-01"} {
		_, _, err := ParseMonth(bad)
		assert.ErrorIs(t, err, ErrInvalidMonth, bad)
	}
}
