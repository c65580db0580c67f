package availability

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MonthRange возвращает первый и последний день месяца (month 1..12).
// Последний день считается как нулевой день следующего месяца, без таблицы длин месяцев
func MonthRange(year, month int) (time.Time, time.Time, error) {
	if month < 1 || month > 12 {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: month %d out of range", ErrInvalidMonth, month)
	}
	if year < 1 || year > 9999 {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: year %d out of range", ErrInvalidMonth, year)
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC)

	return first, last, nil
}

// ParseMonth разбирает месяц в форматах "2024-2" и "2024-02"
func ParseMonth(s string) (int, int, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 2 || len(parts[0]) != 4 || len(parts[1]) == 0 || len(parts[1]) > 2 ||
		!isDigits(parts[0]) || !isDigits(parts[1]) {
		return 0, 0, fmt.Errorf("%w: expected YYYY-M, got %q", ErrInvalidMonth, s)
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: bad year %q", ErrInvalidMonth, parts[0])
	}

	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("%w: bad month %q", ErrInvalidMonth, parts[1])
	}

	return year, month, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
