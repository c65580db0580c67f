package domain

import "time"

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Business validation constants
const (
	MaxSiteNameLength        = 200
	MaxSiteDescriptionLength = 5000
	MaxVisitorNameLength     = 100
	MaxTimeSlotsPerSite      = 48
	MaxSlotCapacity          = 10000
)

// ParseDate разбирает дату формата YYYY-MM-DD
// Принимается только каноническая запись: "2024-6-1" не пройдет, так как даты сравниваются как строки
func ParseDate(s string) (time.Time, bool) {
	d, err := time.Parse(DateFormat, s)
	if err != nil || d.Format(DateFormat) != s {
		return time.Time{}, false
	}
	return d, true
}

// IsValidTime проверяет, что строка - время в каноническом формате HH:MM
func IsValidTime(s string) bool {
	t, err := time.Parse(TimeFormat, s)
	return err == nil && t.Format(TimeFormat) == s
}
