package sites

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/heritage-booking/internal/domain"
)

// validateSite проверяет площадку перед сохранением.
// Повтор времени слота - ошибка конфигурации, такие площадки не сохраняются
func validateSite(site *domain.Site) error {
	if site.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(site.Name) > domain.MaxSiteNameLength {
		return fmt.Errorf("%w: name is longer than %d characters", ErrInvalidInput, domain.MaxSiteNameLength)
	}

	if site.Description == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(site.Description) > domain.MaxSiteDescriptionLength {
		return fmt.Errorf("%w: description is longer than %d characters", ErrInvalidInput, domain.MaxSiteDescriptionLength)
	}

	if len(site.TimeSlots) > domain.MaxTimeSlotsPerSite {
		return fmt.Errorf("%w: at most %d time slots allowed", ErrInvalidInput, domain.MaxTimeSlotsPerSite)
	}

	for _, slot := range site.TimeSlots {
		if !domain.IsValidTime(slot.Time) {
			return fmt.Errorf("%w: time slot %q must be HH:MM", ErrInvalidInput, slot.Time)
		}
		if slot.Capacity < 0 || slot.Capacity > domain.MaxSlotCapacity {
			return fmt.Errorf("%w: capacity of %s must be between 0 and %d", ErrInvalidInput, slot.Time, domain.MaxSlotCapacity)
		}
	}

	if dups := site.DuplicateSlotTimes(); len(dups) > 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateTimeSlot, strings.Join(dups, ", "))
	}

	return nil
}
