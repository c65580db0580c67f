package create_booking

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/heritage-booking/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.SiteID) == "" && strings.TrimSpace(req.SiteName) == "" {
		return fmt.Errorf("%w: siteId or siteName is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.VisitorName) == "" {
		return fmt.Errorf("%w: visitorName is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(req.VisitorName) > domain.MaxVisitorNameLength {
		return fmt.Errorf("%w: visitorName is longer than %d characters", ErrInvalidInput, domain.MaxVisitorNameLength)
	}

	if _, ok := domain.ParseDate(req.Date); !ok {
		return fmt.Errorf("%w: date must be YYYY-MM-DD, got %q", ErrInvalidInput, req.Date)
	}

	// Время не проверяется на формат: несуществующий слот даст ErrInvalidTimeSlot
	if req.Time == "" {
		return fmt.Errorf("%w: time is required", ErrInvalidInput)
	}

	return nil
}

// isDateInPast сравнивает даты как строки YYYY-MM-DD с сегодняшним днем в loc
func isDateInPast(date string, now time.Time, loc *time.Location) bool {
	if loc != nil {
		now = now.In(loc)
	}
	return date < now.Format(domain.DateFormat)
}
