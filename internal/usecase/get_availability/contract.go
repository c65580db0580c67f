package get_availability

import (
	"context"

	"github.com/m04kA/heritage-booking/internal/domain"
)

// SiteRepository интерфейс репозитория площадок
type SiteRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Site, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// ListBySiteInRange возвращает бронирования площадки с датой в [dateStart, dateEnd]
	ListBySiteInRange(ctx context.Context, siteID, dateStart, dateEnd string) ([]*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
