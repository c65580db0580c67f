package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/heritage-booking/internal/domain"
)

// SiteRepository интерфейс репозитория площадок
type SiteRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Site, error)
	GetByName(ctx context.Context, name string) (*domain.Site, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// LockSlot сериализует допуск на слот до конца транзакции
	LockSlot(ctx context.Context, key domain.SlotKey) error
	CountBySlot(ctx context.Context, key domain.SlotKey) (int, error)
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// TransactionManager интерфейс для управления транзакциями.
// Do открывает транзакцию READ COMMITTED: после LockSlot каждый запрос видит свежий снимок
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// MetricsRecorder учет исходов допуска бронирований
type MetricsRecorder interface {
	ObserveAdmission(outcome string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
