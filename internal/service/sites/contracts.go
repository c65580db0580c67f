package sites

import (
	"context"
	"time"

	"github.com/m04kA/heritage-booking/internal/domain"
)

// SiteRepository интерфейс репозитория площадок
type SiteRepository interface {
	Create(ctx context.Context, site *domain.Site) (*domain.Site, error)
	Update(ctx context.Context, site *domain.Site) (*domain.Site, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Site, error)
	List(ctx context.Context) ([]*domain.Site, error)
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

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time { return time.Now().UTC() }
