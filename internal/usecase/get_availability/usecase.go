package get_availability

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/heritage-booking/internal/availability"
	"github.com/m04kA/heritage-booking/internal/domain"
	siteRepo "github.com/m04kA/heritage-booking/internal/infra/storage/site"
)

// UseCase use case расчета загрузки площадки за месяц.
// Чтение не сериализуется с допуском: результат может слегка отставать от записей
type UseCase struct {
	siteRepo    SiteRepository
	bookingRepo BookingRepository
	logger      Logger
	timeout     time.Duration
}

// NewUseCase создает новый экземпляр use case. timeout = 0 - без ограничения
func NewUseCase(
	siteRepo SiteRepository,
	bookingRepo BookingRepository,
	logger Logger,
	timeout time.Duration,
) *UseCase {
	return &UseCase{
		siteRepo:    siteRepo,
		bookingRepo: bookingRepo,
		logger:      logger,
		timeout:     timeout,
	}
}

// Execute выполняет use case получения загрузки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: site=%s, month=%d-%02d", req.SiteID, req.Year, req.Month)

	// 1. Валидация и границы месяца
	if strings.TrimSpace(req.SiteID) == "" {
		return nil, fmt.Errorf("%w: siteId is required", ErrInvalidInput)
	}

	rangeStart, rangeEnd, err := availability.MonthRange(req.Year, req.Month)
	if err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if uc.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.timeout)
		defer cancel()
	}

	// 2. Получаем площадку
	site, err := uc.siteRepo.GetByID(ctx, req.SiteID)
	if err != nil {
		if errors.Is(err, siteRepo.ErrSiteNotFound) {
			uc.logger.Warn("GetAvailability: site id=%s not found", req.SiteID)
			return nil, ErrSiteNotFound
		}
		return nil, uc.failure(ctx, "failed to get site", err)
	}

	// 3. Бронирования площадки за месяц
	bookings, err := uc.bookingRepo.ListBySiteInRange(ctx, site.ID,
		rangeStart.Format(domain.DateFormat), rangeEnd.Format(domain.DateFormat))
	if err != nil {
		return nil, uc.failure(ctx, "failed to get bookings", err)
	}

	// 4. Расчет
	days := availability.Compute(site, bookings, rangeStart, rangeEnd)

	uc.logger.Info("GetAvailability: computed %d days from %d bookings for site=%s",
		len(days), len(bookings), site.ID)

	return &Response{
		SiteID: site.ID,
		Year:   req.Year,
		Month:  req.Month,
		Days:   days,
	}, nil
}

func (uc *UseCase) failure(ctx context.Context, what string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		uc.logger.Warn("GetAvailability: %s: timed out: %v", what, err)
		return fmt.Errorf("%w: %s", ErrTimeout, what)
	}
	uc.logger.Error("GetAvailability: %s: %v", what, err)
	return fmt.Errorf("%w: %s: %v", ErrInternal, what, err)
}
