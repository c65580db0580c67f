package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/heritage-booking/internal/domain"
	bookingRepo "github.com/m04kA/heritage-booking/internal/infra/storage/booking"
	siteRepo "github.com/m04kA/heritage-booking/internal/infra/storage/site"
	"github.com/m04kA/heritage-booking/pkg/metrics"
)

// UseCase use case допуска бронирования: проверяет площадку и слот,
// затем под блокировкой слота сверяет занятость с вместимостью и сохраняет бронирование
type UseCase struct {
	siteRepo     SiteRepository
	bookingRepo  BookingRepository
	txManager    TransactionManager
	metrics      MetricsRecorder
	timeProvider TimeProvider
	logger       Logger
	opts         Options
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	siteRepo SiteRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	metrics MetricsRecorder,
	logger Logger,
	opts Options,
) *UseCase {
	return &UseCase{
		siteRepo:     siteRepo,
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		opts:         opts,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	resp, err := uc.execute(ctx, req)
	if uc.metrics != nil {
		uc.metrics.ObserveAdmission(outcomeOf(err))
	}
	return resp, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: site_id=%q, site_name=%q, date=%s, time=%s",
		req.SiteID, req.SiteName, req.Date, req.Time)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	if uc.opts.OperationTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.opts.OperationTimeout)
		defer cancel()
	}

	now := uc.timeProvider.Now()

	// 2. Получаем площадку
	site, err := uc.findSite(ctx, req)
	if err != nil {
		if errors.Is(err, siteRepo.ErrSiteNotFound) {
			uc.logger.Warn("CreateBooking: site id=%q name=%q not found", req.SiteID, req.SiteName)
			return nil, ErrSiteNotFound
		}
		return nil, uc.failure(ctx, "failed to get site", err)
	}

	// 3. Ищем слот по времени; слот с нулевой вместимостью существует, но всегда заполнен
	slot, ok := site.FindSlot(req.Time)
	if !ok {
		uc.logger.Warn("CreateBooking: site id=%s has no slot at %s", site.ID, req.Time)
		return nil, ErrInvalidTimeSlot
	}

	// 4. Прошедшие даты не бронируются
	if uc.opts.RejectPastDates && isDateInPast(req.Date, now, uc.opts.Location) {
		uc.logger.Warn("CreateBooking: date %s is in the past", req.Date)
		return nil, ErrPastDateNotBookable
	}

	key := domain.SlotKey{SiteID: site.ID, Date: req.Date, Time: slot.Time}
	var result *domain.Booking

	// 5. Подсчет и вставка выполняются под блокировкой слота
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := uc.bookingRepo.LockSlot(txCtx, key); err != nil {
			return fmt.Errorf("%w: failed to lock slot: %v", ErrInternal, err)
		}

		count, err := uc.bookingRepo.CountBySlot(txCtx, key)
		if err != nil {
			return fmt.Errorf("%w: failed to count bookings: %v", ErrInternal, err)
		}

		if count >= slot.Capacity {
			uc.logger.Warn("CreateBooking: slot %s is full, %d/%d spots taken", key, count, slot.Capacity)
			return ErrCapacityExceeded
		}

		uc.logger.Info("CreateBooking: slot %s available, %d/%d spots taken", key, count, slot.Capacity)

		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			SiteID:      site.ID,
			SiteName:    site.Name,
			VisitorName: strings.TrimSpace(req.VisitorName),
			Date:        req.Date,
			Time:        slot.Time,
			CreatedAt:   now,
		})
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSiteNotFound) {
				return ErrSiteNotFound
			}
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrCapacityExceeded) || errors.Is(err, ErrSiteNotFound) {
			return nil, err
		}
		return nil, uc.failure(ctx, "admission failed", err)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s", result.ID)

	return &Response{
		ID:          result.ID,
		SiteID:      result.SiteID,
		SiteName:    result.SiteName,
		VisitorName: result.VisitorName,
		Date:        result.Date,
		Time:        result.Time,
		CreatedAt:   result.CreatedAt,
	}, nil
}

// findSite ищет площадку по ID, а если он не задан - по имени
func (uc *UseCase) findSite(ctx context.Context, req *Request) (*domain.Site, error) {
	if id := strings.TrimSpace(req.SiteID); id != "" {
		return uc.siteRepo.GetByID(ctx, id)
	}
	return uc.siteRepo.GetByName(ctx, req.SiteName)
}

// failure превращает ошибку хранилища в ErrTimeout, если истек срок операции, иначе в ErrInternal
func (uc *UseCase) failure(ctx context.Context, what string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		uc.logger.Warn("CreateBooking: %s: timed out: %v", what, err)
		return fmt.Errorf("%w: %s", ErrTimeout, what)
	}
	uc.logger.Error("CreateBooking: %s: %v", what, err)
	if errors.Is(err, ErrInternal) {
		return err
	}
	return fmt.Errorf("%w: %s: %v", ErrInternal, what, err)
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeAdmitted
	case errors.Is(err, ErrSiteNotFound):
		return metrics.OutcomeSiteNotFound
	case errors.Is(err, ErrInvalidTimeSlot):
		return metrics.OutcomeInvalidTimeSlot
	case errors.Is(err, ErrCapacityExceeded):
		return metrics.OutcomeCapacityExceeded
	case errors.Is(err, ErrPastDateNotBookable):
		return metrics.OutcomePastDate
	case errors.Is(err, ErrInvalidInput):
		return metrics.OutcomeInvalidInput
	case errors.Is(err, ErrTimeout):
		return metrics.OutcomeTimeout
	default:
		return metrics.OutcomeError
	}
}
