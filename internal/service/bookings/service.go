package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/heritage-booking/internal/domain"
	bookingRepo "github.com/m04kA/heritage-booking/internal/infra/storage/booking"
	"github.com/m04kA/heritage-booking/internal/service/bookings/models"
)

// Service сервис для просмотра и удаления бронирований
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// ListAll возвращает все бронирования, новые первыми
// Доступно только администратору
func (s *Service) ListAll(ctx context.Context) ([]*models.BookingResponse, error) {
	bookings, err := s.bookingRepo.List(ctx)
	if err != nil {
		s.logger.Error("ListAll: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListAll - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListAll: fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// ListPublic возвращает бронирования без персональных данных
// с необязательной фильтрацией по площадке и дате
func (s *Service) ListPublic(ctx context.Context, f models.PublicFilter) ([]*models.PublicBookingResponse, error) {
	filter := f.ToDomainFilter()

	if filter.Date != nil {
		if _, ok := domain.ParseDate(*filter.Date); !ok {
			s.logger.Warn("ListPublic: invalid date=%q", *filter.Date)
			return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
		}
	}

	bookings, err := s.bookingRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ListPublic: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListPublic - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListPublic: fetched %d bookings", len(bookings))
	return models.FromDomainBookingPublicList(bookings), nil
}

// GetByID получает бронирование по ID
// Доступно только администратору
func (s *Service) GetByID(ctx context.Context, id string) (*models.BookingResponse, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// Delete удаляет бронирование, освобождая место в слоте
// Доступно только администратору
func (s *Service) Delete(ctx context.Context, id string) error {
	s.logger.Info("Delete: deleting booking id=%s", id)

	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Delete: booking id=%s not found", id)
			return ErrBookingNotFound
		}
		s.logger.Error("Delete: repository error for booking id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted booking id=%s", id)
	return nil
}
