package memory

import (
	"context"
	"sort"

	"github.com/m04kA/heritage-booking/internal/domain"
	bookingRepo "github.com/m04kA/heritage-booking/internal/infra/storage/booking"
	"github.com/m04kA/heritage-booking/pkg/keylock"
)

// BookingRepository репозиторий бронирований в памяти
type BookingRepository struct {
	store *Store
}

// LockSlot берет блокировку слота до конца области TxManager.Do
func (r *BookingRepository) LockSlot(ctx context.Context, key domain.SlotKey) error {
	sc, ok := keylock.ScopeFromContext(ctx)
	if !ok {
		return bookingRepo.ErrNoTransaction
	}

	k := key.String()
	if sc.Holds(k) {
		return nil
	}

	release, err := r.store.locks.Lock(ctx, k)
	if err != nil {
		return err
	}
	sc.Add(k, release)

	return nil
}

// CountBySlot считает бронирования с точным совпадением (площадка, дата, время)
func (r *BookingRepository) CountBySlot(ctx context.Context, key domain.SlotKey) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	count := 0
	for _, b := range r.store.bookings {
		if b.SlotKey() == key {
			count++
		}
	}
	return count, nil
}

// Create сохраняет бронирование; площадка должна существовать
func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.sites[booking.SiteID]; !ok {
		return nil, bookingRepo.ErrSiteNotFound
	}

	if booking.ID == "" {
		booking.ID = r.store.newID()
	}
	r.store.bookings[booking.ID] = cloneBooking(booking)

	return cloneBooking(booking), nil
}

// GetByID получает бронирование по ID
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	b, ok := r.store.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return cloneBooking(b), nil
}

// ListBySiteInRange возвращает бронирования площадки с датой в [dateStart, dateEnd] (строковое сравнение)
func (r *BookingRepository) ListBySiteInRange(ctx context.Context, siteID, dateStart, dateEnd string) ([]*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]*domain.Booking, 0)
	for _, b := range r.store.bookings {
		if b.SiteID == siteID && b.Date >= dateStart && b.Date <= dateEnd {
			result = append(result, cloneBooking(b))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Date != result[j].Date {
			return result[i].Date < result[j].Date
		}
		return result[i].Time < result[j].Time
	})

	return result, nil
}

// List возвращает все бронирования, сначала новые
func (r *BookingRepository) List(ctx context.Context) ([]*domain.Booking, error) {
	return r.ListWithFilter(ctx, domain.BookingsFilter{})
}

// ListWithFilter возвращает бронирования с необязательными фильтрами, сначала новые
func (r *BookingRepository) ListWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]*domain.Booking, 0)
	for _, b := range r.store.bookings {
		if filter.SiteID != nil && b.SiteID != *filter.SiteID {
			continue
		}
		if filter.SiteName != nil && b.SiteName != *filter.SiteName {
			continue
		}
		if filter.Date != nil && b.Date != *filter.Date {
			continue
		}
		result = append(result, cloneBooking(b))
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}

// Delete удаляет бронирование
func (r *BookingRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	delete(r.store.bookings, id)

	return nil
}
