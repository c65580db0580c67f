package mongostore

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/m04kA/heritage-booking/internal/domain"
	bookingRepo "github.com/m04kA/heritage-booking/internal/infra/storage/booking"
	"github.com/m04kA/heritage-booking/pkg/keylock"
)

// BookingRepository репозиторий бронирований в MongoDB
type BookingRepository struct {
	store *Store
}

// LockSlot берет документ-блокировку слота до конца области TxManager.Do
func (r *BookingRepository) LockSlot(ctx context.Context, key domain.SlotKey) error {
	sc, ok := keylock.ScopeFromContext(ctx)
	if !ok {
		return bookingRepo.ErrNoTransaction
	}

	k := key.String()
	if sc.Holds(k) {
		return nil
	}

	owner := uuid.NewString()
	if err := r.store.acquireLock(ctx, k, owner); err != nil {
		return err
	}
	sc.Add(k, func() { r.store.releaseLock(ctx, k, owner) })

	return nil
}

// CountBySlot считает бронирования с точным совпадением (площадка, дата, время)
func (r *BookingRepository) CountBySlot(ctx context.Context, key domain.SlotKey) (int, error) {
	count, err := r.store.bookings.CountDocuments(ctx, bson.M{
		"siteId": key.SiteID,
		"date":   key.Date,
		"time":   key.Time,
	})
	if err != nil {
		return 0, fmt.Errorf("%w: CountBySlot - count bookings: %v", ErrQuery, err)
	}
	return int(count), nil
}

// Create сохраняет бронирование; площадка должна существовать
func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	exists, err := r.store.sites.CountDocuments(ctx, bson.M{"_id": booking.SiteID}, options.Count().SetLimit(1))
	if err != nil {
		return nil, fmt.Errorf("%w: Create - check site: %v", ErrQuery, err)
	}
	if exists == 0 {
		return nil, bookingRepo.ErrSiteNotFound
	}

	if booking.ID == "" {
		booking.ID = r.store.newID()
	}

	if _, err := r.store.bookings.InsertOne(ctx, toBookingDocument(booking)); err != nil {
		return nil, fmt.Errorf("%w: Create - insert booking: %v", ErrQuery, err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	var doc bookingDocument
	err := r.store.bookings.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, bookingRepo.ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - find booking: %v", ErrQuery, err)
	}
	return doc.toDomain(), nil
}

// ListBySiteInRange возвращает бронирования площадки с датой в [dateStart, dateEnd] (строковое сравнение)
func (r *BookingRepository) ListBySiteInRange(ctx context.Context, siteID, dateStart, dateEnd string) ([]*domain.Booking, error) {
	filter := bson.M{
		"siteId": siteID,
		"date":   bson.M{"$gte": dateStart, "$lte": dateEnd},
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}})

	return r.find(ctx, "ListBySiteInRange", filter, opts)
}

// List возвращает все бронирования, сначала новые
func (r *BookingRepository) List(ctx context.Context) ([]*domain.Booking, error) {
	return r.ListWithFilter(ctx, domain.BookingsFilter{})
}

// ListWithFilter возвращает бронирования с необязательными фильтрами, сначала новые
func (r *BookingRepository) ListWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	query := bson.M{}
	if filter.SiteID != nil {
		query["siteId"] = *filter.SiteID
	}
	if filter.SiteName != nil {
		query["siteName"] = *filter.SiteName
	}
	if filter.Date != nil {
		query["date"] = *filter.Date
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	return r.find(ctx, "ListWithFilter", query, opts)
}

// Delete удаляет бронирование
func (r *BookingRepository) Delete(ctx context.Context, id string) error {
	res, err := r.store.bookings.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("%w: Delete - delete booking: %v", ErrQuery, err)
	}
	if res.DeletedCount == 0 {
		return bookingRepo.ErrBookingNotFound
	}
	return nil
}

func (r *BookingRepository) find(ctx context.Context, op string, filter bson.M, opts *options.FindOptions) ([]*domain.Booking, error) {
	cursor, err := r.store.bookings.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - find bookings: %v", ErrQuery, op, err)
	}
	defer cursor.Close(ctx)

	bookings := make([]*domain.Booking, 0)
	for cursor.Next(ctx) {
		var doc bookingDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%w: %s - decode booking: %v", ErrDecode, op, err)
		}
		bookings = append(bookings, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - cursor: %v", ErrQuery, op, err)
	}

	return bookings, nil
}
