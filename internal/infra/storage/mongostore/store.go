package mongostore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	sitesCollection    = "sites"
	bookingsCollection = "bookings"
	locksCollection    = "slot_locks"

	defaultLockTTL       = 30 * time.Second
	defaultRetryInterval = 20 * time.Millisecond
	releaseTimeout       = 5 * time.Second
)

// Store хранилище площадок и бронирований в MongoDB
type Store struct {
	client   *mongo.Client
	sites    *mongo.Collection
	bookings *mongo.Collection
	locks    *mongo.Collection

	lockTTL       time.Duration
	retryInterval time.Duration
	newID         func() string
	now           func() time.Time
}

// Connect подключается к MongoDB и проверяет соединение
func Connect(ctx context.Context, uri, database string, lockTTL time.Duration) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("%w: ping: %v", ErrConnect, err)
	}

	return New(client.Database(database), lockTTL), nil
}

// New создает хранилище поверх базы данных
func New(db *mongo.Database, lockTTL time.Duration) *Store {
	if lockTTL <= 0 {
		lockTTL = defaultLockTTL
	}
	return &Store{
		client:        db.Client(),
		sites:         db.Collection(sitesCollection),
		bookings:      db.Collection(bookingsCollection),
		locks:         db.Collection(locksCollection),
		lockTTL:       lockTTL,
		retryInterval: defaultRetryInterval,
		newID:         uuid.NewString,
		now:           time.Now,
	}
}

// EnsureIndexes создает индексы: уникальное имя площадки, ключ слота,
// TTL для забытых блокировок
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.sites.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return fmt.Errorf("%w: sites: %v", ErrIndexes, err)
	}

	_, err = s.bookings.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "siteId", Value: 1}, {Key: "date", Value: 1}, {Key: "time", Value: 1}}},
		{Keys: bson.D{{Key: "siteName", Value: 1}, {Key: "date", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("%w: bookings: %v", ErrIndexes, err)
	}

	_, err = s.locks.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expiresAt", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		return fmt.Errorf("%w: locks: %v", ErrIndexes, err)
	}

	return nil
}

// Ping проверяет соединение
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// Disconnect закрывает соединение
func (s *Store) Disconnect(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Sites возвращает репозиторий площадок
func (s *Store) Sites() *SiteRepository {
	return &SiteRepository{store: s}
}

// Bookings возвращает репозиторий бронирований
func (s *Store) Bookings() *BookingRepository {
	return &BookingRepository{store: s}
}

// TxManager возвращает менеджер областей блокировок
func (s *Store) TxManager() *TxManager {
	return &TxManager{}
}
