package mongostore

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/heritage-booking/internal/domain"
	bookingRepo "github.com/m04kA/heritage-booking/internal/infra/storage/booking"
	siteRepo "github.com/m04kA/heritage-booking/internal/infra/storage/site"
)

// newTestStore подключается к MongoDB из MONGODB_TEST_URI и создает отдельную базу на тест
func newTestStore(t *testing.T) *Store {
	t.Helper()

	uri := os.Getenv("MONGODB_TEST_URI")
	if uri == "" {
		t.Skip("MONGODB_TEST_URI is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbName := "heritage_test_" + uuid.NewString()[:8]
	store, err := Connect(ctx, uri, dbName, time.Second)
	require.NoError(t, err)
	require.NoError(t, store.EnsureIndexes(ctx))

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = store.client.Database(dbName).Drop(ctx)
		_ = store.Disconnect(ctx)
	})

	return store
}

func TestSiteRepository_CRUD(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	site, err := store.Sites().Create(ctx, &domain.Site{
		Name:        "Fort A",
		Description: "Old fort",
		TimeSlots:   []domain.TimeSlot{{Time: "10:00", Capacity: 2}},
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	require.NoError(t, err)

	_, err = store.Sites().Create(ctx, &domain.Site{Name: "Fort A", Description: "dup"})
	assert.ErrorIs(t, err, siteRepo.ErrSiteNameTaken)

	byName, err := store.Sites().GetByName(ctx, "Fort A")
	require.NoError(t, err)
	assert.Equal(t, site.ID, byName.ID)
	assert.Equal(t, []domain.TimeSlot{{Time: "10:00", Capacity: 2}}, byName.TimeSlots)

	site.Description = "Renovated fort"
	updated, err := store.Sites().Update(ctx, site)
	require.NoError(t, err)
	assert.Equal(t, "Renovated fort", updated.Description)
	assert.True(t, updated.CreatedAt.Equal(now))

	_, err = store.Bookings().Create(ctx, &domain.Booking{SiteID: site.ID, Date: "2024-06-01", Time: "10:00"})
	require.NoError(t, err)

	require.NoError(t, store.Sites().Delete(ctx, site.ID))
	_, err = store.Sites().GetByID(ctx, site.ID)
	assert.ErrorIs(t, err, siteRepo.ErrSiteNotFound)

	all, err := store.Bookings().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestBookingRepository_CountAndRange(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	site, err := store.Sites().Create(ctx, &domain.Site{Name: "Fort B", Description: "d"})
	require.NoError(t, err)

	for _, date := range []string{"2024-05-31", "2024-06-01", "2024-06-01", "2024-07-01"} {
		_, err := store.Bookings().Create(ctx, &domain.Booking{SiteID: site.ID, SiteName: site.Name, Date: date, Time: "10:00"})
		require.NoError(t, err)
	}

	count, err := store.Bookings().CountBySlot(ctx, domain.SlotKey{SiteID: site.ID, Date: "2024-06-01", Time: "10:00"})
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	inRange, err := store.Bookings().ListBySiteInRange(ctx, site.ID, "2024-06-01", "2024-06-30")
	require.NoError(t, err)
	assert.Len(t, inRange, 2)

	_, err = store.Bookings().Create(ctx, &domain.Booking{SiteID: "missing", Date: "2024-06-01", Time: "10:00"})
	assert.ErrorIs(t, err, bookingRepo.ErrSiteNotFound)

	assert.ErrorIs(t, store.Bookings().Delete(ctx, "missing"), bookingRepo.ErrBookingNotFound)
}

func TestLockSlot_SerializesSameKey(t *testing.T) {
	store := newTestStore(t)
	tx := store.TxManager()
	repo := store.Bookings()
	key := domain.SlotKey{SiteID: "s", Date: "2024-06-01", Time: "10:00"}

	assert.ErrorIs(t, repo.LockSlot(context.Background(), key), bookingRepo.ErrNoTransaction)

	var (
		mu      sync.Mutex
		inside  int
		maxSeen int
		wg      sync.WaitGroup
	)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := tx.Do(context.Background(), func(ctx context.Context) error {
				if err := repo.LockSlot(ctx, key); err != nil {
					return err
				}
				mu.Lock()
				inside++
				if inside > maxSeen {
					maxSeen = inside
				}
				mu.Unlock()

				time.Sleep(10 * time.Millisecond)

				mu.Lock()
				inside--
				mu.Unlock()
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
}

func TestLockSlot_StealsExpiredLock(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	key := "s|2024-06-01|10:00"

	past := time.Now().Add(-time.Minute)
	_, err := store.locks.InsertOne(ctx, lockDocument{ID: key, Owner: "crashed", ExpiresAt: past, CreatedAt: past})
	require.NoError(t, err)

	lockCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	require.NoError(t, store.acquireLock(lockCtx, key, "me"))

	store.releaseLock(ctx, key, "me")
	count, err := store.locks.CountDocuments(ctx, map[string]string{"_id": key})
	require.NoError(t, err)
	assert.Zero(t, count)
}
