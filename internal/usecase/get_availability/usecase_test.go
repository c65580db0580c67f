package get_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/heritage-booking/internal/domain"
	"github.com/m04kA/heritage-booking/internal/infra/storage/memory"
	"github.com/m04kA/heritage-booking/pkg/logger"
)

func seed(t *testing.T) (*memory.Store, *domain.Site) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	site, err := store.Sites().Create(ctx, &domain.Site{
		Name:        "Fort A",
		Description: "Hill fort",
		TimeSlots:   []domain.TimeSlot{{Time: "10:00", Capacity: 2}},
	})
	require.NoError(t, err)

	other, err := store.Sites().Create(ctx, &domain.Site{
		Name:        "Fort B",
		Description: "Sea fort",
		TimeSlots:   []domain.TimeSlot{{Time: "10:00", Capacity: 2}},
	})
	require.NoError(t, err)

	for _, b := range []*domain.Booking{
		{SiteID: site.ID, SiteName: site.Name, VisitorName: "Alice", Date: "2024-06-01", Time: "10:00"},
		{SiteID: site.ID, SiteName: site.Name, VisitorName: "Bob", Date: "2024-06-01", Time: "10:00"},
		{SiteID: site.ID, SiteName: site.Name, VisitorName: "Zed", Date: "2024-07-01", Time: "10:00"},
		{SiteID: other.ID, SiteName: other.Name, VisitorName: "Oli", Date: "2024-06-02", Time: "10:00"},
	} {
		_, err := store.Bookings().Create(ctx, b)
		require.NoError(t, err)
	}

	return store, site
}

func TestExecute_June2024(t *testing.T) {
	store, site := seed(t)
	uc := NewUseCase(store.Sites(), store.Bookings(), logger.NewNop(), time.Second)

	resp, err := uc.Execute(context.Background(), &Request{SiteID: site.ID, Year: 2024, Month: 6})
	require.NoError(t, err)

	require.Len(t, resp.Days, 30)

	first := resp.Days["2024-06-01"]
	assert.Equal(t, domain.SlotAvailability{Capacity: 2, Booked: 2, Remaining: 0}, first.TimeSlots["10:00"])
	assert.True(t, first.FullyBooked)

	// бронирования другой площадки не учитываются
	assert.Equal(t, 0, resp.Days["2024-06-02"].TimeSlots["10:00"].Booked)

	fullyBooked := 0
	for _, d := range resp.Days {
		if d.FullyBooked {
			fullyBooked++
		}
	}
	assert.Equal(t, 1, fullyBooked)
}

func TestExecute_LeapFebruary(t *testing.T) {
	store, site := seed(t)
	uc := NewUseCase(store.Sites(), store.Bookings(), logger.NewNop(), 0)

	resp, err := uc.Execute(context.Background(), &Request{SiteID: site.ID, Year: 2024, Month: 2})
	require.NoError(t, err)
	assert.Len(t, resp.Days, 29)

	resp, err = uc.Execute(context.Background(), &Request{SiteID: site.ID, Year: 2023, Month: 2})
	require.NoError(t, err)
	assert.Len(t, resp.Days, 28)
}

func TestExecute_Errors(t *testing.T) {
	store, site := seed(t)
	uc := NewUseCase(store.Sites(), store.Bookings(), logger.NewNop(), time.Second)

	_, err := uc.Execute(context.Background(), &Request{SiteID: "missing", Year: 2024, Month: 6})
	assert.ErrorIs(t, err, ErrSiteNotFound)

	_, err = uc.Execute(context.Background(), &Request{SiteID: site.ID, Year: 2024, Month: 13})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{Year: 2024, Month: 6})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

type slowBookings struct{}

func (slowBookings) ListBySiteInRange(ctx context.Context, _, _, _ string) ([]*domain.Booking, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestExecute_Timeout(t *testing.T) {
	store, site := seed(t)
	uc := NewUseCase(store.Sites(), slowBookings{}, logger.NewNop(), 20*time.Millisecond)

	resp, err := uc.Execute(context.Background(), &Request{SiteID: site.ID, Year: 2024, Month: 6})
	assert.ErrorIs(t, err, ErrTimeout)
	assert.Nil(t, resp)
}
