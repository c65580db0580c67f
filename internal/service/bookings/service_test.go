package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/heritage-booking/internal/domain"
	"github.com/m04kA/heritage-booking/internal/infra/storage/memory"
	"github.com/m04kA/heritage-booking/internal/service/bookings/models"
	"github.com/m04kA/heritage-booking/pkg/logger"
)

func seed(t *testing.T) (*Service, []*domain.Booking) {
	t.Helper()

	store := memory.NewStore()
	ctx := context.Background()

	fort, err := store.Sites().Create(ctx, &domain.Site{Name: "Fort A", Description: "d"})
	require.NoError(t, err)
	temple, err := store.Sites().Create(ctx, &domain.Site{Name: "Temple B", Description: "d"})
	require.NoError(t, err)

	base := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	input := []*domain.Booking{
		{SiteID: fort.ID, SiteName: fort.Name, VisitorName: "Ann", Date: "2024-06-10", Time: "10:00", CreatedAt: base},
		{SiteID: fort.ID, SiteName: fort.Name, VisitorName: "Bob", Date: "2024-06-11", Time: "10:00", CreatedAt: base.Add(time.Minute)},
		{SiteID: temple.ID, SiteName: temple.Name, VisitorName: "Cid", Date: "2024-06-10", Time: "09:00", CreatedAt: base.Add(2 * time.Minute)},
	}

	created := make([]*domain.Booking, 0, len(input))
	for _, b := range input {
		c, err := store.Bookings().Create(ctx, b)
		require.NoError(t, err)
		created = append(created, c)
	}

	return NewService(store.Bookings(), logger.NewNop()), created
}

func TestService_ListAll_NewestFirst(t *testing.T) {
	svc, created := seed(t)

	list, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, created[2].ID, list[0].ID)
	assert.Equal(t, "Cid", list[0].VisitorName)
	assert.Equal(t, created[0].ID, list[2].ID)
}

func TestService_ListPublic(t *testing.T) {
	svc, created := seed(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		filter  models.PublicFilter
		wantIDs []string
	}{
		{name: "no filter", filter: models.PublicFilter{}, wantIDs: []string{created[2].ID, created[1].ID, created[0].ID}},
		{name: "by date", filter: models.PublicFilter{Date: "2024-06-10"}, wantIDs: []string{created[2].ID, created[0].ID}},
		{name: "by site id", filter: models.PublicFilter{SiteID: created[0].SiteID}, wantIDs: []string{created[1].ID, created[0].ID}},
		{name: "by site name and date", filter: models.PublicFilter{SiteName: "Fort A", Date: "2024-06-11"}, wantIDs: []string{created[1].ID}},
		{name: "blank values ignored", filter: models.PublicFilter{SiteName: "  "}, wantIDs: []string{created[2].ID, created[1].ID, created[0].ID}},
		{name: "no match", filter: models.PublicFilter{Date: "2024-07-01"}, wantIDs: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := svc.ListPublic(ctx, tt.filter)
			require.NoError(t, err)

			ids := make([]string, 0, len(list))
			for _, b := range list {
				ids = append(ids, b.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}

	_, err := svc.ListPublic(ctx, models.PublicFilter{Date: "2024-6-1"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Delete(t *testing.T) {
	svc, created := seed(t)
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, created[0].ID))
	assert.ErrorIs(t, svc.Delete(ctx, created[0].ID), ErrBookingNotFound)

	_, err := svc.GetByID(ctx, created[0].ID)
	assert.ErrorIs(t, err, ErrBookingNotFound)

	got, err := svc.GetByID(ctx, created[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "Bob", got.VisitorName)
}
