package update_site

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/heritage-booking/internal/infra/storage/memory"
	"github.com/m04kA/heritage-booking/internal/service/sites"
	"github.com/m04kA/heritage-booking/internal/service/sites/models"
	"github.com/m04kA/heritage-booking/pkg/logger"
)

func TestHandler(t *testing.T) {
	svc := sites.NewService(memory.NewStore().Sites(), logger.NewNop())
	ctx := context.Background()

	fort, err := svc.Create(ctx, &models.SiteRequest{Name: "Fort A", Description: "d"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &models.SiteRequest{Name: "Temple B", Description: "d"})
	require.NoError(t, err)

	r := mux.NewRouter()
	r.HandleFunc("/api/sites/{siteId}", NewHandler(svc, logger.NewNop()).Handle).Methods(http.MethodPut)

	tests := []struct {
		name       string
		id         string
		body       string
		wantStatus int
	}{
		{name: "updated", id: fort.ID, body: `{"name":"Fort A","description":"Restored","timeSlots":[{"time":"09:00","capacity":3}]}`, wantStatus: http.StatusOK},
		{name: "not found", id: "missing", body: `{"name":"X","description":"d"}`, wantStatus: http.StatusNotFound},
		{name: "name taken", id: fort.ID, body: `{"name":"Temple B","description":"d"}`, wantStatus: http.StatusConflict},
		{name: "empty description", id: fort.ID, body: `{"name":"Fort A","description":""}`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/sites/"+tt.id, strings.NewReader(tt.body)))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}

	got, err := svc.GetByID(ctx, fort.ID)
	require.NoError(t, err)
	assert.Equal(t, "Restored", got.Description)
	assert.Equal(t, []models.TimeSlot{{Time: "09:00", Capacity: 3}}, got.TimeSlots)
}
