package create_booking

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/heritage-booking/internal/domain"
	"github.com/m04kA/heritage-booking/internal/infra/storage/memory"
	createBooking "github.com/m04kA/heritage-booking/internal/usecase/create_booking"
	"github.com/m04kA/heritage-booking/pkg/logger"
)

type stubUseCase struct {
	err  error
	got  *createBooking.Request
	resp *createBooking.Response
}

func (s *stubUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	s.got = req
	return s.resp, s.err
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "invalid input", err: fmt.Errorf("%w: date", createBooking.ErrInvalidInput), wantStatus: http.StatusBadRequest},
		{name: "site not found", err: createBooking.ErrSiteNotFound, wantStatus: http.StatusNotFound},
		{name: "invalid slot", err: createBooking.ErrInvalidTimeSlot, wantStatus: http.StatusBadRequest},
		{name: "past date", err: createBooking.ErrPastDateNotBookable, wantStatus: http.StatusBadRequest},
		{name: "capacity exceeded", err: createBooking.ErrCapacityExceeded, wantStatus: http.StatusConflict},
		{name: "timeout", err: createBooking.ErrTimeout, wantStatus: http.StatusGatewayTimeout},
		{name: "internal", err: fmt.Errorf("%w: boom", createBooking.ErrInternal), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &stubUseCase{err: tt.err}
			h := NewHandler(uc, logger.NewNop())

			body := `{"siteName":"Fort A","visitorName":"Ann","date":"2024-06-15","time":"10:00"}`
			rec := httptest.NewRecorder()
			h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body)))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
			require.NotNil(t, uc.got)
			assert.Equal(t, "Fort A", uc.got.SiteName)
		})
	}
}

func TestHandler_InvalidBody(t *testing.T) {
	uc := &stubUseCase{}
	h := NewHandler(uc, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(`{"siteName":`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, uc.got)
}

func TestHandler_AdmitsUntilFull(t *testing.T) {
	store := memory.NewStore()
	_, err := store.Sites().Create(context.Background(), &domain.Site{
		Name:        "Fort A",
		Description: "Hill fort",
		TimeSlots:   []domain.TimeSlot{{Time: "10:00", Capacity: 1}},
	})
	require.NoError(t, err)

	uc := createBooking.NewUseCase(store.Sites(), store.Bookings(), store.TxManager(), nil, logger.NewNop(),
		createBooking.Options{Location: time.UTC, OperationTimeout: time.Second})
	h := NewHandler(uc, logger.NewNop())

	body := `{"siteName":"Fort A","visitorName":"Ann","date":"2999-06-15","time":"10:00"}`

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body)))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"visitorName":"Ann"`)
	assert.Contains(t, rec.Body.String(), `"date":"2999-06-15"`)

	rec = httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body)))
	assert.Equal(t, http.StatusConflict, rec.Code)
}
