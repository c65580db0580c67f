package health

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/heritage-booking/internal/api/handlers"
)

const pingTimeout = 2 * time.Second

// Pinger проверка доступности хранилища
type Pinger interface {
	Ping(ctx context.Context) error
}

type Logger interface {
	Error(format string, v ...interface{})
}

// Response тело ответа health-check
type Response struct {
	Status string `json:"status"`
}

type Handler struct {
	pinger Pinger
	logger Logger
}

// NewHandler создает health-check; pinger может быть nil
func NewHandler(pinger Pinger, logger Logger) *Handler {
	return &Handler{
		pinger: pinger,
		logger: logger,
	}
}

// Handle GET /health
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if h.pinger != nil {
		ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
		defer cancel()

		if err := h.pinger.Ping(ctx); err != nil {
			h.logger.Error("GET /health - Storage unavailable: %v", err)
			handlers.RespondJSON(w, http.StatusServiceUnavailable, Response{Status: "unavailable"})
			return
		}
	}

	handlers.RespondJSON(w, http.StatusOK, Response{Status: "ok"})
}
