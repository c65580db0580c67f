package update_site

import (
	"context"

	"github.com/m04kA/heritage-booking/internal/service/sites/models"
)

type SiteService interface {
	Update(ctx context.Context, id string, req *models.SiteRequest) (*models.SiteResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
