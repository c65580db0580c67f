package sites

import (
	"context"
	"errors"
	"fmt"

	siteRepo "github.com/m04kA/heritage-booking/internal/infra/storage/site"
	"github.com/m04kA/heritage-booking/internal/service/sites/models"
)

// Service сервис каталога площадок
type Service struct {
	siteRepo     SiteRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса площадок
func NewService(siteRepo SiteRepository, logger Logger) *Service {
	return &Service{
		siteRepo:     siteRepo,
		timeProvider: realTimeProvider{},
		logger:       logger,
	}
}

// List возвращает все площадки
// Публичный метод
func (s *Service) List(ctx context.Context) ([]*models.SiteResponse, error) {
	sites, err := s.siteRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d sites", len(sites))
	return models.FromDomainSiteList(sites), nil
}

// GetByID получает площадку по ID
// Публичный метод
func (s *Service) GetByID(ctx context.Context, id string) (*models.SiteResponse, error) {
	site, err := s.siteRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, siteRepo.ErrSiteNotFound) {
			s.logger.Warn("GetByID: site id=%s not found", id)
			return nil, ErrSiteNotFound
		}
		s.logger.Error("GetByID: repository error for site id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSite(site), nil
}

// Create создает площадку
// Доступно только администратору
func (s *Service) Create(ctx context.Context, req *models.SiteRequest) (*models.SiteResponse, error) {
	site := req.ToDomainSite()
	s.logger.Info("Create: creating site name=%q with %d slots", site.Name, len(site.TimeSlots))

	if err := validateSite(site); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	now := s.timeProvider.Now()
	site.CreatedAt = now
	site.UpdatedAt = now

	created, err := s.siteRepo.Create(ctx, site)
	if err != nil {
		if errors.Is(err, siteRepo.ErrSiteNameTaken) {
			s.logger.Warn("Create: site name=%q already taken", site.Name)
			return nil, ErrSiteNameTaken
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created site id=%s", created.ID)
	return models.FromDomainSite(created), nil
}

// Update полностью обновляет площадку; изображение сохраняется, если не передано новое.
// Изменение вместимости не затрагивает уже принятые бронирования
// Доступно только администратору
func (s *Service) Update(ctx context.Context, id string, req *models.SiteRequest) (*models.SiteResponse, error) {
	s.logger.Info("Update: updating site id=%s", id)

	existing, err := s.siteRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, siteRepo.ErrSiteNotFound) {
			s.logger.Warn("Update: site id=%s not found", id)
			return nil, ErrSiteNotFound
		}
		s.logger.Error("Update: failed to get site id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Update - get site: %v", ErrInternal, err)
	}

	site := req.ToDomainSite()
	if err := validateSite(site); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	site.ID = existing.ID
	site.CreatedAt = existing.CreatedAt
	site.UpdatedAt = s.timeProvider.Now()
	if site.ImageURL == nil {
		site.ImageURL = existing.ImageURL
	}

	updated, err := s.siteRepo.Update(ctx, site)
	if err != nil {
		switch {
		case errors.Is(err, siteRepo.ErrSiteNotFound):
			s.logger.Warn("Update: site id=%s disappeared", id)
			return nil, ErrSiteNotFound
		case errors.Is(err, siteRepo.ErrSiteNameTaken):
			s.logger.Warn("Update: site name=%q already taken", site.Name)
			return nil, ErrSiteNameTaken
		}
		s.logger.Error("Update: repository error for site id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated site id=%s", id)
	return models.FromDomainSite(updated), nil
}

// Delete удаляет площадку вместе с её бронированиями
// Доступно только администратору
func (s *Service) Delete(ctx context.Context, id string) error {
	s.logger.Info("Delete: deleting site id=%s", id)

	if err := s.siteRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, siteRepo.ErrSiteNotFound) {
			s.logger.Warn("Delete: site id=%s not found", id)
			return ErrSiteNotFound
		}
		s.logger.Error("Delete: repository error for site id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted site id=%s", id)
	return nil
}
