package memory

import (
	"context"
	"sort"

	"github.com/m04kA/heritage-booking/internal/domain"
	siteRepo "github.com/m04kA/heritage-booking/internal/infra/storage/site"
)

// SiteRepository репозиторий площадок в памяти
type SiteRepository struct {
	store *Store
}

// Create сохраняет площадку, генерируя ID, если он не задан
func (r *SiteRepository) Create(ctx context.Context, site *domain.Site) (*domain.Site, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if r.nameTakenLocked(site.Name, "") {
		return nil, siteRepo.ErrSiteNameTaken
	}

	if site.ID == "" {
		site.ID = r.store.newID()
	}
	r.store.sites[site.ID] = cloneSite(site)

	return cloneSite(site), nil
}

// Update перезаписывает площадку, сохраняя CreatedAt
func (r *SiteRepository) Update(ctx context.Context, site *domain.Site) (*domain.Site, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.sites[site.ID]
	if !ok {
		return nil, siteRepo.ErrSiteNotFound
	}
	if r.nameTakenLocked(site.Name, site.ID) {
		return nil, siteRepo.ErrSiteNameTaken
	}

	updated := cloneSite(site)
	updated.CreatedAt = existing.CreatedAt
	r.store.sites[site.ID] = updated

	return cloneSite(updated), nil
}

// Delete удаляет площадку вместе с её бронированиями
func (r *SiteRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.sites[id]; !ok {
		return siteRepo.ErrSiteNotFound
	}
	delete(r.store.sites, id)

	for bookingID, b := range r.store.bookings {
		if b.SiteID == id {
			delete(r.store.bookings, bookingID)
		}
	}

	return nil
}

// GetByID получает площадку по ID
func (r *SiteRepository) GetByID(ctx context.Context, id string) (*domain.Site, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	site, ok := r.store.sites[id]
	if !ok {
		return nil, siteRepo.ErrSiteNotFound
	}
	return cloneSite(site), nil
}

// GetByName получает площадку по точному совпадению имени
func (r *SiteRepository) GetByName(ctx context.Context, name string) (*domain.Site, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, site := range r.store.sites {
		if site.Name == name {
			return cloneSite(site), nil
		}
	}
	return nil, siteRepo.ErrSiteNotFound
}

// List возвращает все площадки в порядке имени
func (r *SiteRepository) List(ctx context.Context) ([]*domain.Site, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	sites := make([]*domain.Site, 0, len(r.store.sites))
	for _, site := range r.store.sites {
		sites = append(sites, cloneSite(site))
	}
	sort.Slice(sites, func(i, j int) bool { return sites[i].Name < sites[j].Name })

	return sites, nil
}

func (r *SiteRepository) nameTakenLocked(name, exceptID string) bool {
	for id, site := range r.store.sites {
		if id != exceptID && site.Name == name {
			return true
		}
	}
	return false
}
