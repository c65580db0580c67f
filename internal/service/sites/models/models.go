package models

import (
	"strings"
	"time"

	"github.com/m04kA/heritage-booking/internal/domain"
)

// TimeSlot слот площадки
type TimeSlot struct {
	Time     string `json:"time"`     // "HH:MM"
	Capacity int    `json:"capacity"` // 0 - слот существует, но бронировать нельзя
}

// SiteRequest запрос на создание или полное обновление площадки
type SiteRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	ImageURL    *string    `json:"imageUrl,omitempty"` // при обновлении nil сохраняет текущее изображение
	TimeSlots   []TimeSlot `json:"timeSlots"`
}

// SiteResponse ответ с данными площадки
type SiteResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	ImageURL    *string    `json:"imageUrl,omitempty"`
	TimeSlots   []TimeSlot `json:"timeSlots"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// ToDomainSite конвертирует запрос в доменную модель, обрезая пробелы
func (r *SiteRequest) ToDomainSite() *domain.Site {
	slots := make([]domain.TimeSlot, 0, len(r.TimeSlots))
	for _, s := range r.TimeSlots {
		slots = append(slots, domain.TimeSlot{Time: strings.TrimSpace(s.Time), Capacity: s.Capacity})
	}

	var imageURL *string
	if r.ImageURL != nil {
		if trimmed := strings.TrimSpace(*r.ImageURL); trimmed != "" {
			imageURL = &trimmed
		}
	}

	return &domain.Site{
		Name:        strings.TrimSpace(r.Name),
		Description: strings.TrimSpace(r.Description),
		ImageURL:    imageURL,
		TimeSlots:   slots,
	}
}

// FromDomainSite конвертирует доменную модель в ответ
func FromDomainSite(site *domain.Site) *SiteResponse {
	slots := make([]TimeSlot, 0, len(site.TimeSlots))
	for _, s := range site.TimeSlots {
		slots = append(slots, TimeSlot{Time: s.Time, Capacity: s.Capacity})
	}

	return &SiteResponse{
		ID:          site.ID,
		Name:        site.Name,
		Description: site.Description,
		ImageURL:    site.ImageURL,
		TimeSlots:   slots,
		CreatedAt:   site.CreatedAt,
		UpdatedAt:   site.UpdatedAt,
	}
}

// FromDomainSiteList конвертирует список площадок
func FromDomainSiteList(sites []*domain.Site) []*SiteResponse {
	result := make([]*SiteResponse, 0, len(sites))
	for _, s := range sites {
		result = append(result, FromDomainSite(s))
	}
	return result
}
