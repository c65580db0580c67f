package models

import (
	"strings"
	"time"

	"github.com/m04kA/heritage-booking/internal/domain"
)

// BookingResponse бронирование для администратора
type BookingResponse struct {
	ID          string    `json:"id"`
	SiteID      string    `json:"siteId"`
	SiteName    string    `json:"siteName"`
	VisitorName string    `json:"visitorName"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	CreatedAt   time.Time `json:"createdAt"`
}

// PublicBookingResponse бронирование в публичном списке, без имени посетителя
type PublicBookingResponse struct {
	ID        string    `json:"id"`
	SiteID    string    `json:"siteId"`
	SiteName  string    `json:"siteName"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	CreatedAt time.Time `json:"createdAt"`
}

// PublicFilter параметры публичного списка бронирований
// Пустые значения не участвуют в фильтрации
type PublicFilter struct {
	SiteID   string
	SiteName string
	Date     string
}

// ToDomainFilter конвертирует параметры в доменный фильтр
func (f PublicFilter) ToDomainFilter() domain.BookingsFilter {
	var filter domain.BookingsFilter
	if v := strings.TrimSpace(f.SiteID); v != "" {
		filter.SiteID = &v
	}
	if v := strings.TrimSpace(f.SiteName); v != "" {
		filter.SiteName = &v
	}
	if v := strings.TrimSpace(f.Date); v != "" {
		filter.Date = &v
	}
	return filter
}

// FromDomainBooking конвертирует доменную модель в ответ
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:          b.ID,
		SiteID:      b.SiteID,
		SiteName:    b.SiteName,
		VisitorName: b.VisitorName,
		Date:        b.Date,
		Time:        b.Time,
		CreatedAt:   b.CreatedAt,
	}
}

// FromDomainBookingList конвертирует список бронирований
func FromDomainBookingList(bookings []*domain.Booking) []*BookingResponse {
	result := make([]*BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, FromDomainBooking(b))
	}
	return result
}

// FromDomainBookingPublicList конвертирует список бронирований для публичной выдачи
func FromDomainBookingPublicList(bookings []*domain.Booking) []*PublicBookingResponse {
	result := make([]*PublicBookingResponse, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, &PublicBookingResponse{
			ID:        b.ID,
			SiteID:    b.SiteID,
			SiteName:  b.SiteName,
			Date:      b.Date,
			Time:      b.Time,
			CreatedAt: b.CreatedAt,
		})
	}
	return result
}
