package create_booking

import (
	"time"

	createBooking "github.com/m04kA/heritage-booking/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
// Площадка задается через siteId или siteName
type CreateBookingRequest struct {
	SiteID      string `json:"siteId,omitempty"`
	SiteName    string `json:"siteName,omitempty"`
	VisitorName string `json:"visitorName"`
	Date        string `json:"date"` // "2024-06-15"
	Time        string `json:"time"` // "10:00"
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID          string `json:"id"`
	SiteID      string `json:"siteId"`
	SiteName    string `json:"siteName"`
	VisitorName string `json:"visitorName"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	CreatedAt   string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() *createBooking.Request {
	return &createBooking.Request{
		SiteID:      r.SiteID,
		SiteName:    r.SiteName,
		VisitorName: r.VisitorName,
		Date:        r.Date,
		Time:        r.Time,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:          resp.ID,
		SiteID:      resp.SiteID,
		SiteName:    resp.SiteName,
		VisitorName: resp.VisitorName,
		Date:        resp.Date,
		Time:        resp.Time,
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
	}
}
