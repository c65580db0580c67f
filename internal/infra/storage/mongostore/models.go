package mongostore

import (
	"time"

	"github.com/m04kA/heritage-booking/internal/domain"
)

type timeSlotDocument struct {
	Time     string `bson:"time"`
	Capacity int    `bson:"capacity"`
}

type siteDocument struct {
	ID          string             `bson:"_id"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	ImageURL    *string            `bson:"imageUrl,omitempty"`
	TimeSlots   []timeSlotDocument `bson:"timeSlots"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

type bookingDocument struct {
	ID          string    `bson:"_id"`
	SiteID      string    `bson:"siteId"`
	SiteName    string    `bson:"siteName"`
	VisitorName string    `bson:"visitorName"`
	Date        string    `bson:"date"`
	Time        string    `bson:"time"`
	CreatedAt   time.Time `bson:"createdAt"`
}

// lockDocument advisory-блокировка слота; _id - ключ слота
type lockDocument struct {
	ID        string    `bson:"_id"`
	Owner     string    `bson:"owner"`
	ExpiresAt time.Time `bson:"expiresAt"`
	CreatedAt time.Time `bson:"createdAt"`
}

func toSiteDocument(site *domain.Site) siteDocument {
	slots := make([]timeSlotDocument, 0, len(site.TimeSlots))
	for _, s := range site.TimeSlots {
		slots = append(slots, timeSlotDocument{Time: s.Time, Capacity: s.Capacity})
	}
	return siteDocument{
		ID:          site.ID,
		Name:        site.Name,
		Description: site.Description,
		ImageURL:    site.ImageURL,
		TimeSlots:   slots,
		CreatedAt:   site.CreatedAt,
		UpdatedAt:   site.UpdatedAt,
	}
}

func (d siteDocument) toDomain() *domain.Site {
	slots := make([]domain.TimeSlot, 0, len(d.TimeSlots))
	for _, s := range d.TimeSlots {
		slots = append(slots, domain.TimeSlot{Time: s.Time, Capacity: s.Capacity})
	}
	return &domain.Site{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		ImageURL:    d.ImageURL,
		TimeSlots:   slots,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func toBookingDocument(b *domain.Booking) bookingDocument {
	return bookingDocument{
		ID:          b.ID,
		SiteID:      b.SiteID,
		SiteName:    b.SiteName,
		VisitorName: b.VisitorName,
		Date:        b.Date,
		Time:        b.Time,
		CreatedAt:   b.CreatedAt,
	}
}

func (d bookingDocument) toDomain() *domain.Booking {
	return &domain.Booking{
		ID:          d.ID,
		SiteID:      d.SiteID,
		SiteName:    d.SiteName,
		VisitorName: d.VisitorName,
		Date:        d.Date,
		Time:        d.Time,
		CreatedAt:   d.CreatedAt,
	}
}
