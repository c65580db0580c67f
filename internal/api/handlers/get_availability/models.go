package get_availability

import (
	"github.com/m04kA/heritage-booking/internal/domain"
	getAvailability "github.com/m04kA/heritage-booking/internal/usecase/get_availability"
)

// SlotResponse загрузка одного слота
type SlotResponse struct {
	Capacity  int `json:"capacity"`
	Booked    int `json:"booked"`
	Remaining int `json:"remaining"`
}

// DayResponse загрузка одного дня
type DayResponse struct {
	FullyBooked bool                    `json:"fullyBooked"`
	TimeSlots   map[string]SlotResponse `json:"timeSlots"`
}

// AvailabilityResponse ключ - дата "YYYY-MM-DD"
type AvailabilityResponse map[string]DayResponse

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) AvailabilityResponse {
	result := make(AvailabilityResponse, len(resp.Days))
	for date, day := range resp.Days {
		result[date] = fromDomainDay(day)
	}
	return result
}

func fromDomainDay(day domain.AvailabilityDay) DayResponse {
	slots := make(map[string]SlotResponse, len(day.TimeSlots))
	for t, s := range day.TimeSlots {
		slots[t] = SlotResponse{
			Capacity:  s.Capacity,
			Booked:    s.Booked,
			Remaining: s.Remaining,
		}
	}
	return DayResponse{
		FullyBooked: day.FullyBooked,
		TimeSlots:   slots,
	}
}
