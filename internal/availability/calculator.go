package availability

import (
	"time"

	"github.com/m04kA/heritage-booking/internal/domain"
)

// Compute рассчитывает загрузку площадки по дням за период [rangeStart, rangeEnd] включительно.
//
// Бронирования должны быть уже отфильтрованы по площадке и периоду, функция им доверяет.
// Даты сравниваются как строки YYYY-MM-DD, часовые пояса не учитываются: из границ
// периода берутся только календарные компоненты.
// День без активных слотов считается полностью занятым.
func Compute(site *domain.Site, bookings []*domain.Booking, rangeStart, rangeEnd time.Time) map[string]domain.AvailabilityDay {
	start := dateOnly(rangeStart)
	end := dateOnly(rangeEnd)

	result := make(map[string]domain.AvailabilityDay)
	if start.After(end) {
		return result
	}

	slots := site.ActiveSlots()
	booked := countByDateAndTime(bookings)

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		date := d.Format(domain.DateFormat)
		day := domain.AvailabilityDay{
			Date:        date,
			TimeSlots:   make(map[string]domain.SlotAvailability, len(slots)),
			FullyBooked: true,
		}

		for _, slot := range slots {
			count := booked[date][slot.Time]
			sa := domain.SlotAvailability{
				Capacity:  slot.Capacity,
				Booked:    count,
				Remaining: slot.Capacity - count,
			}
			day.TimeSlots[slot.Time] = sa
			if !sa.IsFull() {
				day.FullyBooked = false
			}
		}

		result[date] = day
	}

	return result
}

// countByDateAndTime группирует бронирования: дата -> время -> количество
func countByDateAndTime(bookings []*domain.Booking) map[string]map[string]int {
	result := make(map[string]map[string]int)
	for _, b := range bookings {
		if b == nil {
			continue
		}
		byTime, ok := result[b.Date]
		if !ok {
			byTime = make(map[string]int)
			result[b.Date] = byTime
		}
		byTime[b.Time]++
	}
	return result
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
