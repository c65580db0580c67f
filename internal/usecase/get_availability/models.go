package get_availability

import "github.com/m04kA/heritage-booking/internal/domain"

// Request модель запроса загрузки площадки за месяц
type Request struct {
	SiteID string
	Year   int
	Month  int // 1..12
}

// Response загрузка по каждому дню месяца, ключ - дата "YYYY-MM-DD"
type Response struct {
	SiteID string
	Year   int
	Month  int
	Days   map[string]domain.AvailabilityDay
}
