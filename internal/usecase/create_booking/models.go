package create_booking

import "time"

// Request модель запроса на создание бронирования
// Площадка задается по ID или, для старых клиентов, по имени; ID приоритетнее
type Request struct {
	SiteID      string // ID площадки (опционально)
	SiteName    string // Имя площадки (опционально)
	VisitorName string // Имя посетителя
	Date        string // Дата визита "YYYY-MM-DD"
	Time        string // Время слота "HH:MM"
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID          string
	SiteID      string
	SiteName    string
	VisitorName string
	Date        string
	Time        string
	CreatedAt   time.Time
}

// Options настройки допуска
type Options struct {
	Location         *time.Location // часовой пояс, в котором определяется "сегодня"
	RejectPastDates  bool
	OperationTimeout time.Duration // 0 - без ограничения
}
