package domain

import "time"

// Booking represents a single visitor's reservation for a site/date/time
// Бронирование не изменяется после создания, только удаляется администратором
type Booking struct {
	ID          string
	SiteID      string
	SiteName    string // денормализовано для отображения и фильтрации по имени
	VisitorName string
	Date        string // "YYYY-MM-DD", сравнивается как строка
	Time        string // "HH:MM"
	CreatedAt   time.Time
}

// SlotKey возвращает ключ слота, по которому сериализуется допуск бронирований
func (b *Booking) SlotKey() SlotKey {
	return SlotKey{SiteID: b.SiteID, Date: b.Date, Time: b.Time}
}

// SlotKey ключ (площадка, дата, время)
type SlotKey struct {
	SiteID string
	Date   string
	Time   string
}

// String возвращает ключ в виде строки для блокировок
func (k SlotKey) String() string {
	return k.SiteID + "|" + k.Date + "|" + k.Time
}

// BookingsFilter фильтр для публичного списка бронирований
type BookingsFilter struct {
	SiteID   *string // Фильтр по площадке (опционально)
	SiteName *string // Фильтр по имени площадки (опционально, для совместимости со старыми клиентами)
	Date     *string // Фильтр по дате (опционально)
}
