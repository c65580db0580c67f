package create_booking

import "errors"

var (
	// ErrSiteNotFound возвращается, когда площадка не найдена
	ErrSiteNotFound = errors.New("create_booking: site not found")

	// ErrInvalidTimeSlot возвращается, когда у площадки нет слота с указанным временем
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrCapacityExceeded возвращается, когда все места в слоте заняты
	ErrCapacityExceeded = errors.New("create_booking: capacity exceeded")

	// ErrPastDateNotBookable возвращается при попытке забронировать прошедшую дату
	ErrPastDateNotBookable = errors.New("create_booking: past date is not bookable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrTimeout возвращается, если допуск не уложился в отведенное время
	ErrTimeout = errors.New("create_booking: operation timed out")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
