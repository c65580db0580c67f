package availability

import "errors"

var (
	// ErrInvalidMonth возвращается, если месяц вне диапазона 1..12 или не разобран
	ErrInvalidMonth = errors.New("availability: invalid month")
)
