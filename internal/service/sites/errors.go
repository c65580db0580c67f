package sites

import "errors"

var (
	// ErrSiteNotFound возвращается, когда площадка не найдена
	ErrSiteNotFound = errors.New("sites: site not found")

	// ErrSiteNameTaken возвращается, если площадка с таким именем уже есть
	ErrSiteNameTaken = errors.New("sites: site name already taken")

	// ErrDuplicateTimeSlot возвращается, если в слотах повторяется время
	ErrDuplicateTimeSlot = errors.New("sites: duplicate time slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("sites: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("sites: internal error")
)
