package site

import "errors"

var (
	// ErrSiteNotFound возвращается, когда площадка не найдена
	ErrSiteNotFound = errors.New("site.repository: site not found")

	// ErrSiteNameTaken возвращается при нарушении уникальности имени площадки
	ErrSiteNameTaken = errors.New("site.repository: site name already taken")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("site.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("site.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("site.repository: failed to scan row")

	// ErrEncodeSlots возвращается, если не удалось (де)сериализовать слоты
	ErrEncodeSlots = errors.New("site.repository: failed to encode time slots")
)
