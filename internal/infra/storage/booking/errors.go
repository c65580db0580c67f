package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrSiteNotFound возвращается при вставке бронирования на несуществующую площадку
	ErrSiteNotFound = errors.New("booking.repository: site not found")

	// ErrNoTransaction возвращается, если блокировку слота пытаются взять вне транзакции
	ErrNoTransaction = errors.New("booking.repository: slot lock requires transaction")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
