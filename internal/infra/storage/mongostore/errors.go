package mongostore

import "errors"

var (
	// ErrConnect возвращается, если не удалось подключиться к MongoDB
	ErrConnect = errors.New("mongostore: failed to connect")

	// ErrIndexes возвращается, если не удалось создать индексы
	ErrIndexes = errors.New("mongostore: failed to create indexes")

	// ErrQuery возвращается при ошибке запроса к коллекции
	ErrQuery = errors.New("mongostore: query failed")

	// ErrDecode возвращается при ошибке декодирования документа
	ErrDecode = errors.New("mongostore: failed to decode document")

	// ErrLock возвращается при ошибке работы с документом блокировки
	ErrLock = errors.New("mongostore: slot lock failed")
)
