package booking

import (
	"github.com/m04kA/heritage-booking/pkg/dbmetrics"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// UUIDGenerator генератор идентификаторов бронирований
type UUIDGenerator func() string
