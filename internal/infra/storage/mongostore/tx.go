package mongostore

import (
	"context"

	"github.com/m04kA/heritage-booking/pkg/keylock"
)

// TxManager открывает область, в которой BookingRepository.LockSlot берет документы-блокировки.
// Мультидокументные транзакции не используются: вставка бронирования - последний шаг области
type TxManager struct{}

// Do выполняет fn в области; документы-блокировки удаляются после fn
func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := keylock.ScopeFromContext(ctx); ok {
		return fn(ctx)
	}

	scopeCtx, release := keylock.WithScope(ctx)
	defer release()

	return fn(scopeCtx)
}
