package memory

import (
	"context"

	"github.com/m04kA/heritage-booking/pkg/keylock"
)

// TxManager открывает область, в которой BookingRepository.LockSlot может брать блокировки.
// Записи в памяти не откатываются: вставка бронирования - последний шаг области
type TxManager struct{}

// Do выполняет fn в области блокировок; блокировки снимаются после fn
func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := keylock.ScopeFromContext(ctx); ok {
		return fn(ctx)
	}

	scopeCtx, release := keylock.WithScope(ctx)
	defer release()

	return fn(scopeCtx)
}
