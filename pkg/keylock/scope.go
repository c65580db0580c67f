package keylock

import (
	"context"
	"sync"
)

type scopeKey struct{}

// Scope набор блокировок, которые снимаются вместе при завершении области
type Scope struct {
	mu       sync.Mutex
	held     map[string]struct{}
	releases []func()
}

// WithScope открывает область в контексте. Возвращенная функция снимает все
// блокировки области в обратном порядке
func WithScope(ctx context.Context) (context.Context, func()) {
	s := &Scope{held: make(map[string]struct{})}
	return context.WithValue(ctx, scopeKey{}, s), s.releaseAll
}

// ScopeFromContext достает область из контекста
func ScopeFromContext(ctx context.Context) (*Scope, bool) {
	s, ok := ctx.Value(scopeKey{}).(*Scope)
	return s, ok && s != nil
}

// Holds сообщает, держит ли область блокировку ключа
func (s *Scope) Holds(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.held[key]
	return ok
}

// Add регистрирует блокировку ключа и функцию её снятия
func (s *Scope) Add(key string, release func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.held[key] = struct{}{}
	s.releases = append(s.releases, release)
}

func (s *Scope) releaseAll() {
	s.mu.Lock()
	releases := s.releases
	s.releases = nil
	s.held = make(map[string]struct{})
	s.mu.Unlock()

	for i := len(releases) - 1; i >= 0; i-- {
		releases[i]()
	}
}
