package memory

import (
	"sync"

	"github.com/google/uuid"

	"github.com/m04kA/heritage-booking/internal/domain"
	"github.com/m04kA/heritage-booking/pkg/keylock"
)

// Store хранилище площадок и бронирований в памяти процесса.
// Используется в тестах и при storage.driver = "memory"; данные теряются при перезапуске
type Store struct {
	mu       sync.RWMutex
	sites    map[string]*domain.Site
	bookings map[string]*domain.Booking

	locks *keylock.Locker
	newID func() string
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		sites:    make(map[string]*domain.Site),
		bookings: make(map[string]*domain.Booking),
		locks:    keylock.New(),
		newID:    uuid.NewString,
	}
}

// Sites возвращает репозиторий площадок поверх хранилища
func (s *Store) Sites() *SiteRepository {
	return &SiteRepository{store: s}
}

// Bookings возвращает репозиторий бронирований поверх хранилища
func (s *Store) Bookings() *BookingRepository {
	return &BookingRepository{store: s}
}

// TxManager возвращает менеджер областей блокировок
func (s *Store) TxManager() *TxManager {
	return &TxManager{}
}

func cloneSite(site *domain.Site) *domain.Site {
	c := *site
	c.TimeSlots = append([]domain.TimeSlot(nil), site.TimeSlots...)
	if site.ImageURL != nil {
		url := *site.ImageURL
		c.ImageURL = &url
	}
	return &c
}

func cloneBooking(b *domain.Booking) *domain.Booking {
	c := *b
	return &c
}
