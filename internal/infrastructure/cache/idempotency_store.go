package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/reservation-invoicing/internal/domain/entity"
	domainRepo "github.com/sangkips/reservation-invoicing/internal/domain/repository"
)

// ErrDuplicateKey is returned when a key is stored twice for one subject
var ErrDuplicateKey = errors.New("idempotency key already stored")

type idempotencyEntryKey struct {
	key     string
	subject string
}

// IdempotencyStore keeps idempotency keys in process memory. It backs the
// print endpoint when the service runs without a database.
type IdempotencyStore struct {
	items map[idempotencyEntryKey]entity.IdempotencyKey
	mu    sync.RWMutex
}

// NewIdempotencyStore creates an empty store
func NewIdempotencyStore() *IdempotencyStore {
	return &IdempotencyStore{items: make(map[idempotencyEntryKey]entity.IdempotencyKey)}
}

var _ domainRepo.IdempotencyRepository = (*IdempotencyStore)(nil)

func (s *IdempotencyStore) GetByKey(_ context.Context, key, subject string) (*entity.IdempotencyKey, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[idempotencyEntryKey{key, subject}]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

func (s *IdempotencyStore) Create(_ context.Context, ikey *entity.IdempotencyKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := idempotencyEntryKey{ikey.Key, ikey.Subject}
	if _, exists := s.items[k]; exists {
		return ErrDuplicateKey
	}
	if ikey.ID == uuid.Nil {
		ikey.ID = uuid.New()
	}
	if ikey.CreatedAt.IsZero() {
		ikey.CreatedAt = time.Now()
	}
	item := *ikey
	item.ResponseBody = append([]byte(nil), ikey.ResponseBody...)
	s.items[k] = item
	return nil
}

func (s *IdempotencyStore) DeleteExpired(_ context.Context, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for k, item := range s.items {
		if item.IsExpired(now) {
			delete(s.items, k)
		}
	}
	return nil
}
