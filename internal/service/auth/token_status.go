package auth

import (
	"context"
	"sync"
	"time"
)

// TokenStatusStore records tokens revoked before their natural expiry.
// Tokens are identified by their jti claim.
type TokenStatusStore interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
}

// MemoryTokenStatusStore is a process-local TokenStatusStore. An entry is
// kept only until the token it describes would have expired, after which the
// token is rejected on expiry alone; a background sweep drops such entries.
type MemoryTokenStatusStore struct {
	mu      sync.RWMutex
	revoked map[string]time.Time

	now    func() time.Time
	stopCh chan struct{}
	once   sync.Once
}

var _ TokenStatusStore = (*MemoryTokenStatusStore)(nil)

// NewMemoryTokenStatusStore creates a store and starts its sweep, which runs
// every interval until Stop is called.
func NewMemoryTokenStatusStore(interval time.Duration) *MemoryTokenStatusStore {
	s := newMemoryTokenStatusStore(time.Now)
	if interval > 0 {
		go s.cleanupLoop(interval)
	}
	return s
}

func newMemoryTokenStatusStore(now func() time.Time) *MemoryTokenStatusStore {
	return &MemoryTokenStatusStore{
		revoked: make(map[string]time.Time),
		now:     now,
		stopCh:  make(chan struct{}),
	}
}

// IsRevoked implements TokenStatusStore.
func (s *MemoryTokenStatusStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	expiresAt, ok := s.revoked[tokenID]
	if !ok {
		return false, nil
	}
	return s.now().Before(expiresAt), nil
}

// Revoke implements TokenStatusStore. Revoking an already expired token is a
// no-op.
func (s *MemoryTokenStatusStore) Revoke(_ context.Context, tokenID string, expiresAt time.Time) error {
	if !s.now().Before(expiresAt) {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[tokenID] = expiresAt
	return nil
}

// Len returns the number of tracked revocations.
func (s *MemoryTokenStatusStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.revoked)
}

// Stop ends the background sweep. It is safe to call more than once.
func (s *MemoryTokenStatusStore) Stop() {
	s.once.Do(func() { close(s.stopCh) })
}

func (s *MemoryTokenStatusStore) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopCh:
			return
		}
	}
}

// cleanup drops entries for tokens that have expired.
func (s *MemoryTokenStatusStore) cleanup() {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, expiresAt := range s.revoked {
		if !now.Before(expiresAt) {
			delete(s.revoked, id)
		}
	}
}
