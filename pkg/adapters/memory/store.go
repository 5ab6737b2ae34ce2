package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/drelynlikescode26/callflow-assist/pkg/domain"
)

// Store implements ports.SetupStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]domain.Setup
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]domain.Setup),
	}
}

// Save persists the setup in memory.
func (s *Store) Save(ctx context.Context, profile string, setup domain.Setup) error {
	if err := domain.ValidateProfile(profile); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[profile] = setup
	return nil
}

// Load retrieves the setup for profile.
func (s *Store) Load(ctx context.Context, profile string) (domain.Setup, error) {
	if err := domain.ValidateProfile(profile); err != nil {
		return domain.Setup{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	setup, ok := s.data[profile]
	if !ok {
		return domain.Setup{}, domain.ErrSetupNotFound
	}
	return setup, nil
}

// Delete removes the setup for profile.
func (s *Store) Delete(ctx context.Context, profile string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, profile)
	return nil
}

// List returns all stored profile names in sorted order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profiles := make([]string, 0, len(s.data))
	for k := range s.data {
		profiles = append(profiles, k)
	}
	sort.Strings(profiles)
	return profiles, nil
}
