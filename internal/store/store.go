package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/wittyweekly/wire/internal/logger"
	"github.com/wittyweekly/wire/internal/models"
)

// ErrEditionNotFound is returned by Get for unknown IDs.
var ErrEditionNotFound = errors.New("edition not found")

// Store holds the ordered edition archive, most recent first, and writes the
// whole collection through its persistence backend on every mutation.
type Store struct {
	mu          sync.RWMutex
	persistence Persistence
	editions    []*models.Edition
}

// NewStore loads the persisted archive. A missing or corrupt archive degrades
// to an empty collection, never to a startup failure.
func NewStore(ctx context.Context, persistence Persistence) *Store {
	s := &Store{persistence: persistence}

	data, err := persistence.Load(ctx)
	if err != nil {
		if !errors.Is(err, ErrNoArchive) {
			logger.Get().Warn().Err(err).Msg("Failed to load edition archive, starting empty")
		}
		return s
	}

	var editions []*models.Edition
	if err := json.Unmarshal(data, &editions); err != nil {
		logger.Get().Warn().Err(err).Msg("Edition archive is malformed, starting empty")
		return s
	}

	s.editions = editions
	return s
}

// Insert prepends an edition and persists the full collection.
func (s *Store) Insert(ctx context.Context, edition *models.Edition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.editions = append([]*models.Edition{edition}, s.editions...)

	if err := s.persist(ctx); err != nil {
		// Roll back so memory and disk stay in agreement.
		s.editions = s.editions[1:]
		return err
	}
	return nil
}

// List returns the editions most recent first.
func (s *Store) List(ctx context.Context) []*models.Edition {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Edition, len(s.editions))
	copy(out, s.editions)
	return out
}

// Get returns a single edition by ID.
func (s *Store) Get(ctx context.Context, id string) (*models.Edition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.editions {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, ErrEditionNotFound
}

// Clear empties the archive and persists the empty state.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.editions
	s.editions = nil

	if err := s.persist(ctx); err != nil {
		s.editions = previous
		return err
	}
	return nil
}

func (s *Store) persist(ctx context.Context) error {
	editions := s.editions
	if editions == nil {
		editions = []*models.Edition{}
	}

	data, err := json.Marshal(editions)
	if err != nil {
		return fmt.Errorf("failed to marshal edition archive: %w", err)
	}

	if err := s.persistence.Save(ctx, data); err != nil {
		return fmt.Errorf("failed to persist edition archive: %w", err)
	}
	return nil
}
