package roster

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/mcoot/clubroster/internal/dependencies/clock"
	"github.com/mcoot/clubroster/internal/model"
	"github.com/mcoot/clubroster/internal/storage"
)

// Store is the persistence layer over the club document.
//
// Every mutation runs as one load, mutate, save sequence under a mutex, so
// concurrent writers within the process never lose each other's changes.
// Reads take no lock and rely on the backend replacing the document atomically.
// Running several processes against the same backend is not supported.
type Store struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger

	mu    sync.Mutex
	newID func() string
}

// New creates a new Store
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Store {
	return &Store{
		storage: storage,
		clock:   clock,
		logger:  logger,
		newID:   uuid.NewString,
	}
}

// Read loads the current document. A backend with nothing saved yet yields an
// empty document; any other backend failure is returned wrapped in
// model.ErrStorageUnavailable.
func (s *Store) Read(ctx context.Context) (*model.Document, error) {
	doc, err := s.storage.Load(ctx)
	if errors.Is(err, model.ErrDocumentNotFound) {
		return model.NewDocument(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrStorageUnavailable, err)
	}
	return doc.Normalize(), nil
}

// update applies fn to a freshly loaded document and saves the result.
// Nothing is saved when fn returns an error.
func (s *Store) update(ctx context.Context, fn func(doc *model.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.Read(ctx)
	if err != nil {
		return err
	}

	if err := fn(doc); err != nil {
		return err
	}

	if err := s.storage.Save(ctx, doc); err != nil {
		s.logger.Error("failed to save document", "error", err)
		return fmt.Errorf("%w: %w", model.ErrStorageUnavailable, err)
	}
	return nil
}
