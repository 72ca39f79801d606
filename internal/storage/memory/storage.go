package memory

import (
	"context"
	"sync"

	"github.com/mcoot/clubroster/internal/model"
	"github.com/mcoot/clubroster/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu  sync.RWMutex
	doc *model.Document

	// loadErr and saveErr, when set, are returned instead of touching the document
	loadErr error
	saveErr error
}

// New creates a new in-memory storage instance with nothing saved
func New() *Storage {
	return &Storage{}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) Load(ctx context.Context) (*model.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	if s.doc == nil {
		return nil, model.ErrDocumentNotFound
	}
	return s.doc.Clone(), nil
}

func (s *Storage) Save(ctx context.Context, doc *model.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.doc = doc.Clone()
	return nil
}

func (s *Storage) Close() error {
	return nil
}

// FailLoads makes subsequent Load calls return err (nil restores normal behaviour)
func (s *Storage) FailLoads(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadErr = err
}

// FailSaves makes subsequent Save calls return err (nil restores normal behaviour)
func (s *Storage) FailSaves(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveErr = err
}
