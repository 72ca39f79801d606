package storage

import (
	"context"

	"github.com/mcoot/clubroster/internal/model"
)

// Storage persists the club document as a single unit.
//
// Save must replace the stored document atomically: a concurrent Load observes
// either the previous or the new document, never a mix of both.
type Storage interface {
	// Load returns the stored document, or model.ErrDocumentNotFound if
	// nothing has been saved yet
	Load(ctx context.Context) (*model.Document, error)

	// Save replaces the stored document
	Save(ctx context.Context, doc *model.Document) error

	// Close releases any underlying connections
	Close() error
}
