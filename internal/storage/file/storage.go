package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mcoot/clubroster/internal/model"
	"github.com/mcoot/clubroster/internal/storage"
)

// Storage keeps the document in a single JSON file.
// Saves write a temporary file in the same directory and rename it over the
// target, so readers never see a partially written document.
type Storage struct {
	path string
}

// New creates a file storage for the given path. The file and its directory
// are created on first save.
func New(path string) (*Storage, error) {
	if path == "" {
		return nil, errors.New("file storage path is required")
	}
	return &Storage{path: path}, nil
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Path returns the location of the document file
func (s *Storage) Path() string {
	return s.path
}

func (s *Storage) Load(ctx context.Context) (*model.Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, model.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	var doc model.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	return doc.Normalize(), nil
}

func (s *Storage) Save(ctx context.Context, doc *model.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	// Removing after a successful rename is a no-op error we ignore
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}

func (s *Storage) Close() error {
	return nil
}
