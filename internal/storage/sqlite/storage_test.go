package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/clubroster/internal/dependencies/mocks"
	"github.com/mcoot/clubroster/internal/model"
)

type StorageSuite struct {
	suite.Suite
	path    string
	clock   *mocks.MockClock
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.path = filepath.Join(s.T().TempDir(), "data", "club.db")
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	store, err := New(s.path, s.clock)
	s.Require().NoError(err)
	s.storage = store
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	_ = s.storage.Close()
}

func (s *StorageSuite) TestNewRequiresPath() {
	_, err := New("", s.clock)
	s.Error(err)
}

func (s *StorageSuite) TestLoadBeforeSaveReturnsNotFound() {
	_, err := s.storage.Load(s.ctx)
	s.ErrorIs(err, model.ErrDocumentNotFound)
}

func (s *StorageSuite) TestSaveAndLoad() {
	doc := model.NewDocument()
	doc.Players = append(doc.Players, model.Player{ID: "player-1", FullName: "Alice", IsAdmin: true})

	s.Require().NoError(s.storage.Save(s.ctx, doc))

	loaded, err := s.storage.Load(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(loaded.Players, 1)
	s.True(loaded.Players[0].IsAdmin)
}

func (s *StorageSuite) TestSaveOverwritesSingleRow() {
	first := model.NewDocument()
	first.Players = append(first.Players, model.Player{ID: "player-1"})
	s.Require().NoError(s.storage.Save(s.ctx, first))

	second := model.NewDocument()
	second.Players = append(second.Players, model.Player{ID: "player-1"}, model.Player{ID: "player-2"})
	s.Require().NoError(s.storage.Save(s.ctx, second))

	var rows int
	s.Require().NoError(s.storage.db.QueryRow(`SELECT COUNT(*) FROM club_document`).Scan(&rows))
	s.Equal(1, rows)

	loaded, err := s.storage.Load(s.ctx)
	s.Require().NoError(err)
	s.Len(loaded.Players, 2)
}

func (s *StorageSuite) TestSaveStampsClockTime() {
	s.Require().NoError(s.storage.Save(s.ctx, model.NewDocument()))
	s.Equal("2024-01-01T12:00:00Z", s.savedAt())

	s.clock.Advance(48 * time.Hour)
	s.Require().NoError(s.storage.Save(s.ctx, model.NewDocument()))
	s.Equal("2024-01-03T12:00:00Z", s.savedAt())
}

func (s *StorageSuite) savedAt() string {
	var savedAt string
	s.Require().NoError(s.storage.db.QueryRow(`SELECT saved_at FROM club_document WHERE id = 1`).Scan(&savedAt))
	return savedAt
}

func (s *StorageSuite) TestDocumentSurvivesReopen() {
	doc := model.NewDocument()
	doc.Events = append(doc.Events, model.Event{ID: "event-1", Title: "Cup final", Category: model.CategoryMatch})
	s.Require().NoError(s.storage.Save(s.ctx, doc))
	s.Require().NoError(s.storage.Close())

	reopened, err := New(s.path, s.clock)
	s.Require().NoError(err)
	s.storage = reopened

	loaded, err := reopened.Load(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(loaded.Events, 1)
	s.Equal("Cup final", loaded.Events[0].Title)
}

func (s *StorageSuite) TestNewWithDBCreatesSchema() {
	db, err := sql.Open("sqlite", ":memory:")
	s.Require().NoError(err)
	db.SetMaxOpenConns(1)
	defer func() { _ = db.Close() }()

	store, err := NewWithDB(db, s.clock)
	s.Require().NoError(err)

	_, err = store.Load(s.ctx)
	s.ErrorIs(err, model.ErrDocumentNotFound)
}
