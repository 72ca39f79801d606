package roster

import (
	"context"
	"strings"
	"time"

	"github.com/mcoot/clubroster/internal/model"
)

// NewEvent is the input for AddEvent
type NewEvent struct {
	Title     string
	Category  model.Category
	StartTime time.Time
	Location  string
	Notes     string
}

// AddEvent adds a fixture to the calendar
func (s *Store) AddEvent(ctx context.Context, input NewEvent) (*model.Event, error) {
	event := model.Event{
		Title:     strings.TrimSpace(input.Title),
		Category:  input.Category,
		StartTime: input.StartTime.UTC(),
		Location:  strings.TrimSpace(input.Location),
		Notes:     strings.TrimSpace(input.Notes),
	}

	if event.Title == "" || event.Location == "" || input.StartTime.IsZero() {
		return nil, model.NewValidationError("title, startTime and location are required")
	}
	if !event.Category.Valid() {
		return nil, model.ErrInvalidCategory
	}

	err := s.update(ctx, func(doc *model.Document) error {
		event.ID = model.EventID(s.newID())
		event.CreatedAt = s.clock.Now()
		doc.Events = append(doc.Events, event)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("event added", "event_id", event.ID, "category", event.Category)
	return &event, nil
}
