package roster

import (
	"context"
	"slices"
	"time"

	"github.com/mcoot/clubroster/internal/model"
)

// EventSummary is an event with per-status attendance counts
type EventSummary struct {
	model.Event
	Attendance model.AttendanceCounts `json:"attendance"`
}

// PlayerEvent is an event annotated with one player's record, if any
type PlayerEvent struct {
	model.Event
	Status     *model.AttendanceStatus `json:"status"`
	RecordedAt *time.Time              `json:"recordedAt"`
}

// Overview is a player's own attendance history
type Overview struct {
	Player     model.Player
	Attendance model.AttendanceCounts
	Events     []PlayerEvent
}

// Projections over a loaded document. None of them modify doc.

// FindPlayer returns the player with the given ID
func FindPlayer(doc *model.Document, id model.PlayerID) (*model.Player, error) {
	idx := doc.PlayerIndex(id)
	if idx < 0 {
		return nil, model.ErrPlayerNotFound
	}
	player := doc.Players[idx]
	return &player, nil
}

// FindByIdentifier returns the player whose email or username matches
// identifier, ignoring case
func FindByIdentifier(doc *model.Document, identifier string) (*model.Player, error) {
	for i := range doc.Players {
		if doc.Players[i].MatchesIdentifier(identifier) {
			player := doc.Players[i]
			return &player, nil
		}
	}
	return nil, model.ErrPlayerNotFound
}

// HasAdmin reports whether any player is an administrator
func HasAdmin(doc *model.Document) bool {
	return slices.ContainsFunc(doc.Players, func(p model.Player) bool { return p.IsAdmin })
}

// SortedEvents returns the events ordered by start time, earliest first
func SortedEvents(doc *model.Document) []model.Event {
	events := slices.Clone(doc.Events)
	slices.SortStableFunc(events, func(a, b model.Event) int {
		return a.StartTime.Compare(b.StartTime)
	})
	if events == nil {
		events = []model.Event{}
	}
	return events
}

// EventAttendance returns the records for one event in stored order
func EventAttendance(doc *model.Document, eventID model.EventID) []model.AttendanceRecord {
	records := []model.AttendanceRecord{}
	for _, r := range doc.Attendance {
		if r.EventID == eventID {
			records = append(records, r)
		}
	}
	return records
}

// Summaries returns every event with its attendance counts, earliest first
func Summaries(doc *model.Document) []EventSummary {
	counts := make(map[model.EventID]*model.AttendanceCounts)
	for _, r := range doc.Attendance {
		c, ok := counts[r.EventID]
		if !ok {
			c = &model.AttendanceCounts{}
			counts[r.EventID] = c
		}
		c.Add(r.Status)
	}

	events := SortedEvents(doc)
	summaries := make([]EventSummary, 0, len(events))
	for _, e := range events {
		summary := EventSummary{Event: e}
		if c, ok := counts[e.ID]; ok {
			summary.Attendance = *c
		}
		summaries = append(summaries, summary)
	}
	return summaries
}

// PlayerOverview returns the player's own counts and every event annotated
// with the player's record
func PlayerOverview(doc *model.Document, id model.PlayerID) (*Overview, error) {
	player, err := FindPlayer(doc, id)
	if err != nil {
		return nil, err
	}

	overview := &Overview{Player: *player}
	own := make(map[model.EventID]model.AttendanceRecord)
	for _, r := range doc.Attendance {
		if r.PlayerID != id {
			continue
		}
		own[r.EventID] = r
		overview.Attendance.Add(r.Status)
	}

	events := SortedEvents(doc)
	overview.Events = make([]PlayerEvent, 0, len(events))
	for _, e := range events {
		pe := PlayerEvent{Event: e}
		if r, ok := own[e.ID]; ok {
			status, recordedAt := r.Status, r.RecordedAt
			pe.Status = &status
			pe.RecordedAt = &recordedAt
		}
		overview.Events = append(overview.Events, pe)
	}
	return overview, nil
}

// Store read methods load the current document and apply a projection

// Players returns every player in roster order
func (s *Store) Players(ctx context.Context) ([]model.Player, error) {
	doc, err := s.Read(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Players, nil
}

// GetPlayer returns the player with the given ID
func (s *Store) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	doc, err := s.Read(ctx)
	if err != nil {
		return nil, err
	}
	return FindPlayer(doc, id)
}

// FindByIdentifier returns the player with a matching email or username
func (s *Store) FindByIdentifier(ctx context.Context, identifier string) (*model.Player, error) {
	doc, err := s.Read(ctx)
	if err != nil {
		return nil, err
	}
	return FindByIdentifier(doc, identifier)
}

// HasAdmin reports whether the roster has an administrator
func (s *Store) HasAdmin(ctx context.Context) (bool, error) {
	doc, err := s.Read(ctx)
	if err != nil {
		return false, err
	}
	return HasAdmin(doc), nil
}

// Events returns all events, earliest first
func (s *Store) Events(ctx context.Context) ([]model.Event, error) {
	doc, err := s.Read(ctx)
	if err != nil {
		return nil, err
	}
	return SortedEvents(doc), nil
}

// AttendanceForEvent returns the records for one event
func (s *Store) AttendanceForEvent(ctx context.Context, eventID model.EventID) ([]model.AttendanceRecord, error) {
	doc, err := s.Read(ctx)
	if err != nil {
		return nil, err
	}
	return EventAttendance(doc, eventID), nil
}

// EventSummaries returns all events with attendance counts, earliest first
func (s *Store) EventSummaries(ctx context.Context) ([]EventSummary, error) {
	doc, err := s.Read(ctx)
	if err != nil {
		return nil, err
	}
	return Summaries(doc), nil
}

// PlayerOverview returns one player's attendance history
func (s *Store) PlayerOverview(ctx context.Context, id model.PlayerID) (*Overview, error) {
	doc, err := s.Read(ctx)
	if err != nil {
		return nil, err
	}
	return PlayerOverview(doc, id)
}
