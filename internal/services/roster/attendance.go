package roster

import (
	"context"

	"github.com/mcoot/clubroster/internal/model"
)

// AttendanceEntry is one requested status for one player
type AttendanceEntry struct {
	PlayerID model.PlayerID
	Status   model.AttendanceStatus
}

// AttendanceBatch records statuses for several players at one event
type AttendanceBatch struct {
	EventID    model.EventID
	RecordedBy model.PlayerID
	Entries    []AttendanceEntry
}

// BulkResult summarises a recorded batch.
// Recorded counts distinct players written; Dropped counts rejected entries.
type BulkResult struct {
	Recorded int `json:"recorded"`
	Dropped  int `json:"dropped"`
}

// BulkRecordAttendance writes a batch of attendance records for one event.
//
// Entries naming an unknown player or an invalid status are dropped. When an
// entry repeats a player the last one wins. A player who already has a record
// for the event has it overwritten in place. The batch is saved as a whole.
func (s *Store) BulkRecordAttendance(ctx context.Context, batch AttendanceBatch) (*BulkResult, error) {
	result := &BulkResult{}

	err := s.update(ctx, func(doc *model.Document) error {
		if doc.EventIndex(batch.EventID) < 0 {
			return model.ErrEventNotFound
		}

		// Resolve to one status per player, preserving first-seen order
		var order []model.PlayerID
		statuses := make(map[model.PlayerID]model.AttendanceStatus)
		for _, entry := range batch.Entries {
			if !entry.Status.Valid() || doc.PlayerIndex(entry.PlayerID) < 0 {
				result.Dropped++
				continue
			}
			if _, seen := statuses[entry.PlayerID]; !seen {
				order = append(order, entry.PlayerID)
			}
			statuses[entry.PlayerID] = entry.Status
		}

		if len(order) == 0 {
			return model.ErrNoValidAttendance
		}

		now := s.clock.Now()
		for _, playerID := range order {
			if idx := doc.AttendanceIndex(playerID, batch.EventID); idx >= 0 {
				record := &doc.Attendance[idx]
				record.Status = statuses[playerID]
				record.RecordedBy = batch.RecordedBy
				record.RecordedAt = now
				continue
			}
			doc.Attendance = append(doc.Attendance, model.AttendanceRecord{
				ID:         model.AttendanceID(s.newID()),
				PlayerID:   playerID,
				EventID:    batch.EventID,
				Status:     statuses[playerID],
				RecordedBy: batch.RecordedBy,
				RecordedAt: now,
			})
		}
		result.Recorded = len(order)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("attendance recorded",
		"event_id", batch.EventID,
		"recorded", result.Recorded,
		"dropped", result.Dropped,
	)
	return result, nil
}
