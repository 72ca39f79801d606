package model

import "time"

// AttendanceID uniquely identifies an attendance record
type AttendanceID string

// AttendanceStatus is a player's recorded status for one event
type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "present"
	StatusAbsent  AttendanceStatus = "absent"
	StatusLate    AttendanceStatus = "late"
)

// Valid reports whether s is one of the known statuses
func (s AttendanceStatus) Valid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLate:
		return true
	}
	return false
}

// AttendanceRecord holds the status of one player at one event.
// There is at most one record per (PlayerID, EventID).
type AttendanceRecord struct {
	ID         AttendanceID     `json:"id"`
	PlayerID   PlayerID         `json:"playerId"`
	EventID    EventID          `json:"eventId"`
	Status     AttendanceStatus `json:"status"`
	RecordedBy PlayerID         `json:"recordedBy"`
	RecordedAt time.Time        `json:"recordedAt"`
}

// AttendanceCounts tallies records per status
type AttendanceCounts struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
	Late    int `json:"late"`
}

// Add counts one record with the given status. Unknown statuses are ignored.
func (c *AttendanceCounts) Add(status AttendanceStatus) {
	switch status {
	case StatusPresent:
		c.Present++
	case StatusAbsent:
		c.Absent++
	case StatusLate:
		c.Late++
	}
}
