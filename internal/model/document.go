package model

import "slices"

// Document is the single persisted unit holding all club data
type Document struct {
	Players    []Player           `json:"players"`
	Events     []Event            `json:"events"`
	Attendance []AttendanceRecord `json:"attendance"`
}

// NewDocument returns an empty document
func NewDocument() *Document {
	return &Document{
		Players:    []Player{},
		Events:     []Event{},
		Attendance: []AttendanceRecord{},
	}
}

// Normalize replaces nil collections with empty ones so the document
// always serializes as arrays
func (d *Document) Normalize() *Document {
	if d.Players == nil {
		d.Players = []Player{}
	}
	if d.Events == nil {
		d.Events = []Event{}
	}
	if d.Attendance == nil {
		d.Attendance = []AttendanceRecord{}
	}
	return d
}

// Clone returns a deep copy. Entities hold no pointers, so copying the
// slices is sufficient.
func (d *Document) Clone() *Document {
	clone := &Document{
		Players:    slices.Clone(d.Players),
		Events:     slices.Clone(d.Events),
		Attendance: slices.Clone(d.Attendance),
	}
	return clone.Normalize()
}

// PlayerIndex returns the slice index of the player with the given ID, or -1
func (d *Document) PlayerIndex(id PlayerID) int {
	return slices.IndexFunc(d.Players, func(p Player) bool { return p.ID == id })
}

// EventIndex returns the slice index of the event with the given ID, or -1
func (d *Document) EventIndex(id EventID) int {
	return slices.IndexFunc(d.Events, func(e Event) bool { return e.ID == id })
}

// AttendanceIndex returns the slice index of the record for the given
// player and event, or -1
func (d *Document) AttendanceIndex(playerID PlayerID, eventID EventID) int {
	return slices.IndexFunc(d.Attendance, func(r AttendanceRecord) bool {
		return r.PlayerID == playerID && r.EventID == eventID
	})
}
