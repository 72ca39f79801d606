package request

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// CreatePlayerRequest is the request body for provisioning a player
type CreatePlayerRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Position string `json:"position"`
	Username string `json:"username,omitempty"`
	IsAdmin  bool   `json:"isAdmin,omitempty"`
}

// CreateEventRequest is the request body for adding a fixture.
// StartTime is RFC 3339 or an HTML datetime-local value read as UTC.
type CreateEventRequest struct {
	Title     string `json:"title"`
	Category  string `json:"category"`
	StartTime string `json:"startTime"`
	Location  string `json:"location"`
	Notes     string `json:"notes,omitempty"`
}

// AttendanceEntry is one player's status within a RecordAttendanceRequest
type AttendanceEntry struct {
	PlayerID string `json:"playerId"`
	Status   string `json:"status"`
}

// RecordAttendanceRequest is the request body for bulk attendance recording
type RecordAttendanceRequest struct {
	EventID string            `json:"eventId"`
	Records []AttendanceEntry `json:"records"`
}
