package response

import (
	"time"

	"github.com/mcoot/clubroster/internal/model"
	"github.com/mcoot/clubroster/internal/services/roster"
)

// Player represents a player in API responses. It never carries the password hash.
type Player struct {
	ID        string    `json:"id"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Position  string    `json:"position"`
	Username  string    `json:"username"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:        string(p.ID),
		FullName:  p.FullName,
		Email:     p.Email,
		Position:  p.Position,
		Username:  p.Username,
		IsAdmin:   p.IsAdmin,
		CreatedAt: p.CreatedAt,
	}
}

// PlayersFromModel converts a slice of players
func PlayersFromModel(players []model.Player) []Player {
	resp := make([]Player, len(players))
	for i := range players {
		resp[i] = PlayerFromModel(&players[i])
	}
	return resp
}

// LoginUser is the user returned by a successful login
type LoginUser struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"isAdmin"`
	Position string `json:"position"`
}

// LoginResponse is the response for POST /api/auth/login
type LoginResponse struct {
	User LoginUser `json:"user"`
}

// LoginResponseFromModel builds a LoginResponse
func LoginResponseFromModel(p *model.Player) LoginResponse {
	return LoginResponse{
		User: LoginUser{
			ID:       string(p.ID),
			FullName: p.FullName,
			Email:    p.Email,
			IsAdmin:  p.IsAdmin,
			Position: p.Position,
		},
	}
}

// MeResponse is the response for GET /api/auth/me
type MeResponse struct {
	User       Player                 `json:"user"`
	Attendance model.AttendanceCounts `json:"attendance"`
	Events     []roster.PlayerEvent   `json:"events"`
}

// MeResponseFromOverview builds a MeResponse
func MeResponseFromOverview(o *roster.Overview) MeResponse {
	return MeResponse{
		User:       PlayerFromModel(&o.Player),
		Attendance: o.Attendance,
		Events:     o.Events,
	}
}

// PlayersResponse lists players
type PlayersResponse struct {
	Players []Player `json:"players"`
}

// CreatePlayerResponse carries the only copy of the temporary password
type CreatePlayerResponse struct {
	Player            Player `json:"player"`
	TemporaryPassword string `json:"temporaryPassword"`
}

// EventsResponse lists events
type EventsResponse struct {
	Events []model.Event `json:"events"`
}

// EventSummariesResponse lists events with attendance counts
type EventSummariesResponse struct {
	Events []roster.EventSummary `json:"events"`
}

// EventResponse wraps a single event
type EventResponse struct {
	Event model.Event `json:"event"`
}

// AttendanceResponse lists attendance records
type AttendanceResponse struct {
	Attendance []model.AttendanceRecord `json:"attendance"`
}

// RecordAttendanceResponse is the response for a recorded batch
type RecordAttendanceResponse struct {
	Success bool `json:"success"`
	roster.BulkResult
}

// SuccessResponse is a bare success acknowledgement
type SuccessResponse struct {
	Success bool `json:"success"`
}

// HealthResponse is the response for GET /api/health
type HealthResponse struct {
	Status string `json:"status"`
}
