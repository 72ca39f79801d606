package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		_, _ = fmt.Fprintln(o.w, string(data))
	} else {
		_, _ = fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case LoginResult:
		o.printLoginResult(v)
	case MeResult:
		o.printMe(v)
	case PlayersResult:
		o.printPlayers(v.Players)
	case CreatePlayerResult:
		o.printCreatedPlayer(v)
	case EventsResult:
		o.printEvents(v.Events)
	case EventSummariesResult:
		o.printEventSummaries(v.Events)
	case EventResult:
		o.printEvents([]Event{v.Event})
	case AttendanceResult:
		o.printAttendance(v.Attendance)
	case RecordResult:
		o.printRecordResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID        string    `json:"id"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Position  string    `json:"position"`
	Username  string    `json:"username"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
}

// LoginResult is the body of a successful login
type LoginResult struct {
	User struct {
		ID       string `json:"id"`
		FullName string `json:"fullName"`
		Email    string `json:"email"`
		IsAdmin  bool   `json:"isAdmin"`
		Position string `json:"position"`
	} `json:"user"`
}

// Counts is an attendance tally
type Counts struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
	Late    int `json:"late"`
}

// Event response type
type Event struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	StartTime time.Time `json:"startTime"`
	Location  string    `json:"location"`
	Notes     string    `json:"notes,omitempty"`
}

// PlayerEvent is an event with the caller's own status
type PlayerEvent struct {
	Event
	Status *string `json:"status"`
}

// MeResult is the signed-in player's overview
type MeResult struct {
	User       Player        `json:"user"`
	Attendance Counts        `json:"attendance"`
	Events     []PlayerEvent `json:"events"`
}

// PlayersResult lists players
type PlayersResult struct {
	Players []Player `json:"players"`
}

// CreatePlayerResult carries the temporary password of a new player
type CreatePlayerResult struct {
	Player            Player `json:"player"`
	TemporaryPassword string `json:"temporaryPassword"`
}

// EventsResult lists events
type EventsResult struct {
	Events []Event `json:"events"`
}

// EventSummary is an event with its attendance counts
type EventSummary struct {
	Event
	Attendance Counts `json:"attendance"`
}

// EventSummariesResult lists events with counts
type EventSummariesResult struct {
	Events []EventSummary `json:"events"`
}

// EventResult wraps a created event
type EventResult struct {
	Event Event `json:"event"`
}

// AttendanceRecord response type
type AttendanceRecord struct {
	ID         string    `json:"id"`
	PlayerID   string    `json:"playerId"`
	EventID    string    `json:"eventId"`
	Status     string    `json:"status"`
	RecordedBy string    `json:"recordedBy"`
	RecordedAt time.Time `json:"recordedAt"`
}

// AttendanceResult lists attendance for one event
type AttendanceResult struct {
	Attendance []AttendanceRecord `json:"attendance"`
}

// RecordResult is the outcome of a recorded batch
type RecordResult struct {
	Success  bool `json:"success"`
	Recorded int  `json:"recorded"`
	Dropped  int  `json:"dropped"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

const timeLayout = "2006-01-02 15:04 MST"

func (o *Output) table() *tabwriter.Writer {
	return tabwriter.NewWriter(o.w, 0, 0, 2, ' ', 0)
}

func (o *Output) printLoginResult(l LoginResult) {
	role := "player"
	if l.User.IsAdmin {
		role = "admin"
	}
	_, _ = fmt.Fprintf(o.w, "Signed in as %s <%s> (%s)\n", l.User.FullName, l.User.Email, role)
}

func (o *Output) printMe(m MeResult) {
	_, _ = fmt.Fprintf(o.w, "Player: %s (%s)\n", m.User.FullName, m.User.Username)
	_, _ = fmt.Fprintf(o.w, "Position: %s\n", m.User.Position)
	_, _ = fmt.Fprintf(o.w, "Attendance: %d present, %d late, %d absent\n",
		m.Attendance.Present, m.Attendance.Late, m.Attendance.Absent)

	if len(m.Events) == 0 {
		return
	}
	_, _ = fmt.Fprintln(o.w)
	tw := o.table()
	_, _ = fmt.Fprintln(tw, "WHEN\tTITLE\tCATEGORY\tSTATUS")
	for _, e := range m.Events {
		status := "-"
		if e.Status != nil {
			status = *e.Status
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.StartTime.Format(timeLayout), e.Title, e.Category, status)
	}
	_ = tw.Flush()
}

func (o *Output) printPlayers(players []Player) {
	tw := o.table()
	_, _ = fmt.Fprintln(tw, "ID\tNAME\tUSERNAME\tEMAIL\tPOSITION\tADMIN")
	for _, p := range players {
		admin := ""
		if p.IsAdmin {
			admin = "yes"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", p.ID, p.FullName, p.Username, p.Email, p.Position, admin)
	}
	_ = tw.Flush()
}

func (o *Output) printCreatedPlayer(c CreatePlayerResult) {
	_, _ = fmt.Fprintf(o.w, "Player: %s (%s)\n", c.Player.FullName, c.Player.ID)
	_, _ = fmt.Fprintf(o.w, "Username: %s\n", c.Player.Username)
	_, _ = fmt.Fprintf(o.w, "Temporary password: %s\n", c.TemporaryPassword)
	_, _ = fmt.Fprintln(o.w, "This password is shown once.")
}

func (o *Output) printEvents(events []Event) {
	tw := o.table()
	_, _ = fmt.Fprintln(tw, "ID\tWHEN\tTITLE\tCATEGORY\tLOCATION")
	for _, e := range events {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", e.ID, e.StartTime.Format(timeLayout), e.Title, e.Category, e.Location)
	}
	_ = tw.Flush()
}

func (o *Output) printEventSummaries(events []EventSummary) {
	tw := o.table()
	_, _ = fmt.Fprintln(tw, "ID\tWHEN\tTITLE\tPRESENT\tLATE\tABSENT")
	for _, e := range events {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\n", e.ID, e.StartTime.Format(timeLayout), e.Title,
			e.Attendance.Present, e.Attendance.Late, e.Attendance.Absent)
	}
	_ = tw.Flush()
}

func (o *Output) printAttendance(records []AttendanceRecord) {
	tw := o.table()
	_, _ = fmt.Fprintln(tw, "PLAYER\tSTATUS\tRECORDED")
	for _, r := range records {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", r.PlayerID, r.Status, r.RecordedAt.Format(timeLayout))
	}
	_ = tw.Flush()
}

func (o *Output) printRecordResult(r RecordResult) {
	_, _ = fmt.Fprintf(o.w, "Recorded: %d\n", r.Recorded)
	if r.Dropped > 0 {
		_, _ = fmt.Fprintf(o.w, "Dropped: %d\n", r.Dropped)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	_, _ = fmt.Fprintf(o.w, "Status: %s\n", h.Status)
}
