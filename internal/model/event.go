package model

import (
	"slices"
	"strings"
	"time"
)

// EventID uniquely identifies a fixture
type EventID string

// Category classifies a fixture
type Category string

const (
	CategoryTraining   Category = "training"
	CategoryMatch      Category = "match"
	CategoryTournament Category = "tournament"
	CategoryEvent      Category = "event"
)

// Categories lists every valid category
var Categories = []Category{CategoryTraining, CategoryMatch, CategoryTournament, CategoryEvent}

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	return slices.Contains(Categories, c)
}

// CategoryNames returns the valid categories as a comma-separated list
func CategoryNames() string {
	names := make([]string, len(Categories))
	for i, c := range Categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

// Event is a fixture on the club calendar
type Event struct {
	ID        EventID   `json:"id"`
	Title     string    `json:"title"`
	Category  Category  `json:"category"`
	StartTime time.Time `json:"startTime"`
	Location  string    `json:"location"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
