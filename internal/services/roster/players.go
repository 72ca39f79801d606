package roster

import (
	"context"
	"slices"
	"strings"

	"github.com/mcoot/clubroster/internal/model"
)

// NewPlayer is the input for AddPlayer. PasswordHash must already be hashed.
type NewPlayer struct {
	FullName     string
	Email        string
	Username     string
	Position     string
	PasswordHash string
	IsAdmin      bool
}

// AddPlayer adds a player to the roster.
// Email and username must not collide, ignoring case, with any existing
// player's email or username.
func (s *Store) AddPlayer(ctx context.Context, input NewPlayer) (*model.Player, error) {
	player := model.Player{
		FullName:     strings.TrimSpace(input.FullName),
		Email:        model.NormalizeEmail(input.Email),
		Username:     strings.TrimSpace(input.Username),
		Position:     strings.TrimSpace(input.Position),
		PasswordHash: input.PasswordHash,
		IsAdmin:      input.IsAdmin,
	}

	if player.FullName == "" || player.Email == "" || player.Username == "" || player.Position == "" {
		return nil, model.NewValidationError("fullName, email, username and position are required")
	}
	if player.PasswordHash == "" {
		return nil, model.NewValidationError("password hash is required")
	}

	err := s.update(ctx, func(doc *model.Document) error {
		for i := range doc.Players {
			existing := &doc.Players[i]
			if existing.MatchesIdentifier(player.Email) || existing.MatchesIdentifier(player.Username) {
				return model.ErrDuplicatePlayer
			}
		}

		player.ID = model.PlayerID(s.newID())
		player.CreatedAt = s.clock.Now()
		doc.Players = append(doc.Players, player)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("player added", "player_id", player.ID, "is_admin", player.IsAdmin)
	return &player, nil
}

// DeletePlayer removes a non-admin player together with their attendance records
func (s *Store) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	removed := 0
	err := s.update(ctx, func(doc *model.Document) error {
		idx := doc.PlayerIndex(id)
		if idx < 0 {
			return model.ErrPlayerNotFound
		}
		if doc.Players[idx].IsAdmin {
			return model.ErrAdminProtected
		}

		doc.Players = slices.Delete(doc.Players, idx, idx+1)

		before := len(doc.Attendance)
		doc.Attendance = slices.DeleteFunc(doc.Attendance, func(r model.AttendanceRecord) bool {
			return r.PlayerID == id
		})
		removed = before - len(doc.Attendance)
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("player deleted", "player_id", id, "attendance_removed", removed)
	return nil
}
