package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mcoot/clubroster/internal/dependencies/random"
	"github.com/mcoot/clubroster/internal/model"
	"github.com/mcoot/clubroster/internal/services/credentials"
	"github.com/mcoot/clubroster/internal/services/roster"
	"github.com/mcoot/clubroster/internal/services/session"
)

const (
	// UsernameMinLength is the shortest username derived from a full name
	UsernameMinLength = 3
	// BootstrapPasswordMinLength is the shortest password accepted for the first admin
	BootstrapPasswordMinLength = 8
	// DefaultAdminPosition is the position given to a bootstrapped admin
	DefaultAdminPosition = "Staff"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountRemoved     = errors.New("account no longer exists")
)

// Session is a freshly issued login
type Session struct {
	Token     string
	ExpiresAt time.Time
	Player    model.Player
}

// ProvisionRequest is an admin's request to add a player
type ProvisionRequest struct {
	FullName string
	Email    string
	Position string
	Username string // optional, derived from FullName when blank
	IsAdmin  bool
}

// Provisioned is a newly created player and their one-time password.
// The temporary password exists only here; only its hash is stored.
type Provisioned struct {
	Player            model.Player
	TemporaryPassword string
}

// BootstrapRequest describes the first administrator account
type BootstrapRequest struct {
	Email    string
	FullName string
	Password string
	Username string
	Position string
}

// Service handles login, session identity lookups and player provisioning
type Service struct {
	store       *roster.Store
	credentials *credentials.Service
	sessions    *session.Service
	random      random.Random
	logger      *slog.Logger
}

// New creates a new auth service
func New(
	store *roster.Store,
	credentials *credentials.Service,
	sessions *session.Service,
	random random.Random,
	logger *slog.Logger,
) *Service {
	return &Service{
		store:       store,
		credentials: credentials,
		sessions:    sessions,
		random:      random,
		logger:      logger,
	}
}

// Login authenticates a player by email or username and issues a session
func (s *Service) Login(ctx context.Context, identifier, password string) (*Session, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, model.NewValidationError("identifier and password are required")
	}

	player, err := s.store.FindByIdentifier(ctx, identifier)
	if errors.Is(err, model.ErrPlayerNotFound) {
		s.credentials.DummyVerify(password)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !s.credentials.VerifyPassword(password, player.PasswordHash) {
		s.logger.Info("login rejected", "player_id", player.ID)
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.sessions.Issue(IdentityOf(player))
	if err != nil {
		return nil, fmt.Errorf("issue session: %w", err)
	}

	s.logger.Info("player logged in", "player_id", player.ID)
	return &Session{
		Token:     token,
		ExpiresAt: expiresAt,
		Player:    *player,
	}, nil
}

// Overview returns the session player's attendance history.
// A session that outlived its player yields ErrAccountRemoved.
func (s *Service) Overview(ctx context.Context, claims *session.Claims) (*roster.Overview, error) {
	overview, err := s.store.PlayerOverview(ctx, claims.UserID)
	if errors.Is(err, model.ErrPlayerNotFound) {
		return nil, ErrAccountRemoved
	}
	return overview, err
}

// ProvisionPlayer creates a player with a generated temporary password
func (s *Service) ProvisionPlayer(ctx context.Context, req ProvisionRequest) (*Provisioned, error) {
	fullName := strings.TrimSpace(req.FullName)
	email := model.NormalizeEmail(req.Email)
	position := strings.TrimSpace(req.Position)
	if fullName == "" || email == "" || position == "" {
		return nil, model.NewValidationError("fullName, email and position are required")
	}

	tempPassword := s.credentials.GenerateTempPassword(credentials.DefaultTempPasswordLength)
	hash, err := s.credentials.HashPassword(tempPassword)
	if err != nil {
		return nil, fmt.Errorf("hash temporary password: %w", err)
	}

	player, err := s.store.AddPlayer(ctx, roster.NewPlayer{
		FullName:     fullName,
		Email:        email,
		Username:     DeriveUsername(fullName, req.Username, s.random),
		Position:     position,
		PasswordHash: hash,
		IsAdmin:      req.IsAdmin,
	})
	if err != nil {
		return nil, err
	}

	return &Provisioned{
		Player:            *player,
		TemporaryPassword: tempPassword,
	}, nil
}

// BootstrapAdmin creates the first administrator. It does nothing and
// reports false when an administrator already exists.
func (s *Service) BootstrapAdmin(ctx context.Context, req BootstrapRequest) (*model.Player, bool, error) {
	hasAdmin, err := s.store.HasAdmin(ctx)
	if err != nil {
		return nil, false, err
	}
	if hasAdmin {
		return nil, false, nil
	}

	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.FullName) == "" {
		return nil, false, model.NewValidationError("email and name are required")
	}
	if len(req.Password) < BootstrapPasswordMinLength {
		return nil, false, model.NewValidationError(
			fmt.Sprintf("password must be at least %d characters", BootstrapPasswordMinLength))
	}

	hash, err := s.credentials.HashPassword(req.Password)
	if err != nil {
		return nil, false, model.NewValidationError("password cannot be hashed")
	}

	position := strings.TrimSpace(req.Position)
	if position == "" {
		position = DefaultAdminPosition
	}

	player, err := s.store.AddPlayer(ctx, roster.NewPlayer{
		FullName:     req.FullName,
		Email:        req.Email,
		Username:     DeriveUsername(req.FullName, req.Username, s.random),
		Position:     position,
		PasswordHash: hash,
		IsAdmin:      true,
	})
	if err != nil {
		return nil, false, err
	}

	s.logger.Info("administrator bootstrapped", "player_id", player.ID)
	return player, true, nil
}

// IdentityOf returns the session identity for a player
func IdentityOf(player *model.Player) session.Identity {
	return session.Identity{
		UserID:   player.ID,
		Email:    player.Email,
		FullName: player.FullName,
		IsAdmin:  player.IsAdmin,
	}
}

// DeriveUsername returns desired when set, otherwise the lower-cased ASCII
// letters and digits of fullName. Candidates with fewer than
// UsernameMinLength characters are replaced with "player" and a random number below 9999.
func DeriveUsername(fullName, desired string, rnd random.Random) string {
	candidate := strings.TrimSpace(desired)
	if candidate == "" {
		var b strings.Builder
		for _, r := range strings.ToLower(fullName) {
			if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
				b.WriteRune(r)
			}
		}
		candidate = b.String()
	}
	if utf8.RuneCountInString(candidate) < UsernameMinLength {
		candidate = fmt.Sprintf("player%d", rnd.Intn(9999))
	}
	return candidate
}
