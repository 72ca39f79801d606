package session

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mcoot/clubroster/internal/dependencies/clock"
	"github.com/mcoot/clubroster/internal/model"
)

// MinSecretLength is the shortest accepted signing secret, in bytes
const MinSecretLength = 32

// Errors
var (
	ErrSecretTooShort = errors.New("session secret must be at least 32 bytes")
)

// Identity is the signed-in player as carried in the session token
type Identity struct {
	UserID   model.PlayerID `json:"userId"`
	Email    string         `json:"email"`
	FullName string         `json:"fullName"`
	IsAdmin  bool           `json:"isAdmin"`
}

// Claims are the verified contents of a session token
type Claims struct {
	Identity
	jwt.RegisteredClaims
}

// Config holds configuration for the session service
type Config struct {
	// Secret is the HMAC signing key
	Secret []byte
	// Duration is how long an issued session stays valid
	Duration time.Duration
	// CookieName is the name of the session cookie
	CookieName string
	// Secure marks the cookie as HTTPS-only
	Secure bool
	// Issuer is written to and required in every token
	Issuer string
}

// DefaultConfig returns default session configuration. Secret must still be set.
func DefaultConfig() Config {
	return Config{
		Duration:   7 * 24 * time.Hour,
		CookieName: "session",
		Issuer:     "clubroster",
	}
}

// Service issues and verifies signed session tokens.
// It holds no per-session state; verification needs only the secret and a clock.
type Service struct {
	clock  clock.Clock
	cfg    Config
	parser *jwt.Parser
}

// New creates a new session service
func New(clock clock.Clock, cfg Config) (*Service, error) {
	if len(cfg.Secret) < MinSecretLength {
		return nil, ErrSecretTooShort
	}
	defaults := DefaultConfig()
	if cfg.Duration <= 0 {
		cfg.Duration = defaults.Duration
	}
	if cfg.CookieName == "" {
		cfg.CookieName = defaults.CookieName
	}
	if cfg.Issuer == "" {
		cfg.Issuer = defaults.Issuer
	}

	return &Service{
		clock: clock,
		cfg:   cfg,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(cfg.Issuer),
			jwt.WithExpirationRequired(),
			jwt.WithTimeFunc(clock.Now),
		),
	}, nil
}

// CookieName returns the name of the session cookie
func (s *Service) CookieName() string {
	return s.cfg.CookieName
}

// Issue signs a token for the given identity
func (s *Service) Issue(identity Identity) (string, time.Time, error) {
	if identity.UserID == "" {
		return "", time.Time{}, errors.New("session identity requires a user id")
	}

	now := s.clock.Now()
	expiresAt := now.Add(s.cfg.Duration)

	claims := Claims{
		Identity: identity,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.Issuer,
			Subject:   string(identity.UserID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.cfg.Secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// Verify checks the token's signature, issuer and expiry.
// It never returns partially trusted claims: any failure yields (nil, false).
func (s *Service) Verify(token string) (*Claims, bool) {
	if token == "" {
		return nil, false
	}

	var claims Claims
	parsed, err := s.parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.cfg.Secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, false
	}
	if claims.UserID == "" {
		return nil, false
	}
	return &claims, true
}

// FromRequest verifies the session carried by the request cookie, falling
// back to a Bearer token for non-browser clients
func (s *Service) FromRequest(r *http.Request) (*Claims, bool) {
	return s.Verify(s.tokenFromRequest(r))
}

func (s *Service) tokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(s.cfg.CookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// SetCookie writes the session cookie for token
func (s *Service) SetCookie(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   int(expiresAt.Sub(s.clock.Now()).Seconds()),
		HttpOnly: true,
		Secure:   s.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie instructs the client to drop the session cookie immediately
func (s *Service) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   s.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
