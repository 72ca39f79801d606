package credentials

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/clubroster/internal/dependencies/random"
)

// TempPasswordAlphabet omits characters that are easy to confuse when read
// aloud or copied by hand (0/O, 1/l/I)
const TempPasswordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"

// DefaultTempPasswordLength is used when a non-positive length is requested
const DefaultTempPasswordLength = 12

// Config holds configuration for the credentials service
type Config struct {
	// Cost is the bcrypt work factor
	Cost int
}

// DefaultConfig returns default credentials configuration
func DefaultConfig() Config {
	return Config{
		Cost: bcrypt.DefaultCost,
	}
}

// Service hashes and verifies passwords and mints temporary passwords
type Service struct {
	random    random.Random
	cost      int
	dummyHash []byte
}

// New creates a new credentials service
func New(rnd random.Random, cfg Config) *Service {
	if cfg.Cost < bcrypt.MinCost || cfg.Cost > bcrypt.MaxCost {
		cfg.Cost = DefaultConfig().Cost
	}
	s := &Service{
		random: rnd,
		cost:   cfg.Cost,
	}
	// Hash of a throwaway value at the configured cost, used to spend the
	// same time on unknown identifiers as on real ones
	s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("clubroster-timing-equaliser"), cfg.Cost)
	return s
}

// HashPassword returns a salted bcrypt hash of plaintext.
// It fails for inputs bcrypt cannot hash, such as passwords over 72 bytes.
func (s *Service) HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), s.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether plaintext matches hash.
// Malformed hashes verify as false.
func (s *Service) VerifyPassword(plaintext, hash string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// DummyVerify performs a comparison that always fails, taking as long as a
// real verification
func (s *Service) DummyVerify(plaintext string) {
	_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(plaintext))
}

// GenerateTempPassword returns a random password of the given length drawn
// from TempPasswordAlphabet
func (s *Service) GenerateTempPassword(length int) string {
	if length <= 0 {
		length = DefaultTempPasswordLength
	}
	return s.random.String(length, TempPasswordAlphabet)
}
