package factory

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/clubroster/internal/dependencies/mocks"
	"github.com/mcoot/clubroster/internal/services/credentials"
	"github.com/mcoot/clubroster/internal/services/session"
	"github.com/mcoot/clubroster/internal/storage/memory"
	"github.com/mcoot/clubroster/internal/testutil"
)

// TestSessionSecret signs sessions in test apps
const TestSessionSecret = "clubroster-test-secret-0123456789abcdef"

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MemoryStorage *memory.Storage
	MockClock     *mocks.MockClock
	MockRandom    *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	sessionCfg := session.DefaultConfig()
	sessionCfg.Secret = []byte(TestSessionSecret)

	app, err := newWithDependencies(
		store,
		mockClock,
		mockRandom,
		sessionCfg,
		credentials.Config{Cost: bcrypt.MinCost},
		testutil.NopLogger(),
	)
	if err != nil {
		panic(err)
	}

	return &TestApp{
		App:           app,
		MemoryStorage: store,
		MockClock:     mockClock,
		MockRandom:    mockRandom,
	}
}
