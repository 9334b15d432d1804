package factory

import (
	"time"

	"github.com/songguessr/songguessr-go/internal/dependencies/mocks"
	"github.com/songguessr/songguessr-go/internal/services/auth"
	"github.com/songguessr/songguessr-go/internal/services/stats"
	"github.com/songguessr/songguessr-go/internal/storage/memory"
	"github.com/songguessr/songguessr-go/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	authCfg := auth.DefaultConfig()
	authCfg.SigningKey = []byte("test-signing-key")

	app := newWithDependencies(store, mockClock, mockRandom, authCfg, stats.DefaultConfig(), testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
