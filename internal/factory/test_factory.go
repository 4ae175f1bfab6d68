package factory

import (
	"fmt"
	"time"

	"github.com/mcoot/leelawheel/internal/dependencies/mocks"
	"github.com/mcoot/leelawheel/internal/model"
	"github.com/mcoot/leelawheel/internal/storage/memory"
	"github.com/mcoot/leelawheel/internal/testutil"
)

// TestImages is the image manifest LoadTestCatalog installs
var TestImages = []string{"a.jpg", "b.jpg", "c.jpg", "d.jpg", "e.jpg", "f.jpg"}

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
	Memory     *memory.Storage
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// The clock starts at 2024-01-01 12:00 UTC.
func NewTestApp() *TestApp {
	return NewTestAppWithConfig(Config{CountdownInterval: 10 * time.Millisecond})
}

// NewTestAppWithConfig is NewTestApp with factory settings such as the admin
// token hash. Storage, clock and random are always test doubles.
func NewTestAppWithConfig(cfg Config) *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, cfg, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
		Memory:     store,
	}
}

// LoadTestCatalog installs ten quotes, "quote 0" to "quote 9", and TestImages
func (t *TestApp) LoadTestCatalog() error {
	quotes := make([]model.Quote, 10)
	for i := range quotes {
		quotes[i] = model.Quote{
			Quote: fmt.Sprintf("quote %d", i),
			Date:  fmt.Sprintf("01/%02d/2001", i+1),
		}
	}
	return t.CatalogService.Load(quotes, TestImages)
}
