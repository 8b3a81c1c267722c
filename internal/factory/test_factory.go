package factory

import (
	"context"
	"time"

	"github.com/riddles-game/server/internal/dependencies/mocks"
	"github.com/riddles-game/server/internal/model"
	"github.com/riddles-game/server/internal/services/auth"
	"github.com/riddles-game/server/internal/services/riddle"
	"github.com/riddles-game/server/internal/storage/memory"
	"github.com/riddles-game/server/internal/testutil"
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

	authCfg := auth.Config{
		Secret:    "test-secret",
		AdminCode: "test-admin-code",
	}
	app := newWithDependencies(store, mockClock, mockRandom, authCfg, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// SeedRiddles creates a small set of riddles for testing
func (t *TestApp) SeedRiddles() ([]*model.Riddle, error) {
	seeds := []riddle.CreateParams{
		{
			Question: "What has keys but can't open locks?",
			Answer:   "A piano",
			Level:    model.LevelEasy,
		},
		{
			Question: "What has a head and a tail but no body?",
			Answer:   "A coin",
			Level:    model.LevelEasy,
		},
		{
			Question: "The more you take, the more you leave behind. What am I?",
			Answer:   "Footsteps",
			Level:    model.LevelMedium,
		},
		{
			Question: "What can travel around the world while staying in a corner?",
			Answer:   "A stamp",
			Level:    model.LevelMedium,
		},
		{
			Question: "I speak without a mouth and hear without ears. What am I?",
			Answer:   "An echo",
			Level:    model.LevelHard,
		},
	}

	// Queue distinct ID suffixes so seeded riddles don't collide
	t.MockRandom.QueueString("seed00000001", "seed00000002", "seed00000003", "seed00000004", "seed00000005")

	riddles := make([]*model.Riddle, 0, len(seeds))
	for _, params := range seeds {
		r, err := t.RiddleService.Create(context.Background(), params)
		if err != nil {
			return nil, err
		}
		riddles = append(riddles, r)
	}
	return riddles, nil
}
