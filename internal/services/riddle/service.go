package riddle

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"sort"

	"github.com/riddles-game/server/internal/dependencies/clock"
	"github.com/riddles-game/server/internal/dependencies/random"
	"github.com/riddles-game/server/internal/model"
	"github.com/riddles-game/server/internal/storage"
)

// Errors
var (
	ErrQuestionRequired = errors.New("question is required")
	ErrAnswerRequired   = errors.New("answer is required")
)

// DefaultListLimit caps unbounded list requests
const DefaultListLimit = 50

const idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Service manages the riddle collection
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
}

// New creates a new riddle Service
func New(storage storage.Storage, clk clock.Clock, rnd random.Random, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clk,
		random:  rnd,
		logger:  logger,
	}
}

// Filter narrows and paginates riddle listings
type Filter struct {
	Level string
	Limit int
	Skip  int
}

// List returns riddles newest first, optionally filtered by level
func (s *Service) List(ctx context.Context, filter Filter) ([]*model.Riddle, error) {
	if filter.Level != "" && !model.ValidLevel(filter.Level) {
		return nil, model.ErrInvalidLevel
	}

	riddles, err := s.storage.ListRiddles(ctx)
	if err != nil {
		return nil, err
	}

	if filter.Level != "" {
		filtered := riddles[:0]
		for _, r := range riddles {
			if r.Level == filter.Level {
				filtered = append(filtered, r)
			}
		}
		riddles = filtered
	}

	sort.Slice(riddles, func(i, j int) bool {
		return riddles[i].CreatedAt.After(riddles[j].CreatedAt)
	})

	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	skip := filter.Skip
	if skip < 0 {
		skip = 0
	}

	if skip >= len(riddles) {
		return []*model.Riddle{}, nil
	}
	riddles = riddles[skip:]
	if len(riddles) > limit {
		riddles = riddles[:limit]
	}
	return riddles, nil
}

// Get returns a single riddle by id
func (s *Service) Get(ctx context.Context, id model.RiddleID) (*model.Riddle, error) {
	return s.storage.GetRiddle(ctx, id)
}

// Random picks a uniformly random riddle
func (s *Service) Random(ctx context.Context) (*model.Riddle, error) {
	riddles, err := s.storage.ListRiddles(ctx)
	if err != nil {
		return nil, err
	}
	if len(riddles) == 0 {
		return nil, model.ErrNoRiddles
	}
	return riddles[s.random.Intn(len(riddles))], nil
}

// CreateParams holds the fields for a new riddle
type CreateParams struct {
	Question string
	Answer   string
	Level    string
}

// Create stores a new riddle. Level defaults to medium.
func (s *Service) Create(ctx context.Context, params CreateParams) (*model.Riddle, error) {
	if params.Question == "" {
		return nil, ErrQuestionRequired
	}
	if params.Answer == "" {
		return nil, ErrAnswerRequired
	}

	level := params.Level
	if level == "" {
		level = model.LevelMedium
	}
	if !model.ValidLevel(level) {
		return nil, model.ErrInvalidLevel
	}

	riddle := &model.Riddle{
		ID:        s.generateID(),
		Question:  params.Question,
		Answer:    params.Answer,
		Level:     level,
		CreatedAt: s.clock.Now(),
	}

	if err := s.storage.SaveRiddle(ctx, riddle); err != nil {
		return nil, err
	}
	return riddle, nil
}

// UpdateParams holds the updatable riddle fields; empty fields are kept
type UpdateParams struct {
	Question string
	Answer   string
	Level    string
}

// Update modifies an existing riddle
func (s *Service) Update(ctx context.Context, id model.RiddleID, params UpdateParams) (*model.Riddle, error) {
	riddle, err := s.storage.GetRiddle(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Question != "" {
		riddle.Question = params.Question
	}
	if params.Answer != "" {
		riddle.Answer = params.Answer
	}
	if params.Level != "" {
		if !model.ValidLevel(params.Level) {
			return nil, model.ErrInvalidLevel
		}
		riddle.Level = params.Level
	}

	if err := s.storage.SaveRiddle(ctx, riddle); err != nil {
		return nil, err
	}
	return riddle, nil
}

// Delete removes a riddle by id
func (s *Service) Delete(ctx context.Context, id model.RiddleID) error {
	return s.storage.DeleteRiddle(ctx, id)
}

// seedRiddle is the on-disk shape of a seed file entry
type seedRiddle struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Level    string `json:"level"`
}

// LoadInitial seeds riddles from a JSON file. Seeding is skipped when the
// store already has riddles. Returns the number of riddles created.
func (s *Service) LoadInitial(ctx context.Context, path string) (int, error) {
	count, err := s.storage.CountRiddles(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		s.logger.Info("skipping riddle seeding, store is not empty",
			slog.Int("existing", count),
		)
		return 0, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	var seeds []seedRiddle
	if err := json.Unmarshal(data, &seeds); err != nil {
		return 0, err
	}

	created := 0
	for _, seed := range seeds {
		if _, err := s.Create(ctx, CreateParams(seed)); err != nil {
			return created, err
		}
		created++
	}

	s.logger.Info("seeded riddles", slog.Int("count", created))
	return created, nil
}

// generateID generates a random riddle id
func (s *Service) generateID() model.RiddleID {
	return model.RiddleID("r_" + s.random.String(12, idAlphabet))
}
