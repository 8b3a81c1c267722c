package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/riddles-game/server/internal/dependencies/clock"
	"github.com/riddles-game/server/internal/model"
	"github.com/riddles-game/server/internal/storage"
)

// Errors
var (
	// ErrInvalidCredentials covers unknown username, wrong password and
	// password-less records alike, so responses cannot be used to probe
	// which usernames exist.
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTooShort   = errors.New("username must be at least 3 characters long")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters long")
	ErrWrongPassword      = errors.New("current password is incorrect")

	ErrTokenRequired = errors.New("authentication token is required")
	ErrTokenExpired  = errors.New("token has expired")
	ErrTokenInvalid  = errors.New("invalid token")
)

// MinUsernameLength and MinPasswordLength are the registration constraints
const (
	MinUsernameLength = 3
	MinPasswordLength = 6
)

// Service handles registration, login and token issuance
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
	cfg     Config
}

// Config holds configuration for the auth service
type Config struct {
	// Secret signs tokens. Must be non-empty in production.
	Secret string
	// TokenTTL is how long issued tokens stay valid
	TokenTTL time.Duration
	// AdminCode elevates a registration to admin when it matches.
	// Empty disables admin registration entirely.
	AdminCode string
	// BcryptCost for password hashing; 0 means bcrypt.DefaultCost
	BcryptCost int
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		TokenTTL:   7 * 24 * time.Hour,
		BcryptCost: bcrypt.DefaultCost,
	}
}

// New creates a new auth Service
func New(storage storage.Storage, clock clock.Clock, cfg Config, logger *slog.Logger) *Service {
	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = DefaultConfig().TokenTTL
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
		cfg:     cfg,
	}
}

// Register creates a new player account and issues a token for it.
// The role is admin only when adminCode matches the configured secret.
func (s *Service) Register(ctx context.Context, username, password, adminCode string) (*model.Player, string, error) {
	username = strings.TrimSpace(username)

	if len(username) < MinUsernameLength {
		return nil, "", ErrUsernameTooShort
	}
	if len(password) < MinPasswordLength {
		return nil, "", ErrPasswordTooShort
	}

	// Check uniqueness
	_, err := s.storage.GetPlayerByUsername(ctx, username)
	if err == nil {
		return nil, "", model.ErrUsernameExists
	}
	if !errors.Is(err, model.ErrPlayerNotFound) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		return nil, "", err
	}

	role := model.RoleUser
	if s.cfg.AdminCode != "" && adminCode == s.cfg.AdminCode {
		role = model.RoleAdmin
	}

	id, err := s.storage.NextPlayerID(ctx)
	if err != nil {
		return nil, "", err
	}

	player := &model.Player{
		ID:           id,
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    s.clock.Now(),
	}

	if err := s.storage.SavePlayer(ctx, player); err != nil {
		return nil, "", err
	}

	token, err := s.GenerateToken(player)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("user registered",
		slog.String("username", username),
		slog.String("role", string(role)),
	)

	return player, token, nil
}

// Login authenticates a player and issues a fresh token carrying the
// player's current role.
func (s *Service) Login(ctx context.Context, username, password string) (*model.Player, string, error) {
	player, err := s.storage.GetPlayerByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, model.ErrPlayerNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	// Records created through score submission have no password
	if player.PasswordHash == "" {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(player.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.GenerateToken(player)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("user logged in",
		slog.String("username", player.Username),
		slog.String("role", string(player.Role)),
	)

	return player, token, nil
}

// GetUserByID looks up a player by id. A missing player is (nil, nil),
// not an error: the authentication middleware treats it as a revocation
// signal for otherwise-valid tokens.
func (s *Service) GetUserByID(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	player, err := s.storage.GetPlayer(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrPlayerNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return player, nil
}

// ChangePassword verifies the current password and stores a new one
func (s *Service) ChangePassword(ctx context.Context, id model.PlayerID, current, updated string) error {
	player, err := s.storage.GetPlayer(ctx, id)
	if err != nil {
		return err
	}

	if player.PasswordHash == "" {
		return ErrWrongPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(player.PasswordHash), []byte(current)); err != nil {
		return ErrWrongPassword
	}

	if len(updated) < MinPasswordLength {
		return ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(updated), s.cfg.BcryptCost)
	if err != nil {
		return err
	}

	player.PasswordHash = string(hash)
	return s.storage.SavePlayer(ctx, player)
}
