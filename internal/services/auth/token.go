package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"

	"github.com/riddles-game/server/internal/model"
)

// Claims is the payload embedded in issued tokens
type Claims struct {
	ID       model.PlayerID `json:"id"`
	Username string         `json:"username"`
	Role     model.Role     `json:"role"`
	jwt.RegisteredClaims
}

// Identity describes who is making a request. It is attached to the
// request context by the authentication middleware and discarded with
// the request. Guests have a zero ID.
type Identity struct {
	ID       model.PlayerID
	Username string
	Role     model.Role
}

// GuestIdentity returns the identity attached for unauthenticated
// requests on routes that allow guest access
func GuestIdentity() *Identity {
	return &Identity{Role: model.RoleGuest}
}

// IdentityFromPlayer builds an Identity from a freshly fetched player
// record, never from token claims, so role changes take effect immediately
func IdentityFromPlayer(p *model.Player) *Identity {
	return &Identity{
		ID:       p.ID,
		Username: p.Username,
		Role:     p.Role,
	}
}

// GenerateToken signs a token for the player with the configured TTL
func (s *Service) GenerateToken(p *model.Player) (string, error) {
	now := s.clock.Now()

	claims := Claims{
		ID:       p.ID,
		Username: p.Username,
		Role:     p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Secret))
}

// VerifyToken parses and validates a token string. Expiry is checked
// against the service clock. Each failure mode keeps a distinct message
// but all surface as 401 at the API boundary.
func (s *Service) VerifyToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrTokenRequired
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrTokenInvalid
			}
			return []byte(s.cfg.Secret), nil
		},
		jwt.WithTimeFunc(s.clock.Now),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	if !token.Valid || !claims.Role.Valid() {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
