package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/riddles-game/server/internal/dependencies/mocks"
	"github.com/riddles-game/server/internal/model"
	"github.com/riddles-game/server/internal/services/auth"
	"github.com/riddles-game/server/internal/storage/memory"
	"github.com/riddles-game/server/internal/testutil"
)

type AuthMiddlewareSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *auth.Service
}

func TestAuthMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareSuite))
}

func (s *AuthMiddlewareSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.service = auth.New(s.storage, s.clock, auth.Config{Secret: "mw-test-secret"}, testutil.NopLogger())
}

// registerUser creates an account and returns the player with a token
func (s *AuthMiddlewareSuite) registerUser(username string) (*model.Player, string) {
	player, token, err := s.service.Register(context.Background(), username, "password123", "")
	s.Require().NoError(err)
	return player, token
}

// identityHandler records the identity the middleware attached
func identityHandler(got **auth.Identity) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got = GetIdentity(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func (s *AuthMiddlewareSuite) serve(mw func(http.Handler) http.Handler, req *http.Request) (*httptest.ResponseRecorder, *auth.Identity) {
	var identity *auth.Identity
	rr := httptest.NewRecorder()
	mw(identityHandler(&identity)).ServeHTTP(rr, req)
	return rr, identity
}

func (s *AuthMiddlewareSuite) TestRequiredRejectsMissingToken() {
	mw := Authenticate(s.service, Options{Required: true})

	rr, _ := s.serve(mw, httptest.NewRequest(http.MethodGet, "/", nil))
	s.Equal(http.StatusUnauthorized, rr.Code)
	s.Contains(rr.Body.String(), "Authentication token is required")
}

func (s *AuthMiddlewareSuite) TestOptionalWithoutGuestPassesNoIdentity() {
	mw := Authenticate(s.service, Options{})

	rr, identity := s.serve(mw, httptest.NewRequest(http.MethodGet, "/", nil))
	s.Equal(http.StatusOK, rr.Code)
	s.Nil(identity)
}

func (s *AuthMiddlewareSuite) TestAllowGuestAttachesGuestIdentity() {
	mw := Authenticate(s.service, Options{AllowGuest: true})

	rr, identity := s.serve(mw, httptest.NewRequest(http.MethodGet, "/", nil))
	s.Equal(http.StatusOK, rr.Code)
	s.Require().NotNil(identity)
	s.Equal(model.RoleGuest, identity.Role)
	s.Zero(identity.ID)
}

func (s *AuthMiddlewareSuite) TestValidTokenAttachesFreshIdentity() {
	player, token := s.registerUser("alice")
	mw := Authenticate(s.service, Options{Required: true})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rr, identity := s.serve(mw, req)
	s.Equal(http.StatusOK, rr.Code)
	s.Require().NotNil(identity)
	s.Equal(player.ID, identity.ID)
	s.Equal("alice", identity.Username)
}

func (s *AuthMiddlewareSuite) TestExpiredTokenRejected() {
	_, token := s.registerUser("alice")
	s.clock.Advance(8 * 24 * time.Hour)
	mw := Authenticate(s.service, Options{Required: true})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rr, _ := s.serve(mw, req)
	s.Equal(http.StatusUnauthorized, rr.Code)
	s.Contains(rr.Body.String(), "Token has expired")
}

func (s *AuthMiddlewareSuite) TestDeletedSubjectRejected() {
	player, token := s.registerUser("alice")
	s.Require().NoError(s.storage.DeletePlayer(context.Background(), player.ID))
	mw := Authenticate(s.service, Options{Required: true})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rr, _ := s.serve(mw, req)
	s.Equal(http.StatusUnauthorized, rr.Code)
	s.Contains(rr.Body.String(), "User not found or has been deleted")
}

func (s *AuthMiddlewareSuite) TestRoleDriftRejected() {
	player, token := s.registerUser("alice")
	player.Role = model.RoleAdmin
	s.Require().NoError(s.storage.SavePlayer(context.Background(), player))
	mw := Authenticate(s.service, Options{Required: true})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rr, _ := s.serve(mw, req)
	s.Equal(http.StatusUnauthorized, rr.Code)
	s.Contains(rr.Body.String(), "User role has changed")
}

// Token extraction precedence

func TestExtractTokenPrecedence(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?token=from-query", nil)
	req.Header.Set("Authorization", "Bearer from-header")
	req.Header.Set("x-auth-token", "from-x-auth")
	assert.Equal(t, "from-header", extractToken(req))

	req = httptest.NewRequest(http.MethodGet, "/?token=from-query", nil)
	req.Header.Set("x-auth-token", "from-x-auth")
	assert.Equal(t, "from-query", extractToken(req))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("x-auth-token", "from-x-auth")
	assert.Equal(t, "from-x-auth", extractToken(req))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, extractToken(req))
}

// Authorize

func serveAuthorized(identity *auth.Identity, roles ...model.Role) *httptest.ResponseRecorder {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if identity != nil {
		req = requestWithIdentity(req, identity, nil)
	}

	rr := httptest.NewRecorder()
	Authorize(roles...)(handler).ServeHTTP(rr, req)
	return rr
}

func TestAuthorizeNoIdentity(t *testing.T) {
	rr := serveAuthorized(nil, model.RoleAdmin)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "Authentication required for authorization")
}

func TestAuthorizeEmptyListAdmitsAnyIdentity(t *testing.T) {
	rr := serveAuthorized(auth.GuestIdentity())
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestAuthorizeAllowedRole(t *testing.T) {
	identity := &auth.Identity{ID: 1, Username: "alice", Role: model.RoleUser}
	rr := serveAuthorized(identity, model.RoleUser, model.RoleAdmin)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestAuthorizeForbiddenRoleNamesRequirement(t *testing.T) {
	rr := serveAuthorized(auth.GuestIdentity(), model.RoleUser, model.RoleAdmin)
	require.Equal(t, http.StatusForbidden, rr.Code)
	assert.Contains(t, rr.Body.String(), "Access denied. Required role: user or admin. Your role: guest")
}
