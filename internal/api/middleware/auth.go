package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/riddles-game/server/internal/api/apierr"
	"github.com/riddles-game/server/internal/model"
	"github.com/riddles-game/server/internal/services/auth"
)

type contextKey string

const (
	identityContextKey contextKey = "identity"
	claimsContextKey   contextKey = "claims"
)

// Options configures the authentication middleware
type Options struct {
	// Required rejects requests carrying no token at all
	Required bool
	// AllowGuest attaches a guest identity instead of rejecting when no
	// token is present. Only meaningful when Required is false.
	AllowGuest bool
}

// Authenticate creates authentication middleware. It extracts a token,
// verifies it, then revalidates the subject against storage: a deleted
// player or a role that no longer matches the token rejects the request,
// which is what makes revocation take effect before token expiry.
func Authenticate(authService *auth.Service, opts Options) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)

			if token == "" {
				if opts.Required {
					apierr.WriteError(w, auth.ErrTokenRequired)
					return
				}
				if opts.AllowGuest {
					r = requestWithIdentity(r, auth.GuestIdentity(), nil)
				}
				next.ServeHTTP(w, r)
				return
			}

			claims, err := authService.VerifyToken(token)
			if err != nil {
				// Keeps the specific expired/invalid message
				apierr.WriteError(w, err)
				return
			}

			user, err := authService.GetUserByID(r.Context(), claims.ID)
			if err != nil {
				apierr.WriteError(w, apierr.NewInternalError())
				return
			}
			if user == nil {
				apierr.WriteError(w, apierr.NewAuthError("User not found or has been deleted"))
				return
			}

			if user.Role != claims.Role {
				apierr.WriteError(w, apierr.NewAuthError("User role has changed. Please login again"))
				return
			}

			// Identity comes from the fresh record, not the token
			next.ServeHTTP(w, requestWithIdentity(r, auth.IdentityFromPlayer(user), claims))
		})
	}
}

// Authorize creates authorization middleware enforcing a role allow-list.
// An empty allow-list admits any authenticated identity.
func Authorize(allowedRoles ...model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := GetIdentity(r.Context())
			if identity == nil {
				apierr.WriteError(w, apierr.NewAuthError("Authentication required for authorization"))
				return
			}

			if len(allowedRoles) == 0 {
				next.ServeHTTP(w, r)
				return
			}

			for _, role := range allowedRoles {
				if identity.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			apierr.WriteError(w, apierr.NewForbiddenError(fmt.Sprintf(
				"Access denied. Required role: %s. Your role: %s",
				joinRoles(allowedRoles), identity.Role,
			)))
		})
	}
}

// extractToken pulls the token from the request. Precedence: Authorization
// bearer header, then the token query parameter, then the x-auth-token
// header. First match wins.
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	if token := r.URL.Query().Get("token"); token != "" {
		return token
	}

	return r.Header.Get("x-auth-token")
}

func requestWithIdentity(r *http.Request, identity *auth.Identity, claims *auth.Claims) *http.Request {
	ctx := context.WithValue(r.Context(), identityContextKey, identity)
	if claims != nil {
		ctx = context.WithValue(ctx, claimsContextKey, claims)
	}
	return r.WithContext(ctx)
}

func joinRoles(roles []model.Role) string {
	names := make([]string, len(roles))
	for i, role := range roles {
		names[i] = string(role)
	}
	return strings.Join(names, " or ")
}

// GetIdentity returns the identity attached to the request context, or
// nil when the request was not authenticated
func GetIdentity(ctx context.Context) *auth.Identity {
	identity, _ := ctx.Value(identityContextKey).(*auth.Identity)
	return identity
}

// GetClaims returns the verified token claims, or nil for guest requests
func GetClaims(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(claimsContextKey).(*auth.Claims)
	return claims
}

// MustGetIdentity returns the attached identity or panics
func MustGetIdentity(ctx context.Context) *auth.Identity {
	identity := GetIdentity(ctx)
	if identity == nil {
		panic("no identity in context - auth middleware not applied?")
	}
	return identity
}
