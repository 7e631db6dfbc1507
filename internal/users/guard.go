package users

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/YevheniiaMushyk/goit-node-rest-api/internal/platform/httpx"
	"github.com/YevheniiaMushyk/goit-node-rest-api/internal/shared"
	"github.com/YevheniiaMushyk/goit-node-rest-api/internal/token"
)

const msgNotAuthorized = "Not authorized"

// Guard authenticates protected requests. It verifies the bearer token's
// signature and expiry, then checks it against the account's stored session
// token so that logout and newer logins revoke older tokens before they expire.
type Guard struct {
	logger *slog.Logger
	repo   Repository
	issuer *token.Issuer
}

// NewGuard constructs a Guard.
func NewGuard(logger *slog.Logger, repo Repository, issuer *token.Issuer) *Guard {
	return &Guard{logger: logger, repo: repo, issuer: issuer}
}

// Middleware gates the wrapped handler behind session authentication.
func (g *Guard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		bearer, ok := bearerToken(r)
		if !ok {
			httpx.Error(w, http.StatusUnauthorized, msgNotAuthorized)
			return
		}

		sess, err := g.issuer.VerifySession(bearer)
		if err != nil {
			if errors.Is(err, token.ErrTokenExpired) {
				g.logger.Debug("session token expired", slog.String("path", r.URL.Path))
			}
			httpx.Error(w, http.StatusUnauthorized, msgNotAuthorized)
			return
		}

		user, err := g.repo.FindByID(r.Context(), sess.UserID)
		if err != nil {
			if !errors.Is(err, shared.ErrNotFound) {
				g.logger.Error("load account for session", slog.Any("error", err))
			}
			httpx.Error(w, http.StatusUnauthorized, msgNotAuthorized)
			return
		}
		// A token that no longer matches the stored value has been revoked by
		// logout or superseded by a newer login.
		if user.Token == nil || *user.Token != bearer {
			httpx.Error(w, http.StatusUnauthorized, msgNotAuthorized)
			return
		}

		ctx := shared.ContextWithUser(r.Context(), &shared.AuthUser{ID: user.ID, Email: user.Email})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, value, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || value == "" {
		return "", false
	}
	return value, true
}
