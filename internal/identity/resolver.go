package identity

import (
	"log/slog"
	"net/http"
	"strings"

	id "paperflow/pkg/domain"
	"paperflow/pkg/requestcontext"

	"paperflow/internal/jwttoken"
)

// TokenValidator verifies a bearer credential and returns its claims.
type TokenValidator interface {
	ValidateToken(tokenString string) (*jwttoken.Claims, error)
}

// Resolver turns inbound credentials into identities.
type Resolver struct {
	validator TokenValidator
	logger    *slog.Logger
}

func NewResolver(validator TokenValidator, logger *slog.Logger) *Resolver {
	return &Resolver{validator: validator, logger: logger}
}

// Resolve verifies the credential and returns the acting identity.
// An empty or unverifiable credential resolves to the placeholder identity;
// verification errors are logged and swallowed, never surfaced to the caller.
func (r *Resolver) Resolve(credential string) Identity {
	if credential == "" {
		return Placeholder()
	}

	claims, err := r.validator.ValidateToken(credential)
	if err != nil {
		r.logger.Warn("credential verification failed, using placeholder identity",
			"error", err,
		)
		return Placeholder()
	}

	userID, err := id.ParseUserID(claims.UserID)
	if err != nil {
		r.logger.Warn("token carried an invalid user id, using placeholder identity",
			"error", err,
		)
		return Placeholder()
	}

	return Identity{ID: userID, Role: ParseRole(claims.Role)}
}

// Middleware resolves the Authorization header into an identity on every
// request. It never rejects: authorization decisions happen downstream in
// the guard, per-operation.
func (r *Resolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		credential := ""
		if after, ok := strings.CutPrefix(req.Header.Get("Authorization"), "Bearer "); ok {
			credential = after
		}

		ident := r.Resolve(credential)
		if ident.IsPlaceholder() && credential != "" {
			r.logger.InfoContext(req.Context(), "request degraded to placeholder identity",
				"request_id", requestcontext.RequestID(req.Context()),
				"path", req.URL.Path,
			)
		}

		next.ServeHTTP(w, req.WithContext(WithIdentity(req.Context(), ident)))
	})
}
