package identity

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paperflow/internal/jwttoken"
	id "paperflow/pkg/domain"
)

func testResolver() (*Resolver, *jwttoken.JWTService) {
	svc := jwttoken.NewJWTService("test-key", "test-issuer", "test-audience")
	logger := slog.New(slog.DiscardHandler)
	return NewResolver(svc, logger), svc
}

func TestResolve_ValidCredential(t *testing.T) {
	resolver, svc := testResolver()
	userID := uuid.New()

	token, err := svc.GenerateToken(userID, "admin", time.Hour)
	require.NoError(t, err)

	ident := resolver.Resolve(token)
	assert.Equal(t, id.UserID(userID), ident.ID)
	assert.Equal(t, RoleAdmin, ident.Role)
	assert.False(t, ident.IsPlaceholder())
}

func TestResolve_FallsBackToPlaceholder(t *testing.T) {
	resolver, svc := testResolver()

	t.Run("empty credential", func(t *testing.T) {
		ident := resolver.Resolve("")
		assert.True(t, ident.IsPlaceholder())
		assert.Equal(t, RoleTeacher, ident.Role)
	})

	t.Run("garbage credential never errors", func(t *testing.T) {
		ident := resolver.Resolve("not-a-jwt")
		assert.True(t, ident.IsPlaceholder())
	})

	t.Run("expired credential", func(t *testing.T) {
		token, err := svc.GenerateToken(uuid.New(), "teacher", -time.Hour)
		require.NoError(t, err)
		ident := resolver.Resolve(token)
		assert.True(t, ident.IsPlaceholder())
	})
}

func TestResolve_UnknownRoleNeverEscalates(t *testing.T) {
	resolver, svc := testResolver()

	token, err := svc.GenerateToken(uuid.New(), "root", time.Hour)
	require.NoError(t, err)

	ident := resolver.Resolve(token)
	assert.Equal(t, RoleTeacher, ident.Role)
}

func TestMiddleware_InjectsIdentity(t *testing.T) {
	resolver, svc := testResolver()
	userID := uuid.New()
	token, err := svc.GenerateToken(userID, "approver", time.Hour)
	require.NoError(t, err)

	var seen Identity
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = FromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/papers", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resolver.Middleware(next).ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, id.UserID(userID), seen.ID)
	assert.Equal(t, RoleApprover, seen.Role)
}

func TestFromContext_DefaultsToPlaceholder(t *testing.T) {
	ident := FromContext(context.Background())
	assert.True(t, ident.IsPlaceholder())
}
