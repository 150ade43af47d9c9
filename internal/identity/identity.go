// Package identity resolves inbound credentials into acting identities.
//
// Resolution never fails a request: a missing or unverifiable credential
// degrades to the fixed placeholder identity. The policy decision (what the
// placeholder is allowed to do) belongs to the authorization guard, not here.
package identity

import (
	"context"

	"github.com/google/uuid"

	id "paperflow/pkg/domain"
)

// Role classifies an acting identity for authorization decisions.
type Role string

const (
	RoleTeacher    Role = "teacher"
	RoleApprover   Role = "approver"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

// ParseRole maps a claim string to a known role, defaulting to teacher.
// Unknown roles must never escalate privileges.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleApprover, RoleAdmin, RoleSuperAdmin:
		return Role(s)
	default:
		return RoleTeacher
	}
}

// Identity is the acting identity threaded explicitly through every
// service call. It is resolved once at the transport boundary.
type Identity struct {
	ID   id.UserID
	Role Role
}

// Placeholder returns the fixed well-known identity used when no verified
// credential is available. Its ID is the nil UUID.
func Placeholder() Identity {
	return Identity{ID: id.UserID(uuid.Nil), Role: RoleTeacher}
}

// IsPlaceholder reports whether this is the placeholder identity.
func (i Identity) IsPlaceholder() bool {
	return i.ID.IsNil()
}

// IsElevated reports whether the identity holds an administrative role.
func (i Identity) IsElevated() bool {
	return i.Role == RoleAdmin || i.Role == RoleSuperAdmin
}

// CanReview reports whether the identity may approve or reject papers.
func (i Identity) CanReview() bool {
	return i.Role == RoleApprover || i.IsElevated()
}

type contextKey struct{}

// FromContext retrieves the resolved identity, falling back to the
// placeholder when the resolver middleware did not run (tests, workers).
func FromContext(ctx context.Context) Identity {
	if ident, ok := ctx.Value(contextKey{}).(Identity); ok {
		return ident
	}
	return Placeholder()
}

// WithIdentity injects an identity into the context.
func WithIdentity(ctx context.Context, ident Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, ident)
}
