// Package domain holds shared domain primitives: typed identifiers used
// across services and stores. Typed IDs prevent cross-entity assignment at
// compile time and force validation at trust boundaries.
package domain

import (
	"github.com/google/uuid"

	dErrors "paperflow/pkg/domain-errors"
)

// UserID identifies an acting identity (teacher, approver, admin).
type UserID uuid.UUID

// PaperID identifies a question paper under lifecycle control.
type PaperID uuid.UUID

// NewUserID returns a fresh random UserID.
func NewUserID() UserID { return UserID(uuid.New()) }

// NewPaperID returns a fresh random PaperID.
func NewPaperID() PaperID { return PaperID(uuid.New()) }

// ParseUserID validates and returns a UserID.
// Rejects empty strings, malformed UUIDs, and the nil UUID.
func ParseUserID(s string) (UserID, error) {
	u, err := parseID(s)
	return UserID(u), err
}

// ParsePaperID validates and returns a PaperID.
// Rejects empty strings, malformed UUIDs, and the nil UUID.
func ParsePaperID(s string) (PaperID, error) {
	u, err := parseID(s)
	return PaperID(u), err
}

func parseID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id cannot be empty")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id must be a valid UUID")
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id cannot be the nil UUID")
	}
	return u, nil
}

func (id UserID) String() string { return uuid.UUID(id).String() }
func (id UserID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }

func (id PaperID) String() string { return uuid.UUID(id).String() }
func (id PaperID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
