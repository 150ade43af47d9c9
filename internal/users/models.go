// Package users provides the directory the paper service consults to attach
// human-readable creator names to papers.
package users

import (
	id "paperflow/pkg/domain"
)

// User is a directory entry. Role mirrors the claim carried in tokens but
// the directory is not an authorization source; guards look at the resolved
// identity only.
type User struct {
	ID    id.UserID
	Name  string
	Email string
	Role  string
}
