package users

import (
	"context"

	id "paperflow/pkg/domain"
)

type Store interface {
	Save(ctx context.Context, user User) error
	FindByID(ctx context.Context, userID id.UserID) (User, error)
}
