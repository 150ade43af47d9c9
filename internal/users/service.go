package users

import (
	"context"
	"errors"
	"log/slog"

	id "paperflow/pkg/domain"
	dErrors "paperflow/pkg/domain-errors"
	"paperflow/pkg/platform/sentinel"
)

// UnknownName is attached to papers whose creator is absent from the
// directory, including everything created through the placeholder identity.
const UnknownName = "Unknown"

// Directory resolves user IDs to display names for denormalization onto
// papers. Lookups degrade rather than fail: authoring a paper must not
// depend on directory availability.
type Directory struct {
	store  Store
	logger *slog.Logger
}

// Option configures the Directory.
type Option func(*Directory)

func WithLogger(logger *slog.Logger) Option {
	return func(d *Directory) {
		d.logger = logger
	}
}

func NewDirectory(store Store, opts ...Option) *Directory {
	d := &Directory{
		store:  store,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Register adds or replaces a directory entry.
func (d *Directory) Register(ctx context.Context, user User) error {
	if user.ID.IsNil() {
		return dErrors.New(dErrors.CodeInvalidInput, "user ID is required")
	}
	if user.Name == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "user name is required")
	}
	if err := d.store.Save(ctx, user); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "save user")
	}
	return nil
}

// Lookup returns the directory entry for a user.
func (d *Directory) Lookup(ctx context.Context, userID id.UserID) (User, error) {
	user, err := d.store.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return User{}, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return User{}, dErrors.Wrap(err, dErrors.CodeInternal, "find user")
	}
	return user, nil
}

// DisplayName resolves a creator name, degrading to UnknownName when the
// user is missing or the directory is unavailable.
func (d *Directory) DisplayName(ctx context.Context, userID id.UserID) string {
	if userID.IsNil() {
		return UnknownName
	}
	user, err := d.store.FindByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, sentinel.ErrNotFound) {
			d.logger.WarnContext(ctx, "user directory lookup failed",
				"user_id", userID,
				"error", err,
			)
		}
		return UnknownName
	}
	if user.Name == "" {
		return UnknownName
	}
	return user.Name
}
