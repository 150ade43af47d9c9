package users_test

import (
	"context"
	"testing"

	"paperflow/internal/users"
	id "paperflow/pkg/domain"
	dErrors "paperflow/pkg/domain-errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectory(t *testing.T) {
	ctx := context.Background()
	directory := users.NewDirectory(users.NewInMemoryStore())

	alice := users.User{ID: id.NewUserID(), Name: "Alice Rivera", Email: "alice@school.test", Role: "teacher"}
	require.NoError(t, directory.Register(ctx, alice))

	t.Run("lookup returns the entry", func(t *testing.T) {
		got, err := directory.Lookup(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, alice, got)
	})

	t.Run("lookup unknown user", func(t *testing.T) {
		_, err := directory.Lookup(ctx, id.NewUserID())
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	t.Run("register validates input", func(t *testing.T) {
		err := directory.Register(ctx, users.User{Name: "No ID"})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))

		err = directory.Register(ctx, users.User{ID: id.NewUserID()})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func TestDisplayNameDegrades(t *testing.T) {
	ctx := context.Background()
	directory := users.NewDirectory(users.NewInMemoryStore())

	bob := users.User{ID: id.NewUserID(), Name: "Bob Tanaka", Role: "approver"}
	require.NoError(t, directory.Register(ctx, bob))

	assert.Equal(t, "Bob Tanaka", directory.DisplayName(ctx, bob.ID))
	assert.Equal(t, users.UnknownName, directory.DisplayName(ctx, id.NewUserID()))
	assert.Equal(t, users.UnknownName, directory.DisplayName(ctx, id.UserID{}))
}
