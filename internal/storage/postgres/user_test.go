package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FilipLeonard/blogql/internal/user"
)

func TestUserPostgresStorage_Create(t *testing.T) {
	setupTestDB(t)
	storage := NewUserPostgresStorage()
	ctx := context.Background()

	t.Run("Successful user creation", func(t *testing.T) {
		u, err := storage.Create(ctx, "Filip", "filip@example.com", "hashed-password")
		require.NoError(t, err)
		assert.NotEmpty(t, u.ID)
		assert.Equal(t, "Filip", u.Name)
		assert.Equal(t, "filip@example.com", u.Email)
		assert.Equal(t, DefaultStatus, u.Status)
		assert.Empty(t, u.Posts)
	})

	t.Run("Lookup by email", func(t *testing.T) {
		u, err := storage.FindByEmail(ctx, "filip@example.com")
		require.NoError(t, err)
		assert.Equal(t, "Filip", u.Name)
	})

	t.Run("Unknown email yields ErrNotFound", func(t *testing.T) {
		_, err := storage.FindByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, user.ErrNotFound)
	})

	t.Run("Non-numeric id yields ErrNotFound", func(t *testing.T) {
		_, err := storage.FindByID(ctx, "not-a-number")
		assert.ErrorIs(t, err, user.ErrNotFound)
	})
}

func TestUserPostgresStorage_Credentials(t *testing.T) {
	setupTestDB(t)
	storage := NewUserPostgresStorage()
	ctx := context.Background()

	created, err := storage.Create(ctx, "Filip", "filip@example.com", "hashed-password")
	require.NoError(t, err)

	t.Run("Credentials carry the stored hash", func(t *testing.T) {
		creds, err := storage.CredentialsByEmail(ctx, "filip@example.com")
		require.NoError(t, err)
		assert.Equal(t, created.ID, creds.UserID)
		assert.Equal(t, "hashed-password", creds.PasswordHash)
	})

	t.Run("Unknown email yields ErrNotFound", func(t *testing.T) {
		_, err := storage.CredentialsByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, user.ErrNotFound)
	})
}

func TestUserPostgresStorage_UpdateStatus(t *testing.T) {
	setupTestDB(t)
	storage := NewUserPostgresStorage()
	ctx := context.Background()

	created, err := storage.Create(ctx, "Filip", "filip@example.com", "hash")
	require.NoError(t, err)

	t.Run("Status survives a re-fetch", func(t *testing.T) {
		require.NoError(t, storage.UpdateStatus(ctx, created.ID, "busy"))

		u, err := storage.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "busy", u.Status)
	})

	t.Run("Unknown user yields ErrNotFound", func(t *testing.T) {
		assert.ErrorIs(t, storage.UpdateStatus(ctx, "999", "busy"), user.ErrNotFound)
	})
}

func TestUserPostgresStorage_PostsProjection(t *testing.T) {
	setupTestDB(t)
	users := NewUserPostgresStorage()
	posts := NewPostPostgresStorage()
	ctx := context.Background()

	created, err := users.Create(ctx, "Filip", "filip@example.com", "hash")
	require.NoError(t, err)

	p := createTestPost(t, posts, created.ID, "First post")

	t.Run("Projection lists post ids derived from the posts table", func(t *testing.T) {
		u, err := users.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{p.ID}, u.Posts)
	})

	t.Run("Deleting the post row is the pull", func(t *testing.T) {
		require.NoError(t, posts.Delete(ctx, p.ID))

		u, err := users.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Empty(t, u.Posts)
	})
}
