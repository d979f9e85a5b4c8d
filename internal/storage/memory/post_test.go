package memory

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FilipLeonard/blogql/graph/model"
	"github.com/FilipLeonard/blogql/internal/post"
)

func newPostStorage(t *testing.T) (*PostMemoryStorage, *model.User) {
	t.Helper()

	users := NewUserMemoryStorage()
	creator, err := users.Create(context.Background(), "Filip", "filip@example.com", "hash")
	require.NoError(t, err)

	return NewPostMemoryStorage(users), creator
}

func createPost(t *testing.T, storage *PostMemoryStorage, creatorID, title string) *model.Post {
	t.Helper()

	p, err := storage.Create(context.Background(), &model.Post{
		Title:     title,
		Content:   "Content of " + title,
		ImageURL:  "images/" + title + ".png",
		CreatorID: creatorID,
	})
	require.NoError(t, err)
	return p
}

func TestPostMemoryStorage_Create(t *testing.T) {
	storage, creator := newPostStorage(t)
	ctx := context.Background()

	t.Run("Successful post creation", func(t *testing.T) {
		p := createPost(t, storage, creator.ID, "First post")
		assert.NotEmpty(t, p.ID)
		assert.Equal(t, "First post", p.Title)
		assert.Equal(t, creator.ID, p.CreatorID)

		createdAt, err := time.Parse(time.RFC3339, p.CreatedAt)
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().UTC(), createdAt, time.Minute)
		assert.Equal(t, p.CreatedAt, p.UpdatedAt)
	})

	t.Run("FindByID returns raw creator reference", func(t *testing.T) {
		created := createPost(t, storage, creator.ID, "Second post")

		p, err := storage.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, creator.ID, p.CreatorID)
		assert.Nil(t, p.Creator)
	})

	t.Run("FindByIDWithCreator populates the reference", func(t *testing.T) {
		created := createPost(t, storage, creator.ID, "Third post")

		p, err := storage.FindByIDWithCreator(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, p.Creator)
		assert.Equal(t, creator.ID, p.Creator.ID)
		assert.Equal(t, "filip@example.com", p.Creator.Email)
	})

	t.Run("Unknown id yields ErrNotFound", func(t *testing.T) {
		_, err := storage.FindByID(ctx, "999")
		assert.ErrorIs(t, err, post.ErrNotFound)
	})
}

func TestPostMemoryStorage_List(t *testing.T) {
	storage, creator := newPostStorage(t)
	ctx := context.Background()

	ids := make([]string, 0, 5)
	for _, title := range []string{"one", "two", "three", "four", "five"} {
		p := createPost(t, storage, creator.ID, title)
		ids = append(ids, p.ID)
	}

	t.Run("First page holds the 2 newest posts", func(t *testing.T) {
		posts, total, err := storage.List(ctx, 1, 2)
		require.NoError(t, err)
		assert.Equal(t, 5, total)
		require.Len(t, posts, 2)
		assert.Equal(t, ids[4], posts[0].ID)
		assert.Equal(t, ids[3], posts[1].ID)
	})

	t.Run("Second page returns items 3-4", func(t *testing.T) {
		posts, total, err := storage.List(ctx, 2, 2)
		require.NoError(t, err)
		assert.Equal(t, 5, total)
		require.Len(t, posts, 2)
		assert.Equal(t, ids[2], posts[0].ID)
		assert.Equal(t, ids[1], posts[1].ID)
	})

	t.Run("Last page is short", func(t *testing.T) {
		posts, total, err := storage.List(ctx, 3, 2)
		require.NoError(t, err)
		assert.Equal(t, 5, total)
		require.Len(t, posts, 1)
		assert.Equal(t, ids[0], posts[0].ID)
	})

	t.Run("Page beyond the end is empty but keeps the total", func(t *testing.T) {
		posts, total, err := storage.List(ctx, 10, 2)
		require.NoError(t, err)
		assert.Equal(t, 5, total)
		assert.Empty(t, posts)
	})

	t.Run("Creators are populated", func(t *testing.T) {
		posts, _, err := storage.List(ctx, 1, 2)
		require.NoError(t, err)
		for _, p := range posts {
			require.NotNil(t, p.Creator)
			assert.Equal(t, creator.ID, p.Creator.ID)
		}
	})
}

func TestPostMemoryStorage_Update(t *testing.T) {
	storage, creator := newPostStorage(t)
	ctx := context.Background()

	created := createPost(t, storage, creator.ID, "First post")

	t.Run("Update changes fields and bumps updatedAt", func(t *testing.T) {
		updated := *created
		updated.Title = "Updated title"
		updated.Content = "Updated content"

		p, err := storage.Update(ctx, &updated)
		require.NoError(t, err)
		assert.Equal(t, "Updated title", p.Title)
		assert.Equal(t, created.CreatedAt, p.CreatedAt)

		createdAt, err := time.Parse(time.RFC3339, p.CreatedAt)
		require.NoError(t, err)
		updatedAt, err := time.Parse(time.RFC3339, p.UpdatedAt)
		require.NoError(t, err)
		assert.False(t, updatedAt.Before(createdAt))
	})

	t.Run("Update of unknown post fails", func(t *testing.T) {
		_, err := storage.Update(ctx, &model.Post{ID: "999", Title: "x"})
		assert.ErrorIs(t, err, post.ErrNotFound)
	})
}

func TestPostMemoryStorage_Delete(t *testing.T) {
	storage, creator := newPostStorage(t)
	ctx := context.Background()

	created := createPost(t, storage, creator.ID, "First post")

	t.Run("Successfully delete post", func(t *testing.T) {
		require.NoError(t, storage.Delete(ctx, created.ID))

		_, err := storage.FindByID(ctx, created.ID)
		assert.ErrorIs(t, err, post.ErrNotFound)

		_, total, err := storage.List(ctx, 1, 2)
		require.NoError(t, err)
		assert.Equal(t, 0, total)
	})

	t.Run("Error when deleting non-existent post", func(t *testing.T) {
		assert.ErrorIs(t, storage.Delete(ctx, "999"), post.ErrNotFound)
	})
}

func TestPostMemoryStorage_ConcurrentListAndUpdate(t *testing.T) {
	storage, creator := newPostStorage(t)
	ctx := context.Background()

	created := createPost(t, storage, creator.ID, "First post")

	// чтение списка и обновление того же поста наперегонки:
	// List копирует записи под мьютексом, гонки быть не должно
	var wg sync.WaitGroup
	iterations := 100

	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < iterations; i++ {
			result, total, err := storage.List(ctx, 1, 2)
			assert.NoError(t, err)
			assert.Equal(t, 1, total)
			assert.Len(t, result, 1)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < iterations; i++ {
			_, err := storage.Update(ctx, &model.Post{
				ID:        created.ID,
				Title:     "Updated title " + strconv.Itoa(i),
				Content:   created.Content,
				ImageURL:  created.ImageURL,
				CreatorID: creator.ID,
			})
			assert.NoError(t, err)
		}
	}()
	wg.Wait()

	p, err := storage.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.CreatedAt, p.CreatedAt)
}
