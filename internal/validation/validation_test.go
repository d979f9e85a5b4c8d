package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FilipLeonard/blogql/graph/model"
	"github.com/FilipLeonard/blogql/internal/apperrors"
)

func checkViolations(t *testing.T, err error, messages ...string) {
	t.Helper()
	require.Error(t, err)

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 422, appErr.Code)

	require.Len(t, appErr.Data, len(messages))
	for i, msg := range messages {
		assert.Equal(t, msg, appErr.Data[i].Message)
	}
}

func TestCheck_UserInput(t *testing.T) {
	t.Run("Valid input passes", func(t *testing.T) {
		err := Check(model.UserInput{Name: "Filip", Email: "filip@example.com", Password: "password123"})
		assert.NoError(t, err)
	})

	t.Run("Five character password is the minimum", func(t *testing.T) {
		err := Check(model.UserInput{Email: "filip@example.com", Password: "12345"})
		assert.NoError(t, err)
	})

	t.Run("Invalid email", func(t *testing.T) {
		err := Check(model.UserInput{Email: "not-an-email", Password: "password123"})
		checkViolations(t, err, "E-Mail is invalid")
	})

	t.Run("Short password", func(t *testing.T) {
		err := Check(model.UserInput{Email: "filip@example.com", Password: "abcd"})
		checkViolations(t, err, "Password too short")
	})

	t.Run("Empty password is one violation, not two", func(t *testing.T) {
		// пустой И короткий пароль — одно и то же нарушение
		err := Check(model.UserInput{Email: "filip@example.com", Password: ""})
		checkViolations(t, err, "Password too short")
	})

	t.Run("All violations are accumulated in order", func(t *testing.T) {
		err := Check(model.UserInput{Email: "bad", Password: "abc"})
		checkViolations(t, err, "E-Mail is invalid", "Password too short")
	})
}

func TestCheck_PostInput(t *testing.T) {
	t.Run("Valid input passes", func(t *testing.T) {
		err := Check(model.PostInput{Title: "Valid title", Content: "Valid content"})
		assert.NoError(t, err)
	})

	t.Run("ImageURL is not validated", func(t *testing.T) {
		err := Check(model.PostInput{Title: "Valid title", Content: "Valid content", ImageURL: ""})
		assert.NoError(t, err)
	})

	t.Run("Short title", func(t *testing.T) {
		err := Check(model.PostInput{Title: "abc", Content: "Valid content"})
		checkViolations(t, err, "Title is invalid")
	})

	t.Run("Empty content", func(t *testing.T) {
		err := Check(model.PostInput{Title: "Valid title", Content: ""})
		checkViolations(t, err, "Content is invalid")
	})

	t.Run("Both fields fail independently", func(t *testing.T) {
		err := Check(model.PostInput{Title: "", Content: "abc"})
		checkViolations(t, err, "Title is invalid", "Content is invalid")
	})
}
