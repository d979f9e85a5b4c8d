package user

import (
	"context"
	"errors"

	"github.com/FilipLeonard/blogql/graph/model"
)

// ErrNotFound возвращается, когда пользователь отсутствует в хранилище.
var ErrNotFound = errors.New("user not found")

// Credentials — учетные данные для логина. Единственное место,
// где хеш пароля пересекает границу хранилища.
type Credentials struct {
	UserID       string
	Email        string
	PasswordHash string
}

type Storage interface {
	Create(ctx context.Context, name, email, passwordHash string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	CredentialsByEmail(ctx context.Context, email string) (*Credentials, error)
	// AttachPost/DetachPost — явные push/pull ссылки на пост в списке
	// пользователя: хранилище не каскадирует.
	AttachPost(ctx context.Context, userID, postID string) error
	DetachPost(ctx context.Context, userID, postID string) error
	UpdateStatus(ctx context.Context, userID, status string) error
}
