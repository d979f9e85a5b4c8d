package post

import (
	"context"
	"errors"

	"github.com/FilipLeonard/blogql/graph/model"
)

// ErrNotFound возвращается, когда пост отсутствует в хранилище.
var ErrNotFound = errors.New("post not found")

type Storage interface {
	Create(ctx context.Context, post *model.Post) (*model.Post, error)
	// FindByID возвращает пост с "сырой" ссылкой на автора (CreatorID).
	FindByID(ctx context.Context, id string) (*model.Post, error)
	// FindByIDWithCreator дополнительно разрешает ссылку на автора (populate).
	FindByIDWithCreator(ctx context.Context, id string) (*model.Post, error)
	// List возвращает страницу постов (createdAt по убыванию) и общее
	// количество. Счетчик и страница — два отдельных чтения.
	List(ctx context.Context, page, perPage int) ([]*model.Post, int, error)
	Update(ctx context.Context, post *model.Post) (*model.Post, error)
	Delete(ctx context.Context, id string) error
}
