package graph

import (
	"github.com/FilipLeonard/blogql/internal/images"
	"github.com/FilipLeonard/blogql/internal/post"
	"github.com/FilipLeonard/blogql/internal/user"
)

// Resolver служит корневой точкой для всех резолверов.
// Здесь внедряются зависимости: хранилища и каталог изображений.
type Resolver struct {
	UserStore user.Storage
	PostStore post.Storage
	Images    images.Cleaner
}

func (r *Resolver) Mutation() *mutationResolver { return &mutationResolver{r} }
func (r *Resolver) Query() *queryResolver       { return &queryResolver{r} }

type mutationResolver struct{ *Resolver }
type queryResolver struct{ *Resolver }
