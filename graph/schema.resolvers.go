package graph

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/FilipLeonard/blogql/graph/model"
	"github.com/FilipLeonard/blogql/internal/apperrors"
	"github.com/FilipLeonard/blogql/internal/auth"
	"github.com/FilipLeonard/blogql/internal/post"
	"github.com/FilipLeonard/blogql/internal/user"
	"github.com/FilipLeonard/blogql/internal/validation"
)

// bcrypt cost 12 — дороже дефолтных 10, но регистрация не горячий путь.
const hashCost = 12

// Размер страницы списка постов фиксирован.
const postsPerPage = 2

// requireAuth — гейт аутентификации. Выполняется ДО чтения входных данных
// и до любого обращения к хранилищу.
func requireAuth(ctx context.Context) (string, error) {
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return "", apperrors.Authentication("not authenticated")
	}
	return userID, nil
}

func (r *mutationResolver) CreateUser(ctx context.Context, input model.UserInput) (*model.User, error) {
	if err := validation.Check(input); err != nil {
		return nil, err
	}

	_, err := r.UserStore.FindByEmail(ctx, input.Email)
	if err == nil {
		return nil, apperrors.Conflict("user already exists")
	}
	if !errors.Is(err, user.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), hashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return r.UserStore.Create(ctx, input.Name, input.Email, string(hash))
}

func (r *queryResolver) Login(ctx context.Context, email, password string) (*model.AuthData, error) {
	creds, err := r.UserStore.CredentialsByEmail(ctx, email)
	if errors.Is(err, user.ErrNotFound) {
		// намеренно тот же код, что и при неверном пароле:
		// не раскрываем, какие email зарегистрированы
		return nil, apperrors.Authentication("user not found")
	}
	if err != nil {
		return nil, err
	}

	err = bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(password))
	if err != nil {
		return nil, apperrors.Authentication("wrong password")
	}

	token, err := auth.IssueToken(creds.UserID, creds.Email)
	if err != nil {
		return nil, err
	}

	return &model.AuthData{Token: token, UserID: creds.UserID}, nil
}

func (r *mutationResolver) CreatePost(ctx context.Context, input model.PostInput) (*model.Post, error) {
	userID, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	if err := validation.Check(input); err != nil {
		return nil, err
	}

	creator, err := r.UserStore.FindByID(ctx, userID)
	if errors.Is(err, user.ErrNotFound) {
		return nil, apperrors.NotFound("user not found")
	}
	if err != nil {
		return nil, err
	}

	created, err := r.PostStore.Create(ctx, &model.Post{
		Title:     input.Title,
		Content:   input.Content,
		ImageURL:  input.ImageURL,
		CreatorID: creator.ID,
		Creator:   creator,
	})
	if err != nil {
		return nil, err
	}

	// явный push ссылки на пост в список пользователя: хранилище не каскадирует
	err = r.UserStore.AttachPost(ctx, creator.ID, created.ID)
	if err != nil {
		return nil, err
	}

	return created, nil
}

func (r *queryResolver) Post(ctx context.Context, id string) (*model.Post, error) {
	_, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	p, err := r.PostStore.FindByIDWithCreator(ctx, id)
	if errors.Is(err, post.ErrNotFound) {
		return nil, apperrors.NotFound("post not found")
	}
	if err != nil {
		return nil, err
	}

	return p, nil
}

// Posts — единственная публичная операция, гейта нет.
func (r *queryResolver) Posts(ctx context.Context, page *int) (*model.PostPage, error) {
	current := 1
	if page != nil && *page > 0 {
		current = *page
	}

	posts, total, err := r.PostStore.List(ctx, current, postsPerPage)
	if err != nil {
		return nil, err
	}

	return &model.PostPage{Posts: posts, TotalPosts: total}, nil
}

func (r *mutationResolver) UpdatePost(ctx context.Context, id string, input model.PostInput) (*model.Post, error) {
	userID, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	p, err := r.PostStore.FindByIDWithCreator(ctx, id)
	if errors.Is(err, post.ErrNotFound) {
		return nil, apperrors.NotFound("post not found")
	}
	if err != nil {
		return nil, err
	}

	if p.Creator.ID != userID {
		return nil, apperrors.Authorization("not authorized")
	}

	if err := validation.Check(input); err != nil {
		return nil, err
	}

	p.Title = input.Title
	p.Content = input.Content
	// Литеральная строка "undefined" приходит от клиента, когда файл не менялся.
	// Именно сравнение со строкой, не проверка на пустоту.
	if input.ImageURL != "undefined" {
		p.ImageURL = input.ImageURL
	}

	return r.PostStore.Update(ctx, p)
}

func (r *mutationResolver) DeletePost(ctx context.Context, id string) (bool, error) {
	userID, err := requireAuth(ctx)
	if err != nil {
		return false, err
	}

	// "сырая" ссылка на автора, без populate
	p, err := r.PostStore.FindByID(ctx, id)
	if errors.Is(err, post.ErrNotFound) {
		return false, apperrors.NotFound("post not found")
	}
	if err != nil {
		return false, err
	}

	if p.CreatorID != userID {
		return false, apperrors.Authorization("not authorized")
	}

	// best-effort: ошибка удаления файла логируется внутри и не мешает операции
	r.Images.Clear(p.ImageURL)

	err = r.PostStore.Delete(ctx, id)
	if err != nil {
		return false, err
	}

	// пользователь мог исчезнуть между шагами
	_, err = r.UserStore.FindByID(ctx, userID)
	if errors.Is(err, user.ErrNotFound) {
		return false, apperrors.NotFound("user not found")
	}
	if err != nil {
		return false, err
	}

	// явный pull ссылки из списка пользователя
	err = r.UserStore.DetachPost(ctx, userID, id)
	if err != nil {
		return false, err
	}

	return true, nil
}

func (r *queryResolver) User(ctx context.Context) (*model.User, error) {
	userID, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	u, err := r.UserStore.FindByID(ctx, userID)
	if errors.Is(err, user.ErrNotFound) {
		return nil, apperrors.NotFound("user not found")
	}
	if err != nil {
		return nil, err
	}

	return u, nil
}

func (r *mutationResolver) UpdateStatus(ctx context.Context, status string) (*model.User, error) {
	userID, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	u, err := r.UserStore.FindByID(ctx, userID)
	if errors.Is(err, user.ErrNotFound) {
		return nil, apperrors.NotFound("user not found")
	}
	if err != nil {
		return nil, err
	}

	err = r.UserStore.UpdateStatus(ctx, userID, status)
	if err != nil {
		return nil, err
	}

	u.Status = status
	return u, nil
}
