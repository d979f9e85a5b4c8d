package postgres

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jinzhu/gorm"

	"github.com/FilipLeonard/blogql/graph/model"
	"github.com/FilipLeonard/blogql/internal/user"
	"github.com/FilipLeonard/blogql/models"
)

// DefaultStatus — статус нового пользователя.
const DefaultStatus = "I am new!"

type UserPostgresStorage struct{}

func NewUserPostgresStorage() *UserPostgresStorage {
	return &UserPostgresStorage{}
}

func (s *UserPostgresStorage) Create(ctx context.Context, name, email, passwordHash string) (*model.User, error) {
	u := &models.User{
		Name:     name,
		Email:    email,
		Password: passwordHash,
		Status:   DefaultStatus,
	}

	err := DB.Create(u).Error
	if err != nil {
		return nil, fmt.Errorf("could not create user: %w", err)
	}

	return s.toProjection(u)
}

func (s *UserPostgresStorage) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var u models.User
	err := DB.Where("email = ?", email).First(&u).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, user.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("could not get user by email: %w", err)
	}

	return s.toProjection(&u)
}

func (s *UserPostgresStorage) FindByID(ctx context.Context, id string) (*model.User, error) {
	uid, err := parseID(id)
	if err != nil {
		return nil, user.ErrNotFound
	}

	var u models.User
	err = DB.First(&u, uid).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, user.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("could not get user by id: %w", err)
	}

	return s.toProjection(&u)
}

func (s *UserPostgresStorage) CredentialsByEmail(ctx context.Context, email string) (*user.Credentials, error) {
	var u models.User
	err := DB.Where("email = ?", email).First(&u).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, user.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("could not get user by email: %w", err)
	}

	return &user.Credentials{
		UserID:       fmt.Sprint(u.ID),
		Email:        u.Email,
		PasswordHash: u.Password,
	}, nil
}

// AttachPost — no-op: в реляционной схеме список постов пользователя
// выводится из creator_id в строке поста, push происходит при создании поста.
func (s *UserPostgresStorage) AttachPost(ctx context.Context, userID, postID string) error {
	return nil
}

// DetachPost — no-op по той же причине: удаление строки поста и есть pull.
func (s *UserPostgresStorage) DetachPost(ctx context.Context, userID, postID string) error {
	return nil
}

func (s *UserPostgresStorage) UpdateStatus(ctx context.Context, userID, status string) error {
	uid, err := parseID(userID)
	if err != nil {
		return user.ErrNotFound
	}

	res := DB.Model(&models.User{}).Where("id = ?", uid).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("could not update status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return user.ErrNotFound
	}
	return nil
}

// toProjection собирает публичную проекцию: id постов берутся отдельным
// запросом, хеш пароля в проекцию не попадает.
func (s *UserPostgresStorage) toProjection(u *models.User) (*model.User, error) {
	var postIDs []uint
	err := DB.Model(&models.Post{}).Where("creator_id = ?", u.ID).Order("id").Pluck("id", &postIDs).Error
	if err != nil {
		return nil, fmt.Errorf("could not get user posts: %w", err)
	}

	posts := make([]string, 0, len(postIDs))
	for _, id := range postIDs {
		posts = append(posts, fmt.Sprint(id))
	}

	return &model.User{
		ID:     fmt.Sprint(u.ID),
		Name:   u.Name,
		Email:  u.Email,
		Status: u.Status,
		Posts:  posts,
	}, nil
}

func parseID(id string) (uint, error) {
	v, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(v), nil
}
