package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jinzhu/gorm"

	"github.com/FilipLeonard/blogql/graph/model"
	"github.com/FilipLeonard/blogql/internal/post"
	"github.com/FilipLeonard/blogql/models"
)

type PostPostgresStorage struct{}

func NewPostPostgresStorage() *PostPostgresStorage {
	return &PostPostgresStorage{}
}

func (s *PostPostgresStorage) Create(ctx context.Context, p *model.Post) (*model.Post, error) {
	creatorID, err := parseID(p.CreatorID)
	if err != nil {
		return nil, fmt.Errorf("invalid creator id: %w", err)
	}

	row := &models.Post{
		Title:     p.Title,
		Content:   p.Content,
		ImageURL:  p.ImageURL,
		CreatorID: creatorID,
	}

	err = DB.Create(row).Error
	if err != nil {
		return nil, fmt.Errorf("could not create post: %w", err)
	}

	out := toPostProjection(row)
	out.Creator = p.Creator
	return out, nil
}

func (s *PostPostgresStorage) FindByID(ctx context.Context, id string) (*model.Post, error) {
	row, err := s.findRow(id, false)
	if err != nil {
		return nil, err
	}
	return toPostProjection(row), nil
}

func (s *PostPostgresStorage) FindByIDWithCreator(ctx context.Context, id string) (*model.Post, error) {
	row, err := s.findRow(id, true)
	if err != nil {
		return nil, err
	}

	p := toPostProjection(row)
	p.Creator, err = NewUserPostgresStorage().toProjection(&row.Creator)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PostPostgresStorage) List(ctx context.Context, page, perPage int) ([]*model.Post, int, error) {
	// счетчик и страница — два отдельных чтения, без транзакции
	var total int
	err := DB.Model(&models.Post{}).Count(&total).Error
	if err != nil {
		return nil, 0, fmt.Errorf("could not count posts: %w", err)
	}

	var rows []models.Post
	err = DB.Preload("Creator").
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("could not get posts: %w", err)
	}

	users := NewUserPostgresStorage()
	result := make([]*model.Post, 0, len(rows))
	for i := range rows {
		p := toPostProjection(&rows[i])
		p.Creator, err = users.toProjection(&rows[i].Creator)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, p)
	}

	return result, total, nil
}

func (s *PostPostgresStorage) Update(ctx context.Context, p *model.Post) (*model.Post, error) {
	row, err := s.findRow(p.ID, false)
	if err != nil {
		return nil, err
	}

	row.Title = p.Title
	row.Content = p.Content
	row.ImageURL = p.ImageURL

	err = DB.Save(row).Error
	if err != nil {
		return nil, fmt.Errorf("could not update post: %w", err)
	}

	out := toPostProjection(row)
	out.Creator = p.Creator
	return out, nil
}

func (s *PostPostgresStorage) Delete(ctx context.Context, id string) error {
	row, err := s.findRow(id, false)
	if err != nil {
		return err
	}

	err = DB.Delete(row).Error
	if err != nil {
		return fmt.Errorf("could not delete post: %w", err)
	}
	return nil
}

func (s *PostPostgresStorage) findRow(id string, withCreator bool) (*models.Post, error) {
	pid, err := parseID(id)
	if err != nil {
		return nil, post.ErrNotFound
	}

	query := DB
	if withCreator {
		query = query.Preload("Creator")
	}

	var row models.Post
	err = query.First(&row, pid).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, post.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("could not get post by id: %w", err)
	}
	return &row, nil
}

func toPostProjection(row *models.Post) *model.Post {
	return &model.Post{
		ID:        fmt.Sprint(row.ID),
		Title:     row.Title,
		Content:   row.Content,
		ImageURL:  row.ImageURL,
		CreatorID: fmt.Sprint(row.CreatorID),
		CreatedAt: row.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: row.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
