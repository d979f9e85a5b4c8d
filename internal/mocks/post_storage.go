package mocks

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/FilipLeonard/blogql/graph/model"
	"github.com/FilipLeonard/blogql/internal/post"
)

// MockPostStorage реализует post.Storage для тестирования.
// Временные метки детерминированы: каждый следующий пост создается
// "на секунду позже" предыдущего, чтобы сортировка была однозначной.
type MockPostStorage struct {
	mu    sync.Mutex
	posts map[string]*model.Post
	order []string // id в порядке создания
	base  time.Time
	Calls int
}

func NewMockPostStorage() *MockPostStorage {
	return &MockPostStorage{
		posts: make(map[string]*model.Post),
		base:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m *MockPostStorage) Create(ctx context.Context, p *model.Post) (*model.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++

	id := strconv.Itoa(len(m.order) + 1)
	createdAt := m.base.Add(time.Duration(len(m.order)) * time.Second).Format(time.RFC3339)

	stored := *p
	stored.ID = id
	stored.CreatedAt = createdAt
	stored.UpdatedAt = createdAt

	m.posts[id] = &stored
	m.order = append(m.order, id)

	return &stored, nil
}

func (m *MockPostStorage) FindByID(ctx context.Context, id string) (*model.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++

	p, ok := m.posts[id]
	if !ok {
		return nil, post.ErrNotFound
	}

	raw := *p
	raw.Creator = nil
	return &raw, nil
}

func (m *MockPostStorage) FindByIDWithCreator(ctx context.Context, id string) (*model.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++

	p, ok := m.posts[id]
	if !ok {
		return nil, post.ErrNotFound
	}
	return p, nil
}

func (m *MockPostStorage) List(ctx context.Context, page, perPage int) ([]*model.Post, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++

	// от самых свежих к самым старым
	newestFirst := make([]*model.Post, 0, len(m.order))
	for i := len(m.order) - 1; i >= 0; i-- {
		newestFirst = append(newestFirst, m.posts[m.order[i]])
	}

	total := len(newestFirst)
	offset := (page - 1) * perPage
	if offset >= total {
		return []*model.Post{}, total, nil
	}

	end := offset + perPage
	if end > total {
		end = total
	}
	return newestFirst[offset:end], total, nil
}

func (m *MockPostStorage) Update(ctx context.Context, p *model.Post) (*model.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++

	stored, ok := m.posts[p.ID]
	if !ok {
		return nil, post.ErrNotFound
	}

	updated := *p
	updated.CreatedAt = stored.CreatedAt
	updated.UpdatedAt = stored.UpdatedAt
	m.posts[p.ID] = &updated

	return &updated, nil
}

func (m *MockPostStorage) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++

	if _, ok := m.posts[id]; !ok {
		return post.ErrNotFound
	}
	delete(m.posts, id)

	order := m.order[:0]
	for _, pid := range m.order {
		if pid != id {
			order = append(order, pid)
		}
	}
	m.order = order
	return nil
}
