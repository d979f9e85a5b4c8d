package mocks

import (
	"context"
	"strconv"
	"sync"

	"github.com/FilipLeonard/blogql/graph/model"
	"github.com/FilipLeonard/blogql/internal/user"
)

// MockUserStorage реализует user.Storage для тестирования.
// Calls считает все обращения к хранилищу — тесты гейта проверяют,
// что до аутентификации хранилище не трогается вообще.
type MockUserStorage struct {
	mu     sync.Mutex
	users  map[string]*model.User // id -> user
	emails map[string]string      // email -> id
	hashes map[string]string      // id -> bcrypt hash
	nextID int
	Calls  int
}

func NewMockUserStorage() *MockUserStorage {
	return &MockUserStorage{
		users:  make(map[string]*model.User),
		emails: make(map[string]string),
		hashes: make(map[string]string),
		nextID: 1,
	}
}

func (m *MockUserStorage) Create(ctx context.Context, name, email, passwordHash string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++

	id := strconv.Itoa(m.nextID)
	m.nextID++

	u := &model.User{
		ID:     id,
		Name:   name,
		Email:  email,
		Status: "I am new!",
		Posts:  []string{},
	}

	m.users[id] = u
	m.emails[email] = id
	m.hashes[id] = passwordHash

	return u, nil
}

func (m *MockUserStorage) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++

	id, ok := m.emails[email]
	if !ok {
		return nil, user.ErrNotFound
	}
	return m.users[id], nil
}

func (m *MockUserStorage) FindByID(ctx context.Context, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++

	u, ok := m.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func (m *MockUserStorage) CredentialsByEmail(ctx context.Context, email string) (*user.Credentials, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++

	id, ok := m.emails[email]
	if !ok {
		return nil, user.ErrNotFound
	}

	return &user.Credentials{
		UserID:       id,
		Email:        m.users[id].Email,
		PasswordHash: m.hashes[id],
	}, nil
}

func (m *MockUserStorage) AttachPost(ctx context.Context, userID, postID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++

	u, ok := m.users[userID]
	if !ok {
		return user.ErrNotFound
	}
	u.Posts = append(u.Posts, postID)
	return nil
}

func (m *MockUserStorage) DetachPost(ctx context.Context, userID, postID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++

	u, ok := m.users[userID]
	if !ok {
		return user.ErrNotFound
	}

	posts := u.Posts[:0]
	for _, id := range u.Posts {
		if id != postID {
			posts = append(posts, id)
		}
	}
	u.Posts = posts
	return nil
}

func (m *MockUserStorage) UpdateStatus(ctx context.Context, userID, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++

	u, ok := m.users[userID]
	if !ok {
		return user.ErrNotFound
	}
	u.Status = status
	return nil
}
