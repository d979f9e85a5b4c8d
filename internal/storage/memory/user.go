package memory

import (
	"context"
	"strconv"
	"sync"

	"github.com/FilipLeonard/blogql/graph/model"
	"github.com/FilipLeonard/blogql/internal/user"
)

// DefaultStatus — статус нового пользователя.
const DefaultStatus = "I am new!"

type userRecord struct {
	user         *model.User
	passwordHash string
}

type UserMemoryStorage struct {
	mu     sync.Mutex
	users  map[string]*userRecord // id -> record
	emails map[string]string      // email -> id
	nextId int
}

func NewUserMemoryStorage() *UserMemoryStorage {
	return &UserMemoryStorage{
		users:  make(map[string]*userRecord),
		emails: make(map[string]string),
		nextId: 1,
	}
}

func (s *UserMemoryStorage) Create(ctx context.Context, name, email, passwordHash string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := strconv.Itoa(s.nextId)
	s.nextId++

	u := &model.User{
		ID:     id,
		Name:   name,
		Email:  email,
		Status: DefaultStatus,
		Posts:  []string{},
	}

	s.users[id] = &userRecord{user: u, passwordHash: passwordHash}
	s.emails[email] = id

	return copyUser(u), nil
}

func (s *UserMemoryStorage) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.emails[email]
	if !ok {
		return nil, user.ErrNotFound
	}
	return copyUser(s.users[id].user), nil
}

func (s *UserMemoryStorage) FindByID(ctx context.Context, id string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return copyUser(rec.user), nil
}

func (s *UserMemoryStorage) CredentialsByEmail(ctx context.Context, email string) (*user.Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.emails[email]
	if !ok {
		return nil, user.ErrNotFound
	}

	rec := s.users[id]
	return &user.Credentials{
		UserID:       rec.user.ID,
		Email:        rec.user.Email,
		PasswordHash: rec.passwordHash,
	}, nil
}

func (s *UserMemoryStorage) AttachPost(ctx context.Context, userID, postID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.users[userID]
	if !ok {
		return user.ErrNotFound
	}

	rec.user.Posts = append(rec.user.Posts, postID)
	return nil
}

func (s *UserMemoryStorage) DetachPost(ctx context.Context, userID, postID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.users[userID]
	if !ok {
		return user.ErrNotFound
	}

	// pull — удаляем все вхождения id поста из списка
	posts := rec.user.Posts[:0]
	for _, id := range rec.user.Posts {
		if id != postID {
			posts = append(posts, id)
		}
	}
	rec.user.Posts = posts
	return nil
}

func (s *UserMemoryStorage) UpdateStatus(ctx context.Context, userID, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.users[userID]
	if !ok {
		return user.ErrNotFound
	}

	rec.user.Status = status
	return nil
}

// copyUser возвращает копию, чтобы вызывающий не мутировал хранилище
// в обход мьютекса.
func copyUser(u *model.User) *model.User {
	cp := *u
	cp.Posts = append([]string{}, u.Posts...)
	return &cp
}
