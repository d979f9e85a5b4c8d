package memory

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/FilipLeonard/blogql/graph/model"
	"github.com/FilipLeonard/blogql/internal/post"
	"github.com/FilipLeonard/blogql/internal/user"
)

type postRecord struct {
	post *model.Post
	// createdAt с наносекундной точностью — только для сортировки;
	// в проекции остается RFC 3339 по секундам.
	createdAt time.Time
}

type PostMemoryStorage struct {
	mu          sync.Mutex
	posts       map[string]*postRecord
	users       user.Storage // для разрешения ссылки на автора (populate)
	nextId      int
	lastCreated time.Time
}

func NewPostMemoryStorage(users user.Storage) *PostMemoryStorage {
	return &PostMemoryStorage{
		posts:  make(map[string]*postRecord),
		users:  users,
		nextId: 1,
	}
}

func (s *PostMemoryStorage) Create(ctx context.Context, p *model.Post) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// строго возрастающее время создания — пагинация детерминирована
	// даже при создании нескольких постов в одну и ту же наносекунду
	now := time.Now().UTC()
	if !now.After(s.lastCreated) {
		now = s.lastCreated.Add(time.Nanosecond)
	}
	s.lastCreated = now

	id := strconv.Itoa(s.nextId)
	s.nextId++

	stored := copyPost(p)
	stored.ID = id
	stored.Creator = nil
	stored.CreatedAt = now.Format(time.RFC3339)
	stored.UpdatedAt = now.Format(time.RFC3339)

	s.posts[id] = &postRecord{post: stored, createdAt: now}

	out := copyPost(stored)
	out.Creator = p.Creator
	return out, nil
}

func (s *PostMemoryStorage) FindByID(ctx context.Context, id string) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.posts[id]
	if !ok {
		return nil, post.ErrNotFound
	}
	return copyPost(rec.post), nil
}

func (s *PostMemoryStorage) FindByIDWithCreator(ctx context.Context, id string) (*model.Post, error) {
	p, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.populateCreator(ctx, p)
}

func (s *PostMemoryStorage) List(ctx context.Context, page, perPage int) ([]*model.Post, int, error) {
	type listEntry struct {
		post      *model.Post
		createdAt time.Time
	}

	// копируем посты под мьютексом: Update подменяет rec.post,
	// поэтому после разблокировки записи трогать нельзя
	s.mu.Lock()
	entries := make([]listEntry, 0, len(s.posts))
	for _, rec := range s.posts {
		entries = append(entries, listEntry{post: copyPost(rec.post), createdAt: rec.createdAt})
	}
	s.mu.Unlock()

	total := len(entries)

	// самые свежие первыми
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].createdAt.After(entries[j].createdAt)
	})

	offset := (page - 1) * perPage
	if offset >= len(entries) {
		return []*model.Post{}, total, nil
	}

	end := offset + perPage
	if end > len(entries) {
		end = len(entries)
	}

	result := make([]*model.Post, 0, end-offset)
	for _, e := range entries[offset:end] {
		p, err := s.populateCreator(ctx, e.post)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, p)
	}

	return result, total, nil
}

func (s *PostMemoryStorage) Update(ctx context.Context, p *model.Post) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.posts[p.ID]
	if !ok {
		return nil, post.ErrNotFound
	}

	stored := copyPost(p)
	stored.Creator = nil
	stored.CreatedAt = rec.post.CreatedAt
	stored.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	rec.post = stored

	out := copyPost(stored)
	out.Creator = p.Creator
	return out, nil
}

func (s *PostMemoryStorage) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[id]; !ok {
		return post.ErrNotFound
	}
	delete(s.posts, id)
	return nil
}

func (s *PostMemoryStorage) populateCreator(ctx context.Context, p *model.Post) (*model.Post, error) {
	creator, err := s.users.FindByID(ctx, p.CreatorID)
	if err != nil {
		return nil, err
	}
	p.Creator = creator
	return p, nil
}

func copyPost(p *model.Post) *model.Post {
	cp := *p
	return &cp
}
