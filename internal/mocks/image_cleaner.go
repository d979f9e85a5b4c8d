package mocks

import "sync"

// MockImageCleaner запоминает пути, переданные в Clear.
type MockImageCleaner struct {
	mu      sync.Mutex
	Cleared []string
}

func NewMockImageCleaner() *MockImageCleaner {
	return &MockImageCleaner{}
}

func (m *MockImageCleaner) Clear(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Cleared = append(m.Cleared, path)
}
