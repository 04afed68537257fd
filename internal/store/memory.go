package store

import (
	"sort"
	"sync"
)

// Memory is an in-memory store for testing.
type Memory struct {
	mu    sync.RWMutex
	books map[string]Book
}

// NewMemory creates a new in-memory store.
func NewMemory() *Memory {
	return &Memory{books: make(map[string]Book)}
}

// Get retrieves a rule book by name.
func (m *Memory) Get(name string) (Book, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if b, ok := m.books[name]; ok {
		return b, nil
	}
	return nil, nil
}

// Put stores a rule book by name.
func (m *Memory) Put(name string, book Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.books[name] = book
	return nil
}

// Delete removes a rule book by name.
func (m *Memory) Delete(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.books, name)
	return nil
}

// List returns the stored book names in sorted order.
func (m *Memory) List() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.books))
	for name := range m.books {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Close is a no-op for memory store.
func (m *Memory) Close() error {
	return nil
}
