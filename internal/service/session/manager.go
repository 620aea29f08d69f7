package session

import (
	"context"
	"sync"
)

type Factory func(ctx context.Context, key string) (*Session, error)

// Manager hands out one Session per key, creating it on first use.
// Creation for one key does not block callers asking for another.
type Manager struct {
	newSession Factory

	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	mu      sync.Mutex
	session *Session
}

func NewManager(factory Factory) *Manager {
	return &Manager{
		newSession: factory,
		entries:    make(map[string]*entry),
	}
}

func (m *Manager) Get(ctx context.Context, key string) (*Session, error) {
	m.mu.Lock()
	e, ok := m.entries[key]
	if !ok {
		e = &entry{}
		m.entries[key] = e
	}
	m.mu.Unlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session != nil {
		return e.session, nil
	}

	s, err := m.newSession(ctx, key)
	if err != nil {
		return nil, err
	}
	e.session = s
	return s, nil
}

func (m *Manager) Len() int {
	m.mu.Lock()
	entries := make([]*entry, 0, len(m.entries))
	for _, e := range m.entries {
		entries = append(entries, e)
	}
	m.mu.Unlock()

	n := 0
	for _, e := range entries {
		e.mu.Lock()
		if e.session != nil {
			n++
		}
		e.mu.Unlock()
	}
	return n
}
