package session

import (
	"context"
	"encoding/json"
	"sync"
)

// Memory is a Session that lives for the process.
type Memory struct {
	mu     sync.RWMutex
	tokens map[string]string
	stash  map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{
		tokens: make(map[string]string),
		stash:  make(map[string][]byte),
	}
}

func (m *Memory) Token(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tokens[key], nil
}

func (m *Memory) SetToken(_ context.Context, key, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if token == "" {
		delete(m.tokens, key)
		return nil
	}
	m.tokens[key] = token
	return nil
}

func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.tokens)
	clear(m.stash)
	return nil
}

func (m *Memory) Stash(_ context.Context, resource string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stash[resource] = raw
	return nil
}

func (m *Memory) Stashed(_ context.Context, resource string, v any) (bool, error) {
	m.mu.RLock()
	raw, ok := m.stash[resource]
	m.mu.RUnlock()
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, v)
}
