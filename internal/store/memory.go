package store

import (
	"context"
	"sort"
	"sync"
)

// Memory — хранилище в памяти процесса.
type Memory struct {
	mu   sync.RWMutex
	data map[string]map[string]string // key -> field -> value
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string]map[string]string)}
}

func (m *Memory) Exists(_ context.Context, key string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data[key]) > 0, nil
}

func (m *Memory) SetField(_ context.Context, key, field, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec := m.data[key]
	if rec == nil {
		rec = make(map[string]string)
		m.data[key] = rec
	}
	rec[field] = value
	return nil
}

func (m *Memory) GetField(_ context.Context, key, field string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key][field]
	return v, ok, nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Fields возвращает копию записи; nil, если записи нет.
func (m *Memory) Fields(_ context.Context, key string) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec := m.data[key]
	if rec == nil {
		return nil, nil
	}
	out := make(map[string]string, len(rec))
	for k, v := range rec {
		out[k] = v
	}
	return out, nil
}

// Keys — ключи всех записей по возрастанию.
func (m *Memory) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.data))
	for k := range m.data {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (m *Memory) Close() error { return nil }
