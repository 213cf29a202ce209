package storage

import "context"

// MemoryBackend sirve para tests y para correr el bot sin disco.
type MemoryBackend struct {
	docs map[string][]byte
}

func NewMemoryBackend() *MemoryBackend { return &MemoryBackend{docs: map[string][]byte{}} }

func (m *MemoryBackend) Load(_ context.Context, name string) ([]byte, error) {
	raw, ok := m.docs[name]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), raw...), nil
}

func (m *MemoryBackend) Save(_ context.Context, name string, data []byte) error {
	m.docs[name] = append([]byte(nil), data...)
	return nil
}
