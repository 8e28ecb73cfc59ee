package mocks

import (
	"context"
	"sync"

	"github.com/baanruam/dormhub/occupancy-service/internal/core/domain"
	"github.com/baanruam/dormhub/occupancy-service/internal/core/ports"
)

// MockRoomListCache implements ports.RoomListCache in memory.
type MockRoomListCache struct {
	mu     sync.RWMutex
	rooms  []domain.RoomWithOccupancy
	loaded bool

	InvalidateCalls int
	SetCalls        int

	SetError        error
	InvalidateError error
}

var _ ports.RoomListCache = (*MockRoomListCache)(nil)

func NewMockRoomListCache() *MockRoomListCache {
	return &MockRoomListCache{}
}

func (m *MockRoomListCache) Get(ctx context.Context) ([]domain.RoomWithOccupancy, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.loaded {
		return nil, false
	}
	return m.rooms, true
}

func (m *MockRoomListCache) Set(ctx context.Context, rooms []domain.RoomWithOccupancy) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SetCalls++
	if m.SetError != nil {
		return m.SetError
	}

	m.rooms = rooms
	m.loaded = true
	return nil
}

func (m *MockRoomListCache) Invalidate(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.InvalidateCalls++
	if m.InvalidateError != nil {
		return m.InvalidateError
	}

	m.rooms = nil
	m.loaded = false
	return nil
}
