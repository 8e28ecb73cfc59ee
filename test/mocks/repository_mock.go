// Package mocks provides in-memory implementations of the port interfaces
// for testing. Services depend on the ports, so swapping the SQL adapters
// for these mocks exercises the same code paths without a database.
package mocks

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/baanruam/dormhub/occupancy-service/internal/core/domain"
	"github.com/baanruam/dormhub/occupancy-service/internal/core/ports"
)

// MockRoomRepository implements ports.RoomRepository in memory.
type MockRoomRepository struct {
	mu    sync.RWMutex
	rooms map[string]*domain.Room

	// Call tracking for verification
	GetByIDCalls      []string
	CreateCalls       []domain.Room
	UpdateStatusCalls []string

	// Error injection
	GetByIDError      error
	CreateError       error
	UpdateStatusError error
	ListError         error
}

var _ ports.RoomRepository = (*MockRoomRepository)(nil)

func NewMockRoomRepository() *MockRoomRepository {
	return &MockRoomRepository{rooms: make(map[string]*domain.Room)}
}

// SeedRoom adds a room for test setup.
func (m *MockRoomRepository) SeedRoom(room *domain.Room) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rooms[room.ID] = room
}

func (m *MockRoomRepository) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	m.mu.Lock()
	m.GetByIDCalls = append(m.GetByIDCalls, id)
	m.mu.Unlock()

	if m.GetByIDError != nil {
		return nil, m.GetByIDError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	room, ok := m.rooms[id]
	if !ok {
		return nil, domain.ErrRoomNotFound
	}
	cp := *room
	return &cp, nil
}

func (m *MockRoomRepository) Create(ctx context.Context, room domain.Room) (*domain.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateCalls = append(m.CreateCalls, room)
	if m.CreateError != nil {
		return nil, m.CreateError
	}

	m.rooms[room.ID] = &room
	return &room, nil
}

func (m *MockRoomRepository) UpdateStatus(ctx context.Context, id string, status domain.RoomStatus, updatedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.UpdateStatusCalls = append(m.UpdateStatusCalls, id)
	if m.UpdateStatusError != nil {
		return m.UpdateStatusError
	}

	room, ok := m.rooms[id]
	if !ok {
		return errors.New("room not found")
	}
	room.Status = status
	room.UpdatedAt = updatedAt
	return nil
}

func (m *MockRoomRepository) List(ctx context.Context, filter domain.RoomFilter) ([]domain.Room, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []domain.Room
	for _, room := range m.rooms {
		if filter.Status != "" && room.Status != filter.Status {
			continue
		}
		if filter.Type != "" && room.RoomType != filter.Type {
			continue
		}
		out = append(out, *room)
	}
	return out, nil
}

// MockTenantRepository implements ports.TenantRepository in memory.
type MockTenantRepository struct {
	mu      sync.RWMutex
	tenants map[string]*domain.Tenant

	CreateCalls           []domain.Tenant
	SetActiveCalls        []string
	SetContractImageCalls []string

	GetByIDError          error
	CreateError           error
	ListError             error
	SetActiveError        error
	SetContractImageError error

	// CreateReturnsNil makes Create succeed but return no record, which
	// the allocator must still treat as a tenant-create failure.
	CreateReturnsNil bool
}

var _ ports.TenantRepository = (*MockTenantRepository)(nil)

func NewMockTenantRepository() *MockTenantRepository {
	return &MockTenantRepository{tenants: make(map[string]*domain.Tenant)}
}

func (m *MockTenantRepository) SeedTenant(tenant *domain.Tenant) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tenants[tenant.ID] = tenant
}

func (m *MockTenantRepository) GetByID(ctx context.Context, id string) (*domain.Tenant, error) {
	if m.GetByIDError != nil {
		return nil, m.GetByIDError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	tenant, ok := m.tenants[id]
	if !ok {
		return nil, errors.New("tenant not found")
	}
	cp := *tenant
	return &cp, nil
}

func (m *MockTenantRepository) Create(ctx context.Context, tenant domain.Tenant) (*domain.Tenant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateCalls = append(m.CreateCalls, tenant)
	if m.CreateError != nil {
		return nil, m.CreateError
	}
	if m.CreateReturnsNil {
		return nil, nil
	}

	m.tenants[tenant.ID] = &tenant
	return &tenant, nil
}

func (m *MockTenantRepository) ListActivePrimaries(ctx context.Context) ([]domain.Tenant, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []domain.Tenant
	for _, tenant := range m.tenants {
		if tenant.Active && tenant.Kind == domain.KindPrimary {
			out = append(out, *tenant)
		}
	}
	return out, nil
}

func (m *MockTenantRepository) SetActive(ctx context.Context, id string, active bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SetActiveCalls = append(m.SetActiveCalls, id)
	if m.SetActiveError != nil {
		return m.SetActiveError
	}

	if tenant, ok := m.tenants[id]; ok {
		tenant.Active = active
	}
	return nil
}

func (m *MockTenantRepository) SetContractImage(ctx context.Context, id, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SetContractImageCalls = append(m.SetContractImageCalls, id)
	if m.SetContractImageError != nil {
		return m.SetContractImageError
	}

	if tenant, ok := m.tenants[id]; ok {
		tenant.ContractImage = url
	}
	return nil
}

// MockOccupancyRepository implements ports.OccupancyRepository in memory.
// Counts are derived from the stored rows under the same mutex used for
// writes, so concurrency tests observe the real interleaving of count and
// insert the way a database would.
type MockOccupancyRepository struct {
	mu   sync.RWMutex
	rows map[string]*domain.Occupancy // keyed by occupancy id

	CreateCalls    []domain.Occupancy
	OutboxPayloads [][]byte
	RetireCalls    []string

	CreateError error
	CountError  error
	QueryError  error
	RetireError error
}

var _ ports.OccupancyRepository = (*MockOccupancyRepository)(nil)

func NewMockOccupancyRepository() *MockOccupancyRepository {
	return &MockOccupancyRepository{rows: make(map[string]*domain.Occupancy)}
}

func (m *MockOccupancyRepository) SeedOccupancy(occ *domain.Occupancy) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[occ.ID] = occ
}

func (m *MockOccupancyRepository) Create(ctx context.Context, occ domain.Occupancy, outboxPayload []byte) (*domain.Occupancy, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateCalls = append(m.CreateCalls, occ)
	m.OutboxPayloads = append(m.OutboxPayloads, outboxPayload)
	if m.CreateError != nil {
		return nil, m.CreateError
	}

	m.rows[occ.ID] = &occ
	return &occ, nil
}

func (m *MockOccupancyRepository) CountCurrentByRoom(ctx context.Context, roomID string) (int, error) {
	if m.CountError != nil {
		return 0, m.CountError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, row := range m.rows {
		if row.RoomID == roomID && row.IsCurrent {
			count++
		}
	}
	return count, nil
}

func (m *MockOccupancyRepository) CountsByRoom(ctx context.Context) (map[string]int, error) {
	if m.CountError != nil {
		return nil, m.CountError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	counts := make(map[string]int)
	for _, row := range m.rows {
		if row.IsCurrent {
			counts[row.RoomID]++
		}
	}
	return counts, nil
}

func (m *MockOccupancyRepository) CurrentByTenant(ctx context.Context, tenantID string) (*domain.Occupancy, error) {
	if m.QueryError != nil {
		return nil, m.QueryError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, row := range m.rows {
		if row.TenantID == tenantID && row.IsCurrent {
			cp := *row
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *MockOccupancyRepository) Retire(ctx context.Context, tenantID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.RetireCalls = append(m.RetireCalls, tenantID)
	if m.RetireError != nil {
		return m.RetireError
	}

	for _, row := range m.rows {
		if row.TenantID == tenantID && row.IsCurrent {
			row.IsCurrent = false
		}
	}
	return nil
}
