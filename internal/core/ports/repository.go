package ports

import (
	"context"
	"time"

	"github.com/baanruam/dormhub/occupancy-service/internal/core/domain"
)

type RoomRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Room, error)
	Create(ctx context.Context, room domain.Room) (*domain.Room, error)
	UpdateStatus(ctx context.Context, id string, status domain.RoomStatus, updatedAt time.Time) error
	List(ctx context.Context, filter domain.RoomFilter) ([]domain.Room, error)
}

type TenantRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Tenant, error)
	Create(ctx context.Context, tenant domain.Tenant) (*domain.Tenant, error)
	ListActivePrimaries(ctx context.Context) ([]domain.Tenant, error)
	SetActive(ctx context.Context, id string, active bool) error
	SetContractImage(ctx context.Context, id, url string) error
}

type OccupancyRepository interface {
	// Create inserts the occupancy row and, when outboxPayload is non-nil,
	// an outbox event row in the same transaction.
	Create(ctx context.Context, occ domain.Occupancy, outboxPayload []byte) (*domain.Occupancy, error)
	CountCurrentByRoom(ctx context.Context, roomID string) (int, error)
	CountsByRoom(ctx context.Context) (map[string]int, error)
	CurrentByTenant(ctx context.Context, tenantID string) (*domain.Occupancy, error)
	// Retire flips the tenant's current occupancy row to is_current = false.
	Retire(ctx context.Context, tenantID string) error
}

// RoomListCache is a read-side cache for the rooms-with-occupancy listing.
// The allocator never reads occupant counts through it; capacity checks go
// straight to the store.
type RoomListCache interface {
	Get(ctx context.Context) ([]domain.RoomWithOccupancy, bool)
	Set(ctx context.Context, rooms []domain.RoomWithOccupancy) error
	Invalidate(ctx context.Context) error
}
