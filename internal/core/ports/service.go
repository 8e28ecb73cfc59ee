package ports

import (
	"context"

	"github.com/baanruam/dormhub/occupancy-service/internal/core/domain"
)

type AllocationService interface {
	AdmitTenant(ctx context.Context, roomID string, draft domain.TenantDraft, kind domain.TenantKind) (*domain.Tenant, *domain.Occupancy, error)
}

type RoomStatusService interface {
	Transition(ctx context.Context, roomID string, target domain.RoomStatus) (*domain.Room, error)
}

type RoomService interface {
	CreateRoom(ctx context.Context, roomNumber string, roomType domain.RoomType, price float64, floor int) (*domain.Room, error)
	ListRooms(ctx context.Context, filter domain.RoomFilter) ([]domain.RoomWithOccupancy, error)
}

type OccupancyReader interface {
	CurrentOccupantCount(ctx context.Context, roomID string) (int, error)
	CapacityOf(ctx context.Context, roomID string) (int, error)
}

type TenantService interface {
	// ListTenants returns active primary tenants; a non-empty query narrows
	// the listing by name, email, phone or room number.
	ListTenants(ctx context.Context, query string) ([]domain.TenantWithRoom, error)
	Checkout(ctx context.Context, tenantID string) error
	Deactivate(ctx context.Context, tenantID string) error
	AttachContract(ctx context.Context, tenantID, imageURL string) error
}
