package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/baanruam/dormhub/occupancy-service/internal/core/domain"
	"github.com/baanruam/dormhub/occupancy-service/internal/core/ports"
)

type TenantService struct {
	tenantRepo    ports.TenantRepository
	roomRepo      ports.RoomRepository
	occupancyRepo ports.OccupancyRepository
	cache         ports.RoomListCache
}

var _ ports.TenantService = (*TenantService)(nil)

func NewTenantService(
	tenantRepo ports.TenantRepository,
	roomRepo ports.RoomRepository,
	occupancyRepo ports.OccupancyRepository,
	cache ports.RoomListCache,
) *TenantService {
	return &TenantService{
		tenantRepo:    tenantRepo,
		roomRepo:      roomRepo,
		occupancyRepo: occupancyRepo,
		cache:         cache,
	}
}

// ListTenants returns active primary tenants with their current room. The
// current room is resolved through the occupancy table every time; the
// denormalized room fields on the tenant are display hints, not truth.
func (s *TenantService) ListTenants(ctx context.Context, query string) ([]domain.TenantWithRoom, error) {
	tenants, err := s.tenantRepo.ListActivePrimaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrQueryFailed, err)
	}

	out := make([]domain.TenantWithRoom, 0, len(tenants))
	for _, tenant := range tenants {
		if !matchesQuery(tenant, query) {
			continue
		}
		entry := domain.TenantWithRoom{Tenant: tenant}

		occ, err := s.occupancyRepo.CurrentByTenant(ctx, tenant.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrQueryFailed, err)
		}
		if occ != nil {
			room, err := s.roomRepo.GetByID(ctx, occ.RoomID)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", domain.ErrQueryFailed, err)
			}
			entry.CurrentRoom = room
		}

		out = append(out, entry)
	}

	return out, nil
}

// Checkout retires the tenant's current occupancy row. The tenant record
// itself stays active; this is the inverse of admission's occupancy write.
func (s *TenantService) Checkout(ctx context.Context, tenantID string) error {
	if _, err := s.tenantRepo.GetByID(ctx, tenantID); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrTenantNotFound, err)
	}

	if err := s.occupancyRepo.Retire(ctx, tenantID); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistFailed, err)
	}

	s.invalidate(ctx)
	return nil
}

// Deactivate flips the tenant's active flag off and retires any current
// occupancy row, so a deactivated tenant never keeps holding a bed.
func (s *TenantService) Deactivate(ctx context.Context, tenantID string) error {
	if _, err := s.tenantRepo.GetByID(ctx, tenantID); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrTenantNotFound, err)
	}

	if err := s.tenantRepo.SetActive(ctx, tenantID, false); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistFailed, err)
	}

	if err := s.occupancyRepo.Retire(ctx, tenantID); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistFailed, err)
	}

	s.invalidate(ctx)
	return nil
}

func (s *TenantService) AttachContract(ctx context.Context, tenantID, imageURL string) error {
	if _, err := s.tenantRepo.GetByID(ctx, tenantID); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrTenantNotFound, err)
	}

	if err := s.tenantRepo.SetContractImage(ctx, tenantID, imageURL); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistFailed, err)
	}
	return nil
}

func matchesQuery(t domain.Tenant, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	for _, field := range []string{
		t.FirstName, t.LastName, t.Email, t.Phone, t.RoomNumber,
	} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

func (s *TenantService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		log.Printf("tenant service: cache invalidation failed: %v", err)
	}
}
