package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/baanruam/dormhub/occupancy-service/internal/core/domain"
	"github.com/baanruam/dormhub/occupancy-service/internal/core/ports"
)

// roomLocks hands out one mutex per room id. Admission is a check-then-act
// sequence against the room's remaining capacity, so concurrent admissions
// into the same room must be serialized or two of them can both pass the
// capacity check with one slot left.
type roomLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newRoomLocks() *roomLocks {
	return &roomLocks{locks: make(map[string]*sync.Mutex)}
}

func (r *roomLocks) get(roomID string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.locks[roomID]
	if !ok {
		l = &sync.Mutex{}
		r.locks[roomID] = l
	}
	return l
}

type AllocationService struct {
	roomRepo      ports.RoomRepository
	tenantRepo    ports.TenantRepository
	occupancyRepo ports.OccupancyRepository
	cache         ports.RoomListCache
	locks         *roomLocks
	now           func() time.Time
}

var _ ports.AllocationService = (*AllocationService)(nil)

func NewAllocationService(
	roomRepo ports.RoomRepository,
	tenantRepo ports.TenantRepository,
	occupancyRepo ports.OccupancyRepository,
	cache ports.RoomListCache,
) *AllocationService {
	return &AllocationService{
		roomRepo:      roomRepo,
		tenantRepo:    tenantRepo,
		occupancyRepo: occupancyRepo,
		cache:         cache,
		locks:         newRoomLocks(),
		now:           time.Now,
	}
}

// AdmitTenant creates a tenant and its initial current occupancy row as one
// logical unit. The occupant count is read fresh from the store while the
// per-room lock is held; a stale or cached count here would let concurrent
// admissions race past the capacity limit.
func (s *AllocationService) AdmitTenant(
	ctx context.Context,
	roomID string,
	draft domain.TenantDraft,
	kind domain.TenantKind,
) (*domain.Tenant, *domain.Occupancy, error) {
	lock := s.locks.get(roomID)
	lock.Lock()
	defer lock.Unlock()

	room, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrRoomLookupFailed, err)
	}

	count, err := s.occupancyRepo.CountCurrentByRoom(ctx, roomID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrOccupancyQueryFailed, err)
	}

	if !CanAdmit(room.Capacity, count) {
		return nil, nil, domain.ErrRoomFull
	}

	tenant := domain.Tenant{
		ID:               uuid.NewString(),
		FirstName:        draft.FirstName,
		LastName:         draft.LastName,
		Email:            draft.Email,
		Phone:            draft.Phone,
		Address:          draft.Address,
		EmergencyContact: draft.EmergencyContact,
		Kind:             kind,
		Active:           true,
		RoomID:           room.ID,
		RoomNumber:       room.RoomNumber,
		CreatedAt:        s.now(),
	}

	created, err := s.tenantRepo.Create(ctx, tenant)
	if err != nil || created == nil {
		// No occupancy write is attempted past this point.
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrTenantCreateFailed, err)
	}

	checkIn := s.now().Truncate(24 * time.Hour)
	occ := domain.Occupancy{
		ID:          uuid.NewString(),
		TenantID:    created.ID,
		RoomID:      room.ID,
		CheckInDate: checkIn,
		IsCurrent:   true,
	}

	event := ports.TenantAdmittedEvent{
		TenantID:    created.ID,
		RoomID:      room.ID,
		RoomNumber:  room.RoomNumber,
		Kind:        string(kind),
		CheckInDate: checkIn.Format("2006-01-02"),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		// A nil payload skips the outbox row, so the admission would go
		// through with no event ever published. Leave a loud trace.
		log.Printf("allocation: admitted-event payload marshal failed for tenant %s, no event will be published: %v",
			created.ID, err)
		payload = nil
	}

	createdOcc, err := s.occupancyRepo.Create(ctx, occ, payload)
	if err != nil {
		// The tenant row exists without its occupancy pairing. Surface it
		// loudly so an operator can reconcile; masking this as a generic
		// failure would hide the orphaned tenant.
		log.Printf("ALLOCATION PARTIAL FAILURE: tenant %s created in room %s but occupancy write failed: %v",
			created.ID, room.ID, err)
		return created, nil, fmt.Errorf("%w: tenant %s: %v", domain.ErrOccupancyCreateFailed, created.ID, err)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			log.Printf("allocation: cache invalidation failed: %v", err)
		}
	}

	return created, createdOcc, nil
}
