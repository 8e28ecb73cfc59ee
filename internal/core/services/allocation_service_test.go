package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/baanruam/dormhub/occupancy-service/internal/core/domain"
	"github.com/baanruam/dormhub/occupancy-service/internal/core/ports"
	"github.com/baanruam/dormhub/occupancy-service/internal/core/services"
	"github.com/baanruam/dormhub/occupancy-service/test/mocks"
)

func newAllocationFixture() (*services.AllocationService, *mocks.MockRoomRepository, *mocks.MockTenantRepository, *mocks.MockOccupancyRepository, *mocks.MockRoomListCache) {
	roomRepo := mocks.NewMockRoomRepository()
	tenantRepo := mocks.NewMockTenantRepository()
	occRepo := mocks.NewMockOccupancyRepository()
	cache := mocks.NewMockRoomListCache()
	svc := services.NewAllocationService(roomRepo, tenantRepo, occRepo, cache)
	return svc, roomRepo, tenantRepo, occRepo, cache
}

func TestAllocationService_AdmitTenant_HappyPath(t *testing.T) {
	svc, roomRepo, tenantRepo, occRepo, cache := newAllocationFixture()
	roomRepo.SeedRoom(mocks.CreateTestRoom("room-1", "101", domain.TypeStandardDouble))

	tenant, occ, err := svc.AdmitTenant(context.Background(), "room-1", mocks.CreateTestDraft(), domain.KindPrimary)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tenant == nil || occ == nil {
		t.Fatal("expected both tenant and occupancy records")
	}
	if tenant.Kind != domain.KindPrimary {
		t.Errorf("expected primary kind, got %s", tenant.Kind)
	}
	if !tenant.Active {
		t.Error("admitted tenant should be active")
	}
	if tenant.RoomID != "room-1" || tenant.RoomNumber != "101" {
		t.Errorf("tenant room references wrong: %s / %s", tenant.RoomID, tenant.RoomNumber)
	}
	if !occ.IsCurrent {
		t.Error("occupancy row must be current")
	}
	if occ.TenantID != tenant.ID {
		t.Error("occupancy must reference the created tenant")
	}

	count, err := occRepo.CountCurrentByRoom(context.Background(), "room-1")
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected occupant count 1 after admission, got %d", count)
	}

	if len(tenantRepo.CreateCalls) != 1 {
		t.Errorf("expected 1 tenant create, got %d", len(tenantRepo.CreateCalls))
	}
	if cache.InvalidateCalls != 1 {
		t.Errorf("expected 1 cache invalidation, got %d", cache.InvalidateCalls)
	}

	// The outbox payload written with the occupancy row carries the event.
	if len(occRepo.OutboxPayloads) != 1 || occRepo.OutboxPayloads[0] == nil {
		t.Fatal("expected an outbox payload alongside the occupancy insert")
	}
	var evt ports.TenantAdmittedEvent
	if err := json.Unmarshal(occRepo.OutboxPayloads[0], &evt); err != nil {
		t.Fatalf("outbox payload not an admission event: %v", err)
	}
	if evt.TenantID != tenant.ID || evt.RoomNumber != "101" {
		t.Errorf("event fields wrong: %+v", evt)
	}
}

func TestAllocationService_AdmitTenant_RoomFull(t *testing.T) {
	svc, roomRepo, tenantRepo, occRepo, _ := newAllocationFixture()
	roomRepo.SeedRoom(mocks.CreateTestRoom("room-1", "101", domain.TypeStandardDouble))
	occRepo.SeedOccupancy(&domain.Occupancy{ID: "o1", TenantID: "t1", RoomID: "room-1", IsCurrent: true})
	occRepo.SeedOccupancy(&domain.Occupancy{ID: "o2", TenantID: "t2", RoomID: "room-1", IsCurrent: true})

	_, _, err := svc.AdmitTenant(context.Background(), "room-1", mocks.CreateTestDraft(), domain.KindPrimary)
	if !errors.Is(err, domain.ErrRoomFull) {
		t.Fatalf("expected ErrRoomFull, got %v", err)
	}

	// A full room must reject before any tenant row is written.
	if len(tenantRepo.CreateCalls) != 0 {
		t.Errorf("expected no tenant create on full room, got %d", len(tenantRepo.CreateCalls))
	}
}

func TestAllocationService_AdmitTenant_RetiredRowsDoNotCount(t *testing.T) {
	svc, roomRepo, _, occRepo, _ := newAllocationFixture()
	roomRepo.SeedRoom(mocks.CreateTestRoom("room-1", "101", domain.TypeStandardSingle))
	occRepo.SeedOccupancy(&domain.Occupancy{ID: "o1", TenantID: "t1", RoomID: "room-1", IsCurrent: false})

	_, _, err := svc.AdmitTenant(context.Background(), "room-1", mocks.CreateTestDraft(), domain.KindPrimary)
	if err != nil {
		t.Fatalf("retired occupancy rows must not block admission: %v", err)
	}
}

func TestAllocationService_AdmitTenant_FailureTaxonomy(t *testing.T) {
	storeErr := errors.New("connection refused")

	tests := []struct {
		name    string
		setup   func(*mocks.MockRoomRepository, *mocks.MockTenantRepository, *mocks.MockOccupancyRepository)
		wantErr error
	}{
		{
			name:    "room_lookup_failed",
			setup:   func(r *mocks.MockRoomRepository, _ *mocks.MockTenantRepository, _ *mocks.MockOccupancyRepository) { r.GetByIDError = storeErr },
			wantErr: domain.ErrRoomLookupFailed,
		},
		{
			name:    "missing_room_is_lookup_failure",
			setup:   func(_ *mocks.MockRoomRepository, _ *mocks.MockTenantRepository, _ *mocks.MockOccupancyRepository) {},
			wantErr: domain.ErrRoomLookupFailed,
		},
		{
			name: "occupancy_count_failed",
			setup: func(r *mocks.MockRoomRepository, _ *mocks.MockTenantRepository, o *mocks.MockOccupancyRepository) {
				r.SeedRoom(mocks.CreateTestRoom("room-1", "101", domain.TypeStandardSingle))
				o.CountError = storeErr
			},
			wantErr: domain.ErrOccupancyQueryFailed,
		},
		{
			name: "tenant_create_failed",
			setup: func(r *mocks.MockRoomRepository, tr *mocks.MockTenantRepository, _ *mocks.MockOccupancyRepository) {
				r.SeedRoom(mocks.CreateTestRoom("room-1", "101", domain.TypeStandardSingle))
				tr.CreateError = storeErr
			},
			wantErr: domain.ErrTenantCreateFailed,
		},
		{
			name: "tenant_create_returned_no_record",
			setup: func(r *mocks.MockRoomRepository, tr *mocks.MockTenantRepository, _ *mocks.MockOccupancyRepository) {
				r.SeedRoom(mocks.CreateTestRoom("room-1", "101", domain.TypeStandardSingle))
				tr.CreateReturnsNil = true
			},
			wantErr: domain.ErrTenantCreateFailed,
		},
		{
			name: "occupancy_create_failed_is_distinct",
			setup: func(r *mocks.MockRoomRepository, _ *mocks.MockTenantRepository, o *mocks.MockOccupancyRepository) {
				r.SeedRoom(mocks.CreateTestRoom("room-1", "101", domain.TypeStandardSingle))
				o.CreateError = storeErr
			},
			wantErr: domain.ErrOccupancyCreateFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, roomRepo, tenantRepo, occRepo, _ := newAllocationFixture()
			tt.setup(roomRepo, tenantRepo, occRepo)

			_, _, err := svc.AdmitTenant(context.Background(), "room-1", mocks.CreateTestDraft(), domain.KindPrimary)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestAllocationService_AdmitTenant_TenantCreateFailureWritesNoOccupancy(t *testing.T) {
	svc, roomRepo, tenantRepo, occRepo, _ := newAllocationFixture()
	roomRepo.SeedRoom(mocks.CreateTestRoom("room-1", "101", domain.TypeStandardSingle))
	tenantRepo.CreateError = errors.New("insert failed")

	_, _, err := svc.AdmitTenant(context.Background(), "room-1", mocks.CreateTestDraft(), domain.KindPrimary)
	if !errors.Is(err, domain.ErrTenantCreateFailed) {
		t.Fatalf("expected ErrTenantCreateFailed, got %v", err)
	}
	if len(occRepo.CreateCalls) != 0 {
		t.Errorf("no occupancy write may follow a failed tenant create, got %d", len(occRepo.CreateCalls))
	}
}

func TestAllocationService_AdmitTenant_OccupancyCreateFailureReturnsTenant(t *testing.T) {
	svc, roomRepo, _, occRepo, _ := newAllocationFixture()
	roomRepo.SeedRoom(mocks.CreateTestRoom("room-1", "101", domain.TypeStandardSingle))
	occRepo.CreateError = errors.New("insert failed")

	tenant, occ, err := svc.AdmitTenant(context.Background(), "room-1", mocks.CreateTestDraft(), domain.KindPrimary)
	if !errors.Is(err, domain.ErrOccupancyCreateFailed) {
		t.Fatalf("expected ErrOccupancyCreateFailed, got %v", err)
	}
	if occ != nil {
		t.Error("no occupancy record should be returned")
	}
	// The orphaned tenant is handed back so the caller can reconcile.
	if tenant == nil {
		t.Error("the created tenant must be returned for compensating cleanup")
	}
}

// Two concurrent admissions into a room with a single free slot must not
// both succeed; the per-room lock serializes the count-then-insert sequence.
func TestAllocationService_AdmitTenant_ConcurrentAdmissionsRespectCapacity(t *testing.T) {
	svc, roomRepo, _, occRepo, _ := newAllocationFixture()
	roomRepo.SeedRoom(mocks.CreateTestRoom("room-1", "101", domain.TypeStandardSingle))

	const attempts = 2
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, errs[i] = svc.AdmitTenant(context.Background(), "room-1", mocks.CreateTestDraft(), domain.KindPrimary)
		}(i)
	}
	wg.Wait()

	successes, rejections := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, domain.ErrRoomFull):
			rejections++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if successes != 1 || rejections != 1 {
		t.Fatalf("expected exactly one success and one rejection, got %d / %d", successes, rejections)
	}

	count, _ := occRepo.CountCurrentByRoom(context.Background(), "room-1")
	if count != 1 {
		t.Fatalf("capacity invariant violated: %d current occupants in a capacity-1 room", count)
	}
}

// A heavier run of the same race: many goroutines against one double room.
func TestAllocationService_AdmitTenant_ManyConcurrentAdmissions(t *testing.T) {
	svc, roomRepo, _, occRepo, _ := newAllocationFixture()
	roomRepo.SeedRoom(mocks.CreateTestRoom("room-1", "101", domain.TypeStandardDouble))

	const attempts = 16
	var wg sync.WaitGroup
	var mu sync.Mutex
	successes := 0

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := svc.AdmitTenant(context.Background(), "room-1", mocks.CreateTestDraft(), domain.KindDependent)
			if err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			} else if !errors.Is(err, domain.ErrRoomFull) {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if successes != 2 {
		t.Fatalf("expected exactly 2 admissions into a capacity-2 room, got %d", successes)
	}
	count, _ := occRepo.CountCurrentByRoom(context.Background(), "room-1")
	if count != 2 {
		t.Fatalf("capacity invariant violated: count %d", count)
	}
}
