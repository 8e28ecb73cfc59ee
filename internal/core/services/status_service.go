package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/baanruam/dormhub/occupancy-service/internal/core/domain"
	"github.com/baanruam/dormhub/occupancy-service/internal/core/ports"
)

type RoomStatusService struct {
	roomRepo ports.RoomRepository
	cache    ports.RoomListCache
	now      func() time.Time
}

var _ ports.RoomStatusService = (*RoomStatusService)(nil)

func NewRoomStatusService(roomRepo ports.RoomRepository, cache ports.RoomListCache) *RoomStatusService {
	return &RoomStatusService{
		roomRepo: roomRepo,
		cache:    cache,
		now:      time.Now,
	}
}

// Transition moves a room to target if the edge is allowed and stamps the
// room's updated-at time. The edge check lives here, not in the callers:
// the UI cannot be trusted as the only guard against occupied -> vacant.
func (s *RoomStatusService) Transition(ctx context.Context, roomID string, target domain.RoomStatus) (*domain.Room, error) {
	if !target.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidTransition, target)
	}

	room, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRoomLookupFailed, err)
	}

	if !room.Status.CanTransitionTo(target) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, room.Status, target)
	}

	updatedAt := s.now()
	if err := s.roomRepo.UpdateStatus(ctx, roomID, target, updatedAt); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistFailed, err)
	}

	room.Status = target
	room.UpdatedAt = updatedAt

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			log.Printf("room status: cache invalidation failed: %v", err)
		}
	}

	return room, nil
}
