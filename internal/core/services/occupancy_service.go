package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/baanruam/dormhub/occupancy-service/internal/core/domain"
	"github.com/baanruam/dormhub/occupancy-service/internal/core/ports"
)

// OccupancyService derives per-room occupant counts and capacities from the
// record store. Counts are computed from current occupancy rows on every
// call; nothing here caches.
type OccupancyService struct {
	roomRepo      ports.RoomRepository
	occupancyRepo ports.OccupancyRepository
}

var _ ports.OccupancyReader = (*OccupancyService)(nil)

func NewOccupancyService(roomRepo ports.RoomRepository, occupancyRepo ports.OccupancyRepository) *OccupancyService {
	return &OccupancyService{
		roomRepo:      roomRepo,
		occupancyRepo: occupancyRepo,
	}
}

func (s *OccupancyService) CurrentOccupantCount(ctx context.Context, roomID string) (int, error) {
	count, err := s.occupancyRepo.CountCurrentByRoom(ctx, roomID)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrQueryFailed, err)
	}
	return count, nil
}

func (s *OccupancyService) CapacityOf(ctx context.Context, roomID string) (int, error) {
	room, err := s.roomRepo.GetByID(ctx, roomID)
	if errors.Is(err, domain.ErrRoomNotFound) {
		return 0, err
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrQueryFailed, err)
	}
	return room.Capacity, nil
}
