package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/baanruam/dormhub/occupancy-service/internal/core/domain"
	"github.com/baanruam/dormhub/occupancy-service/internal/core/ports"
)

type RoomService struct {
	roomRepo      ports.RoomRepository
	occupancyRepo ports.OccupancyRepository
	cache         ports.RoomListCache
	now           func() time.Time
}

var _ ports.RoomService = (*RoomService)(nil)

func NewRoomService(
	roomRepo ports.RoomRepository,
	occupancyRepo ports.OccupancyRepository,
	cache ports.RoomListCache,
) *RoomService {
	return &RoomService{
		roomRepo:      roomRepo,
		occupancyRepo: occupancyRepo,
		cache:         cache,
		now:           time.Now,
	}
}

// CreateRoom registers a new room. Capacity comes from the room type and is
// fixed from then on. New rooms always start vacant.
func (s *RoomService) CreateRoom(
	ctx context.Context,
	roomNumber string,
	roomType domain.RoomType,
	price float64,
	floor int,
) (*domain.Room, error) {
	capacity := roomType.DefaultCapacity()
	if capacity == 0 {
		return nil, fmt.Errorf("%w: unknown room type %q", domain.ErrInvalidRoom, roomType)
	}
	if roomNumber == "" {
		return nil, fmt.Errorf("%w: room number is required", domain.ErrInvalidRoom)
	}
	for _, c := range roomNumber {
		if c < '0' || c > '9' {
			return nil, fmt.Errorf("%w: room number must be digits", domain.ErrInvalidRoom)
		}
	}
	if floor < 1 {
		floor = 1
	} else if floor > 4 {
		floor = 4
	}

	now := s.now()
	room := domain.Room{
		ID:         uuid.NewString(),
		RoomNumber: roomNumber,
		RoomType:   roomType,
		Capacity:   capacity,
		Price:      price,
		Floor:      floor,
		Status:     domain.StatusVacant,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	created, err := s.roomRepo.Create(ctx, room)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistFailed, err)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			log.Printf("room service: cache invalidation failed: %v", err)
		}
	}

	return created, nil
}

// ListRooms returns rooms ordered by room number with their derived current
// occupant counts. Unfiltered listings are served from the cache when warm;
// filtered ones always hit the store.
func (s *RoomService) ListRooms(ctx context.Context, filter domain.RoomFilter) ([]domain.RoomWithOccupancy, error) {
	unfiltered := filter == (domain.RoomFilter{})
	if unfiltered && s.cache != nil {
		if rooms, ok := s.cache.Get(ctx); ok {
			return rooms, nil
		}
	}

	rooms, err := s.roomRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrQueryFailed, err)
	}

	counts, err := s.occupancyRepo.CountsByRoom(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrQueryFailed, err)
	}

	out := make([]domain.RoomWithOccupancy, 0, len(rooms))
	for _, room := range rooms {
		out = append(out, domain.RoomWithOccupancy{
			Room:             room,
			CurrentOccupants: counts[room.ID],
		})
	}

	if unfiltered && s.cache != nil {
		if err := s.cache.Set(ctx, out); err != nil {
			log.Printf("room service: cache set failed: %v", err)
		}
	}

	return out, nil
}
