package domain

import "time"

type RoomStatus string

const (
	StatusVacant      RoomStatus = "vacant"
	StatusOccupied    RoomStatus = "occupied"
	StatusMaintenance RoomStatus = "maintenance"
)

type RoomType string

const (
	TypeStandardSingle RoomType = "Standard Single"
	TypeStandardDouble RoomType = "Standard Double"
)

// DefaultCapacity returns the bed count a room type carries. Capacity is
// locked to the room type at creation and never changes afterwards.
func (t RoomType) DefaultCapacity() int {
	switch t {
	case TypeStandardSingle:
		return 1
	case TypeStandardDouble:
		return 2
	default:
		return 0
	}
}

func (s RoomStatus) Valid() bool {
	switch s {
	case StatusVacant, StatusOccupied, StatusMaintenance:
		return true
	}
	return false
}

// CanTransitionTo reports whether s -> target is an allowed status edge.
// A room holding current occupants cannot be marked vacant directly, so
// occupied -> vacant is rejected; occupancy has to be cleared first.
// Self-transitions are never allowed.
func (s RoomStatus) CanTransitionTo(target RoomStatus) bool {
	switch s {
	case StatusVacant:
		return target == StatusOccupied || target == StatusMaintenance
	case StatusOccupied:
		return target == StatusMaintenance
	case StatusMaintenance:
		return target == StatusVacant || target == StatusOccupied
	}
	return false
}

type Room struct {
	ID         string     `json:"id"`
	RoomNumber string     `json:"room_number"`
	RoomType   RoomType   `json:"room_type"`
	Capacity   int        `json:"capacity"`
	Price      float64    `json:"price"`
	Floor      int        `json:"floor"`
	Status     RoomStatus `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// RoomWithOccupancy is the listing view: a room plus its derived current
// occupant count. The count is computed from occupancy rows, never stored.
type RoomWithOccupancy struct {
	Room
	CurrentOccupants int `json:"current_occupants"`
}

// RoomFilter narrows room listings. Zero values mean "no filter".
type RoomFilter struct {
	Status RoomStatus
	Type   RoomType
}
