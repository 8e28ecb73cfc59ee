package domain

import "errors"

// Admission and status-change failures. RoomFull and InvalidTransition are
// expected business rejections surfaced to the caller as-is; the *Failed
// errors are record-store faults and are never retried here.
var (
	ErrRoomLookupFailed     = errors.New("room lookup failed")
	ErrOccupancyQueryFailed = errors.New("occupancy count query failed")
	ErrRoomFull             = errors.New("room is at full capacity")
	ErrTenantCreateFailed   = errors.New("tenant create failed")

	// ErrOccupancyCreateFailed means a tenant row was written but its
	// occupancy pairing was not. That partial state needs operator
	// attention, so it must never be collapsed into a generic failure.
	ErrOccupancyCreateFailed = errors.New("occupancy create failed after tenant create")

	ErrInvalidTransition = errors.New("invalid room status transition")
	ErrInvalidRoom       = errors.New("invalid room")
	ErrPersistFailed     = errors.New("persist failed")
	ErrQueryFailed       = errors.New("query failed")

	ErrRoomNotFound   = errors.New("room not found")
	ErrTenantNotFound = errors.New("tenant not found")
)
