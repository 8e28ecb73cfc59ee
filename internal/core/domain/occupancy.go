package domain

import "time"

// Occupancy ties a tenant to a room for a span of time. At most one row per
// tenant has IsCurrent set, and the number of current rows per room must
// never exceed that room's capacity.
type Occupancy struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenant_id"`
	RoomID      string    `json:"room_id"`
	CheckInDate time.Time `json:"check_in_date"`
	IsCurrent   bool      `json:"is_current"`
}
