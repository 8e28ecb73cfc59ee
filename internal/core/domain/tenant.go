package domain

import "time"

// TenantKind discriminates a primary tenant (the contract holder) from a
// dependent admitted into the primary's room.
type TenantKind string

const (
	KindPrimary   TenantKind = "primary"
	KindDependent TenantKind = "dependent"
)

type Tenant struct {
	ID               string     `json:"id"`
	FirstName        string     `json:"first_name"`
	LastName         string     `json:"last_name"`
	Email            string     `json:"email"`
	Phone            string     `json:"phone"`
	Address          string     `json:"address"`
	EmergencyContact string     `json:"emergency_contact"`
	Kind             TenantKind `json:"residents"`
	Active           bool       `json:"action"`
	// RoomID and RoomNumber are denormalized for display only. The
	// authoritative current room is derived from the occupancy table.
	RoomID        string    `json:"room_id"`
	RoomNumber    string    `json:"room_number"`
	ContractImage string    `json:"image,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// TenantDraft carries the caller-supplied fields of an admission. The
// allocator fills in identity, kind, room references and the active flag.
type TenantDraft struct {
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Address          string `json:"address"`
	EmergencyContact string `json:"emergency_contact"`
}

// TenantWithRoom is the tenant listing view: the tenant plus the room its
// current occupancy row points at, nil when the tenant holds no room.
type TenantWithRoom struct {
	Tenant
	CurrentRoom *Room `json:"current_room,omitempty"`
}
