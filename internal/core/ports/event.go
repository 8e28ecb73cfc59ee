package ports

import (
	"context"
)

type TenantAdmittedEvent struct {
	TenantID    string `json:"tenant_id"`
	RoomID      string `json:"room_id"`
	RoomNumber  string `json:"room_number"`
	Kind        string `json:"kind"`
	CheckInDate string `json:"check_in_date"`
}

type AdmissionEventPublisher interface {
	PublishTenantAdmitted(ctx context.Context, evt TenantAdmittedEvent) error
}
