package mocks

import (
	"time"

	"github.com/baanruam/dormhub/occupancy-service/internal/core/domain"
	"github.com/baanruam/dormhub/occupancy-service/internal/core/ports"
)

// CreateTestRoom returns a vacant room for test setup.
func CreateTestRoom(id, roomNumber string, roomType domain.RoomType) *domain.Room {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	return &domain.Room{
		ID:         id,
		RoomNumber: roomNumber,
		RoomType:   roomType,
		Capacity:   roomType.DefaultCapacity(),
		Price:      3500,
		Floor:      1,
		Status:     domain.StatusVacant,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// CreateTestDraft returns valid admission fields.
func CreateTestDraft() domain.TenantDraft {
	return domain.TenantDraft{
		FirstName:        "Somchai",
		LastName:         "Prasert",
		Email:            "somchai@example.com",
		Phone:            "0812345678",
		Address:          "99 Moo 4, Bang Khen, Bangkok",
		EmergencyContact: "0898765432",
	}
}

// CreateTestEvent returns a sample admission event.
func CreateTestEvent() ports.TenantAdmittedEvent {
	return ports.TenantAdmittedEvent{
		TenantID:    "test-tenant-id",
		RoomID:      "test-room-id",
		RoomNumber:  "101",
		Kind:        string(domain.KindPrimary),
		CheckInDate: "2025-06-01",
	}
}
