package services_test

import (
	"testing"

	"github.com/baanruam/dormhub/occupancy-service/internal/core/services"
)

func TestCanAdmit(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		current  int
		want     bool
	}{
		{name: "empty_single_room", capacity: 1, current: 0, want: true},
		{name: "full_single_room", capacity: 1, current: 1, want: false},
		{name: "double_room_one_occupant", capacity: 2, current: 1, want: true},
		{name: "double_room_full", capacity: 2, current: 2, want: false},
		{name: "count_above_capacity", capacity: 2, current: 3, want: false},
		{name: "zero_capacity_always_rejects", capacity: 0, current: 0, want: false},
		{name: "negative_capacity_rejects", capacity: -1, current: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := services.CanAdmit(tt.capacity, tt.current); got != tt.want {
				t.Errorf("CanAdmit(%d, %d) = %v, want %v", tt.capacity, tt.current, got, tt.want)
			}
		})
	}
}
