package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/baanruam/dormhub/occupancy-service/internal/core/domain"
	"github.com/baanruam/dormhub/occupancy-service/internal/core/ports"
)

type RoomHandler struct {
	roomService   ports.RoomService
	statusService ports.RoomStatusService
	occupancy     ports.OccupancyReader
}

func NewRoomHandler(roomService ports.RoomService, statusService ports.RoomStatusService, occupancy ports.OccupancyReader) *RoomHandler {
	return &RoomHandler{
		roomService:   roomService,
		statusService: statusService,
		occupancy:     occupancy,
	}
}

type CreateRoomRequest struct {
	RoomNumber string  `json:"room_number"`
	RoomType   string  `json:"room_type"`
	Price      float64 `json:"price"`
	Floor      int     `json:"floor"`
}

type ChangeStatusRequest struct {
	RoomID string `json:"room_id"`
	Status string `json:"status"`
}

func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	filter := domain.RoomFilter{
		Status: domain.RoomStatus(r.URL.Query().Get("status")),
		Type:   domain.RoomType(r.URL.Query().Get("type")),
	}

	rooms, err := h.roomService.ListRooms(r.Context(), filter)
	if err != nil {
		log.Printf("room list failed: %v", err)
		http.Error(w, "failed to list rooms", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(rooms); err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}

func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	room, err := h.roomService.CreateRoom(r.Context(), req.RoomNumber, domain.RoomType(req.RoomType), req.Price, req.Floor)
	if err != nil {
		log.Printf("room create failed: %v", err)
		if errors.Is(err, domain.ErrInvalidRoom) {
			http.Error(w, "invalid room", http.StatusBadRequest)
			return
		}
		http.Error(w, "failed to create room", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(room); err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}

type RoomOccupancyResponse struct {
	RoomID           string `json:"room_id"`
	CurrentOccupants int    `json:"current_occupants"`
	Capacity         int    `json:"capacity"`
}

// Occupancy reports a single room's live occupant count against its
// capacity, always read from the store rather than the listing cache.
func (h *RoomHandler) Occupancy(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	roomID := r.URL.Query().Get("room_id")
	if roomID == "" {
		http.Error(w, "room_id is required", http.StatusBadRequest)
		return
	}

	count, err := h.occupancy.CurrentOccupantCount(r.Context(), roomID)
	if err != nil {
		log.Printf("occupancy count failed: %v", err)
		http.Error(w, "failed to read occupancy", http.StatusInternalServerError)
		return
	}

	capacity, err := h.occupancy.CapacityOf(r.Context(), roomID)
	if err != nil {
		if errors.Is(err, domain.ErrRoomNotFound) || errors.Is(err, domain.ErrRoomLookupFailed) {
			http.Error(w, "room not found", http.StatusNotFound)
			return
		}
		log.Printf("capacity read failed: %v", err)
		http.Error(w, "failed to read occupancy", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(RoomOccupancyResponse{
		RoomID:           roomID,
		CurrentOccupants: count,
		Capacity:         capacity,
	}); err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}

func (h *RoomHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ChangeStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	room, err := h.statusService.Transition(r.Context(), req.RoomID, domain.RoomStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidTransition):
			transitionsTotal.WithLabelValues("invalid").Inc()
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		case errors.Is(err, domain.ErrRoomLookupFailed):
			transitionsTotal.WithLabelValues("failed").Inc()
			http.Error(w, "room not found", http.StatusNotFound)
		default:
			transitionsTotal.WithLabelValues("failed").Inc()
			log.Printf("status change failed: %v", err)
			http.Error(w, "failed to change room status", http.StatusInternalServerError)
		}
		return
	}
	transitionsTotal.WithLabelValues("ok").Inc()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(room); err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}
