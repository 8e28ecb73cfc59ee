package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baanruam/dormhub/occupancy-service/internal/core/domain"
)

func TestSQLRoomRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("SELECT id, room_number, room_type, capacity, price, floor, status, created_at, updated_at").
		WithArgs("room-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "room_number", "room_type", "capacity", "price", "floor", "status", "created_at", "updated_at",
		}).AddRow("room-1", "101", "Standard Double", 2, 3500.0, 1, "vacant", now, now))

	repo := NewSQLRoomRepository(db)
	room, err := repo.GetByID(context.Background(), "room-1")
	require.NoError(t, err)

	assert.Equal(t, "101", room.RoomNumber)
	assert.Equal(t, domain.TypeStandardDouble, room.RoomType)
	assert.Equal(t, 2, room.Capacity)
	assert.Equal(t, domain.StatusVacant, room.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLRoomRepository_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id, room_number, room_type, capacity, price, floor, status, created_at, updated_at").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "room_number", "room_type", "capacity", "price", "floor", "status", "created_at", "updated_at",
		}))

	repo := NewSQLRoomRepository(db)
	_, err = repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)
}

func TestSQLRoomRepository_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	updatedAt := time.Now()
	mock.ExpectExec("UPDATE rooms SET status").
		WithArgs(domain.StatusMaintenance, updatedAt, "room-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewSQLRoomRepository(db)
	err = repo.UpdateStatus(context.Background(), "room-1", domain.StatusMaintenance, updatedAt)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLRoomRepository_UpdateStatus_MissingRoom(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	updatedAt := time.Now()
	mock.ExpectExec("UPDATE rooms SET status").
		WithArgs(domain.StatusVacant, updatedAt, "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewSQLRoomRepository(db)
	err = repo.UpdateStatus(context.Background(), "missing", domain.StatusVacant, updatedAt)
	assert.Error(t, err)
}

func TestSQLRoomRepository_List_WithStatusFilter(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("SELECT id, room_number, room_type, capacity, price, floor, status, created_at, updated_at").
		WithArgs(domain.StatusVacant).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "room_number", "room_type", "capacity", "price", "floor", "status", "created_at", "updated_at",
		}).
			AddRow("room-1", "101", "Standard Single", 1, 3500.0, 1, "vacant", now, now).
			AddRow("room-2", "102", "Standard Double", 2, 4500.0, 1, "vacant", now, now))

	repo := NewSQLRoomRepository(db)
	rooms, err := repo.List(context.Background(), domain.RoomFilter{Status: domain.StatusVacant})
	require.NoError(t, err)

	require.Len(t, rooms, 2)
	assert.Equal(t, "101", rooms[0].RoomNumber)
	assert.Equal(t, "102", rooms[1].RoomNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}
