package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/baanruam/dormhub/occupancy-service/internal/core/domain"
	"github.com/baanruam/dormhub/occupancy-service/internal/core/ports"
)

type SQLRoomRepository struct {
	db *sql.DB
}

// Ensure SQLRoomRepository implements ports.RoomRepository
var _ ports.RoomRepository = (*SQLRoomRepository)(nil)

func NewSQLRoomRepository(db *sql.DB) *SQLRoomRepository {
	return &SQLRoomRepository{db: db}
}

func (r *SQLRoomRepository) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	var room domain.Room
	err := r.db.QueryRowContext(
		ctx,
		`SELECT id, room_number, room_type, capacity, price, floor, status, created_at, updated_at
		 FROM rooms WHERE id = $1`,
		id,
	).Scan(
		&room.ID, &room.RoomNumber, &room.RoomType, &room.Capacity,
		&room.Price, &room.Floor, &room.Status, &room.CreatedAt, &room.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *SQLRoomRepository) Create(ctx context.Context, room domain.Room) (*domain.Room, error) {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO rooms (id, room_number, room_type, capacity, price, floor, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		room.ID,
		room.RoomNumber,
		room.RoomType,
		room.Capacity,
		room.Price,
		room.Floor,
		room.Status,
		room.CreatedAt,
		room.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *SQLRoomRepository) UpdateStatus(ctx context.Context, id string, status domain.RoomStatus, updatedAt time.Time) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE rooms SET status = $1, updated_at = $2 WHERE id = $3",
		status, updatedAt, id,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *SQLRoomRepository) List(ctx context.Context, filter domain.RoomFilter) ([]domain.Room, error) {
	query := `SELECT id, room_number, room_type, capacity, price, floor, status, created_at, updated_at
		 FROM rooms`
	var args []any
	var where []string
	if filter.Status != "" {
		args = append(args, filter.Status)
		where = append(where, "status = $1")
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		if len(args) == 1 {
			where = append(where, "room_type = $1")
		} else {
			where = append(where, "room_type = $2")
		}
	}
	if len(where) > 0 {
		query += " WHERE " + where[0]
		if len(where) == 2 {
			query += " AND " + where[1]
		}
	}
	query += " ORDER BY room_number ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []domain.Room
	for rows.Next() {
		var room domain.Room
		if err := rows.Scan(
			&room.ID, &room.RoomNumber, &room.RoomType, &room.Capacity,
			&room.Price, &room.Floor, &room.Status, &room.CreatedAt, &room.UpdatedAt,
		); err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}
