package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/baanruam/dormhub/occupancy-service/internal/core/domain"
	"github.com/baanruam/dormhub/occupancy-service/internal/core/ports"
)

type SQLOccupancyRepository struct {
	db *sql.DB
	// eventType tags outbox rows; the relay matches on it when draining.
	eventType string
}

var _ ports.OccupancyRepository = (*SQLOccupancyRepository)(nil)

func NewSQLOccupancyRepository(db *sql.DB, eventType string) *SQLOccupancyRepository {
	return &SQLOccupancyRepository{db: db, eventType: eventType}
}

// Create inserts the occupancy row and its outbox event in one transaction,
// so an admitted tenant's event can never be lost between the two writes.
func (r *SQLOccupancyRepository) Create(ctx context.Context, occ domain.Occupancy, outboxPayload []byte) (*domain.Occupancy, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO occupancy (id, tenant_id, room_id, check_in_date, is_current)
		 VALUES ($1, $2, $3, $4, $5)`,
		occ.ID,
		occ.TenantID,
		occ.RoomID,
		occ.CheckInDate,
		occ.IsCurrent,
	)
	if err != nil {
		return nil, err
	}

	if outboxPayload != nil {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO outbox_events (id, event_type, payload, created_at)
			 VALUES ($1, $2, $3, NOW())`,
			uuid.NewString(),
			r.eventType,
			outboxPayload,
		)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &occ, nil
}

func (r *SQLOccupancyRepository) CountCurrentByRoom(ctx context.Context, roomID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM occupancy WHERE room_id = $1 AND is_current = TRUE",
		roomID,
	).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *SQLOccupancyRepository) CountsByRoom(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT room_id, COUNT(*) FROM occupancy WHERE is_current = TRUE GROUP BY room_id",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var roomID string
		var count int
		if err := rows.Scan(&roomID, &count); err != nil {
			return nil, err
		}
		counts[roomID] = count
	}
	return counts, rows.Err()
}

func (r *SQLOccupancyRepository) CurrentByTenant(ctx context.Context, tenantID string) (*domain.Occupancy, error) {
	var occ domain.Occupancy
	err := r.db.QueryRowContext(ctx,
		`SELECT id, tenant_id, room_id, check_in_date, is_current
		 FROM occupancy WHERE tenant_id = $1 AND is_current = TRUE`,
		tenantID,
	).Scan(&occ.ID, &occ.TenantID, &occ.RoomID, &occ.CheckInDate, &occ.IsCurrent)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &occ, nil
}

func (r *SQLOccupancyRepository) Retire(ctx context.Context, tenantID string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE occupancy SET is_current = FALSE WHERE tenant_id = $1 AND is_current = TRUE",
		tenantID,
	)
	return err
}
