package repository

import (
	"context"
	"database/sql"

	"github.com/baanruam/dormhub/occupancy-service/internal/core/domain"
	"github.com/baanruam/dormhub/occupancy-service/internal/core/ports"
)

type SQLTenantRepository struct {
	db *sql.DB
}

var _ ports.TenantRepository = (*SQLTenantRepository)(nil)

func NewSQLTenantRepository(db *sql.DB) *SQLTenantRepository {
	return &SQLTenantRepository{db: db}
}

// The action column keeps the legacy '1'/'0' text flag.
func actionFlag(active bool) string {
	if active {
		return "1"
	}
	return "0"
}

func (r *SQLTenantRepository) GetByID(ctx context.Context, id string) (*domain.Tenant, error) {
	var tenant domain.Tenant
	var action string
	var image sql.NullString
	err := r.db.QueryRowContext(
		ctx,
		`SELECT id, first_name, last_name, email, phone, address, emergency_contact,
		        residents, action, room_id, room_number, image, created_at
		 FROM tenants WHERE id = $1`,
		id,
	).Scan(
		&tenant.ID, &tenant.FirstName, &tenant.LastName, &tenant.Email,
		&tenant.Phone, &tenant.Address, &tenant.EmergencyContact,
		&tenant.Kind, &action, &tenant.RoomID, &tenant.RoomNumber,
		&image, &tenant.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	tenant.Active = action == "1"
	tenant.ContractImage = image.String
	return &tenant, nil
}

func (r *SQLTenantRepository) Create(ctx context.Context, tenant domain.Tenant) (*domain.Tenant, error) {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tenants (id, first_name, last_name, email, phone, address, emergency_contact,
		                      residents, action, room_id, room_number, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		tenant.ID,
		tenant.FirstName,
		tenant.LastName,
		tenant.Email,
		tenant.Phone,
		tenant.Address,
		tenant.EmergencyContact,
		tenant.Kind,
		actionFlag(tenant.Active),
		tenant.RoomID,
		tenant.RoomNumber,
		tenant.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

func (r *SQLTenantRepository) ListActivePrimaries(ctx context.Context) ([]domain.Tenant, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, first_name, last_name, email, phone, address, emergency_contact,
		        residents, action, room_id, room_number, image, created_at
		 FROM tenants
		 WHERE action = '1' AND residents = $1
		 ORDER BY created_at DESC`,
		domain.KindPrimary,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tenants []domain.Tenant
	for rows.Next() {
		var tenant domain.Tenant
		var action string
		var image sql.NullString
		if err := rows.Scan(
			&tenant.ID, &tenant.FirstName, &tenant.LastName, &tenant.Email,
			&tenant.Phone, &tenant.Address, &tenant.EmergencyContact,
			&tenant.Kind, &action, &tenant.RoomID, &tenant.RoomNumber,
			&image, &tenant.CreatedAt,
		); err != nil {
			return nil, err
		}
		tenant.Active = action == "1"
		tenant.ContractImage = image.String
		tenants = append(tenants, tenant)
	}
	return tenants, rows.Err()
}

func (r *SQLTenantRepository) SetActive(ctx context.Context, id string, active bool) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE tenants SET action = $1 WHERE id = $2",
		actionFlag(active), id,
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

func (r *SQLTenantRepository) SetContractImage(ctx context.Context, id, url string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE tenants SET image = $1 WHERE id = $2",
		url, id,
	)
	return err
}
