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

func TestSQLOccupancyRepository_Create_WritesOutboxInSameTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	occ := domain.Occupancy{
		ID:          "occ-1",
		TenantID:    "tenant-1",
		RoomID:      "room-1",
		CheckInDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		IsCurrent:   true,
	}
	payload := []byte(`{"tenant_id":"tenant-1"}`)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO occupancy").
		WithArgs(occ.ID, occ.TenantID, occ.RoomID, occ.CheckInDate, occ.IsCurrent).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO outbox_events").
		WithArgs(sqlmock.AnyArg(), "tenant.admitted", payload).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	repo := NewSQLOccupancyRepository(db, "tenant.admitted")
	created, err := repo.Create(context.Background(), occ, payload)
	require.NoError(t, err)
	assert.Equal(t, "occ-1", created.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLOccupancyRepository_Create_NoPayloadSkipsOutbox(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	occ := domain.Occupancy{ID: "occ-1", TenantID: "tenant-1", RoomID: "room-1", IsCurrent: true}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO occupancy").
		WithArgs(occ.ID, occ.TenantID, occ.RoomID, occ.CheckInDate, occ.IsCurrent).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	repo := NewSQLOccupancyRepository(db, "tenant.admitted")
	_, err = repo.Create(context.Background(), occ, nil)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLOccupancyRepository_CountCurrentByRoom(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT").
		WithArgs("room-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	repo := NewSQLOccupancyRepository(db, "tenant.admitted")
	count, err := repo.CountCurrentByRoom(context.Background(), "room-1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestSQLOccupancyRepository_CurrentByTenant_NoRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id, tenant_id, room_id, check_in_date, is_current").
		WithArgs("tenant-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "room_id", "check_in_date", "is_current"}))

	repo := NewSQLOccupancyRepository(db, "tenant.admitted")
	occ, err := repo.CurrentByTenant(context.Background(), "tenant-1")
	require.NoError(t, err)
	assert.Nil(t, occ)
}

func TestSQLOccupancyRepository_Retire(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE occupancy SET is_current").
		WithArgs("tenant-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewSQLOccupancyRepository(db, "tenant.admitted")
	err = repo.Retire(context.Background(), "tenant-1")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
