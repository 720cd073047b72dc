package persistence

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/takibi/backend/internal/domain/shared"
)

// newMockChangeLogRepository creates a GormChangeLogRepository over a
// mocked SQL connection.
func newMockChangeLogRepository(t *testing.T) (*GormChangeLogRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	// The dialector probes the engine version on open.
	mock.ExpectQuery(`select sqlite_version`).
		WillReturnRows(sqlmock.NewRows([]string{"sqlite_version()"}).AddRow("3.45.0"))

	dialector := sqlite.Dialector{
		DriverName: "sqlite3",
		Conn:       mockDB,
	}
	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormChangeLogRepository(gormDB), mock, mockDB
}

func TestDrainMapsTablesToSections(t *testing.T) {
	repo, mock, mockDB := newMockChangeLogRepository(t)
	defer mockDB.Close()

	rows := sqlmock.NewRows([]string{"table_name"}).
		AddRow("cases").
		AddRow("notifications").
		AddRow("finance_records_external")

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT DISTINCT .table_name. FROM .change_log.`).
		WillReturnRows(rows)
	mock.ExpectExec(`DELETE FROM .change_log.`).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	sections, err := repo.Drain(context.Background())
	require.NoError(t, err)
	assert.True(t, sections.Cases)
	assert.True(t, sections.Tasks)
	assert.True(t, sections.Finance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDrainEmptyLogSkipsDelete(t *testing.T) {
	repo, mock, mockDB := newMockChangeLogRepository(t)
	defer mockDB.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT DISTINCT .table_name. FROM .change_log.`).
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}))
	mock.ExpectCommit()

	sections, err := repo.Drain(context.Background())
	require.NoError(t, err)
	assert.False(t, sections.Any())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDrainQueryFailureRollsBack(t *testing.T) {
	repo, mock, mockDB := newMockChangeLogRepository(t)
	defer mockDB.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT DISTINCT .table_name. FROM .change_log.`).
		WillReturnError(errors.New("database is locked"))
	mock.ExpectRollback()

	_, err := repo.Drain(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrStore)
	assert.NoError(t, mock.ExpectationsWereMet())
}
