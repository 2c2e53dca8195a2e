package dao

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mdarif551578/hasmi-coin-mining-sub000/models"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestCountPendingIssuesOneFilteredCount(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "deposits" WHERE status = $1`)).
		WithArgs(models.StatusPending).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	total, err := NewDepositDAO(db).CountPending()
	require.NoError(t, err)
	require.Equal(t, int64(4), total)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkResolvedGuardsOnPendingStatus(t *testing.T) {
	db, mock := newMockDB(t)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "deposits" SET "status"=$1 WHERE id = $2 AND status = $3`)).
		WithArgs(models.StatusApproved, id, models.StatusPending).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := NewDepositDAO(db).MarkResolved(id, models.StatusApproved)
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkResolvedReportsLostRace(t *testing.T) {
	db, mock := newMockDB(t)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "deposits" SET "status"=$1 WHERE id = $2 AND status = $3`)).
		WithArgs(models.StatusRejected, id, models.StatusPending).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := NewDepositDAO(db).MarkResolved(id, models.StatusRejected)
	require.NoError(t, err)
	require.False(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}
