package db

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	qGetLock     = "SELECT GET_LOCK(?, ?)"
	qReleaseLock = "SELECT RELEASE_LOCK(?)"
)

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = raw.Close()
	})
	return &DB{DB: sqlx.NewDb(raw, "mysql")}, mock
}

func lockRows(v any) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"result"}).AddRow(v)
}

func TestEnsureSchema(t *testing.T) {
	d, mock := newMockDB(t)
	mock.ExpectQuery(qGetLock).WithArgs(schemaLock, int64(schemaLockTimeout)).WillReturnRows(lockRows(1))
	mock.ExpectExec(Establishments.DDL()).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(Specials.DDL()).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(qReleaseLock).WithArgs(schemaLock).WillReturnRows(lockRows(1))

	require.NoError(t, d.EnsureSchema(context.Background()))
}

func TestEnsureSchemaLockBusy(t *testing.T) {
	d, mock := newMockDB(t)
	mock.ExpectQuery(qGetLock).WithArgs(schemaLock, int64(schemaLockTimeout)).WillReturnRows(lockRows(0))

	err := d.EnsureSchema(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"happierhour-schema"`)
	assert.Contains(t, err.Error(), "result=0")
}

func TestEnsureSchemaDDLFailureReleasesLock(t *testing.T) {
	d, mock := newMockDB(t)
	boom := errors.New("disk full")
	mock.ExpectQuery(qGetLock).WithArgs(schemaLock, int64(schemaLockTimeout)).WillReturnRows(lockRows(1))
	mock.ExpectExec(Establishments.DDL()).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(Specials.DDL()).WillReturnError(boom)
	mock.ExpectQuery(qReleaseLock).WithArgs(schemaLock).WillReturnRows(lockRows(1))

	err := d.EnsureSchema(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "schema: specials")
}

func TestEnsureSchemaReleaseFailureIsReported(t *testing.T) {
	d, mock := newMockDB(t)
	mock.ExpectQuery(qGetLock).WithArgs(schemaLock, int64(schemaLockTimeout)).WillReturnRows(lockRows(1))
	mock.ExpectExec(Establishments.DDL()).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(Specials.DDL()).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(qReleaseLock).WithArgs(schemaLock).WillReturnRows(lockRows(0))

	err := d.EnsureSchema(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "was not held")
}

func TestAcquireLockNullResult(t *testing.T) {
	d, mock := newMockDB(t)
	mock.ExpectQuery(qGetLock).WithArgs("jobs", int64(5)).WillReturnRows(lockRows(nil))

	l, err := AcquireLock(context.Background(), d.DB.DB, "jobs", 5)
	require.Error(t, err)
	assert.Nil(t, l)
	assert.Contains(t, err.Error(), "result=NULL")
}

func TestAcquireLockQueryError(t *testing.T) {
	d, mock := newMockDB(t)
	mock.ExpectQuery(qGetLock).WithArgs("jobs", int64(5)).WillReturnError(errors.New("gone away"))

	_, err := AcquireLock(context.Background(), d.DB.DB, "jobs", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `advisory lock "jobs"`)
}

func TestLockReleaseTwice(t *testing.T) {
	d, mock := newMockDB(t)
	mock.ExpectQuery(qGetLock).WithArgs("jobs", int64(5)).WillReturnRows(lockRows(1))
	mock.ExpectQuery(qReleaseLock).WithArgs("jobs").WillReturnRows(lockRows(1))

	l, err := AcquireLock(context.Background(), d.DB.DB, "jobs", 5)
	require.NoError(t, err)
	require.NoError(t, l.Release())
	assert.NoError(t, l.Release())

	var nilLock *Lock
	assert.NoError(t, nilLock.Release())
}
