package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionManager_Commit(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	tm := NewTransactionManagerAdapter(db)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := tm.WithTransaction(context.Background(), func(ctx context.Context) error {
		exec := GetExecutor(ctx, db)
		_, isTx := exec.(*sqlx.Tx)
		assert.True(t, isTx, "executor inside a transaction should be the tx")
		return nil
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionManager_RollbackOnError(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	tm := NewTransactionManagerAdapter(db)
	wantErr := errors.New("quota exceeded")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := tm.WithTransaction(context.Background(), func(ctx context.Context) error { return wantErr })
	assert.ErrorIs(t, err, wantErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionManager_RollbackOnPanic(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	tm := NewTransactionManagerAdapter(db)

	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.Panics(t, func() {
		_ = tm.WithTransaction(context.Background(), func(ctx context.Context) error { panic("boom") })
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionManager_NestedReusesOuter(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	tm := NewTransactionManagerAdapter(db)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := tm.WithTransaction(context.Background(), func(ctx context.Context) error {
		return tm.WithTransaction(ctx, func(inner context.Context) error {
			assert.Same(t, ctx.Value(TransactionContextKey), inner.Value(TransactionContextKey))
			return nil
		})
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetExecutor_WithoutTransaction(t *testing.T) {
	db, _ := setupTestDB(t)
	defer db.Close()
	assert.Equal(t, DBTX(db), GetExecutor(context.Background(), db))
}
