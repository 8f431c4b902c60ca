package postgresql

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactor_Commit(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	err = NewTransactor(mock).WithinTransaction(context.Background(), func(ctx context.Context) error {
		_, ok := GetQuerier(ctx, mock).(pgx.Tx)
		assert.True(t, ok, "transaction not injected into context")
		return nil
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactor_RollbackOnError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	want := errors.New("usecase error")
	err = NewTransactor(mock).WithinTransaction(context.Background(), func(ctx context.Context) error {
		return want
	})

	assert.ErrorIs(t, err, want)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactor_RollbackFailureIsJoined(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	rbErr := errors.New("connection lost")
	mock.ExpectBegin()
	mock.ExpectRollback().WillReturnError(rbErr)

	want := errors.New("usecase error")
	err = NewTransactor(mock).WithinTransaction(context.Background(), func(ctx context.Context) error {
		return want
	})

	assert.ErrorIs(t, err, want)
	assert.ErrorIs(t, err, rbErr)
}

func TestTransactor_NestedReuse(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	tr := NewTransactor(mock)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err = tr.WithinTransaction(context.Background(), func(ctx context.Context) error {
		outer := GetQuerier(ctx, mock)
		return tr.WithinTransaction(ctx, func(inner context.Context) error {
			assert.Same(t, outer, GetQuerier(inner, mock))
			return nil
		})
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactor_BeginFailure(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

	called := false
	err = NewTransactor(mock).WithinTransaction(context.Background(), func(ctx context.Context) error {
		called = true
		return nil
	})

	assert.Error(t, err)
	assert.False(t, called)
}

func TestGetQuerier_FallsBackToPool(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	assert.Equal(t, mock, GetQuerier(context.Background(), mock))
}
