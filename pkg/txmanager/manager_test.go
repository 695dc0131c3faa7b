package txmanager

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsRetryable(t *testing.T) {
	errExecQuery := errors.New("visit.storage: failed to execute query")
	errInternal := errors.New("book_visit.usecase: internal error")

	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"serialization failure", &pq.Error{Code: "40001"}, true},
		{"deadlock detected", &pq.Error{Code: "40P01"}, true},
		{"wrapped serialization failure", fmt.Errorf("query: %w", &pq.Error{Code: "40001"}), true},
		// Обертки в стиле репозитория и use case не должны рвать цепочку:
		// конфликт, поднятый на statement, обязан оставаться повторяемым
		{
			"repository-wrapped serialization failure",
			fmt.Errorf("%w: CountActiveBySlot - execute query: %w", errExecQuery, &pq.Error{Code: "40001"}),
			true,
		},
		{
			"usecase-wrapped serialization failure",
			fmt.Errorf("%w: failed to count visits: %w", errInternal,
				fmt.Errorf("%w: CountActiveBySlot - execute query: %w", errExecQuery, &pq.Error{Code: "40001"})),
			true,
		},
		{"unique violation is not transient", &pq.Error{Code: "23505"}, false},
		{"plain error", errors.New("connection refused"), false},
		{"nil", nil, false},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryable(tt.err))
		})
	}
}

// Заглушка database/sql драйвера: BeginTx/Commit/Rollback всегда успешны,
// чтобы прогнать настоящий retry-цикл DoSerializable без PostgreSQL
type stubDriver struct{}

func (stubDriver) Open(string) (driver.Conn, error) { return stubConn{}, nil }

type stubConn struct{}

func (stubConn) Prepare(string) (driver.Stmt, error) { return nil, errors.New("not implemented") }
func (stubConn) Close() error                        { return nil }
func (stubConn) Begin() (driver.Tx, error)           { return stubTx{}, nil }

func (stubConn) BeginTx(context.Context, driver.TxOptions) (driver.Tx, error) {
	return stubTx{}, nil
}

type stubTx struct{}

func (stubTx) Commit() error   { return nil }
func (stubTx) Rollback() error { return nil }

func init() {
	sql.Register("txmanager-stub", stubDriver{})
}

func newStubManager(t *testing.T) *TransactionManager {
	t.Helper()
	db, err := sql.Open("txmanager-stub", "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewTransactionManager(db)
}

// Конфликт сериализации, поднятый на statement и завернутый по пути
// репозиторий -> use case, должен повторяться так же, как конфликт на коммите
func TestDoSerializable_RetriesStatementLevelConflict(t *testing.T) {
	errExecQuery := errors.New("visit.storage: failed to execute query")
	errInternal := errors.New("book_visit.usecase: internal error")

	wrappedConflict := fmt.Errorf("%w: failed to count visits: %w", errInternal,
		fmt.Errorf("%w: CountActiveBySlot - execute query: %w", errExecQuery, &pq.Error{Code: "40001"}))

	mgr := newStubManager(t)

	attempts := 0
	err := mgr.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		if attempts < 2 {
			return wrappedConflict
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}

func TestDoSerializable_ExhaustsRetriesOnPersistentConflict(t *testing.T) {
	mgr := newStubManager(t)

	attempts := 0
	err := mgr.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		return fmt.Errorf("count visits: %w", &pq.Error{Code: "40001"})
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRetriesExhausted)
	assert.Equal(t, defaultMaxAttempts, attempts)
}

func TestDoSerializable_DoesNotRetryNonTransientError(t *testing.T) {
	mgr := newStubManager(t)
	boom := errors.New("constraint violated")

	attempts := 0
	err := mgr.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		return boom
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, attempts)
}
