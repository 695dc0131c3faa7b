// Package outbox хранилище transactional outbox для писем.
// Письмо-подтверждение кладется сюда в той же транзакции, что и бронирование:
// падение процесса между коммитом и отправкой не теряет письмо
package outbox

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/visitas-angelim/booking-service/internal/domain"
	"github.com/visitas-angelim/booking-service/pkg/psqlbuilder"
	"github.com/visitas-angelim/booking-service/pkg/txmanager"
)

var (
	// ErrEmailNotFound возвращается, когда запись outbox не найдена
	ErrEmailNotFound = errors.New("outbox.repository: email not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("outbox.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("outbox.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("outbox.repository: failed to scan row")
)

var emailColumns = []string{
	"id",
	"kind",
	"visit_id",
	"recipient",
	"parent_name",
	"child_name",
	"unit_name",
	"visit_date_time",
	"slot_start",
	"slot_end",
	"status",
	"attempts",
	"last_error",
	"created_at",
	"sent_at",
}

// Repository репозиторий email outbox
type Repository struct {
	db txmanager.DBExecutor
}

// NewRepository создает новый экземпляр репозитория outbox
func NewRepository(db txmanager.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Enqueue добавляет письмо в outbox
// Вызывается внутри транзакции бронирования через executor из контекста
func (r *Repository) Enqueue(ctx context.Context, email *domain.OutboxEmail) (*domain.OutboxEmail, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("email_outbox").
		Columns(
			"kind",
			"visit_id",
			"recipient",
			"parent_name",
			"child_name",
			"unit_name",
			"visit_date_time",
			"slot_start",
			"slot_end",
			"status",
		).
		Values(
			email.Kind,
			email.VisitID,
			email.Recipient,
			email.ParentName,
			email.ChildName,
			email.UnitName,
			email.VisitDateTime,
			email.SlotStart,
			email.SlotEnd,
			domain.EmailPending,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Enqueue - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&email.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Enqueue - execute insert: %w", ErrExecQuery, err)
	}

	email.Status = domain.EmailPending
	email.CreatedAt = createdAt.Time

	return email, nil
}

// ListPending получает пачку неотправленных писем в порядке постановки
func (r *Repository) ListPending(ctx context.Context, limit int) ([]*domain.OutboxEmail, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(emailColumns...).
		From("email_outbox").
		Where(squirrel.Eq{"status": domain.EmailPending}).
		OrderBy("created_at ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListPending - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListPending - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	emails := make([]*domain.OutboxEmail, 0)
	for rows.Next() {
		var e domain.OutboxEmail
		var createdAt sql.NullTime
		var sentAt sql.NullTime

		err := rows.Scan(
			&e.ID,
			&e.Kind,
			&e.VisitID,
			&e.Recipient,
			&e.ParentName,
			&e.ChildName,
			&e.UnitName,
			&e.VisitDateTime,
			&e.SlotStart,
			&e.SlotEnd,
			&e.Status,
			&e.Attempts,
			&e.LastError,
			&createdAt,
			&sentAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListPending - scan row: %w", ErrScanRow, err)
		}

		e.CreatedAt = createdAt.Time
		if sentAt.Valid {
			e.SentAt = &sentAt.Time
		}
		emails = append(emails, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListPending - rows error: %w", ErrScanRow, err)
	}

	return emails, nil
}

// MarkSent помечает письмо отправленным
func (r *Repository) MarkSent(ctx context.Context, id int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("email_outbox").
		Set("status", domain.EmailSent).
		Set("sent_at", squirrel.Expr("now()")).
		Set("attempts", squirrel.Expr("attempts + 1")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkSent - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "MarkSent")
}

// MarkFailed фиксирует неудачную попытку отправки
// После maxAttempts попыток письмо переводится в failed и больше не берется в работу
func (r *Repository) MarkFailed(ctx context.Context, id int64, sendErr string, maxAttempts int) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("email_outbox").
		Set("attempts", squirrel.Expr("attempts + 1")).
		Set("last_error", sendErr).
		Set("status", squirrel.Expr(
			"CASE WHEN attempts + 1 >= ? THEN ? ELSE ? END",
			maxAttempts, domain.EmailFailed, domain.EmailPending,
		)).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkFailed - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "MarkFailed")
}

func (r *Repository) execExpectingRow(ctx context.Context, executor txmanager.DBExecutor, query string, args []interface{}, op string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrEmailNotFound
	}

	return nil
}
