// Package visitevents хранилище событий смены статуса визитов.
// Событие пишется в той же транзакции, что и само изменение статуса,
// и доставляется синхронизатору лидов воркером как минимум один раз
package visitevents

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
	// ErrEventNotFound возвращается, когда событие не найдено
	ErrEventNotFound = errors.New("visitevents.repository: event not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("visitevents.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("visitevents.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("visitevents.repository: failed to scan row")
)

// Repository репозиторий событий визитов
type Repository struct {
	db txmanager.DBExecutor
}

// NewRepository создает новый экземпляр репозитория событий
func NewRepository(db txmanager.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Append добавляет событие смены статуса
// Вызывается внутри транзакции, меняющей статус визита
func (r *Repository) Append(ctx context.Context, event *domain.VisitEvent) (*domain.VisitEvent, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("visit_events").
		Columns("visit_id", "before_status", "after_status").
		Values(event.VisitID, event.BeforeStatus, event.AfterStatus).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Append - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&event.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Append - execute insert: %w", ErrExecQuery, err)
	}

	event.CreatedAt = createdAt.Time
	return event, nil
}

// ListUnprocessed получает пачку необработанных событий в порядке записи
func (r *Repository) ListUnprocessed(ctx context.Context, limit int) ([]*domain.VisitEvent, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"visit_id",
		"before_status",
		"after_status",
		"created_at",
		"processed_at",
	).
		From("visit_events").
		Where(squirrel.Eq{"processed_at": nil}).
		OrderBy("id ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListUnprocessed - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListUnprocessed - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	events := make([]*domain.VisitEvent, 0)
	for rows.Next() {
		var e domain.VisitEvent
		var createdAt, processedAt sql.NullTime

		if err := rows.Scan(&e.ID, &e.VisitID, &e.BeforeStatus, &e.AfterStatus, &createdAt, &processedAt); err != nil {
			return nil, fmt.Errorf("%w: ListUnprocessed - scan row: %w", ErrScanRow, err)
		}

		e.CreatedAt = createdAt.Time
		if processedAt.Valid {
			e.ProcessedAt = &processedAt.Time
		}
		events = append(events, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListUnprocessed - rows error: %w", ErrScanRow, err)
	}

	return events, nil
}

// MarkProcessed помечает событие обработанным
func (r *Repository) MarkProcessed(ctx context.Context, id int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("visit_events").
		Set("processed_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkProcessed - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkProcessed - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkProcessed - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrEventNotFound
	}

	return nil
}
