package visit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/visitas-angelim/booking-service/internal/domain"
	"github.com/visitas-angelim/booking-service/pkg/psqlbuilder"
	"github.com/visitas-angelim/booking-service/pkg/txmanager"
)

var visitColumns = []string{
	"id",
	"parent_name",
	"parent_email",
	"parent_phone",
	"child_name",
	"child_age",
	"child_grade_of_interest",
	"unit_id",
	"slot_id",
	"visit_date_time",
	"status",
	"notes",
	"created_at",
}

// Repository репозиторий для работы с визитами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория визитов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый визит
// Визиты создаются только внутри транзакции бронирования, вместе с проверкой
// вместимости слота и upsert'ом лида
func (r *Repository) Create(ctx context.Context, visit *domain.Visit) (*domain.Visit, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("visits").
		Columns(
			"id",
			"parent_name",
			"parent_email",
			"parent_phone",
			"child_name",
			"child_age",
			"child_grade_of_interest",
			"unit_id",
			"slot_id",
			"visit_date_time",
			"status",
			"notes",
		).
		Values(
			visit.ID,
			visit.ParentName,
			visit.ParentEmail,
			visit.ParentPhone,
			visit.ChildName,
			visit.ChildAge,
			visit.ChildGradeOfInterest,
			visit.UnitID,
			visit.SlotID,
			visit.VisitDateTime,
			visit.Status,
			visit.Notes,
		).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	visit.CreatedAt = createdAt.Time

	return visit, nil
}

// GetByID получает визит по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Visit, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(visitColumns...).
		From("visits").
		Where(squirrel.Eq{"id": id})

	// Внутри транзакции блокируем строку визита: смена статуса и запись
	// события должны видеть актуальное состояние
	if txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	visit, err := scanVisit(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrVisitNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan visit: %w", ErrScanRow, err)
	}

	return visit, nil
}

// CountActiveBySlot подсчитывает не отмененные визиты слота.
// Внутри транзакции блокирует найденные строки (FOR UPDATE), чтобы
// конкурентная отмена не прошла незамеченной; фантомные вставки
// конкурентных бронирований отлавливаются блокировкой строки слота
// и уровнем изоляции SERIALIZABLE.
func (r *Repository) CountActiveBySlot(ctx context.Context, slotID string) (int, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id").
		From("visits").
		Where(squirrel.Eq{"slot_id": slotID}).
		Where(squirrel.NotEq{"status": domain.VisitCancelled})

	if txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountActiveBySlot - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CountActiveBySlot - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return 0, fmt.Errorf("%w: CountActiveBySlot - scan row: %w", ErrScanRow, err)
		}
		count++
	}

	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("%w: CountActiveBySlot - rows error: %w", ErrScanRow, err)
	}

	return count, nil
}

// ListWithFilter получает визиты с гибкой фильтрацией по юниту, статусу и периоду
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.VisitsFilter) ([]*domain.Visit, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(visitColumns...).
		From("visits")

	if filter.UnitID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"unit_id": *filter.UnitID})
	}
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"visit_date_time": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"visit_date_time": *filter.To})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": domain.VisitCancelled})
	}

	query, args, err := selectBuilder.
		OrderBy("visit_date_time ASC, created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanVisits(rows)
}

// ListForReminder получает визиты, попадающие в окно напоминаний:
// visit_date_time в [from, to), статус scheduled или confirmed
func (r *Repository) ListForReminder(ctx context.Context, from, to time.Time) ([]*domain.Visit, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(visitColumns...).
		From("visits").
		Where(squirrel.GtOrEq{"visit_date_time": from}).
		Where(squirrel.Lt{"visit_date_time": to}).
		Where(squirrel.Eq{"status": []domain.VisitStatus{domain.VisitScheduled, domain.VisitConfirmed}}).
		OrderBy("visit_date_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListForReminder - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListForReminder - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanVisits(rows)
}

// UpdateStatus обновляет статус визита
// Визиты никогда не удаляются; статус - единственное изменяемое поле
func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.VisitStatus) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("visits").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrVisitNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanVisit(row rowScanner) (*domain.Visit, error) {
	var visit domain.Visit
	var createdAt sql.NullTime

	err := row.Scan(
		&visit.ID,
		&visit.ParentName,
		&visit.ParentEmail,
		&visit.ParentPhone,
		&visit.ChildName,
		&visit.ChildAge,
		&visit.ChildGradeOfInterest,
		&visit.UnitID,
		&visit.SlotID,
		&visit.VisitDateTime,
		&visit.Status,
		&visit.Notes,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	visit.CreatedAt = createdAt.Time
	return &visit, nil
}

func scanVisits(rows *sql.Rows) ([]*domain.Visit, error) {
	visits := make([]*domain.Visit, 0)

	for rows.Next() {
		visit, err := scanVisit(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanVisits - scan row: %w", ErrScanRow, err)
		}
		visits = append(visits, visit)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanVisits - rows error: %w", ErrScanRow, err)
	}

	return visits, nil
}
