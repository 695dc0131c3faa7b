package lead

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/visitas-angelim/booking-service/internal/domain"
	"github.com/visitas-angelim/booking-service/pkg/psqlbuilder"
	"github.com/visitas-angelim/booking-service/pkg/txmanager"
)

const pqUniqueViolation = "23505"

var leadColumns = []string{
	"id",
	"parent_name",
	"parent_email",
	"parent_phone",
	"child_name",
	"child_age",
	"child_grade_of_interest",
	"source",
	"status",
	"last_contact_date",
	"next_follow_up_date",
	"notes",
	"visit_id",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с лидами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория лидов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый лид
// Уникальность parent_email обеспечивается constraint'ом в БД
func (r *Repository) Create(ctx context.Context, lead *domain.Lead) (*domain.Lead, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("leads").
		Columns(
			"id",
			"parent_name",
			"parent_email",
			"parent_phone",
			"child_name",
			"child_age",
			"child_grade_of_interest",
			"source",
			"status",
			"last_contact_date",
			"next_follow_up_date",
			"notes",
			"visit_id",
		).
		Values(
			lead.ID,
			lead.ParentName,
			lead.ParentEmail,
			lead.ParentPhone,
			lead.ChildName,
			lead.ChildAge,
			lead.ChildGradeOfInterest,
			lead.Source,
			lead.Status,
			lead.LastContactDate,
			lead.NextFollowUpDate,
			lead.Notes,
			lead.VisitID,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	lead.CreatedAt = createdAt.Time
	lead.UpdatedAt = updatedAt.Time

	return lead, nil
}

// GetByID получает лид по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Lead, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByEmail получает лид по email родителя (натуральный ключ дедупликации)
func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.Lead, error) {
	return r.getOne(ctx, squirrel.Eq{"parent_email": email})
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq) (*domain.Lead, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(leadColumns...).
		From("leads").
		Where(where)

	// Внутри транзакции бронирования лид блокируется на чтении,
	// чтобы upsert не потерял конкурентное обновление
	if txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - build select query: %v", ErrBuildQuery, err)
	}

	lead, err := scanLead(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrLeadNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - scan lead: %w", ErrScanRow, err)
	}

	return lead, nil
}

// LinkVisit переводит лид в visit_scheduled и привязывает визит.
// Прежняя привязка перезаписывается: новое бронирование той же семьи
// вытесняет старое
func (r *Repository) LinkVisit(ctx context.Context, leadID, visitID string) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("leads").
		Set("status", domain.LeadVisitScheduled).
		Set("visit_id", visitID).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": leadID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: LinkVisit - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: LinkVisit - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: LinkVisit - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrLeadNotFound
	}

	return nil
}

// UnlinkVisit снимает привязку визита и возвращает лид в contacted.
// Условие WHERE visit_id = $1 делает обновление условным: если свежая
// бронь уже перезаписала привязку, отмена старого визита её не затирает.
// Возвращает число затронутых строк (0 или 1 по инварианту)
func (r *Repository) UnlinkVisit(ctx context.Context, visitID string) (int64, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("leads").
		Set("status", domain.LeadContacted).
		Set("visit_id", nil).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"visit_id": visitID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: UnlinkVisit - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: UnlinkVisit - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: UnlinkVisit - get rows affected: %w", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// Update обновляет операторские поля лида
func (r *Repository) Update(ctx context.Context, lead *domain.Lead) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("leads").
		Set("parent_name", lead.ParentName).
		Set("parent_phone", lead.ParentPhone).
		Set("child_name", lead.ChildName).
		Set("child_age", lead.ChildAge).
		Set("child_grade_of_interest", lead.ChildGradeOfInterest).
		Set("source", lead.Source).
		Set("status", lead.Status).
		Set("last_contact_date", lead.LastContactDate).
		Set("next_follow_up_date", lead.NextFollowUpDate).
		Set("notes", lead.Notes).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": lead.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrLeadNotFound
	}

	return nil
}

// ListWithFilter получает лиды воронки с фильтрацией по статусу и пагинацией
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.LeadsFilter) ([]*domain.Lead, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(leadColumns...).
		From("leads")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		selectBuilder = selectBuilder.Offset(uint64(filter.Offset))
	}

	query, args, err := selectBuilder.
		OrderBy("updated_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	leads := make([]*domain.Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListWithFilter - scan row: %w", ErrScanRow, err)
		}
		leads = append(leads, lead)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - rows error: %w", ErrScanRow, err)
	}

	return leads, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLead(row rowScanner) (*domain.Lead, error) {
	var lead domain.Lead
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&lead.ID,
		&lead.ParentName,
		&lead.ParentEmail,
		&lead.ParentPhone,
		&lead.ChildName,
		&lead.ChildAge,
		&lead.ChildGradeOfInterest,
		&lead.Source,
		&lead.Status,
		&lead.LastContactDate,
		&lead.NextFollowUpDate,
		&lead.Notes,
		&lead.VisitID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	lead.CreatedAt = createdAt.Time
	lead.UpdatedAt = updatedAt.Time
	return &lead, nil
}
