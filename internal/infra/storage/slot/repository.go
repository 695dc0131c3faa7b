package slot

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/visitas-angelim/booking-service/internal/domain"
	"github.com/visitas-angelim/booking-service/pkg/psqlbuilder"
	"github.com/visitas-angelim/booking-service/pkg/txmanager"
)

var slotColumns = []string{
	"id",
	"unit_id",
	"start_time",
	"end_time",
	"capacity",
	"is_bookable",
	"tag",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы со слотами доступности
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый слот
func (r *Repository) Create(ctx context.Context, slot *domain.AvailabilitySlot) (*domain.AvailabilitySlot, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("availability_slots").
		Columns(
			"id",
			"unit_id",
			"start_time",
			"end_time",
			"capacity",
			"is_bookable",
			"tag",
		).
		Values(
			slot.ID,
			slot.UnitID,
			slot.StartTime,
			slot.EndTime,
			slot.Capacity,
			slot.IsBookable,
			slot.Tag,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return slot, nil
}

// GetByID получает слот по ID
// Внутри транзакции бронирования блокирует строку слота (FOR UPDATE):
// конкурентные бронирования одного слота сериализуются на этой блокировке,
// что вместе с подсчетом визитов в том же снапшоте не дает превысить capacity
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.AvailabilitySlot, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("availability_slots").
		Where(squirrel.Eq{"id": id})

	if txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %w", ErrScanRow, err)
	}

	return slot, nil
}

// ListWithBookedCount получает слоты с посчитанным числом активных визитов.
// Счетчик выводится из таблицы visits одним запросом, отдельного счетчика
// в слоте нет - ему нечему расходиться с фактом
func (r *Repository) ListWithBookedCount(ctx context.Context, filter domain.SlotsFilter) ([]*domain.SlotAvailability, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"s.id",
		"s.unit_id",
		"s.start_time",
		"s.end_time",
		"s.capacity",
		"s.is_bookable",
		"s.tag",
		"s.created_at",
		"s.updated_at",
		fmt.Sprintf("count(v.id) FILTER (WHERE v.status <> '%s') AS booked_count", domain.VisitCancelled),
	).
		From("availability_slots s").
		LeftJoin("visits v ON v.slot_id = s.id").
		GroupBy("s.id")

	if filter.UnitID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"s.unit_id": *filter.UnitID})
	}
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"s.start_time": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"s.start_time": *filter.To})
	}
	if filter.OnlyBookable {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"s.is_bookable": true})
	}

	query, args, err := selectBuilder.
		OrderBy("s.start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithBookedCount - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithBookedCount - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.SlotAvailability, 0)
	for rows.Next() {
		var item domain.SlotAvailability
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&item.Slot.ID,
			&item.Slot.UnitID,
			&item.Slot.StartTime,
			&item.Slot.EndTime,
			&item.Slot.Capacity,
			&item.Slot.IsBookable,
			&item.Slot.Tag,
			&createdAt,
			&updatedAt,
			&item.BookedCount,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListWithBookedCount - scan row: %w", ErrScanRow, err)
		}

		item.Slot.CreatedAt = createdAt.Time
		item.Slot.UpdatedAt = updatedAt.Time
		result = append(result, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListWithBookedCount - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}

// Update обновляет редактируемые поля слота
// Движок бронирования слоты не меняет; сюда ходят только операторские ручки
func (r *Repository) Update(ctx context.Context, slot *domain.AvailabilitySlot) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("availability_slots").
		Set("start_time", slot.StartTime).
		Set("end_time", slot.EndTime).
		Set("capacity", slot.Capacity).
		Set("is_bookable", slot.IsBookable).
		Set("tag", slot.Tag).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": slot.ID}).
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
		return ErrSlotNotFound
	}

	return nil
}

// Delete удаляет слот
// Вызывающий код обязан убедиться, что на слот не ссылаются активные визиты
func (r *Repository) Delete(ctx context.Context, id string) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("availability_slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

func scanSlot(row *sql.Row) (*domain.AvailabilitySlot, error) {
	var slot domain.AvailabilitySlot
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&slot.ID,
		&slot.UnitID,
		&slot.StartTime,
		&slot.EndTime,
		&slot.Capacity,
		&slot.IsBookable,
		&slot.Tag,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time
	return &slot, nil
}
