package orders

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/EarneyGit/restaurent-kockraco-sub000/internal/domain"
	"github.com/EarneyGit/restaurent-kockraco-sub000/pkg/dbmetrics"
	"github.com/EarneyGit/restaurent-kockraco-sub000/pkg/psqlbuilder"
)

const uniqueViolation = "23505"

// Repository репозиторий заказов и источник объема заказов на PostgreSQL
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заказов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет заказ
// Если в контексте передана активная транзакция, использует её
// (оформление заказа выполняется в SERIALIZABLE транзакции вместе с повторной проверкой лимитов)
func (r *Repository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var idempotencyKey sql.NullString
	if order.IdempotencyKey != "" {
		idempotencyKey = sql.NullString{String: order.IdempotencyKey, Valid: true}
	}

	query, args, err := psqlbuilder.Insert("orders").
		Columns(
			"branch_id",
			"service_type",
			"total",
			"idempotency_key",
			"status",
			"placed_at",
		).
		Values(
			order.BranchID,
			string(order.ServiceType),
			order.Total,
			idempotencyKey,
			string(order.Status),
			order.PlacedAt,
		).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&order.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrDuplicateOrder
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return order, nil
}

// GetByIdempotencyKey получает заказ филиала по ключу идемпотентности
func (r *Repository) GetByIdempotencyKey(ctx context.Context, branchID int64, key string) (*domain.Order, error) {
	return r.getOne(ctx, "GetByIdempotencyKey", squirrel.Eq{"branch_id": branchID, "idempotency_key": key})
}

// GetByID получает заказ филиала по ID
func (r *Repository) GetByID(ctx context.Context, branchID, id int64) (*domain.Order, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"branch_id": branchID, "id": id})
}

// Cancel отменяет оформленный заказ; отмененный заказ перестает учитываться в объеме заказов
// Возвращает ErrOrderNotFound, если заказа нет или он уже отменен
func (r *Repository) Cancel(ctx context.Context, branchID, id int64, reason string, cancelledAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := cancelQuery(branchID, id, reason, cancelledAt).ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrOrderNotFound
	}

	return nil
}

func cancelQuery(branchID, id int64, reason string, cancelledAt time.Time) squirrel.UpdateBuilder {
	return psqlbuilder.Update("orders").
		Set("status", string(domain.OrderStatusCancelled)).
		Set("cancellation_reason", reason).
		Set("cancelled_at", cancelledAt).
		Where(squirrel.Eq{"branch_id": branchID, "id": id, "status": string(domain.OrderStatusPlaced)})
}

var orderColumns = []string{
	"id",
	"branch_id",
	"service_type",
	"total",
	"idempotency_key",
	"status",
	"placed_at",
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Eq) (*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(orderColumns...).
		From("orders").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	order, err := scanOrder(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan order: %v", ErrScanRow, op, err)
	}

	return order, nil
}

// List получает заказы филиала по фильтру, сначала новые
func (r *Repository) List(ctx context.Context, filter domain.OrderFilter) ([]*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := listQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan order: %v", ErrScanRow, err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - iterate rows: %v", ErrScanRow, err)
	}

	return orders, nil
}

func listQuery(filter domain.OrderFilter) squirrel.SelectBuilder {
	builder := psqlbuilder.Select(orderColumns...).
		From("orders").
		Where(squirrel.Eq{"branch_id": filter.BranchID})

	if filter.ServiceType != nil {
		builder = builder.Where(squirrel.Eq{"service_type": string(*filter.ServiceType)})
	}
	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"status": string(*filter.Status)})
	}
	if filter.From != nil {
		builder = builder.Where(squirrel.GtOrEq{"placed_at": *filter.From})
	}
	if filter.To != nil {
		builder = builder.Where(squirrel.Lt{"placed_at": *filter.To})
	}

	builder = builder.OrderBy("placed_at DESC", "id DESC")
	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit)
	}

	return builder
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var order domain.Order
	var serviceType, status string
	var idempotencyKey sql.NullString

	err := row.Scan(
		&order.ID,
		&order.BranchID,
		&serviceType,
		&order.Total,
		&idempotencyKey,
		&status,
		&order.PlacedAt,
	)
	if err != nil {
		return nil, err
	}

	order.ServiceType = domain.ServiceType(serviceType)
	order.Status = domain.OrderStatus(status)
	order.IdempotencyKey = idempotencyKey.String

	return &order, nil
}

// CountInWindow считает заказы филиала в полуинтервале [windowStart, windowEnd)
// Для scope=combined учитываются все типы обслуживания, иначе только указанный.
// Отмененные заказы не учитываются
func (r *Repository) CountInWindow(
	ctx context.Context,
	branchID int64,
	scope domain.RestrictionScope,
	windowStart, windowEnd time.Time,
) (int, *time.Time, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := countQuery(branchID, scope, windowStart, windowEnd).ToSql()
	if err != nil {
		return 0, nil, fmt.Errorf("%w: CountInWindow - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	var oldest sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(&count, &oldest)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: CountInWindow - scan count: %v", ErrScanRow, err)
	}

	if !oldest.Valid {
		return count, nil, nil
	}
	return count, &oldest.Time, nil
}

func countQuery(branchID int64, scope domain.RestrictionScope, windowStart, windowEnd time.Time) squirrel.SelectBuilder {
	builder := psqlbuilder.Select("COUNT(*)", "MIN(placed_at)").
		From("orders").
		Where(squirrel.Eq{"branch_id": branchID}).
		Where(squirrel.NotEq{"status": string(domain.OrderStatusCancelled)}).
		Where(squirrel.GtOrEq{"placed_at": windowStart}).
		Where(squirrel.Lt{"placed_at": windowEnd})

	if serviceType, ok := scope.ServiceType(); ok {
		builder = builder.Where(squirrel.Eq{"service_type": string(serviceType)})
	}

	return builder
}
