package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/EarneyGit/restaurent-kockraco-sub000/internal/domain"
	"github.com/EarneyGit/restaurent-kockraco-sub000/pkg/dbmetrics"
	"github.com/EarneyGit/restaurent-kockraco-sub000/pkg/psqlbuilder"
	"github.com/EarneyGit/restaurent-kockraco-sub000/pkg/types"
)

// Repository репозиторий конфигурации расписания филиалов (только чтение)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// serviceRow настройки типа обслуживания в строке branch_day_settings
type serviceRow struct {
	LeadMinutes int
	UseCustom   bool
	CustomStart types.TimeString
	CustomEnd   types.TimeString
}

// dayRow строка branch_day_settings
type dayRow struct {
	Weekday              string
	CollectionAllowed    bool
	DeliveryAllowed      bool
	TableOrderingAllowed bool
	DefaultStart         types.TimeString
	DefaultEnd           types.TimeString
	BreakStart           types.TimeString
	BreakEnd             types.TimeString
	Collection           serviceRow
	Delivery             serviceRow
	TableOrdering        serviceRow
}

// GetWeeklySchedule получает недельное расписание филиала
// Отсутствующие дни не достраиваются: их обнаружит валидация снимка
func (r *Repository) GetWeeklySchedule(ctx context.Context, branchID int64) (domain.WeeklySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"weekday",
		"collection_allowed",
		"delivery_allowed",
		"table_ordering_allowed",
		"default_start",
		"default_end",
		"break_start",
		"break_end",
		"collection_lead_minutes",
		"collection_use_custom",
		"collection_custom_start",
		"collection_custom_end",
		"delivery_lead_minutes",
		"delivery_use_custom",
		"delivery_custom_start",
		"delivery_custom_end",
		"table_ordering_lead_minutes",
		"table_ordering_use_custom",
		"table_ordering_custom_start",
		"table_ordering_custom_end",
	).
		From("branch_day_settings").
		Where(squirrel.Eq{"branch_id": branchID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWeeklySchedule - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeeklySchedule - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	schedule := make(domain.WeeklySchedule, len(domain.AllWeekdays))

	for rows.Next() {
		var row dayRow
		err := rows.Scan(
			&row.Weekday,
			&row.CollectionAllowed,
			&row.DeliveryAllowed,
			&row.TableOrderingAllowed,
			&row.DefaultStart,
			&row.DefaultEnd,
			&row.BreakStart,
			&row.BreakEnd,
			&row.Collection.LeadMinutes,
			&row.Collection.UseCustom,
			&row.Collection.CustomStart,
			&row.Collection.CustomEnd,
			&row.Delivery.LeadMinutes,
			&row.Delivery.UseCustom,
			&row.Delivery.CustomStart,
			&row.Delivery.CustomEnd,
			&row.TableOrdering.LeadMinutes,
			&row.TableOrdering.UseCustom,
			&row.TableOrdering.CustomStart,
			&row.TableOrdering.CustomEnd,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetWeeklySchedule - scan row: %v", ErrScanRow, err)
		}

		schedule[domain.Weekday(row.Weekday)] = row.toDomain()
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWeeklySchedule - rows error: %v", ErrScanRow, err)
	}

	if len(schedule) == 0 {
		return nil, ErrScheduleNotFound
	}

	return schedule, nil
}

// GetClosedDates получает список закрытых дат филиала
func (r *Repository) GetClosedDates(ctx context.Context, branchID int64) (domain.ClosedDates, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"date",
		"type",
		"end_date",
		"reason",
	).
		From("branch_closed_dates").
		Where(squirrel.Eq{"branch_id": branchID}).
		OrderBy("date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetClosedDates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetClosedDates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	closedDates := make(domain.ClosedDates, 0)

	for rows.Next() {
		var closed domain.ClosedDate
		var endDate types.Date

		if err := rows.Scan(&closed.ID, &closed.Date, &closed.Type, &endDate, &closed.Reason); err != nil {
			return nil, fmt.Errorf("%w: GetClosedDates - scan row: %v", ErrScanRow, err)
		}

		if !endDate.IsZero() {
			closed.EndDate = &endDate
		}

		closedDates = append(closedDates, closed)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetClosedDates - rows error: %v", ErrScanRow, err)
	}

	return closedDates, nil
}

// GetRestrictionConfig получает конфигурацию ограничений филиала
// Если запись отсутствует, ограничений нет (RestrictionNone)
func (r *Repository) GetRestrictionConfig(ctx context.Context, branchID int64) (domain.RestrictionConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("type").
		From("branch_restrictions").
		Where(squirrel.Eq{"branch_id": branchID}).
		ToSql()

	if err != nil {
		return domain.RestrictionConfig{}, fmt.Errorf("%w: GetRestrictionConfig - build select query: %v", ErrBuildQuery, err)
	}

	var restrictionType string
	err = executor.QueryRowContext(ctx, query, args...).Scan(&restrictionType)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.RestrictionConfig{Type: domain.RestrictionNone}, nil
	}
	if err != nil {
		return domain.RestrictionConfig{}, fmt.Errorf("%w: GetRestrictionConfig - scan type: %v", ErrScanRow, err)
	}

	config := domain.RestrictionConfig{Type: domain.RestrictionType(restrictionType)}
	if config.IsNone() {
		return config, nil
	}

	days, err := r.getRestrictionDays(ctx, executor, branchID)
	if err != nil {
		return domain.RestrictionConfig{}, err
	}
	config.Days = days

	return config, nil
}

func (r *Repository) getRestrictionDays(
	ctx context.Context,
	executor DBExecutor,
	branchID int64,
) (map[domain.RestrictionScope]map[domain.Weekday]domain.RestrictionDaySettings, error) {
	query, args, err := psqlbuilder.Select(
		"scope",
		"weekday",
		"enabled",
		"order_total",
		"window_size_minutes",
	).
		From("branch_restriction_days").
		Where(squirrel.Eq{"branch_id": branchID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getRestrictionDays - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getRestrictionDays - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	days := make(map[domain.RestrictionScope]map[domain.Weekday]domain.RestrictionDaySettings)

	for rows.Next() {
		var scope, weekday string
		var settings domain.RestrictionDaySettings

		if err := rows.Scan(&scope, &weekday, &settings.Enabled, &settings.OrderTotal, &settings.WindowSizeMinutes); err != nil {
			return nil, fmt.Errorf("%w: getRestrictionDays - scan row: %v", ErrScanRow, err)
		}

		s := domain.RestrictionScope(scope)
		if days[s] == nil {
			days[s] = make(map[domain.Weekday]domain.RestrictionDaySettings, len(domain.AllWeekdays))
		}
		days[s][domain.Weekday(weekday)] = settings
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getRestrictionDays - rows error: %v", ErrScanRow, err)
	}

	return days, nil
}

// toDomain собирает DaySettings из строки таблицы
func (row dayRow) toDomain() domain.DaySettings {
	day := domain.DaySettings{
		CollectionAllowed:    row.CollectionAllowed,
		DeliveryAllowed:      row.DeliveryAllowed,
		TableOrderingAllowed: row.TableOrderingAllowed,
		DefaultWindow:        domain.TimeWindow{Start: row.DefaultStart, End: row.DefaultEnd},
		Collection:           row.Collection.toDomain(),
		Delivery:             row.Delivery.toDomain(),
		TableOrdering:        row.TableOrdering.toDomain(),
	}

	if !row.BreakStart.IsZero() || !row.BreakEnd.IsZero() {
		day.BreakWindow = &domain.TimeWindow{Start: row.BreakStart, End: row.BreakEnd}
	}

	return day
}

func (row serviceRow) toDomain() domain.ServiceSettings {
	return domain.ServiceSettings{
		LeadTimeMinutes: row.LeadMinutes,
		UseCustomWindow: row.UseCustom,
		CustomWindow:    domain.TimeWindow{Start: row.CustomStart, End: row.CustomEnd},
	}
}
