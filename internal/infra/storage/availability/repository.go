package availability

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/glowbook/scheduling-service/internal/domain"
	"github.com/glowbook/scheduling-service/pkg/dbmetrics"
	"github.com/glowbook/scheduling-service/pkg/psqlbuilder"
)

// Переиспользуем интерфейс исполнителя запросов из dbmetrics
type DBExecutor = dbmetrics.DBExecutor

var ruleColumns = []string{
	"id",
	"stylist_id",
	"day_of_week",
	"start_time",
	"end_time",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий правил еженедельной доступности стилиста
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория правил доступности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое правило доступности
func (r *Repository) Create(ctx context.Context, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("availability_rules").
		Columns(
			"stylist_id",
			"day_of_week",
			"start_time",
			"end_time",
			"is_active",
		).
		Values(
			rule.StylistID,
			rule.DayOfWeek,
			rule.StartTime,
			rule.EndTime,
			rule.IsActive,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&rule.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time

	return rule, nil
}

// GetByID получает правило по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(ruleColumns...).
		From("availability_rules").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var rule domain.AvailabilityRule
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&rule.ID,
		&rule.StylistID,
		&rule.DayOfWeek,
		&rule.StartTime,
		&rule.EndTime,
		&rule.IsActive,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrRuleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan rule: %v", ErrScanRow, err)
	}

	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time

	return &rule, nil
}

// GetActiveByStylist получает активные правила стилиста,
// упорядоченные по дню недели и времени начала
func (r *Repository) GetActiveByStylist(ctx context.Context, stylistID int64) ([]*domain.AvailabilityRule, error) {
	return r.getActive(ctx, squirrel.Eq{"stylist_id": stylistID})
}

// GetActiveByStylistAndDay получает активные правила стилиста на день недели
func (r *Repository) GetActiveByStylistAndDay(ctx context.Context, stylistID int64, dayOfWeek int) ([]*domain.AvailabilityRule, error) {
	return r.getActive(ctx, squirrel.Eq{"stylist_id": stylistID, "day_of_week": dayOfWeek})
}

func (r *Repository) getActive(ctx context.Context, where squirrel.Eq) ([]*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(ruleColumns...).
		From("availability_rules").
		Where(where).
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("day_of_week ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]*domain.AvailabilityRule, 0)
	for rows.Next() {
		var rule domain.AvailabilityRule
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&rule.ID,
			&rule.StylistID,
			&rule.DayOfWeek,
			&rule.StartTime,
			&rule.EndTime,
			&rule.IsActive,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: getActive - scan row: %v", ErrScanRow, err)
		}

		rule.CreatedAt = createdAt.Time
		rule.UpdatedAt = updatedAt.Time

		rules = append(rules, &rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getActive - rows error: %v", ErrScanRow, err)
	}

	return rules, nil
}

// Deactivate мягко удаляет правило (is_active = false).
// Повторная деактивация уже неактивного правила допустима,
// существующие бронирования не затрагиваются.
func (r *Repository) Deactivate(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("availability_rules").
		Set("is_active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Deactivate - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Deactivate - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Deactivate - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrRuleNotFound
	}

	return nil
}
