package serviceoffering

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

var serviceColumns = []string{
	"id",
	"stylist_id",
	"name",
	"duration_minutes",
	"price",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий услуг стилиста
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория услуг
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую услугу
func (r *Repository) Create(ctx context.Context, offering *domain.ServiceOffering) (*domain.ServiceOffering, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("service_offerings").
		Columns(
			"stylist_id",
			"name",
			"duration_minutes",
			"price",
			"is_active",
		).
		Values(
			offering.StylistID,
			offering.Name,
			offering.DurationMinutes,
			offering.Price,
			offering.IsActive,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&offering.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	offering.CreatedAt = createdAt.Time
	offering.UpdatedAt = updatedAt.Time

	return offering, nil
}

// GetByID получает услугу по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ServiceOffering, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("service_offerings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var offering domain.ServiceOffering
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&offering.ID,
		&offering.StylistID,
		&offering.Name,
		&offering.DurationMinutes,
		&offering.Price,
		&offering.IsActive,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan service: %v", ErrScanRow, err)
	}

	offering.CreatedAt = createdAt.Time
	offering.UpdatedAt = updatedAt.Time

	return &offering, nil
}

// GetActiveByStylist получает активные услуги стилиста
func (r *Repository) GetActiveByStylist(ctx context.Context, stylistID int64) ([]*domain.ServiceOffering, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("service_offerings").
		Where(squirrel.Eq{"stylist_id": stylistID, "is_active": true}).
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByStylist - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByStylist - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	offerings := make([]*domain.ServiceOffering, 0)
	for rows.Next() {
		var offering domain.ServiceOffering
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&offering.ID,
			&offering.StylistID,
			&offering.Name,
			&offering.DurationMinutes,
			&offering.Price,
			&offering.IsActive,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetActiveByStylist - scan row: %v", ErrScanRow, err)
		}

		offering.CreatedAt = createdAt.Time
		offering.UpdatedAt = updatedAt.Time

		offerings = append(offerings, &offering)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetActiveByStylist - rows error: %v", ErrScanRow, err)
	}

	return offerings, nil
}

// Deactivate мягко удаляет услугу (is_active = false)
func (r *Repository) Deactivate(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("service_offerings").
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
		return ErrServiceNotFound
	}

	return nil
}
