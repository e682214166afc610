package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/glowbook/scheduling-service/internal/domain"
	"github.com/glowbook/scheduling-service/pkg/dbmetrics"
	"github.com/glowbook/scheduling-service/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"id",
	"stylist_id",
	"client_id",
	"service_id",
	"booking_date",
	"start_time",
	"duration_minutes",
	"status",
	"service_name",
	"service_price",
	"client_name",
	"notes",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция, использует её —
// создание с проверкой доступности слота обязано выполняться в
// сериализуемой транзакции, чтобы исключить двойное бронирование.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"stylist_id",
			"client_id",
			"service_id",
			"booking_date",
			"start_time",
			"duration_minutes",
			"status",
			"service_name",
			"service_price",
			"client_name",
			"notes",
		).
		Values(
			booking.StylistID,
			booking.ClientID,
			booking.ServiceID,
			booking.BookingDate,
			booking.StartTime,
			booking.DurationMinutes,
			booking.Status,
			booking.ServiceName,
			booking.ServicePrice,
			booking.ClientName,
			booking.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := r.scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByClientID получает список бронирований клиента
// Опционально фильтрует по статусу
func (r *Repository) GetByClientID(ctx context.Context, clientID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"client_id": clientID}).
		OrderBy("booking_date DESC, start_time DESC")

	// Фильтрация по статусу, если указан
	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClientID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClientID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetByStylistWithFilter получает бронирования стилиста с гибкой фильтрацией.
// Поддерживает фильтрацию по периоду, статусу и включению неактивных бронирований.
//
// Внутри транзакции при запросе на конкретную дату добавляет FOR UPDATE:
// это блокировка журнала бронирований стилиста на дату, критическая секция
// сценария создания бронирования.
func (r *Repository) GetByStylistWithFilter(ctx context.Context, filter domain.StylistBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"stylist_id": filter.StylistID})

	// Фильтрация по периоду
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": *filter.EndDate})
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		// Если не указан конкретный статус и не нужны неактивные - исключаем их
		inactiveStatusStrings := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactiveStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactiveStatusStrings})
	}

	singleDate := filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate)

	// Для конкретной даты сортируем по времени начала, для периода - сначала новые
	if singleDate {
		selectBuilder = selectBuilder.OrderBy("start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("booking_date DESC, start_time DESC")
	}

	// Блокировка строк в транзакции создания бронирования
	if dbmetrics.IsInTransaction(ctx) && singleDate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStylistWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStylistWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// UpdateStatus переводит бронирование из статуса from в статус to.
// Обновление выполняется по условию WHERE status = from: если статус
// успел измениться после чтения, возвращается ErrStatusConflict
// и перехода (с его побочными эффектами) не происходит.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return r.resolveMissedUpdate(ctx, executor, id)
	}

	return nil
}

// Cancel отменяет бронирование с указанием причины.
// Условие WHERE status IN (pending, confirmed) гарантирует, что отмена
// не перепишет конкурентно наступивший терминальный статус.
func (r *Repository) Cancel(ctx context.Context, id int64, status domain.BookingStatus, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	cancellable := []string{string(domain.StatusPending), string(domain.StatusConfirmed)}

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": cancellable}).
		ToSql()

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
		return r.resolveMissedUpdate(ctx, executor, id)
	}

	return nil
}

// resolveMissedUpdate различает причины несработавшего условного UPDATE:
// бронирования нет вовсе либо его статус изменился между чтением и записью
func (r *Repository) resolveMissedUpdate(ctx context.Context, executor dbmetrics.DBExecutor, id int64) error {
	query, args, err := psqlbuilder.Select("1").
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: resolveMissedUpdate - build select query: %v", ErrBuildQuery, err)
	}

	var exists int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		if err == sql.ErrNoRows {
			return ErrBookingNotFound
		}
		return fmt.Errorf("%w: resolveMissedUpdate - execute select: %v", ErrExecQuery, err)
	}

	return ErrStatusConflict
}

// GetIDsDueForStart возвращает ID подтверждённых бронирований,
// чьё время начала уже наступило. Используется фоновой задачей
// перевода бронирований в in_progress.
func (r *Repository) GetIDsDueForStart(ctx context.Context, now time.Time) ([]int64, error) {
	return r.getDueIDs(ctx, now,
		squirrel.Eq{"status": domain.StatusConfirmed},
		squirrel.Expr("(booking_date < ?::date OR (booking_date = ?::date AND start_time <= ?::time))",
			now.Format(domain.DateFormat), now.Format(domain.DateFormat), now.Format(domain.TimeFormat)),
	)
}

// GetIDsDueForCompletion возвращает ID бронирований в работе,
// чьё время окончания (start_time + duration) уже прошло
func (r *Repository) GetIDsDueForCompletion(ctx context.Context, now time.Time) ([]int64, error) {
	return r.getDueIDs(ctx, now,
		squirrel.Eq{"status": domain.StatusInProgress},
		squirrel.Expr("(booking_date < ?::date OR (booking_date = ?::date AND (start_time + make_interval(mins => duration_minutes))::time <= ?::time))",
			now.Format(domain.DateFormat), now.Format(domain.DateFormat), now.Format(domain.TimeFormat)),
	)
}

func (r *Repository) getDueIDs(ctx context.Context, now time.Time, conds ...squirrel.Sqlizer) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id").
		From("bookings").
		OrderBy("id ASC")
	for _, cond := range conds {
		selectBuilder = selectBuilder.Where(cond)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getDueIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getDueIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: getDueIDs - scan id: %v", ErrScanRow, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getDueIDs - rows error: %v", ErrScanRow, err)
	}

	return ids, nil
}

// scanBooking сканирует одну строку результата в бронирование
func (r *Repository) scanBooking(row *sql.Row) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.StylistID,
		&booking.ClientID,
		&booking.ServiceID,
		&booking.BookingDate,
		&booking.StartTime,
		&booking.DurationMinutes,
		&booking.Status,
		&booking.ServiceName,
		&booking.ServicePrice,
		&booking.ClientName,
		&booking.Notes,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&booking.ID,
			&booking.StylistID,
			&booking.ClientID,
			&booking.ServiceID,
			&booking.BookingDate,
			&booking.StartTime,
			&booking.DurationMinutes,
			&booking.Status,
			&booking.ServiceName,
			&booking.ServicePrice,
			&booking.ClientName,
			&booking.Notes,
			&booking.CancellationReason,
			&booking.CancelledAt,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		booking.CreatedAt = createdAt.Time
		booking.UpdatedAt = updatedAt.Time

		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
