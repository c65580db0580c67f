package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/heritage-booking/internal/domain"
	"github.com/m04kA/heritage-booking/pkg/dbmetrics"
	"github.com/m04kA/heritage-booking/pkg/psqlbuilder"
)

const foreignKeyViolation = "23503"

var bookingColumns = []string{
	"id",
	"site_id",
	"site_name",
	"visitor_name",
	"booking_date",
	"start_time",
	"created_at",
}

// Repository репозиторий для работы с бронированиями в PostgreSQL
type Repository struct {
	db    DBExecutor
	newID UUIDGenerator
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db, newID: uuid.NewString}
}

// LockSlot берет advisory-блокировку слота до конца текущей транзакции.
// Конкурентные допуски на тот же слот ждут commit/rollback, другие слоты не блокируются
func (r *Repository) LockSlot(ctx context.Context, key domain.SlotKey) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return ErrNoTransaction
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select().
		Column(squirrel.Expr("pg_advisory_xact_lock(hashtextextended(?, 0))", key.String())).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: LockSlot - build lock query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: LockSlot - acquire advisory lock: %v", ErrExecQuery, err)
	}

	return nil
}

// CountBySlot считает бронирования с точным совпадением (площадка, дата, время)
func (r *Repository) CountBySlot(ctx context.Context, key domain.SlotKey) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{
			"site_id":      key.SiteID,
			"booking_date": key.Date,
			"start_time":   key.Time,
		}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountBySlot - build count query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountBySlot - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// Create сохраняет бронирование, генерируя ID. Время создания выставляет вызывающий
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if !isUUID(booking.SiteID) {
		return nil, ErrSiteNotFound
	}
	if booking.ID == "" {
		booking.ID = r.newID()
	}

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(bookingColumns...).
		Values(
			booking.ID,
			booking.SiteID,
			booking.SiteName,
			booking.VisitorName,
			booking.Date,
			booking.Time,
			booking.CreatedAt,
		).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation {
			return nil, ErrSiteNotFound
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	if !isUUID(id) {
		return nil, ErrBookingNotFound
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var booking domain.Booking
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&booking.SiteID,
		&booking.SiteName,
		&booking.VisitorName,
		&booking.Date,
		&booking.Time,
		&booking.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return &booking, nil
}

// ListBySiteInRange возвращает бронирования площадки с датой в [dateStart, dateEnd].
// Даты хранятся строками YYYY-MM-DD, поэтому сравнение строковое
func (r *Repository) ListBySiteInRange(ctx context.Context, siteID, dateStart, dateEnd string) ([]*domain.Booking, error) {
	if !isUUID(siteID) {
		return []*domain.Booking{}, nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"site_id": siteID}).
		Where(squirrel.GtOrEq{"booking_date": dateStart}).
		Where(squirrel.LtOrEq{"booking_date": dateEnd}).
		OrderBy("booking_date ASC, start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBySiteInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBySiteInRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// List возвращает все бронирования, сначала новые
func (r *Repository) List(ctx context.Context) ([]*domain.Booking, error) {
	return r.ListWithFilter(ctx, domain.BookingsFilter{})
}

// ListWithFilter возвращает бронирования с необязательными фильтрами по площадке и дате
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		OrderBy("created_at DESC")

	if filter.SiteID != nil {
		if !isUUID(*filter.SiteID) {
			return []*domain.Booking{}, nil
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"site_id": *filter.SiteID})
	}
	if filter.SiteName != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"site_name": *filter.SiteName})
	}
	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"booking_date": *filter.Date})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// Delete удаляет бронирование
func (r *Repository) Delete(ctx context.Context, id string) error {
	if !isUUID(id) {
		return ErrBookingNotFound
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		err := rows.Scan(
			&booking.ID,
			&booking.SiteID,
			&booking.SiteName,
			&booking.VisitorName,
			&booking.Date,
			&booking.Time,
			&booking.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// isUUID отсекает идентификаторы, которые PostgreSQL не приведет к UUID
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
