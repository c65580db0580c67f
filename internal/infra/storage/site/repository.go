package site

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

const uniqueViolation = "23505"

var siteColumns = []string{
	"id",
	"name",
	"description",
	"image_url",
	"time_slots",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с площадками в PostgreSQL
type Repository struct {
	db    DBExecutor
	newID UUIDGenerator
}

// NewRepository создает новый экземпляр репозитория площадок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db, newID: uuid.NewString}
}

// Create создает площадку. CreatedAt/UpdatedAt выставляет вызывающий
func (r *Repository) Create(ctx context.Context, site *domain.Site) (*domain.Site, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	slots, err := encodeSlots(site.TimeSlots)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - encode slots: %v", ErrEncodeSlots, err)
	}

	if site.ID == "" {
		site.ID = r.newID()
	}

	query, args, err := psqlbuilder.Insert("sites").
		Columns(siteColumns...).
		Values(
			site.ID,
			site.Name,
			site.Description,
			site.ImageURL,
			string(slots),
			site.CreatedAt,
			site.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSiteNameTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return site, nil
}

// Update перезаписывает поля площадки, кроме ID и CreatedAt
func (r *Repository) Update(ctx context.Context, site *domain.Site) (*domain.Site, error) {
	if !isUUID(site.ID) {
		return nil, ErrSiteNotFound
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	slots, err := encodeSlots(site.TimeSlots)
	if err != nil {
		return nil, fmt.Errorf("%w: Update - encode slots: %v", ErrEncodeSlots, err)
	}

	query, args, err := psqlbuilder.Update("sites").
		Set("name", site.Name).
		Set("description", site.Description).
		Set("image_url", site.ImageURL).
		Set("time_slots", string(slots)).
		Set("updated_at", site.UpdatedAt).
		Where(squirrel.Eq{"id": site.ID}).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&site.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrSiteNotFound
	}
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSiteNameTaken
		}
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return site, nil
}

// Delete удаляет площадку. Бронирования удаляются каскадно (ON DELETE CASCADE)
func (r *Repository) Delete(ctx context.Context, id string) error {
	if !isUUID(id) {
		return ErrSiteNotFound
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("sites").
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
		return ErrSiteNotFound
	}

	return nil
}

// GetByID получает площадку по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Site, error) {
	if !isUUID(id) {
		return nil, ErrSiteNotFound
	}
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByName получает площадку по точному совпадению имени
func (r *Repository) GetByName(ctx context.Context, name string) (*domain.Site, error) {
	return r.getOne(ctx, "GetByName", squirrel.Eq{"name": name})
}

// List возвращает все площадки в порядке имени
func (r *Repository) List(ctx context.Context) ([]*domain.Site, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(siteColumns...).
		From("sites").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	sites := make([]*domain.Site, 0)
	for rows.Next() {
		site, err := scanSite(rows)
		if err != nil {
			return nil, fmt.Errorf("List - %w", err)
		}
		sites = append(sites, site)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return sites, nil
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Eq) (*domain.Site, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(siteColumns...).
		From("sites").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	site, err := scanSite(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSiteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s - %w", op, err)
	}

	return site, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSite(row rowScanner) (*domain.Site, error) {
	var site domain.Site
	var imageURL sql.NullString
	var slots []byte

	err := row.Scan(
		&site.ID,
		&site.Name,
		&site.Description,
		&imageURL,
		&slots,
		&site.CreatedAt,
		&site.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scan site: %v", ErrScanRow, err)
	}

	if imageURL.Valid {
		site.ImageURL = &imageURL.String
	}

	site.TimeSlots, err = decodeSlots(slots)
	if err != nil {
		return nil, fmt.Errorf("%w: decode slots: %v", ErrEncodeSlots, err)
	}

	return &site, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// isUUID отсекает идентификаторы, которые PostgreSQL не приведет к UUID
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
