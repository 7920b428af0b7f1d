package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/gatherhq/gatherly/internal/domain/entities"
	"github.com/gatherhq/gatherly/internal/domain/repositories"
	"github.com/gatherhq/gatherly/internal/infrastructure/clients/postgres"
	apperrors "github.com/gatherhq/gatherly/pkg/errors"
)

// CategoryAdapter implements CategoryRepository
type CategoryAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewCategoryAdapter creates a new category adapter
func NewCategoryAdapter(client *postgres.Client) repositories.CategoryRepository {
	return &CategoryAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// GetByNamesOrSlugs retrieves categories matching any of the given names or
// slugs exactly. Values that match nothing are absent from the result.
func (a *CategoryAdapter) GetByNamesOrSlugs(ctx context.Context, values []string) ([]*entities.Category, error) {
	if len(values) == 0 {
		return []*entities.Category{}, nil
	}

	query, args, err := a.db.Select("id", "name", "slug").
		From("categories").
		Where(goqu.Or(
			goqu.Ex{"name": values},
			goqu.Ex{"slug": values},
		)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	return a.queryCategories(ctx, query, args...)
}

// List retrieves all categories
func (a *CategoryAdapter) List(ctx context.Context) ([]*entities.Category, error) {
	query, args, err := a.db.Select("id", "name", "slug").
		From("categories").
		Order(goqu.I("name").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	return a.queryCategories(ctx, query, args...)
}

func (a *CategoryAdapter) queryCategories(ctx context.Context, query string, args ...interface{}) ([]*entities.Category, error) {
	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query categories", err)
	}
	defer rows.Close()

	categories := []*entities.Category{}
	for rows.Next() {
		category := &entities.Category{}
		if err := rows.Scan(&category.ID, &category.Name, &category.Slug); err != nil {
			return nil, apperrors.NewInternalError("failed to scan category", err)
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating categories", err)
	}

	return categories, nil
}

// LocationAdapter implements LocationRepository
type LocationAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewLocationAdapter creates a new location adapter
func NewLocationAdapter(client *postgres.Client) repositories.LocationRepository {
	return &LocationAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// GetByNameOrSlug retrieves the first location matching the value by
// case-insensitive name or exact slug.
func (a *LocationAdapter) GetByNameOrSlug(ctx context.Context, value string) (*entities.Location, error) {
	query, args, err := a.db.Select("id", "name", "slug").
		From("locations").
		Where(goqu.Or(
			goqu.L("lower(name) = lower(?)", value),
			goqu.Ex{"slug": value},
		)).
		Order(goqu.I("name").Asc()).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	location := &entities.Location{}
	err = a.client.DB().QueryRowContext(ctx, query, args...).
		Scan(&location.ID, &location.Name, &location.Slug)

	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("location %q not found", value))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get location", err)
	}

	return location, nil
}
