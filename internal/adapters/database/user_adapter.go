package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"

	"github.com/gatherhq/gatherly/internal/domain/entities"
	"github.com/gatherhq/gatherly/internal/domain/repositories"
	"github.com/gatherhq/gatherly/internal/infrastructure/clients/postgres"
	apperrors "github.com/gatherhq/gatherly/pkg/errors"
)

var interestIDsSubquery = goqu.L(
	"(SELECT array_agg(ui.category_id) FROM user_interests ui WHERE ui.user_id = users.id)",
).As("interest_category_ids")

var userColumns = []interface{}{
	"id", "email", "name", "profession", "experience_level", "location_id",
	"created_at", "updated_at",
}

// UserAdapter implements UserRepository
type UserAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewUserAdapter creates a new user adapter
func NewUserAdapter(client *postgres.Client) repositories.UserRepository {
	return &UserAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// GetByID retrieves a user by ID
func (a *UserAdapter) GetByID(ctx context.Context, id string) (*entities.User, error) {
	cols := append(append([]interface{}{}, userColumns...), interestIDsSubquery)
	query, args, err := a.db.Select(cols...).
		From("users").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	user, err := a.scanUser(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("user with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get user", err)
	}

	return user, nil
}

// discoverSQL builds the discovery query. The activity floor lives here:
// only users with at least one RSVP or one community membership are ever
// selected.
func (a *UserAdapter) discoverSQL(filter repositories.UserDiscoverFilter) (string, []interface{}, error) {
	cols := append(append([]interface{}{}, userColumns...), interestIDsSubquery)
	ds := a.db.Select(cols...).
		From("users").
		Where(goqu.Or(
			goqu.L("EXISTS (SELECT 1 FROM rsvps r WHERE r.user_id = users.id)"),
			goqu.L("EXISTS (SELECT 1 FROM community_members cm WHERE cm.user_id = users.id)"),
		))

	if filter.LocationID != "" {
		ds = ds.Where(goqu.Ex{"location_id": filter.LocationID})
	}

	ds = ds.Order(goqu.I("created_at").Desc())

	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}

	return ds.ToSQL()
}

// Discover retrieves discoverable users matching the filter. Users with
// zero platform activity are never returned.
func (a *UserAdapter) Discover(ctx context.Context, filter repositories.UserDiscoverFilter) ([]*entities.User, error) {
	query, args, err := a.discoverSQL(filter)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to discover users", err)
	}
	defer rows.Close()

	users := []*entities.User{}
	for rows.Next() {
		user, err := a.scanUser(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan user", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating users", err)
	}

	return users, nil
}

func (a *UserAdapter) scanUser(row rowScanner) (*entities.User, error) {
	user := &entities.User{}
	var profession, experienceLevel, locationID sql.NullString
	var interestIDs []string

	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&profession,
		&experienceLevel,
		&locationID,
		&user.CreatedAt,
		&user.UpdatedAt,
		pq.Array(&interestIDs),
	)
	if err != nil {
		return nil, err
	}

	user.Profession = profession.String
	user.ExperienceLevel = experienceLevel.String
	user.LocationID = locationID.String
	user.InterestCategoryIDs = interestIDs

	return user, nil
}
