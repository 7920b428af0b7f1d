package database

import (
	"context"
	"database/sql"

	"github.com/doug-martin/goqu/v9"

	"github.com/gatherhq/gatherly/internal/domain/entities"
	"github.com/gatherhq/gatherly/internal/domain/providers"
	"github.com/gatherhq/gatherly/internal/infrastructure/clients/postgres"
	apperrors "github.com/gatherhq/gatherly/pkg/errors"
)

// UserContextAdapter implements UserContextProvider
type UserContextAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewUserContextAdapter creates a new user context adapter
func NewUserContextAdapter(client *postgres.Client) providers.UserContextProvider {
	return &UserContextAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// GetUserContext returns the user's location, interests and community
// memberships. An unknown user yields a nil context, not an error, so
// anonymous searches score without personalization.
func (a *UserContextAdapter) GetUserContext(ctx context.Context, userID string) (*entities.UserContext, error) {
	if userID == "" {
		return nil, nil
	}

	query, args, err := a.db.Select("location_id").
		From("users").
		Where(goqu.Ex{"id": userID}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	var locationID sql.NullString
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(&locationID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get user", err)
	}

	userCtx := &entities.UserContext{
		UserID:      userID,
		LocationID:  locationID.String,
		Interests:   []entities.Interest{},
		Communities: []entities.Membership{},
	}

	if err := a.loadInterests(ctx, userCtx); err != nil {
		return nil, err
	}
	if err := a.loadMemberships(ctx, userCtx); err != nil {
		return nil, err
	}

	return userCtx, nil
}

func (a *UserContextAdapter) loadInterests(ctx context.Context, userCtx *entities.UserContext) error {
	query, args, err := a.db.Select("category_id", "level").
		From("user_interests").
		Where(goqu.Ex{"user_id": userCtx.UserID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to query interests", err)
	}
	defer rows.Close()

	for rows.Next() {
		var interest entities.Interest
		if err := rows.Scan(&interest.CategoryID, &interest.Level); err != nil {
			return apperrors.NewInternalError("failed to scan interest", err)
		}
		userCtx.Interests = append(userCtx.Interests, interest)
	}

	if err := rows.Err(); err != nil {
		return apperrors.NewInternalError("error iterating interests", err)
	}

	return nil
}

func (a *UserContextAdapter) loadMemberships(ctx context.Context, userCtx *entities.UserContext) error {
	query, args, err := a.db.Select("community_id", "role").
		From("community_members").
		Where(goqu.Ex{"user_id": userCtx.UserID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to query memberships", err)
	}
	defer rows.Close()

	for rows.Next() {
		var membership entities.Membership
		if err := rows.Scan(&membership.CommunityID, &membership.Role); err != nil {
			return apperrors.NewInternalError("failed to scan membership", err)
		}
		userCtx.Communities = append(userCtx.Communities, membership)
	}

	if err := rows.Err(); err != nil {
		return apperrors.NewInternalError("error iterating memberships", err)
	}

	return nil
}
