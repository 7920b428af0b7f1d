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

var communityColumns = []interface{}{
	"id", "name", "description", "topic", "is_public", "location_id",
	"created_at", "updated_at",
}

// CommunityAdapter implements CommunityRepository
type CommunityAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewCommunityAdapter creates a new community adapter
func NewCommunityAdapter(client *postgres.Client) repositories.CommunityRepository {
	return &CommunityAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// GetByID retrieves a community by ID
func (a *CommunityAdapter) GetByID(ctx context.Context, id string) (*entities.Community, error) {
	query, args, err := a.db.Select(communityColumns...).
		From("communities").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	community, err := a.scanCommunity(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("community with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get community", err)
	}

	return community, nil
}

// List retrieves communities with filters
func (a *CommunityAdapter) List(ctx context.Context, filter repositories.CommunityFilter) ([]*entities.Community, error) {
	ds := a.db.Select(communityColumns...).From("communities")

	if filter.IsPublic != nil {
		ds = ds.Where(goqu.Ex{"is_public": *filter.IsPublic})
	}

	ds = ds.Order(goqu.I("name").Asc())

	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}
	if filter.Offset > 0 {
		ds = ds.Offset(uint(filter.Offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list communities", err)
	}
	defer rows.Close()

	communities := []*entities.Community{}
	for rows.Next() {
		community, err := a.scanCommunity(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan community", err)
		}
		communities = append(communities, community)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating communities", err)
	}

	return communities, nil
}

// ListWithMatchingEvents retrieves communities with the count of their
// published events matching the filter's constraints, computed in a single
// correlated subquery.
func (a *CommunityAdapter) ListWithMatchingEvents(ctx context.Context, filter repositories.CommunityMatchFilter) ([]*repositories.CommunityMatch, error) {
	countExpr := "(SELECT count(*) FROM events e WHERE e.community_id = communities.id AND e.status = 'published'"
	countArgs := []interface{}{}

	if filter.LocationID != "" {
		countExpr += " AND e.location_id = ?"
		countArgs = append(countArgs, filter.LocationID)
	}
	if len(filter.CategoryIDs) > 0 {
		countExpr += " AND EXISTS (SELECT 1 FROM event_categories ec WHERE ec.event_id = e.id AND ec.category_id = ANY(?))"
		countArgs = append(countArgs, pq.Array(filter.CategoryIDs))
	}
	countExpr += ")"

	cols := append(append([]interface{}{}, communityColumns...),
		goqu.L(countExpr, countArgs...).As("matching_events"))

	ds := a.db.Select(cols...).From("communities")

	if filter.OnlyPublic {
		ds = ds.Where(goqu.Ex{"is_public": true})
	}

	ds = ds.Order(goqu.I("name").Asc())

	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query communities", err)
	}
	defer rows.Close()

	matches := []*repositories.CommunityMatch{}
	for rows.Next() {
		community := &entities.Community{}
		var topic, locationID sql.NullString
		var matchingEvents int

		err := rows.Scan(
			&community.ID,
			&community.Name,
			&community.Description,
			&topic,
			&community.IsPublic,
			&locationID,
			&community.CreatedAt,
			&community.UpdatedAt,
			&matchingEvents,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan community", err)
		}

		community.Topic = topic.String
		community.LocationID = locationID.String

		matches = append(matches, &repositories.CommunityMatch{
			Community:      community,
			MatchingEvents: matchingEvents,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating communities", err)
	}

	return matches, nil
}

func (a *CommunityAdapter) scanCommunity(row rowScanner) (*entities.Community, error) {
	community := &entities.Community{}
	var topic, locationID sql.NullString

	err := row.Scan(
		&community.ID,
		&community.Name,
		&community.Description,
		&topic,
		&community.IsPublic,
		&locationID,
		&community.CreatedAt,
		&community.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	community.Topic = topic.String
	community.LocationID = locationID.String

	return community, nil
}
