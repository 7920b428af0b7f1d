package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/lib/pq"

	"github.com/gatherhq/gatherly/internal/domain/entities"
	"github.com/gatherhq/gatherly/internal/domain/repositories"
	"github.com/gatherhq/gatherly/internal/infrastructure/clients/postgres"
	apperrors "github.com/gatherhq/gatherly/pkg/errors"
)

// categoryIDsSubquery aggregates an event's category memberships into a
// single array column so candidates arrive ready for scoring.
var categoryIDsSubquery = goqu.L(
	"(SELECT array_agg(ec.category_id) FROM event_categories ec WHERE ec.event_id = events.id)",
).As("category_ids")

var eventColumns = []interface{}{
	"id", "title", "description", "status", "location_id", "community_id",
	"is_online", "price", "currency", "starts_at", "ends_at",
	"created_at", "updated_at",
}

// EventAdapter implements EventRepository
type EventAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewEventAdapter creates a new event adapter
func NewEventAdapter(client *postgres.Client) repositories.EventRepository {
	return &EventAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// GetByID retrieves an event by ID
func (a *EventAdapter) GetByID(ctx context.Context, id string) (*entities.Event, error) {
	cols := append(append([]interface{}{}, eventColumns...), categoryIDsSubquery)
	query, args, err := a.db.Select(cols...).
		From("events").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	event, err := a.scanEvent(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("event with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get event", err)
	}

	return event, nil
}

// List retrieves events with filters
func (a *EventAdapter) List(ctx context.Context, filter repositories.EventFilter) ([]*entities.Event, error) {
	cols := append(append([]interface{}{}, eventColumns...), categoryIDsSubquery)
	ds := a.db.Select(cols...).From("events")

	if filter.Status != "" {
		ds = ds.Where(goqu.Ex{"status": filter.Status})
	}
	if filter.CommunityID != "" {
		ds = ds.Where(goqu.Ex{"community_id": filter.CommunityID})
	}
	if filter.LocationID != "" {
		ds = ds.Where(goqu.Ex{"location_id": filter.LocationID})
	}

	ds = ds.Order(goqu.I("starts_at").Asc())

	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}
	if filter.Offset > 0 {
		ds = ds.Offset(uint(filter.Offset))
	}

	return a.queryEvents(ctx, ds)
}

// FindCandidates retrieves published events matching the search filter,
// soonest start first.
func (a *EventAdapter) FindCandidates(ctx context.Context, filter repositories.EventSearchFilter) ([]*entities.Event, error) {
	cols := append(append([]interface{}{}, eventColumns...), categoryIDsSubquery)
	ds := a.db.Select(cols...).
		From("events").
		Where(goqu.Ex{"status": entities.EventStatusPublished})

	if filter.LocationID != "" {
		ds = ds.Where(goqu.Ex{"location_id": filter.LocationID})
	}
	if filter.StartAfter != nil {
		ds = ds.Where(goqu.I("starts_at").Gte(*filter.StartAfter))
	}
	if filter.EndBefore != nil {
		ds = ds.Where(goqu.I("ends_at").Lte(*filter.EndBefore))
	}
	if filter.MaxPrice != nil {
		ds = ds.Where(goqu.I("price").Lte(*filter.MaxPrice))
	}
	if filter.OnlineOnly != nil {
		ds = ds.Where(goqu.Ex{"is_online": *filter.OnlineOnly})
	}
	if len(filter.CategoryIDs) > 0 {
		// An event matches if it belongs to any of the categories.
		ds = ds.Where(goqu.L(
			"EXISTS (SELECT 1 FROM event_categories ec WHERE ec.event_id = events.id AND ec.category_id = ANY(?))",
			pq.Array(filter.CategoryIDs),
		))
	}

	ds = ds.Order(goqu.I("starts_at").Asc())

	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}

	return a.queryEvents(ctx, ds)
}

func (a *EventAdapter) queryEvents(ctx context.Context, ds *goqu.SelectDataset) ([]*entities.Event, error) {
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query events", err)
	}
	defer rows.Close()

	events := []*entities.Event{}
	for rows.Next() {
		event, err := a.scanEvent(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan event", err)
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating events", err)
	}

	return events, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (a *EventAdapter) scanEvent(row rowScanner) (*entities.Event, error) {
	event := &entities.Event{}
	var locationID, communityID sql.NullString
	var categoryIDs []string

	err := row.Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.Status,
		&locationID,
		&communityID,
		&event.IsOnline,
		&event.Price,
		&event.Currency,
		&event.StartsAt,
		&event.EndsAt,
		&event.CreatedAt,
		&event.UpdatedAt,
		pq.Array(&categoryIDs),
	)
	if err != nil {
		return nil, err
	}

	event.LocationID = locationID.String
	event.CommunityID = communityID.String
	event.CategoryIDs = categoryIDs

	return event, nil
}
