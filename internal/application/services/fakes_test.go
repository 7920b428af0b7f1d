package services

import (
	"context"
	"encoding/json"
	"sync/atomic"

	"github.com/gatherhq/gatherly/internal/domain/entities"
	"github.com/gatherhq/gatherly/internal/domain/repositories"
	"github.com/gatherhq/gatherly/pkg/errors"
)

type fakeLanguageModel struct {
	response []byte
	err      error
	calls    atomic.Int32
}

func (f *fakeLanguageModel) Generate(_ context.Context, _, _ string, _ json.RawMessage) ([]byte, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

type fakeCache struct {
	store map[string][]byte
	sets  int
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: map[string][]byte{}}
}

func (f *fakeCache) Get(_ context.Context, key string) ([]byte, error) {
	if data, ok := f.store[key]; ok {
		return data, nil
	}
	return nil, errors.NewNotFoundError("cache miss")
}

func (f *fakeCache) Set(_ context.Context, key string, value []byte, _ int) error {
	f.store[key] = value
	f.sets++
	return nil
}

func (f *fakeCache) Delete(_ context.Context, key string) error {
	delete(f.store, key)
	return nil
}

func (f *fakeCache) Exists(_ context.Context, key string) (bool, error) {
	_, ok := f.store[key]
	return ok, nil
}

type fakeCategoryRepo struct {
	categories []*entities.Category
	err        error
	calls      int
}

func (f *fakeCategoryRepo) GetByNamesOrSlugs(_ context.Context, values []string) ([]*entities.Category, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	wanted := map[string]struct{}{}
	for _, v := range values {
		wanted[v] = struct{}{}
	}
	var out []*entities.Category
	for _, c := range f.categories {
		if _, ok := wanted[c.Name]; ok {
			out = append(out, c)
			continue
		}
		if _, ok := wanted[c.Slug]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCategoryRepo) List(_ context.Context) ([]*entities.Category, error) {
	return f.categories, f.err
}

type fakeLocationRepo struct {
	locations map[string]*entities.Location // keyed by name
	err       error
}

func (f *fakeLocationRepo) GetByNameOrSlug(_ context.Context, value string) (*entities.Location, error) {
	if f.err != nil {
		return nil, f.err
	}
	if loc, ok := f.locations[value]; ok {
		return loc, nil
	}
	return nil, errors.NewNotFoundError("location not found")
}

type fakeEventRepo struct {
	events     []*entities.Event
	err        error
	lastFilter repositories.EventSearchFilter
}

func (f *fakeEventRepo) GetByID(_ context.Context, id string) (*entities.Event, error) {
	for _, e := range f.events {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, errors.NewNotFoundError("event not found")
}

func (f *fakeEventRepo) List(_ context.Context, _ repositories.EventFilter) ([]*entities.Event, error) {
	return f.events, f.err
}

func (f *fakeEventRepo) FindCandidates(_ context.Context, filter repositories.EventSearchFilter) ([]*entities.Event, error) {
	f.lastFilter = filter
	if f.err != nil {
		return nil, f.err
	}
	if filter.Limit > 0 && len(f.events) > filter.Limit {
		return f.events[:filter.Limit], nil
	}
	return f.events, nil
}

type fakeUserRepo struct {
	users      []*entities.User
	err        error
	lastFilter repositories.UserDiscoverFilter
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*entities.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, errors.NewNotFoundError("user not found")
}

func (f *fakeUserRepo) Discover(_ context.Context, filter repositories.UserDiscoverFilter) ([]*entities.User, error) {
	f.lastFilter = filter
	if f.err != nil {
		return nil, f.err
	}
	if filter.Limit > 0 && len(f.users) > filter.Limit {
		return f.users[:filter.Limit], nil
	}
	return f.users, nil
}

type fakeCommunityRepo struct {
	matches    []*repositories.CommunityMatch
	err        error
	lastFilter repositories.CommunityMatchFilter
}

func (f *fakeCommunityRepo) GetByID(_ context.Context, id string) (*entities.Community, error) {
	for _, m := range f.matches {
		if m.Community.ID == id {
			return m.Community, nil
		}
	}
	return nil, errors.NewNotFoundError("community not found")
}

func (f *fakeCommunityRepo) List(_ context.Context, _ repositories.CommunityFilter) ([]*entities.Community, error) {
	var out []*entities.Community
	for _, m := range f.matches {
		out = append(out, m.Community)
	}
	return out, f.err
}

func (f *fakeCommunityRepo) ListWithMatchingEvents(_ context.Context, filter repositories.CommunityMatchFilter) ([]*repositories.CommunityMatch, error) {
	f.lastFilter = filter
	if f.err != nil {
		return nil, f.err
	}
	if filter.Limit > 0 && len(f.matches) > filter.Limit {
		return f.matches[:filter.Limit], nil
	}
	return f.matches, nil
}

type fakeUserContextProvider struct {
	userCtx *entities.UserContext
	err     error
}

func (f *fakeUserContextProvider) GetUserContext(_ context.Context, _ string) (*entities.UserContext, error) {
	return f.userCtx, f.err
}

func newTestResolver(categories *fakeCategoryRepo, locations *fakeLocationRepo) *ResolverService {
	if categories == nil {
		categories = &fakeCategoryRepo{}
	}
	if locations == nil {
		locations = &fakeLocationRepo{locations: map[string]*entities.Location{}}
	}
	return NewResolverService(categories, locations)
}
