package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatherhq/gatherly/internal/domain/entities"
)

func TestUserSearch_RanksByInterestOverlapAndExperience(t *testing.T) {
	categories := &fakeCategoryRepo{categories: []*entities.Category{
		{ID: "cat-tech", Name: "Technology", Slug: "technology"},
	}}
	repo := &fakeUserRepo{users: []*entities.User{
		{ID: "u1", Name: "Ada", ExperienceLevel: entities.ExperienceJunior},
		{ID: "u2", Name: "Bayo", ExperienceLevel: entities.ExperienceSenior, InterestCategoryIDs: []string{"cat-tech"}},
	}}
	svc := NewUserSearchService(repo, newTestResolver(categories, nil))

	intent := searchableIntent()
	intent.UserFilters.Interests = []string{"Technology"}
	intent.UserFilters.ExperienceLevels = []string{entities.ExperienceSenior}

	results, err := svc.Search(context.Background(), intent, &entities.StirRequest{Query: "q", Limit: 10})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "u2", results[0].ID)
	assert.InDelta(t, 1.0, results[0].Score, 1e-9)
	assert.Equal(t, reasonSharedInterests, results[0].Reason)

	assert.Equal(t, "u1", results[1].ID)
	assert.Zero(t, results[1].Score)
	assert.Equal(t, reasonFallback, results[1].Reason)
}

func TestUserSearch_LocationNarrowsDiscovery(t *testing.T) {
	locations := &fakeLocationRepo{locations: map[string]*entities.Location{
		"Lagos": {ID: "loc-lagos", Name: "Lagos"},
	}}
	repo := &fakeUserRepo{}
	svc := NewUserSearchService(repo, newTestResolver(nil, locations))

	intent := searchableIntent()
	intent.UserFilters.Location = "Lagos"

	_, err := svc.Search(context.Background(), intent, &entities.StirRequest{Query: "q", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, "loc-lagos", repo.lastFilter.LocationID)
}

func TestUserSearch_NoFiltersStillReturnsCandidates(t *testing.T) {
	repo := &fakeUserRepo{users: []*entities.User{
		{ID: "u1", Name: "Ada"},
		{ID: "u2", Name: "Bayo"},
	}}
	svc := NewUserSearchService(repo, newTestResolver(nil, nil))

	results, err := svc.Search(context.Background(), searchableIntent(), &entities.StirRequest{Query: "q", Limit: 10})
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.Zero(t, r.Score)
		assert.Equal(t, reasonFallback, r.Reason)
	}
}

func TestUserSearch_FetchesAtMostRequestLimit(t *testing.T) {
	repo := &fakeUserRepo{users: []*entities.User{
		{ID: "u1"}, {ID: "u2"}, {ID: "u3"},
	}}
	svc := NewUserSearchService(repo, newTestResolver(nil, nil))

	results, err := svc.Search(context.Background(), searchableIntent(), &entities.StirRequest{Query: "q", Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.lastFilter.Limit)
	assert.Len(t, results, 1)
}
