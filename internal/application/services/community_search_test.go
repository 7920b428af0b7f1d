package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatherhq/gatherly/internal/domain/entities"
	"github.com/gatherhq/gatherly/internal/domain/repositories"
)

func TestCommunitySearch_ScoresByMatchingEvents(t *testing.T) {
	repo := &fakeCommunityRepo{matches: []*repositories.CommunityMatch{
		{Community: &entities.Community{ID: "c1", Name: "Quiet Corner"}, MatchingEvents: 0},
		{Community: &entities.Community{ID: "c2", Name: "Tech Lagos"}, MatchingEvents: 7},
		{Community: &entities.Community{ID: "c3", Name: "Runners"}, MatchingEvents: 2},
	}}
	svc := NewCommunitySearchService(repo, newTestResolver(nil, nil))

	results, err := svc.Search(context.Background(), searchableIntent(), &entities.StirRequest{Query: "q", Limit: 10})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "c2", results[0].ID)
	assert.InDelta(t, 1.0, results[0].Score, 1e-9)
	assert.Equal(t, reasonActiveEvents, results[0].Reason)

	assert.Equal(t, "c3", results[1].ID)
	assert.InDelta(t, 0.4, results[1].Score, 1e-9)

	assert.Equal(t, "c1", results[2].ID)
	assert.Zero(t, results[2].Score)
	assert.Equal(t, reasonCommunityMatch, results[2].Reason)
}

func TestCommunitySearch_PublicOnlyWhenExplicit(t *testing.T) {
	repo := &fakeCommunityRepo{}
	svc := NewCommunitySearchService(repo, newTestResolver(nil, nil))

	_, err := svc.Search(context.Background(), searchableIntent(), &entities.StirRequest{Query: "q", Limit: 10})
	require.NoError(t, err)
	assert.False(t, repo.lastFilter.OnlyPublic)

	public := true
	intent := searchableIntent()
	intent.CommunityFilters.IsPublic = &public
	_, err = svc.Search(context.Background(), intent, &entities.StirRequest{Query: "q", Limit: 10})
	require.NoError(t, err)
	assert.True(t, repo.lastFilter.OnlyPublic)

	// An explicit "private" preference never narrows to private-only.
	private := false
	intent = searchableIntent()
	intent.CommunityFilters.IsPublic = &private
	_, err = svc.Search(context.Background(), intent, &entities.StirRequest{Query: "q", Limit: 10})
	require.NoError(t, err)
	assert.False(t, repo.lastFilter.OnlyPublic)
}

func TestCommunitySearch_TopicsResolveToCategories(t *testing.T) {
	categories := &fakeCategoryRepo{categories: []*entities.Category{
		{ID: "cat-tech", Name: "Technology", Slug: "technology"},
	}}
	repo := &fakeCommunityRepo{}
	svc := NewCommunitySearchService(repo, newTestResolver(categories, nil))

	intent := searchableIntent()
	intent.CommunityFilters.Topics = []string{"Technology", "Something Else"}

	_, err := svc.Search(context.Background(), intent, &entities.StirRequest{Query: "q", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{"cat-tech"}, repo.lastFilter.CategoryIDs)
}

func TestCommunitySearch_FetchesAtMostRequestLimit(t *testing.T) {
	repo := &fakeCommunityRepo{matches: []*repositories.CommunityMatch{
		{Community: &entities.Community{ID: "c1"}},
		{Community: &entities.Community{ID: "c2"}},
	}}
	svc := NewCommunitySearchService(repo, newTestResolver(nil, nil))

	results, err := svc.Search(context.Background(), searchableIntent(), &entities.StirRequest{Query: "q", Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.lastFilter.Limit)
	assert.Len(t, results, 1)
}
