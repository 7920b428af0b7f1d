package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatherhq/gatherly/internal/domain/entities"
)

func TestResolveCategoryIDs_DropsUnknownNames(t *testing.T) {
	categories := &fakeCategoryRepo{categories: []*entities.Category{
		{ID: "cat-tech", Name: "Technology", Slug: "technology"},
		{ID: "cat-food", Name: "Food & Drink", Slug: "food-drink"},
	}}
	resolver := newTestResolver(categories, nil)

	ids, err := resolver.ResolveCategoryIDs(context.Background(), []string{"Technology", "Astrology"})
	require.NoError(t, err)
	assert.Equal(t, []string{"cat-tech"}, ids)
}

func TestResolveCategoryIDs_EmptyInputSkipsQuery(t *testing.T) {
	categories := &fakeCategoryRepo{}
	resolver := newTestResolver(categories, nil)

	ids, err := resolver.ResolveCategoryIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.NotNil(t, ids)
	assert.Zero(t, categories.calls)
}

func TestResolveCategoryIDs_MatchesBySlug(t *testing.T) {
	categories := &fakeCategoryRepo{categories: []*entities.Category{
		{ID: "cat-food", Name: "Food & Drink", Slug: "food-drink"},
	}}
	resolver := newTestResolver(categories, nil)

	ids, err := resolver.ResolveCategoryIDs(context.Background(), []string{"food-drink"})
	require.NoError(t, err)
	assert.Equal(t, []string{"cat-food"}, ids)
}

func TestResolveLocationID_UnknownNameIsNotAnError(t *testing.T) {
	resolver := newTestResolver(nil, &fakeLocationRepo{locations: map[string]*entities.Location{}})

	id, err := resolver.ResolveLocationID(context.Background(), "Atlantis")
	require.NoError(t, err)
	assert.Empty(t, id)
}

func TestResolveLocationID_TrimsAndResolves(t *testing.T) {
	resolver := newTestResolver(nil, &fakeLocationRepo{locations: map[string]*entities.Location{
		"Lagos": {ID: "loc-lagos", Name: "Lagos", Slug: "lagos"},
	}})

	id, err := resolver.ResolveLocationID(context.Background(), "  Lagos ")
	require.NoError(t, err)
	assert.Equal(t, "loc-lagos", id)

	// Resolving the same name again yields the same identifier.
	again, err := resolver.ResolveLocationID(context.Background(), "Lagos")
	require.NoError(t, err)
	assert.Equal(t, id, again)
}

func TestResolveLocationID_EmptyNameSkipsQuery(t *testing.T) {
	resolver := newTestResolver(nil, nil)

	id, err := resolver.ResolveLocationID(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, id)
}
