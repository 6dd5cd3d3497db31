package web

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/bonerecipes-go/recipes"
)

func TestParseTemplates(t *testing.T) {
	pages, err := parseTemplates()
	require.NoError(t, err)
	for _, name := range pageNames {
		assert.Contains(t, pages, name)
	}
}

func TestListingQuery(t *testing.T) {
	p := recipes.ListParams{
		Sort:       recipes.SortPopularityDesc,
		DishName:   "miso soup",
		Categories: []int64{3, 1},
	}

	// Values.Encode orders keys alphabetically; repeated categories keep
	// their order.
	assert.Equal(t,
		"categories=3&categories=1&dish_name=miso+soup&page=2&saved=true&sort=popularity-desc",
		string(listingQuery(p, true, 2)))

	// Page zero needs no parameter.
	assert.Equal(t,
		"categories=3&categories=1&dish_name=miso+soup&sort=popularity-desc",
		string(listingQuery(p, false, 0)))

	assert.Empty(t, string(listingQuery(recipes.ListParams{}, false, 0)))
}

func TestMenuPaginationLinksKeepQuery(t *testing.T) {
	pages, err := parseTemplates()
	require.NoError(t, err)

	params := recipes.ListParams{
		Sort:       recipes.SortPopularityDesc,
		DishName:   "soup",
		Categories: []int64{1, 2},
		Page:       1,
	}
	data := menuPage{
		basePage:           basePage{Title: "soup search results"},
		Page:               params.Page,
		PrevQuery:          listingQuery(params, false, params.Page-1),
		NextQuery:          listingQuery(params, false, params.Page+1),
		HasNext:            true,
		Sort:               string(params.Sort),
		DishName:           params.DishName,
		SelectedCategories: params.Categories,
	}

	var buf bytes.Buffer
	require.NoError(t, pages["menu"].Execute(&buf, data))
	html := buf.String()

	// Both page links must reproduce the whole active query, not just the
	// page number; otherwise following a link drops the filter and search.
	assert.Contains(t, html, "dish_name=soup")
	assert.Contains(t, html, "sort=popularity-desc")
	assert.Contains(t, html, "categories=1&amp;categories=2")
	assert.Contains(t, html, "page=2")
	// The previous link points back at the unnumbered first page.
	assert.Contains(t, html, `href="/menu?categories=1&amp;categories=2&amp;dish_name=soup&amp;sort=popularity-desc"`)
}
