package recipes

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/bonerecipes-go/store"
)

func makeRecipe(id int64, name string, popularity int64, categories ...int64) *store.Recipe {
	return &store.Recipe{ID: id, Name: name, Popularity: popularity, Categories: categories}
}

func names(recipes []*store.Recipe) []string {
	out := make([]string, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, r.Name)
	}
	return out
}

func TestParseListParams(t *testing.T) {
	q := url.Values{
		"sort":       {"a-z"},
		"dish_name":  {"soup"},
		"categories": {"1", "oops", "3"},
		"page":       {"2"},
	}
	p := ParseListParams(q)

	assert.Equal(t, SortNameAsc, p.Sort)
	assert.Equal(t, "soup", p.DishName)
	assert.Equal(t, []int64{1, 3}, p.Categories)
	assert.Equal(t, 2, p.Page)
}

func TestParseListParamsDefaults(t *testing.T) {
	p := ParseListParams(url.Values{})
	assert.Equal(t, SortNone, p.Sort)
	assert.Empty(t, p.DishName)
	assert.Empty(t, p.Categories)
	assert.Equal(t, 0, p.Page)

	// Negative and malformed page numbers fall back to the first page.
	assert.Equal(t, 0, ParseListParams(url.Values{"page": {"-3"}}).Page)
	assert.Equal(t, 0, ParseListParams(url.Values{"page": {"two"}}).Page)
}

func TestFilterByCategoriesSubset(t *testing.T) {
	recipes := []*store.Recipe{
		makeRecipe(1, "Only one", 0, 1),
		makeRecipe(2, "Exact match", 0, 1, 3),
		makeRecipe(3, "Superset", 0, 1, 2, 3),
		makeRecipe(4, "Disjoint", 0, 5),
		makeRecipe(5, "Uncategorized", 0),
	}

	got := FilterSearchSort(recipes, ListParams{Categories: []int64{1, 3}})
	assert.Equal(t, []string{"Only one", "Exact match"}, names(got))
}

func TestFilterByCategoriesInactive(t *testing.T) {
	recipes := []*store.Recipe{
		makeRecipe(1, "Categorized", 0, 1),
		makeRecipe(2, "Uncategorized", 0),
	}

	// No filter means everything passes, uncategorized included.
	got := FilterSearchSort(recipes, ListParams{})
	assert.Len(t, got, 2)
}

func TestSearchByName(t *testing.T) {
	recipes := []*store.Recipe{
		makeRecipe(1, "Yakiniku", 0),
		makeRecipe(2, "Borscht", 0),
	}

	cases := []struct {
		query string
		want  []string
	}{
		{"niku", []string{"Yakiniku"}},
		{"YAKI", []string{"Yakiniku"}},
		{"xyz", nil},
		{"", []string{"Yakiniku", "Borscht"}},
		{"   \t ", []string{"Yakiniku", "Borscht"}},
	}
	for _, tc := range cases {
		got := FilterSearchSort(recipes, ListParams{DishName: tc.query})
		assert.Equal(t, tc.want, func() []string {
			if len(got) == 0 {
				return nil
			}
			return names(got)
		}(), "query %q", tc.query)
	}
}

func TestSortRecipes(t *testing.T) {
	recipes := []*store.Recipe{
		makeRecipe(1, "banana bread", 5),
		makeRecipe(2, "Apple pie", 1),
		makeRecipe(3, "Cheesecake", 5),
		makeRecipe(4, "dumplings", 2),
	}

	t.Run("popularity descending is stable", func(t *testing.T) {
		got := FilterSearchSort(recipes, ListParams{Sort: SortPopularityDesc})
		// The two recipes with popularity 5 keep their input order.
		assert.Equal(t, []string{"banana bread", "Cheesecake", "dumplings", "Apple pie"}, names(got))
	})

	t.Run("popularity ascending", func(t *testing.T) {
		got := FilterSearchSort(recipes, ListParams{Sort: SortPopularityAsc})
		assert.Equal(t, []string{"Apple pie", "dumplings", "banana bread", "Cheesecake"}, names(got))
	})

	t.Run("name ascending ignores case", func(t *testing.T) {
		got := FilterSearchSort(recipes, ListParams{Sort: SortNameAsc})
		assert.Equal(t, []string{"Apple pie", "banana bread", "Cheesecake", "dumplings"}, names(got))
	})

	t.Run("name descending ignores case", func(t *testing.T) {
		got := FilterSearchSort(recipes, ListParams{Sort: SortNameDesc})
		assert.Equal(t, []string{"dumplings", "Cheesecake", "banana bread", "Apple pie"}, names(got))
	})

	t.Run("unknown sort keeps order", func(t *testing.T) {
		got := FilterSearchSort(recipes, ListParams{Sort: SortOrder("newest")})
		assert.Equal(t, names(recipes), names(got))
	})

	t.Run("input is not mutated", func(t *testing.T) {
		FilterSearchSort(recipes, ListParams{Sort: SortNameAsc})
		assert.Equal(t, []string{"banana bread", "Apple pie", "Cheesecake", "dumplings"}, names(recipes))
	})
}

func TestPaginate(t *testing.T) {
	var recipes []*store.Recipe
	for i := int64(1); i <= 25; i++ {
		recipes = append(recipes, makeRecipe(i, "", 0))
	}

	first := Paginate(recipes, 0, 10)
	require.Len(t, first, 10)
	assert.Equal(t, int64(1), first[0].ID)

	second := Paginate(recipes, 1, 10)
	require.Len(t, second, 10)
	assert.Equal(t, int64(11), second[0].ID)

	// The last page is short.
	third := Paginate(recipes, 2, 10)
	require.Len(t, third, 5)
	assert.Equal(t, int64(21), third[0].ID)
	assert.Equal(t, int64(25), third[4].ID)

	// Past the end there is nothing, but never an error.
	assert.Empty(t, Paginate(recipes, 3, 10))
	assert.Empty(t, Paginate(recipes, 100, 10))
}

func TestApplyListingComposition(t *testing.T) {
	recipes := []*store.Recipe{
		makeRecipe(1, "Miso soup", 3, 1),
		makeRecipe(2, "Onion soup", 9, 1),
		makeRecipe(3, "Pumpkin soup", 5, 1, 2),
		makeRecipe(4, "Soup dumplings", 7, 4),
		makeRecipe(5, "Ramen", 8, 1),
	}

	p := ListParams{
		Sort:       SortPopularityDesc,
		DishName:   "soup",
		Categories: []int64{1, 2},
	}

	// Filter leaves 1, 2, 3, 5; search narrows to the soups; sort orders
	// them by popularity.
	got := ApplyListing(recipes, p, 10)
	assert.Equal(t, []string{"Onion soup", "Pumpkin soup", "Miso soup"}, names(got))

	// The same query one page on is empty.
	p.Page = 1
	assert.Empty(t, ApplyListing(recipes, p, 10))
}
