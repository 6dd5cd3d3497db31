// Package recipes implements the recipe feature: the in-memory listing
// pipeline, the recipe service (authorization, uniqueness, popularity,
// save/unsave), and the recipe JSON API handlers.
package recipes

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/user/bonerecipes-go/store"
)

// SortOrder names the supported listing sort keys. An unrecognized value
// leaves the pre-sort order untouched.
type SortOrder string

const (
	SortNone           SortOrder = ""
	SortPopularityAsc  SortOrder = "popularity-asc"
	SortPopularityDesc SortOrder = "popularity-desc"
	SortNameAsc        SortOrder = "a-z"
	SortNameDesc       SortOrder = "z-a"
)

// ListParams are the four independent query parameters of a listing request.
// They apply identically to the "all recipes" and "saved recipes" views.
type ListParams struct {
	Sort       SortOrder
	DishName   string
	Categories []int64
	Page       int
}

// ParseListParams reads the listing parameters from a query string. Malformed
// or negative page numbers become page 0; malformed category ids are skipped.
func ParseListParams(q url.Values) ListParams {
	p := ListParams{
		Sort:     SortOrder(q.Get("sort")),
		DishName: q.Get("dish_name"),
	}
	for _, raw := range q["categories"] {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		p.Categories = append(p.Categories, id)
	}
	if page, err := strconv.Atoi(q.Get("page")); err == nil && page > 0 {
		p.Page = page
	}
	return p
}

// FilterSearchSort runs the first three pipeline stages in their fixed order:
// category filter, then name search, then sort. It is a pure function; the
// input slice is never mutated.
func FilterSearchSort(candidates []*store.Recipe, p ListParams) []*store.Recipe {
	recipes := filterByCategories(candidates, p.Categories)
	recipes = searchByName(recipes, p.DishName)
	return sortRecipes(recipes, p.Sort)
}

// Paginate slices out the window [page*pageSize, page*pageSize+pageSize).
// Out-of-range pages yield an empty result, never an error.
func Paginate(recipes []*store.Recipe, page, pageSize int) []*store.Recipe {
	start := page * pageSize
	if start < 0 || start >= len(recipes) {
		return []*store.Recipe{}
	}
	end := start + pageSize
	if end > len(recipes) {
		end = len(recipes)
	}
	return recipes[start:end]
}

// ApplyListing is the full pipeline: filter, search, sort, paginate.
func ApplyListing(candidates []*store.Recipe, p ListParams, pageSize int) []*store.Recipe {
	return Paginate(FilterSearchSort(candidates, p), p.Page, pageSize)
}

// filterByCategories retains recipes whose category set is a subset of the
// requested set. With no requested categories the stage is a pass-through;
// with any active filter, uncategorized recipes are excluded.
func filterByCategories(recipes []*store.Recipe, requested []int64) []*store.Recipe {
	if len(requested) == 0 {
		return recipes
	}
	requestedSet := make(map[int64]struct{}, len(requested))
	for _, id := range requested {
		requestedSet[id] = struct{}{}
	}

	var filtered []*store.Recipe
	for _, r := range recipes {
		if len(r.Categories) == 0 {
			continue
		}
		subset := true
		for _, id := range r.Categories {
			if _, ok := requestedSet[id]; !ok {
				subset = false
				break
			}
		}
		if subset {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// stripWhitespace removes every whitespace run from s. Only the emptiness
// test uses the stripped form; matching compares against the original query.
func stripWhitespace(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// searchByName retains recipes whose name contains dishName as a
// case-insensitive substring. A query that is empty after whitespace
// stripping disables the stage.
func searchByName(recipes []*store.Recipe, dishName string) []*store.Recipe {
	if stripWhitespace(dishName) == "" {
		return recipes
	}
	needle := strings.ToLower(dishName)

	var matched []*store.Recipe
	for _, r := range recipes {
		if strings.Contains(strings.ToLower(r.Name), needle) {
			matched = append(matched, r)
		}
	}
	return matched
}

// sortRecipes stable-sorts by the requested key. Name comparisons are
// case-insensitive; equal elements keep their filter/search order.
func sortRecipes(recipes []*store.Recipe, order SortOrder) []*store.Recipe {
	if order == SortNone {
		return recipes
	}

	sorted := make([]*store.Recipe, len(recipes))
	copy(sorted, recipes)

	switch order {
	case SortPopularityAsc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Popularity < sorted[j].Popularity
		})
	case SortPopularityDesc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Popularity > sorted[j].Popularity
		})
	case SortNameAsc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return strings.ToLower(sorted[i].Name) < strings.ToLower(sorted[j].Name)
		})
	case SortNameDesc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return strings.ToLower(sorted[i].Name) > strings.ToLower(sorted[j].Name)
		})
	}
	return sorted
}
