package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/url"
	"strconv"

	"github.com/user/bonerecipes-go/recipes"
	"github.com/user/bonerecipes-go/store"
)

//go:embed templates/*.html
var templateFS embed.FS

// pageNames lists every page template that renders inside the shared layout.
var pageNames = []string{
	"menu",
	"recipe",
	"create_recipe",
	"update_recipe",
	"delete_recipe",
	"register",
	"login",
	"delete_my_account",
	"about_us",
	"message_to_all",
	"error",
}

// templateFuncs are helpers available to every page template.
var templateFuncs = template.FuncMap{
	// hasID reports whether id is present in ids. Used to mark
	// checked category boxes and to render a recipe's category names.
	"hasID": func(ids []int64, id int64) bool {
		for _, v := range ids {
			if v == id {
				return true
			}
		}
		return false
	},
}

// parseTemplates builds one executable template per page, each page
// combined with the shared layout so every response carries the same
// chrome. Returns an error if any template fails to parse.
func parseTemplates() (map[string]*template.Template, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.New("layout.html").Funcs(templateFuncs).ParseFS(
			templateFS,
			"templates/layout.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
		pages[name] = t
	}
	return pages, nil
}

// basePage carries the fields the layout needs on every page.
type basePage struct {
	Title string
	User  *store.User
}

// errorPage renders a human readable error with its HTTP status code.
type errorPage struct {
	basePage
	Content string
	Code    int
}

// menuPage backs the recipe listing with everything the filter form
// needs to reproduce the current query. PrevQuery and NextQuery are
// full query strings so the page links keep the active filter, search
// and sort.
type menuPage struct {
	basePage
	Menu               []*store.Recipe
	Categories         []*store.Category
	Page               int
	PrevQuery          template.URL
	NextQuery          template.URL
	HasNext            bool
	Sort               string
	DishName           string
	Saved              bool
	SelectedCategories []int64
}

// listingQuery encodes the complete query string for a listing link:
// the active sort, search, category filter and saved flag, plus the
// target page. Values.Encode output is already URL-escaped, so the
// result is safe to mark as a URL.
func listingQuery(p recipes.ListParams, saved bool, page int) template.URL {
	q := url.Values{}
	if p.Sort != recipes.SortNone {
		q.Set("sort", string(p.Sort))
	}
	if p.DishName != "" {
		q.Set("dish_name", p.DishName)
	}
	for _, id := range p.Categories {
		q.Add("categories", strconv.FormatInt(id, 10))
	}
	if saved {
		q.Set("saved", "true")
	}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	return template.URL(q.Encode())
}

type recipePage struct {
	basePage
	Recipe     *store.Recipe
	Categories []*store.Category
}

// recipeFormPage serves both the create form (Recipe is nil) and the
// update form (Recipe holds the current values).
type recipeFormPage struct {
	basePage
	Recipe     *store.Recipe
	Categories []*store.Category
}

type deleteRecipePage struct {
	basePage
	RecipeID int64
}

type registerPage struct {
	basePage
	MinPasswordLength int
	MaxNotesLength    int
}

type loginPage struct {
	basePage
	MinPasswordLength int
}
