package web

import (
	"fmt"
	"html/template"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/user/bonerecipes-go/apperror"
	"github.com/user/bonerecipes-go/auth"
	"github.com/user/bonerecipes-go/config"
	"github.com/user/bonerecipes-go/recipes"
	"github.com/user/bonerecipes-go/store"
)

var loginWhitespace = regexp.MustCompile(`\s`)

// Handlers renders the server side HTML pages. All pages run behind the
// optional session middleware, so authorization failures render an error
// page instead of a bare JSON body.
type Handlers struct {
	auth     *auth.Service
	recipes  *recipes.Service
	settings config.AppSettings
	pages    map[string]*template.Template
}

// NewHandlers parses the embedded templates and returns the page
// handler set.
func NewHandlers(authService *auth.Service, recipeService *recipes.Service, settings config.AppSettings) (*Handlers, error) {
	pages, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	return &Handlers{
		auth:     authService,
		recipes:  recipeService,
		settings: settings,
		pages:    pages,
	}, nil
}

// render executes the named page template. A failure after the header
// has been written can only be logged.
func (h *Handlers) render(w http.ResponseWriter, status int, name string, data interface{}) {
	t, ok := h.pages[name]
	if !ok {
		logrus.Errorf("web: unknown template %q", name)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := t.Execute(w, data); err != nil {
		logrus.Errorf("web: rendering %q: %v", name, err)
	}
}

// renderError shows the error page with the given title, message and
// status code.
func (h *Handlers) renderError(w http.ResponseWriter, user *store.User, title, content string, code int) {
	h.render(w, code, "error", errorPage{
		basePage: basePage{Title: title, User: user},
		Content:  content,
		Code:     code,
	})
}

// renderAppError maps a service error onto the error page, reusing the
// status code and message of the underlying AppError.
func (h *Handlers) renderAppError(w http.ResponseWriter, user *store.User, title string, err error) {
	appErr, ok := apperror.FromError(err)
	if !ok {
		appErr = apperror.NewInternalError("internal server error", err)
	}
	if appErr.StatusCode() >= http.StatusInternalServerError {
		logrus.Errorf("web: %v", err)
	}
	h.renderError(w, user, title, appErr.Message, appErr.StatusCode())
}

// PresentError renders a session resolution failure as an HTML error
// page. It is handed to the optional session middleware so page
// requests never receive a JSON error body.
func (h *Handlers) PresentError(w http.ResponseWriter, r *http.Request, err error) {
	h.renderAppError(w, nil, "User error", err)
}

// requireUser renders the standard "must be logged in" page when the
// request carries no session. Returns the user and whether one exists.
func (h *Handlers) requireUser(w http.ResponseWriter, r *http.Request, content string) (*store.User, bool) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.renderError(w, nil, "User error", content, http.StatusForbidden)
		return nil, false
	}
	return user, true
}

func currentUser(r *http.Request) *store.User {
	user, _ := auth.UserFromContext(r.Context())
	return user
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// formInt64s parses the repeated values of a form field as integers,
// silently skipping anything unparseable.
func formInt64s(values []string) []int64 {
	var out []int64
	for _, v := range values {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			out = append(out, n)
		}
	}
	return out
}

// HandleMenu renders the recipe listing, or the current user's saved
// recipes when ?saved=true. The filter, search, sort and page
// parameters mirror the JSON menu endpoint.
func (h *Handlers) HandleMenu() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := currentUser(r)
		q := r.URL.Query()
		saved, _ := strconv.ParseBool(strings.ToLower(q.Get("saved")))
		params := recipes.ParseListParams(q)

		if saved && user == nil {
			h.renderError(w, nil, "User error",
				"You must be logged in to view saved recipes.", http.StatusForbidden)
			return
		}

		var (
			page  []*store.Recipe
			total int
			err   error
		)
		if saved {
			page, total, err = h.recipes.SavedMenu(r.Context(), user.ID, params)
		} else {
			page, total, err = h.recipes.Menu(r.Context(), params)
		}
		if err != nil {
			h.renderAppError(w, user, "Recipe error", err)
			return
		}

		categories, err := h.recipes.Categories(r.Context())
		if err != nil {
			h.renderAppError(w, user, "Recipe error", err)
			return
		}

		data := menuPage{
			basePage:           basePage{Title: h.menuTitle(saved, params, categories), User: user},
			Menu:               page,
			Categories:         categories,
			Page:               params.Page,
			PrevQuery:          listingQuery(params, saved, params.Page-1),
			NextQuery:          listingQuery(params, saved, params.Page+1),
			HasNext:            (params.Page+1)*h.settings.PageSize < total,
			Sort:               string(params.Sort),
			DishName:           params.DishName,
			Saved:              saved,
			SelectedCategories: params.Categories,
		}
		h.render(w, http.StatusOK, "menu", data)
	}
}

// menuTitle reproduces the listing headline. A search query wins over a
// category filter, which wins over the plain listing.
func (h *Handlers) menuTitle(saved bool, params recipes.ListParams, categories []*store.Category) string {
	if strings.Join(strings.Fields(params.DishName), "") != "" {
		title := params.DishName + " search results"
		if saved {
			title += " in saved recipes"
		}
		return title
	}

	if len(params.Categories) > 0 {
		var names []string
		for _, id := range params.Categories {
			for _, c := range categories {
				if c.ID == id {
					names = append(names, c.Name)
					break
				}
			}
		}
		noun := "category"
		if len(params.Categories) > 1 {
			noun = "categories"
		}
		prefix := "Recipes"
		if saved {
			prefix = "Saved recipes"
		}
		return fmt.Sprintf("%s with %s %s", prefix, noun, strings.Join(names, ", "))
	}

	if saved {
		return "Saved recipes"
	}
	return "All recipes"
}

// HandleRecipe renders one recipe and counts the view towards its
// popularity.
func (h *Handlers) HandleRecipe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := currentUser(r)

		id, err := pathID(r)
		if err != nil {
			h.renderError(w, user, "Recipe error", "Invalid recipe id.", http.StatusBadRequest)
			return
		}

		recipe, err := h.recipes.Get(r.Context(), id)
		if err != nil {
			if apperror.IsNotFound(err) {
				h.renderError(w, user, "Recipe error",
					fmt.Sprintf("Recipe with ID %d does not exist.", id), http.StatusNotFound)
				return
			}
			h.renderAppError(w, user, "Recipe error", err)
			return
		}

		categories, err := h.recipes.Categories(r.Context())
		if err != nil {
			h.renderAppError(w, user, "Recipe error", err)
			return
		}

		h.render(w, http.StatusOK, "recipe", recipePage{
			basePage:   basePage{Title: "Recipe " + recipe.Name, User: user},
			Recipe:     recipe,
			Categories: categories,
		})
	}
}

// HandleCreateRecipe renders the new recipe form.
func (h *Handlers) HandleCreateRecipe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := h.requireUser(w, r, "You must be logged in to access this page (/create-recipe).")
		if !ok {
			return
		}

		categories, err := h.recipes.Categories(r.Context())
		if err != nil {
			h.renderAppError(w, user, "Recipe error", err)
			return
		}

		h.render(w, http.StatusOK, "create_recipe", recipeFormPage{
			basePage:   basePage{Title: "Create new recipe", User: user},
			Categories: categories,
		})
	}
}

// HandleCreateRecipeFinal creates the recipe from the submitted form
// and redirects to its page.
func (h *Handlers) HandleCreateRecipeFinal() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := h.requireUser(w, r, "You must be logged in to access this page (/create-recipe-final).")
		if !ok {
			return
		}

		if err := r.ParseForm(); err != nil {
			h.renderError(w, user, "Recipe error", "Invalid form data.", http.StatusBadRequest)
			return
		}

		in := recipes.RecipeInput{
			Name:        r.PostFormValue("name"),
			Description: r.PostFormValue("description"),
			Recipe:      r.PostFormValue("recipe"),
			Image:       r.PostFormValue("image"),
			Categories:  formInt64s(r.PostForm["categories"]),
		}

		recipe, err := h.recipes.Create(r.Context(), user, in)
		if err != nil {
			h.renderAppError(w, user, "Recipe error", err)
			return
		}

		http.Redirect(w, r, fmt.Sprintf("/recipe/%d", recipe.ID), http.StatusSeeOther)
	}
}

// HandleUpdateRecipe renders the edit form, after checking the recipe
// exists and the user may modify it.
func (h *Handlers) HandleUpdateRecipe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := h.requireUser(w, r, "You must be logged in to access this page (/update-recipe).")
		if !ok {
			return
		}

		id, err := pathID(r)
		if err != nil {
			h.renderError(w, user, "Recipe error", "Invalid recipe id.", http.StatusBadRequest)
			return
		}

		recipe, err := h.recipes.AuthorizeModify(r.Context(), user, id, "edit")
		if err != nil {
			h.renderAppError(w, user, "Recipe error", err)
			return
		}

		categories, err := h.recipes.Categories(r.Context())
		if err != nil {
			h.renderAppError(w, user, "Recipe error", err)
			return
		}

		h.render(w, http.StatusOK, "update_recipe", recipeFormPage{
			basePage:   basePage{Title: fmt.Sprintf("Update recipe #%d", id), User: user},
			Recipe:     recipe,
			Categories: categories,
		})
	}
}

// HandleUpdateRecipeFinal applies the submitted edit and redirects to
// the recipe page.
func (h *Handlers) HandleUpdateRecipeFinal() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := h.requireUser(w, r, "You must be logged in to access this page (/update-recipe-final).")
		if !ok {
			return
		}

		if err := r.ParseForm(); err != nil {
			h.renderError(w, user, "Recipe error", "Invalid form data.", http.StatusBadRequest)
			return
		}

		id, err := strconv.ParseInt(r.PostFormValue("recipe_id"), 10, 64)
		if err != nil {
			h.renderError(w, user, "Recipe error", "Invalid recipe id.", http.StatusBadRequest)
			return
		}

		in := recipes.RecipeInput{
			Name:        r.PostFormValue("name"),
			Description: r.PostFormValue("description"),
			Recipe:      r.PostFormValue("recipe"),
			Image:       r.PostFormValue("image"),
			Categories:  formInt64s(r.PostForm["categories"]),
		}

		if _, err := h.recipes.Update(r.Context(), user, id, in); err != nil {
			h.renderAppError(w, user, "Recipe error", err)
			return
		}

		http.Redirect(w, r, fmt.Sprintf("/recipe/%d", id), http.StatusSeeOther)
	}
}

// HandleDeleteRecipe renders the delete confirmation page.
func (h *Handlers) HandleDeleteRecipe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := h.requireUser(w, r, "You must be logged in to delete recipes.")
		if !ok {
			return
		}

		id, err := pathID(r)
		if err != nil {
			h.renderError(w, user, "Recipe error", "Invalid recipe id.", http.StatusBadRequest)
			return
		}

		recipe, err := h.recipes.AuthorizeModify(r.Context(), user, id, "delete")
		if err != nil {
			h.renderAppError(w, user, "Recipe error", err)
			return
		}

		h.render(w, http.StatusOK, "delete_recipe", deleteRecipePage{
			basePage: basePage{Title: "Delete recipe " + recipe.Name, User: user},
			RecipeID: id,
		})
	}
}

// HandleDeleteRecipeFinal deletes the recipe and redirects to the menu.
func (h *Handlers) HandleDeleteRecipeFinal() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := h.requireUser(w, r, "You must be logged in to delete recipes.")
		if !ok {
			return
		}

		id, err := pathID(r)
		if err != nil {
			h.renderError(w, user, "Recipe error", "Invalid recipe id.", http.StatusBadRequest)
			return
		}

		if err := h.recipes.Delete(r.Context(), user, id); err != nil {
			h.renderAppError(w, user, "Recipe error", err)
			return
		}

		http.Redirect(w, r, "/menu", http.StatusSeeOther)
	}
}

// HandleSaveRecipe adds the recipe to the user's saved set and lands on
// the saved listing.
func (h *Handlers) HandleSaveRecipe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := h.requireUser(w, r, "You must be logged in to save recipes.")
		if !ok {
			return
		}

		id, err := pathID(r)
		if err != nil {
			h.renderError(w, user, "Recipe error", "Invalid recipe id.", http.StatusBadRequest)
			return
		}

		if err := h.recipes.Save(r.Context(), user, id); err != nil {
			h.renderAppError(w, user, "Recipe error", err)
			return
		}

		http.Redirect(w, r, "/menu?saved=true", http.StatusSeeOther)
	}
}

// HandleUnsaveRecipe removes the recipe from the user's saved set.
func (h *Handlers) HandleUnsaveRecipe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := h.requireUser(w, r, "You must be logged in to unsave recipes.")
		if !ok {
			return
		}

		id, err := pathID(r)
		if err != nil {
			h.renderError(w, user, "Recipe error", "Invalid recipe id.", http.StatusBadRequest)
			return
		}

		if err := h.recipes.Unsave(r.Context(), user, id); err != nil {
			h.renderAppError(w, user, "Recipe error", err)
			return
		}

		http.Redirect(w, r, "/menu?saved=true", http.StatusSeeOther)
	}
}

// HandleRegister renders the registration form. Logged in visitors are
// sent back to the menu.
func (h *Handlers) HandleRegister() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if currentUser(r) != nil {
			http.Redirect(w, r, "/menu", http.StatusSeeOther)
			return
		}

		h.render(w, http.StatusOK, "register", registerPage{
			basePage:          basePage{Title: "Register"},
			MinPasswordLength: h.settings.MinPasswordLength,
			MaxNotesLength:    h.settings.MaxNotesLength,
		})
	}
}

// HandleRegisterFinal creates the account, starts a session and
// redirects to the menu.
func (h *Handlers) HandleRegisterFinal() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := currentUser(r)

		if err := r.ParseForm(); err != nil {
			h.renderError(w, user, "User error", "Invalid form data.", http.StatusBadRequest)
			return
		}

		// The whitespace check runs even for logged in visitors, so a
		// bad login name is reported before the redirect.
		login := r.PostFormValue("login")
		if loginWhitespace.MatchString(login) {
			h.renderError(w, user, "User error",
				"Login cannot contain spaces.", http.StatusNotAcceptable)
			return
		}

		if user != nil {
			http.Redirect(w, r, "/menu", http.StatusSeeOther)
			return
		}

		created, err := h.auth.Register(r.Context(), auth.RegisterRequest{
			Name:     r.PostFormValue("name"),
			Login:    login,
			Email:    r.PostFormValue("email"),
			Password: r.PostFormValue("password"),
			Notes:    r.PostFormValue("notes"),
		})
		if err != nil {
			h.renderAppError(w, nil, "User error", err)
			return
		}

		token, _, err := h.auth.IssueToken(created.ID)
		if err != nil {
			h.renderAppError(w, nil, "User error", err)
			return
		}

		h.auth.SetSessionCookie(w, token)
		http.Redirect(w, r, "/menu", http.StatusSeeOther)
	}
}

// HandleLogin renders the login form. Logged in visitors are sent back
// to the menu.
func (h *Handlers) HandleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if currentUser(r) != nil {
			http.Redirect(w, r, "/menu", http.StatusSeeOther)
			return
		}

		h.render(w, http.StatusOK, "login", loginPage{
			basePage:          basePage{Title: "Login"},
			MinPasswordLength: h.settings.MinPasswordLength,
		})
	}
}

// HandleLoginFinal authenticates the submitted credentials and starts a
// session. An already logged in visitor just bounces back to the menu.
func (h *Handlers) HandleLoginFinal() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if currentUser(r) == nil {
			if err := r.ParseForm(); err != nil {
				h.renderError(w, nil, "User error", "Invalid form data.", http.StatusBadRequest)
				return
			}

			user, err := h.auth.Authenticate(r.Context(),
				r.PostFormValue("login"), r.PostFormValue("password"))
			if err != nil {
				h.renderAppError(w, nil, "User error", err)
				return
			}

			token, _, err := h.auth.IssueToken(user.ID)
			if err != nil {
				h.renderAppError(w, nil, "User error", err)
				return
			}
			h.auth.SetSessionCookie(w, token)
		}

		http.Redirect(w, r, "/menu", http.StatusSeeOther)
	}
}

// HandleLogout drops the session cookie and redirects to the menu.
func (h *Handlers) HandleLogout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auth.ClearSessionCookie(w)
		http.Redirect(w, r, "/menu", http.StatusSeeOther)
	}
}

// HandleDeleteMyAccount renders the account deletion confirmation page.
func (h *Handlers) HandleDeleteMyAccount() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := h.requireUser(w, r, "You must be logged in to access this page (/delete-my-account).")
		if !ok {
			return
		}

		h.render(w, http.StatusOK, "delete_my_account", basePage{
			Title: "Delete my account",
			User:  user,
		})
	}
}

// HandleDeleteMyAccountFinal deletes the account, ends the session and
// redirects to the menu.
func (h *Handlers) HandleDeleteMyAccountFinal() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := h.requireUser(w, r, "You must be logged in to access this page (/delete-my-account-final).")
		if !ok {
			return
		}

		if err := h.auth.DeleteAccount(r.Context(), user.ID); err != nil {
			h.renderAppError(w, user, "User error", err)
			return
		}

		auth.ClearSessionCookie(w)
		http.Redirect(w, r, "/menu", http.StatusSeeOther)
	}
}

// HandleAboutUs renders the static about page.
func (h *Handlers) HandleAboutUs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.render(w, http.StatusOK, "about_us", basePage{
			Title: "About us",
			User:  currentUser(r),
		})
	}
}

// HandleMessage renders the message board form for logged in users.
func (h *Handlers) HandleMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := h.requireUser(w, r, "You must be logged in to access this page (/message).")
		if !ok {
			return
		}

		h.render(w, http.StatusOK, "message_to_all", basePage{
			Title: "Write a message",
			User:  user,
		})
	}
}
