// BoneRecipes is a recipe sharing service. It serves the classic server
// rendered pages under / and a JSON API under /api, both backed by the
// same services and the same cookie session.
//
// @title BoneRecipes API
// @version 0.0.1
// @description Recipe sharing service with cookie sessions, saved recipes and a popularity counter.
// @BasePath /
// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name token
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/user/bonerecipes-go/apperror"
	"github.com/user/bonerecipes-go/auth"
	"github.com/user/bonerecipes-go/config"
	"github.com/user/bonerecipes-go/db"
	_ "github.com/user/bonerecipes-go/docs" // generated Swagger docs
	"github.com/user/bonerecipes-go/recipes"
	"github.com/user/bonerecipes-go/store"
	"github.com/user/bonerecipes-go/web"
)

func main() {
	// A missing .env file is fine outside development.
	if err := godotenv.Load(); err != nil {
		logrus.Warnf(".env file not found or unreadable: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	pool, err := db.NewPool(cfg.DB)
	if err != nil {
		logrus.Fatalf("Failed to create database pool: %v", err)
	}
	defer pool.Close()

	if err := db.RunMigrations(cfg.DB, "./migrations"); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}

	// Manual dependency injection: the store talks to Postgres, the
	// services own the business rules, the handlers own HTTP.
	st := store.NewPostgres(pool)

	authService := auth.NewService(st, *cfg.Auth, *cfg.Settings)
	authHandlers := auth.NewHandlers(authService)

	recipeService := recipes.NewService(st, st, *cfg.Settings)
	recipeHandlers := recipes.NewHandlers(recipeService)

	webHandlers, err := web.NewHandlers(authService, recipeService, *cfg.Settings)
	if err != nil {
		logrus.Fatalf("Failed to build page handlers: %v", err)
	}

	r := chi.NewRouter()

	// Chi requires all middleware to be registered before any routes.
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Panic recovery that answers with the standard error body.
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			defer func() {
				if rvr := recover(); rvr != nil {
					logrus.Errorf("Panic: %+v", rvr)
					writeError(ww, apperror.NewInternalError("internal server error", nil))
				}
			}()
			next.ServeHTTP(ww, r)
		})
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// JSON API. The auth endpoints resolve the session themselves, the
	// recipe endpoints split into a public and a session-only group.
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", authHandlers.HandleRegister())
		r.Post("/login", authHandlers.HandleLogin())
		r.Get("/logout", authHandlers.HandleLogout())

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireUser(authService))
			r.Get("/delete-my-account", authHandlers.HandleDeleteAccount())
		})
	})

	r.Route("/api/recipes", func(r chi.Router) {
		r.Get("/menu", recipeHandlers.HandleMenu())
		r.Post("/menu", recipeHandlers.HandleMenu())
		r.Get("/recipe/{id}", recipeHandlers.HandleGetRecipe())

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireUser(authService))
			r.Get("/saved-recipes/", recipeHandlers.HandleSavedRecipes())
			r.Post("/saved-recipes/", recipeHandlers.HandleSavedRecipes())
			r.Post("/create-recipe", recipeHandlers.HandleCreateRecipe())
			r.Post("/update-recipe", recipeHandlers.HandleUpdateRecipe())
			r.Get("/delete-recipe/{id}", recipeHandlers.HandleDeleteRecipe())
			r.Get("/save-recipe/{id}", recipeHandlers.HandleSaveRecipe())
			r.Get("/unsave-recipe/{id}", recipeHandlers.HandleUnsaveRecipe())
		})
	})

	// HTML pages. Every page runs behind the optional session
	// middleware so handlers can render for guests and members alike.
	r.Group(func(r chi.Router) {
		r.Use(auth.OptionalUser(authService, webHandlers.PresentError))

		r.Get("/menu", webHandlers.HandleMenu())
		r.Post("/menu", webHandlers.HandleMenu())
		r.Get("/recipe/{id}", webHandlers.HandleRecipe())
		r.Post("/recipe/{id}", webHandlers.HandleRecipe())

		r.Get("/create-recipe", webHandlers.HandleCreateRecipe())
		r.Post("/create-recipe-final", webHandlers.HandleCreateRecipeFinal())
		r.Get("/update-recipe/{id}", webHandlers.HandleUpdateRecipe())
		r.Post("/update-recipe-final", webHandlers.HandleUpdateRecipeFinal())
		r.Get("/delete-recipe/{id}", webHandlers.HandleDeleteRecipe())
		r.Get("/delete-recipe-final/{id}", webHandlers.HandleDeleteRecipeFinal())
		r.Get("/save-recipe/{id}", webHandlers.HandleSaveRecipe())
		r.Get("/unsave-recipe/{id}", webHandlers.HandleUnsaveRecipe())

		r.Get("/register", webHandlers.HandleRegister())
		r.Post("/register-final", webHandlers.HandleRegisterFinal())
		r.Get("/login", webHandlers.HandleLogin())
		r.Post("/login-final", webHandlers.HandleLoginFinal())
		r.Get("/logout", webHandlers.HandleLogout())
		r.Get("/delete-my-account", webHandlers.HandleDeleteMyAccount())
		r.Get("/delete-my-account-final", webHandlers.HandleDeleteMyAccountFinal())

		r.Get("/about-us", webHandlers.HandleAboutUs())
		r.Get("/message", webHandlers.HandleMessage())
	})

	addr := fmt.Sprintf(":%s", cfg.Server.Port)

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logrus.Infof("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.Fatalf("Server shutdown failed: %v", err)
	}
	logrus.Info("Server stopped gracefully")
}

// writeError is a local helper for the panic recovery middleware.
func writeError(w http.ResponseWriter, appErr *apperror.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode())
	if err := json.NewEncoder(w).Encode(appErr.ToResponse()); err != nil {
		http.Error(w, `{"error":"Failed to encode error response"}`, http.StatusInternalServerError)
	}
}
