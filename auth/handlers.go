// This file holds the HTTP handlers of the auth JSON API, plus the shared
// JSON response helpers the other API packages reuse.
package auth

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/user/bonerecipes-go/apperror"
)

// Handlers wraps the auth Service to provide HTTP handlers.
type Handlers struct {
	service *Service
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// HandleRegister godoc
// @Summary User Registration
// @Description Registers a new user and sets the session cookie.
// @Tags Auth
// @Accept json
// @Produce json
// @Param registerBody body auth.RegisterRequest true "User registration details"
// @Success 201 {object} auth.RegisterResponse "User created"
// @Failure 400 {object} apperror.ErrorResponse "Invalid input"
// @Failure 406 {object} apperror.ErrorResponse "Login or email already taken"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /api/auth/register [post]
func (h *Handlers) HandleRegister() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		user, err := h.service.Register(r.Context(), req)
		if err != nil {
			WriteError(w, r, err)
			return
		}

		// A fresh registration is also a login.
		token, _, err := h.service.IssueToken(user.ID)
		if err != nil {
			WriteError(w, r, apperror.NewInternalError("failed to issue session token", err))
			return
		}
		h.service.SetSessionCookie(w, token)

		WriteJSON(w, http.StatusCreated, RegisterResponse{Success: true, ID: user.ID, Login: user.Login})
	}
}

// HandleLogin godoc
// @Summary User Login
// @Description Verifies credentials and sets the session cookie.
// @Tags Auth
// @Accept json
// @Produce json
// @Param loginBody body auth.LoginRequest true "User login credentials"
// @Success 200 {object} auth.LoginResponse "Login successful"
// @Failure 400 {object} apperror.ErrorResponse "Invalid input"
// @Failure 401 {object} apperror.ErrorResponse "Invalid credentials"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /api/auth/login [post]
func (h *Handlers) HandleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		if req.Login == "" || req.Password == "" {
			WriteError(w, r, apperror.NewBadRequestError("login and password are required", nil))
			return
		}

		user, err := h.service.Authenticate(r.Context(), req.Login, req.Password)
		if err != nil {
			WriteError(w, r, err)
			return
		}

		token, _, err := h.service.IssueToken(user.ID)
		if err != nil {
			WriteError(w, r, apperror.NewInternalError("failed to issue session token", err))
			return
		}
		h.service.SetSessionCookie(w, token)

		WriteJSON(w, http.StatusOK, LoginResponse{User: user.Login, LoggedIn: true})
	}
}

// HandleLogout godoc
// @Summary User Logout
// @Description Clears the session cookie.
// @Tags Auth
// @Produce json
// @Success 200 {object} auth.LogoutResponse "Logged out"
// @Router /api/auth/logout [get]
func (h *Handlers) HandleLogout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ClearSessionCookie(w)
		WriteJSON(w, http.StatusOK, LogoutResponse{LoggedOut: true})
	}
}

// HandleDeleteAccount godoc
// @Summary Delete Own Account
// @Description Deletes the authenticated user's account. Their recipes are kept.
// @Tags Auth
// @Produce json
// @Success 200 {object} auth.AccountDeletedResponse "Account deleted"
// @Failure 401 {object} apperror.ErrorResponse "Not authenticated"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /api/auth/delete-my-account [get]
func (h *Handlers) HandleDeleteAccount() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			WriteError(w, r, apperror.NewAuthError("authentication required", nil))
			return
		}

		if err := h.service.DeleteAccount(r.Context(), user.ID); err != nil {
			WriteError(w, r, err)
			return
		}

		ClearSessionCookie(w)
		WriteJSON(w, http.StatusOK, AccountDeletedResponse{AccountDeleted: true})
	}
}

// WriteJSON serializes data to JSON and writes it with the given status.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, `{"error":"failed to encode response"}`, http.StatusInternalServerError)
		}
	}
}

// WriteError converts any error into the standardized apperror JSON shape.
// Non-AppError values are wrapped as internal errors so nothing leaks raw.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperror.FromError(err)
	if !ok {
		appErr = apperror.NewInternalError("an unexpected error occurred", err)
	}

	if appErr.StatusCode() >= http.StatusInternalServerError {
		logrus.WithError(appErr).WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).Error("request failed")
	}

	WriteJSON(w, appErr.StatusCode(), appErr.ToResponse())
}
