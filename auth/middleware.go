package auth

import (
	"net/http"

	"github.com/user/bonerecipes-go/apperror"
)

// CookieName is the name of the session cookie.
const CookieName = "token"

// SetSessionCookie writes the session cookie. It is HTTP-only so scripts
// cannot read it; its max-age matches the token's own expiry.
func (s *Service) SetSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.cfg.TokenDuration.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// sessionToken extracts the raw session token from the request cookie, or ""
// when the cookie is absent.
func sessionToken(r *http.Request) string {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// RequireUser is the strict resolution middleware, used to gate mutating and
// owner-only routes. A missing cookie, an undecodable token, and a token
// naming a nonexistent user are indistinguishable to the client: all three
// yield a single authentication failure.
func RequireUser(s *Service) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := s.ResolveUser(r.Context(), sessionToken(r))
			if err != nil {
				if _, ok := apperror.FromError(err); !ok {
					err = apperror.NewAuthError("authentication required", err)
				}
				WriteError(w, r, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(NewContextWithUser(r.Context(), user)))
		})
	}
}

// ErrorPresenter writes a resolution failure in the format of the surface
// the middleware is mounted on: JSON for the API, an error page for HTML.
type ErrorPresenter func(w http.ResponseWriter, r *http.Request, err error)

// OptionalUser is the lenient resolution middleware, used on routes that
// render differently for guests and members. The same three failure modes
// that RequireUser rejects resolve to "anonymous" here: the request proceeds
// without a user in context and UserFromContext reports false. A nil
// presenter falls back to the JSON error body.
func OptionalUser(s *Service, onError ErrorPresenter) func(next http.Handler) http.Handler {
	if onError == nil {
		onError = WriteError
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := s.ResolveUser(r.Context(), sessionToken(r))
			if err != nil {
				// Only database failures abort; auth failures mean "guest".
				if appErr, ok := apperror.FromError(err); ok && appErr.Type == apperror.DatabaseError {
					onError(w, r, err)
					return
				}
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(NewContextWithUser(r.Context(), user)))
		})
	}
}
