package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/bonerecipes-go/config"
	"github.com/user/bonerecipes-go/store"
)

// brokenUserStore simulates a database outage during session resolution.
type brokenUserStore struct {
	*fakeUserStore
}

func (b *brokenUserStore) GetUserByID(_ context.Context, _ int64) (*store.User, error) {
	return nil, errors.New("connection refused")
}

func sessionRequest(token string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/menu", nil)
	if token != "" {
		r.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	}
	return r
}

// nextRecorder records whether the middleware let the request through and
// which user, if any, arrived in the context.
type nextRecorder struct {
	called  bool
	user    *store.User
	hasUser bool
}

func (n *nextRecorder) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n.called = true
		n.user, n.hasUser = UserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireUserRejects(t *testing.T) {
	alice := &store.User{ID: 7, Login: "alice"}
	svc, us := newTestService(alice)

	deletedToken, _, err := svc.IssueToken(alice.ID)
	require.NoError(t, err)
	require.NoError(t, us.DeleteUser(context.Background(), alice.ID))

	cases := []struct {
		name  string
		token string
	}{
		{"no cookie", ""},
		{"garbage cookie", "not-a-token"},
		{"token for a deleted user", deletedToken},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			next := &nextRecorder{}
			rec := httptest.NewRecorder()

			RequireUser(svc)(next.handler()).ServeHTTP(rec, sessionRequest(tc.token))

			// All three failure modes collapse into the same 401.
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), "authentication required")
			assert.False(t, next.called)
		})
	}
}

func TestRequireUserPassesValidSession(t *testing.T) {
	alice := &store.User{ID: 7, Login: "alice"}
	svc, _ := newTestService(alice)

	token, _, err := svc.IssueToken(alice.ID)
	require.NoError(t, err)

	next := &nextRecorder{}
	rec := httptest.NewRecorder()

	RequireUser(svc)(next.handler()).ServeHTTP(rec, sessionRequest(token))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.True(t, next.called)
	require.True(t, next.hasUser)
	assert.Equal(t, alice.ID, next.user.ID)
}

func TestOptionalUserResolvesAnonymous(t *testing.T) {
	alice := &store.User{ID: 7, Login: "alice"}
	svc, us := newTestService(alice)

	deletedToken, _, err := svc.IssueToken(alice.ID)
	require.NoError(t, err)
	require.NoError(t, us.DeleteUser(context.Background(), alice.ID))

	cases := []struct {
		name  string
		token string
	}{
		{"no cookie", ""},
		{"garbage cookie", "not-a-token"},
		{"token for a deleted user", deletedToken},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			next := &nextRecorder{}
			rec := httptest.NewRecorder()

			OptionalUser(svc, nil)(next.handler()).ServeHTTP(rec, sessionRequest(tc.token))

			// The request proceeds as a guest instead of failing.
			assert.Equal(t, http.StatusOK, rec.Code)
			require.True(t, next.called)
			assert.False(t, next.hasUser)
		})
	}
}

func TestOptionalUserResolvesMember(t *testing.T) {
	alice := &store.User{ID: 7, Login: "alice"}
	svc, _ := newTestService(alice)

	token, _, err := svc.IssueToken(alice.ID)
	require.NoError(t, err)

	next := &nextRecorder{}
	rec := httptest.NewRecorder()

	OptionalUser(svc, nil)(next.handler()).ServeHTTP(rec, sessionRequest(token))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.True(t, next.hasUser)
	assert.Equal(t, alice.ID, next.user.ID)
}

func TestOptionalUserDatabaseFailure(t *testing.T) {
	alice := &store.User{ID: 7, Login: "alice"}
	us := newFakeUserStore(alice)
	settings := config.AppSettings{PageSize: 10, MinPasswordLength: 8, MaxNotesLength: 500}
	svc := NewService(&brokenUserStore{us}, testAuthConfig(), settings)

	token, _, err := svc.IssueToken(alice.ID)
	require.NoError(t, err)

	t.Run("uses the injected presenter", func(t *testing.T) {
		next := &nextRecorder{}
		rec := httptest.NewRecorder()
		presented := false
		presenter := func(w http.ResponseWriter, r *http.Request, err error) {
			presented = true
			w.WriteHeader(http.StatusInternalServerError)
		}

		OptionalUser(svc, presenter)(next.handler()).ServeHTTP(rec, sessionRequest(token))

		assert.True(t, presented)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.False(t, next.called, "a database outage must not resolve to a guest")
	})

	t.Run("nil presenter falls back to JSON", func(t *testing.T) {
		next := &nextRecorder{}
		rec := httptest.NewRecorder()

		OptionalUser(svc, nil)(next.handler()).ServeHTTP(rec, sessionRequest(token))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.False(t, next.called)
	})
}
