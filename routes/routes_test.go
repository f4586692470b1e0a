package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DCirincione/ASLWebsite/handlers"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(origins []string) *chi.Mux {
	router := chi.NewRouter()
	SetupRoutes(
		router,
		origins,
		"",
		handlers.NewPageHandler(nil),
		handlers.NewAuthHandler(nil, nil),
		handlers.NewEventHandler(nil),
		handlers.NewSportHandler(nil),
		handlers.NewFriendHandler(nil),
		handlers.NewAccountHandler(nil),
		handlers.NewProfileHandler(nil),
		handlers.NewRegistrationHandler(nil),
	)
	return router
}

// The default config allows any origin; that only works in browsers when the
// response is not credentialed.
func TestPreflightWildcardOriginIsNotCredentialed(t *testing.T) {
	router := newTestRouter([]string{"*"})

	req := httptest.NewRequest(http.MethodOptions, "/events", nil)
	req.Header.Set("Origin", "https://frontend.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestPreflightExplicitOrigin(t *testing.T) {
	router := newTestRouter([]string{"https://frontend.example.com"})

	req := httptest.NewRequest(http.MethodOptions, "/events", nil)
	req.Header.Set("Origin", "https://frontend.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "https://frontend.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestMemberAreaRejectsAnonymousRequests(t *testing.T) {
	router := newTestRouter([]string{"*"})

	req := httptest.NewRequest(http.MethodGet, "/account", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), `"redirect":"/account"`)
}
