package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DCirincione/ASLWebsite/backend"
	"github.com/DCirincione/ASLWebsite/models"
	"github.com/DCirincione/ASLWebsite/services"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEventService struct {
	views     []services.EventView
	signUpErr error
	signedUp  []string
}

func (s *stubEventService) ListEvents(_ context.Context, _ *backend.Session) ([]services.EventView, error) {
	return s.views, nil
}

func (s *stubEventService) HomeBuckets(_ context.Context, _ *backend.Session) (*services.EventBuckets, error) {
	return &services.EventBuckets{}, nil
}

func (s *stubEventService) SignUp(_ context.Context, _ *backend.Session, eventID string) error {
	if s.signUpErr != nil {
		return s.signUpErr
	}
	s.signedUp = append(s.signedUp, eventID)
	return nil
}

func (s *stubEventService) MyEvents(_ context.Context, _ *backend.Session) ([]services.EventView, error) {
	return s.views, nil
}

func eventRouter(h *EventHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/events", h.List)
	r.Post("/events/{id}/signup", h.SignUp)
	return r
}

func TestEventListReturnsViews(t *testing.T) {
	start := "2024-03-15"
	stub := &stubEventService{views: []services.EventView{
		services.NewEventView(models.Event{ID: "e1", Title: "3v3 Basketball Tournament", StartDate: &start}, false),
	}}
	handler := NewEventHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	rec := httptest.NewRecorder()
	eventRouter(handler).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Events []services.EventView `json:"events"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Events, 1)
	assert.Equal(t, "3v3 Basketball Tournament", body.Events[0].Title)
	assert.Equal(t, "Mar 15", body.Events[0].DateLabel)
}

func TestEventSignUpRecordsEvent(t *testing.T) {
	stub := &stubEventService{}
	handler := NewEventHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/events/e1/signup", nil)
	rec := httptest.NewRecorder()
	eventRouter(handler).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"e1"}, stub.signedUp)
}

func TestEventSignUpWithoutSessionRedirects(t *testing.T) {
	stub := &stubEventService{signUpErr: services.ErrAuthenticationRequired}
	handler := NewEventHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/events/e1/signup", nil)
	rec := httptest.NewRecorder()
	eventRouter(handler).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "/account", body["redirect"])
}

func TestEventSignUpBackendUnavailable(t *testing.T) {
	stub := &stubEventService{signUpErr: backend.ErrNotConfigured}
	handler := NewEventHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/events/e1/signup", nil)
	rec := httptest.NewRecorder()
	eventRouter(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
