package handlers

import (
	"errors"
	"net/http"

	"github.com/DCirincione/ASLWebsite/middleware"
	"github.com/DCirincione/ASLWebsite/services"
	"github.com/go-chi/chi/v5"
)

type EventHandler struct {
	eventService services.EventService
}

func NewEventHandler(eventService services.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.SessionFromContext(r.Context())

	events, err := h.eventService.ListEvents(r.Context(), sess)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"events": events}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *EventHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")
	if eventID == "" {
		badRequestResponse(w, r, errors.New("event id is required"))
		return
	}

	sess, _ := middleware.SessionFromContext(r.Context())
	if err := h.eventService.SignUp(r.Context(), sess, eventID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"message": "signed up"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *EventHandler) MyEvents(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.SessionFromContext(r.Context())

	events, err := h.eventService.MyEvents(r.Context(), sess)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"events": events}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
