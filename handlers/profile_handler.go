package handlers

import (
	"errors"
	"net/http"

	"github.com/DCirincione/ASLWebsite/middleware"
	"github.com/DCirincione/ASLWebsite/services"
	"github.com/go-chi/chi/v5"
)

type ProfileHandler struct {
	profileService services.ProfileService
}

func NewProfileHandler(profileService services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

func (h *ProfileHandler) PublicProfile(w http.ResponseWriter, r *http.Request) {
	profileID := chi.URLParam(r, "id")
	if profileID == "" {
		badRequestResponse(w, r, errors.New("profile id is required"))
		return
	}

	sess, _ := middleware.SessionFromContext(r.Context())
	view, err := h.profileService.PublicProfile(r.Context(), sess, profileID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, view, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
