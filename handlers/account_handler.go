package handlers

import (
	"errors"
	"net/http"

	"github.com/DCirincione/ASLWebsite/middleware"
	"github.com/DCirincione/ASLWebsite/models"
	"github.com/DCirincione/ASLWebsite/services"
)

const maxAvatarBytes = 5 << 20 // 5MB

type AccountHandler struct {
	profileService services.ProfileService
}

func NewAccountHandler(profileService services.ProfileService) *AccountHandler {
	return &AccountHandler{profileService: profileService}
}

func (h *AccountHandler) Overview(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.SessionFromContext(r.Context())

	overview, err := h.profileService.AccountOverview(r.Context(), sess)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, overview, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AccountHandler) Teams(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.SessionFromContext(r.Context())

	teams, err := h.profileService.TeamMemberships(r.Context(), sess)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"teams": teams}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AccountHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var input models.Profile
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Name == "" {
		badRequestResponse(w, r, errors.New("name is required"))
		return
	}

	sess, _ := middleware.SessionFromContext(r.Context())
	if err := h.profileService.UpdateProfile(r.Context(), sess, input); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"message": "profile updated"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AccountHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxAvatarBytes); err != nil {
		badRequestResponse(w, r, errors.New("expected a multipart form with an avatar file"))
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		badRequestResponse(w, r, errors.New("avatar file is required"))
		return
	}
	defer file.Close()

	sess, _ := middleware.SessionFromContext(r.Context())
	location, err := h.profileService.UploadAvatar(r.Context(), sess, header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"avatar_url": location}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
