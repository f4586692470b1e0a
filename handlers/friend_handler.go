package handlers

import (
	"errors"
	"net/http"

	"github.com/DCirincione/ASLWebsite/middleware"
	"github.com/DCirincione/ASLWebsite/models"
	"github.com/DCirincione/ASLWebsite/services"
	"github.com/go-chi/chi/v5"
)

type FriendHandler struct {
	friendService services.FriendService
}

func NewFriendHandler(friendService services.FriendService) *FriendHandler {
	return &FriendHandler{friendService: friendService}
}

func (h *FriendHandler) FriendsPage(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.SessionFromContext(r.Context())

	page, err := h.friendService.FriendsPage(r.Context(), sess)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, page, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *FriendHandler) Search(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.SessionFromContext(r.Context())
	term := r.URL.Query().Get("q")

	results, err := h.friendService.SearchPlayers(r.Context(), sess, term)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"results": results}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *FriendHandler) SendRequest(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ReceiverID string `json:"receiver_id"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.ReceiverID == "" {
		badRequestResponse(w, r, errors.New("receiver_id is required"))
		return
	}

	sess, _ := middleware.SessionFromContext(r.Context())
	request, err := h.friendService.SendRequest(r.Context(), sess, input.ReceiverID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"request": request}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *FriendHandler) Respond(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		badRequestResponse(w, r, errors.New("request id is required"))
		return
	}

	var input struct {
		Status string `json:"status"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	sess, _ := middleware.SessionFromContext(r.Context())
	err := h.friendService.RespondToRequest(r.Context(), sess, requestID, models.FriendRequestStatus(input.Status))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"message": "request " + input.Status}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
