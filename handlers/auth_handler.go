package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/DCirincione/ASLWebsite/backend"
	"github.com/DCirincione/ASLWebsite/middleware"
	"github.com/DCirincione/ASLWebsite/services"
)

type AuthHandler struct {
	authClient     *backend.AuthClient
	profileService services.ProfileService
}

func NewAuthHandler(authClient *backend.AuthClient, profileService services.ProfileService) *AuthHandler {
	return &AuthHandler{
		authClient:     authClient,
		profileService: profileService,
	}
}

type signUpInput struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	Name       string `json:"name"`
	Age        string `json:"age"`
	Positions  string `json:"positions"`
	Sports     string `json:"sports"`
	SkillLevel string `json:"skill_level"`
	About      string `json:"about"`
}

func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var input signUpInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Email == "" || input.Password == "" || input.Name == "" {
		badRequestResponse(w, r, errors.New("name, email, and password are required"))
		return
	}

	sess, err := h.authClient.SignUp(r.Context(), input.Email, input.Password, input.Name)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	// Backends that require email confirmation return no access token; the
	// profile row gets created on first sign-in instead.
	if sess.AccessToken != "" && sess.UserID != "" {
		profileInput := services.SignUpProfileInput{
			Name:       input.Name,
			Age:        input.Age,
			Positions:  input.Positions,
			Sports:     input.Sports,
			SkillLevel: input.SkillLevel,
			About:      input.About,
		}
		if err := h.profileService.CreateProfile(r.Context(), sess, profileInput); err != nil {
			slog.Warn("profile creation after signup failed", slog.Any("error", err), slog.String("user_id", sess.UserID))
		}
	}

	response := jsonResponse{"session": sessionPayload(sess)}
	if sess.AccessToken == "" {
		response["message"] = "check your email to confirm your account"
	}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Email == "" || input.Password == "" {
		badRequestResponse(w, r, errors.New("email and password are required"))
		return
	}

	sess, err := h.authClient.SignIn(r.Context(), input.Email, input.Password)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"session": sessionPayload(sess)}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.SessionFromContext(r.Context())
	if err := h.authClient.SignOut(r.Context(), sess); err != nil && !errors.Is(err, backend.ErrNotConfigured) {
		slog.Warn("token revocation failed", slog.Any("error", err))
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"message": "signed out"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func sessionPayload(sess *backend.Session) jsonResponse {
	payload := jsonResponse{
		"access_token": sess.AccessToken,
		"user_id":      sess.UserID,
		"email":        sess.Email,
	}
	if !sess.ExpiresAt.IsZero() {
		payload["expires_at"] = sess.ExpiresAt
	}
	return payload
}
