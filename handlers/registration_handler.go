package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/DCirincione/ASLWebsite/middleware"
	"github.com/DCirincione/ASLWebsite/services"
	"github.com/go-chi/chi/v5"
)

const maxSubmissionBytes = 32 << 20 // 32MB

type RegistrationHandler struct {
	registrationService services.RegistrationService
}

func NewRegistrationHandler(registrationService services.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registrationService: registrationService}
}

func (h *RegistrationHandler) GetForm(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		badRequestResponse(w, r, errors.New("program slug is required"))
		return
	}

	sess, _ := middleware.SessionFromContext(r.Context())
	form, err := h.registrationService.GetForm(r.Context(), sess, slug)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, form, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Submit accepts the registration form as multipart/form-data so file fields
// ride along with their text answers.
func (h *RegistrationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		badRequestResponse(w, r, errors.New("program slug is required"))
		return
	}

	if err := r.ParseMultipartForm(maxSubmissionBytes); err != nil {
		badRequestResponse(w, r, errors.New("expected a multipart form submission"))
		return
	}

	values := make(map[string]string, len(r.MultipartForm.Value))
	for name, fieldValues := range r.MultipartForm.Value {
		if len(fieldValues) > 0 {
			values[name] = fieldValues[0]
		}
	}

	files := make(map[string][]services.FileUpload, len(r.MultipartForm.File))
	var opened []multipart.File
	defer func() {
		for _, f := range opened {
			f.Close()
		}
	}()
	for name, headers := range r.MultipartForm.File {
		for _, header := range headers {
			file, err := header.Open()
			if err != nil {
				badRequestResponse(w, r, errors.New("failed to read uploaded file"))
				return
			}
			opened = append(opened, file)
			files[name] = append(files[name], services.FileUpload{
				Filename:    header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Reader:      file,
			})
		}
	}

	sess, _ := middleware.SessionFromContext(r.Context())
	if err := h.registrationService.Submit(r.Context(), sess, slug, values, files); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"message": "registration received"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
