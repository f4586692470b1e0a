package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/DCirincione/ASLWebsite/backend"
	"github.com/DCirincione/ASLWebsite/repositories"
	"github.com/DCirincione/ASLWebsite/services"
	"github.com/DCirincione/ASLWebsite/storage"
)

type jsonResponse map[string]interface{}

func readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	maxBytes := 1_048_576 // 1MB
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var invalidUnmarshalError *json.InvalidUnmarshalError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return fmt.Errorf("body contains unknown key %s", fieldName)
		case err.Error() == "http: request body too large":
			return fmt.Errorf("body must not be larger than %d bytes", maxBytes)
		case errors.As(err, &invalidUnmarshalError):
			panic(err)
		default:
			return err
		}
	}

	err = dec.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}, headers http.Header) error {
	js, err := json.Marshal(data)
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	if err != nil {
		return err
	}

	return nil
}

func errorResponse(w http.ResponseWriter, r *http.Request, status int, message interface{}) {
	env := jsonResponse{"error": message}
	if err := writeJSON(w, status, env, nil); err != nil {
		slog.Error("failed to write error response", slog.Any("error", err), slog.String("path", r.URL.Path))
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("internal server error", slog.Any("error", err), slog.String("method", r.Method), slog.String("path", r.URL.Path))
	message := "the server encountered a problem and could not process your request"
	errorResponse(w, r, http.StatusInternalServerError, message)
}

func badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func notFoundResponse(w http.ResponseWriter, r *http.Request) {
	message := "the requested resource could not be found"
	errorResponse(w, r, http.StatusNotFound, message)
}

func conflictResponse(w http.ResponseWriter, r *http.Request, message string) {
	errorResponse(w, r, http.StatusConflict, message)
}

func unauthorizedResponse(w http.ResponseWriter, r *http.Request, message string) {
	env := jsonResponse{"error": message, "redirect": "/account"}
	if err := writeJSON(w, http.StatusUnauthorized, env, nil); err != nil {
		slog.Error("failed to write error response", slog.Any("error", err), slog.String("path", r.URL.Path))
	}
}

func failedValidationResponse(w http.ResponseWriter, r *http.Request, validationErr *services.ValidationError) {
	env := jsonResponse{
		"error": validationErr.Message,
		"field": validationErr.Field,
	}
	if err := writeJSON(w, http.StatusUnprocessableEntity, env, nil); err != nil {
		slog.Error("failed to write error response", slog.Any("error", err), slog.String("path", r.URL.Path))
	}
}

func serviceUnavailableResponse(w http.ResponseWriter, r *http.Request, message string) {
	errorResponse(w, r, http.StatusServiceUnavailable, message)
}

// mapServiceErrorToHTTP translates service-layer errors into HTTP responses.
func mapServiceErrorToHTTP(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *services.ValidationError
	var backendErr *backend.Error

	switch {
	case errors.Is(err, services.ErrAuthenticationRequired):
		unauthorizedResponse(w, r, "sign in to continue")

	case errors.Is(err, repositories.ErrProfileNotFound),
		errors.Is(err, repositories.ErrSportNotFound),
		errors.Is(err, repositories.ErrFriendRequestNotFound),
		errors.Is(err, services.ErrEventNotFound):
		notFoundResponse(w, r)

	case errors.Is(err, services.ErrRequestAlreadyPending),
		errors.Is(err, services.ErrAlreadyFriends):
		conflictResponse(w, r, err.Error())

	case errors.Is(err, services.ErrSelfFriendRequest),
		errors.Is(err, services.ErrInvalidRequestResponse):
		badRequestResponse(w, r, err)

	case errors.As(err, &validationErr):
		failedValidationResponse(w, r, validationErr)

	case errors.Is(err, services.ErrRegistrationUnavailable),
		errors.Is(err, backend.ErrNotConfigured),
		errors.Is(err, storage.ErrNotConfigured):
		serviceUnavailableResponse(w, r, err.Error())

	case errors.Is(err, services.ErrUploadFailed):
		serviceUnavailableResponse(w, r, "file upload failed, try again")

	// The hosted backend rejected the request; relay its message.
	case errors.As(err, &backendErr):
		slog.Warn("backend request failed", slog.Int("status", backendErr.Status), slog.String("message", backendErr.Message), slog.String("path", r.URL.Path))
		errorResponse(w, r, http.StatusBadGateway, backendErr.Message)

	default:
		serverErrorResponse(w, r, err)
	}
}
