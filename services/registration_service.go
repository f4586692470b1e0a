package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/DCirincione/ASLWebsite/backend"
	"github.com/DCirincione/ASLWebsite/models"
	"github.com/DCirincione/ASLWebsite/repositories"
	"github.com/DCirincione/ASLWebsite/storage"
	"github.com/google/uuid"
)

// RegistrationForm is a program together with its ordered field definitions.
type RegistrationForm struct {
	Program models.RegistrationProgram `json:"program"`
	Fields  []models.RegistrationField `json:"fields"`
}

// FileUpload is one uploaded file for a file-typed field.
type FileUpload struct {
	Filename    string
	ContentType string
	Reader      io.Reader
}

// ValidateAnswers checks every required field before anything is written.
// It returns a ValidationError naming the first failing field, in form order,
// or nil when the submission may proceed.
func ValidateAnswers(fields []models.RegistrationField, values map[string]string, files map[string][]FileUpload) *ValidationError {
	for _, field := range fields {
		if !field.Required {
			continue
		}
		switch field.Type {
		case models.FieldFile:
			if len(files[field.Name]) == 0 {
				return requiredError(field)
			}
		case models.FieldCheckbox:
			if !truthy(values[field.Name]) {
				return requiredError(field)
			}
		default:
			if strings.TrimSpace(values[field.Name]) == "" {
				return requiredError(field)
			}
		}
	}
	return nil
}

func requiredError(field models.RegistrationField) *ValidationError {
	return &ValidationError{
		Field:   field.Name,
		Message: fmt.Sprintf("%s is required.", field.Label),
	}
}

func truthy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "false", "0", "off":
		return false
	default:
		return true
	}
}

type RegistrationService interface {
	// GetForm loads the active program with the given slug and its fields.
	GetForm(ctx context.Context, sess *backend.Session, slug string) (*RegistrationForm, error)

	// Submit validates and stores a completed registration. File fields are
	// uploaded one at a time; the first failed upload aborts the submission
	// with no rollback of files already stored.
	Submit(ctx context.Context, sess *backend.Session, slug string, values map[string]string, files map[string][]FileUpload) error
}

type registrationService struct {
	registrationRepo repositories.RegistrationRepository
	uploader         storage.FileUploader
}

func NewRegistrationService(registrationRepo repositories.RegistrationRepository, uploader storage.FileUploader) RegistrationService {
	return &registrationService{
		registrationRepo: registrationRepo,
		uploader:         uploader,
	}
}

func (s *registrationService) GetForm(ctx context.Context, sess *backend.Session, slug string) (*RegistrationForm, error) {
	program, err := s.registrationRepo.GetProgramBySlug(ctx, sess, slug)
	if err != nil {
		if errors.Is(err, repositories.ErrProgramNotFound) || errors.Is(err, backend.ErrNotConfigured) {
			return nil, ErrRegistrationUnavailable
		}
		return nil, fmt.Errorf("failed to load registration program: %w", err)
	}

	fields, err := s.registrationRepo.ListFieldsByProgram(ctx, sess, program.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load registration fields: %w", err)
	}

	return &RegistrationForm{Program: *program, Fields: fields}, nil
}

func (s *registrationService) Submit(ctx context.Context, sess *backend.Session, slug string, values map[string]string, files map[string][]FileUpload) error {
	if sess == nil || sess.UserID == "" {
		return ErrAuthenticationRequired
	}

	form, err := s.GetForm(ctx, sess, slug)
	if err != nil {
		return err
	}
	if validationErr := ValidateAnswers(form.Fields, values, files); validationErr != nil {
		return validationErr
	}

	answers := make(map[string]interface{}, len(form.Fields))
	for _, field := range form.Fields {
		if field.Type == models.FieldFile {
			continue
		}
		if field.Type == models.FieldCheckbox {
			answers[field.Name] = truthy(values[field.Name])
			continue
		}
		answers[field.Name] = values[field.Name]
	}

	attachments := make([]string, 0)
	for _, field := range form.Fields {
		if field.Type != models.FieldFile {
			continue
		}
		uploads := files[field.Name]
		if len(uploads) == 0 {
			continue
		}

		storedPaths := make([]string, 0, len(uploads))
		for _, upload := range uploads {
			key := fmt.Sprintf("%s/%s-%s", form.Program.Slug, uuid.NewString(), sanitizeFilename(upload.Filename))
			result, uploadErr := s.uploader.Upload(ctx, key, upload.ContentType, upload.Reader)
			if uploadErr != nil {
				return fmt.Errorf("%w: %w", ErrUploadFailed, uploadErr)
			}
			storedPaths = append(storedPaths, result.Key)
			attachments = append(attachments, result.Key)
		}

		if len(storedPaths) == 1 {
			answers[field.Name] = storedPaths[0]
		} else {
			answers[field.Name] = storedPaths
		}
	}

	referral, _ := answers["referral_source"].(string)
	submission := &models.RegistrationSubmission{
		ProgramID:      form.Program.ID,
		SportSlug:      form.Program.SportSlug,
		UserID:         sess.UserID,
		Answers:        answers,
		Attachments:    attachments,
		WaiverAccepted: truthy(values["waiver_accepted"]),
		ReferralSource: referral,
	}
	if err := s.registrationRepo.CreateSubmission(ctx, sess, submission); err != nil {
		return fmt.Errorf("failed to submit registration: %w", err)
	}
	return nil
}

// sanitizeFilename keeps only the base name so user input cannot shape the
// storage path.
func sanitizeFilename(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		return "upload"
	}
	return strings.ReplaceAll(base, " ", "_")
}
