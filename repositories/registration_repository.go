package repositories

import (
	"context"
	"errors"

	"github.com/DCirincione/ASLWebsite/backend"
	"github.com/DCirincione/ASLWebsite/models"
)

var ErrProgramNotFound = errors.New("registration program not found")

// RegistrationRepository reads program/field definitions and writes completed
// submissions.
type RegistrationRepository interface {
	// GetProgramBySlug returns the active program with that slug.
	GetProgramBySlug(ctx context.Context, sess *backend.Session, slug string) (*models.RegistrationProgram, error)

	// ListFieldsByProgram returns the program's field definitions in form
	// order.
	ListFieldsByProgram(ctx context.Context, sess *backend.Session, programID string) ([]models.RegistrationField, error)

	CreateSubmission(ctx context.Context, sess *backend.Session, submission *models.RegistrationSubmission) error
}

type restRegistrationRepository struct {
	client *backend.Client
}

func NewRESTRegistrationRepository(client *backend.Client) RegistrationRepository {
	return &restRegistrationRepository{client: client}
}

func (r *restRegistrationRepository) GetProgramBySlug(ctx context.Context, sess *backend.Session, slug string) (*models.RegistrationProgram, error) {
	var rows []models.RegistrationProgram
	err := r.client.Select(ctx, sess, "registration_programs", backend.Query{
		Columns: "id,slug,name,sport_slug,waiver_url,active",
		Filters: []backend.Filter{
			backend.Eq("slug", slug),
			backend.Eq("active", "true"),
		},
		Limit: 1,
	}, &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrProgramNotFound
	}
	return &rows[0], nil
}

func (r *restRegistrationRepository) ListFieldsByProgram(ctx context.Context, sess *backend.Session, programID string) ([]models.RegistrationField, error) {
	var rows []models.RegistrationField
	err := r.client.Select(ctx, sess, "registration_fields", backend.Query{
		Columns: "id,program_id,label,name,type,required,options,placeholder,help,order",
		Filters: []backend.Filter{backend.Eq("program_id", programID)},
		OrderBy: "order",
	}, &rows)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *restRegistrationRepository) CreateSubmission(ctx context.Context, sess *backend.Session, submission *models.RegistrationSubmission) error {
	return r.client.Insert(ctx, sess, "registration_submissions", submission, nil)
}
