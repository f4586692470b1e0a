package repositories

import (
	"context"
	"errors"

	"github.com/DCirincione/ASLWebsite/backend"
	"github.com/DCirincione/ASLWebsite/models"
)

var ErrProfileNotFound = errors.New("profile not found")

const profileSummaryColumns = "id,name,sports,skill_level,avatar_url"

// ProfileRepository reads and writes rows of the backend `profiles` table.
type ProfileRepository interface {
	GetByID(ctx context.Context, sess *backend.Session, id string) (*models.Profile, error)

	// GetSummariesByIDs fetches display summaries for a set of users, keyed
	// by user id. Missing ids are simply absent from the map.
	GetSummariesByIDs(ctx context.Context, sess *backend.Session, ids []string) (map[string]models.ProfileSummary, error)

	// SearchByName matches profile names case-insensitively, at most limit
	// rows.
	SearchByName(ctx context.Context, sess *backend.Session, term string, limit int) ([]models.ProfileSummary, error)

	// Upsert creates or replaces the user's own profile row.
	Upsert(ctx context.Context, sess *backend.Session, profile *models.Profile) error

	Update(ctx context.Context, sess *backend.Session, profile *models.Profile) error
}

type restProfileRepository struct {
	client *backend.Client
}

func NewRESTProfileRepository(client *backend.Client) ProfileRepository {
	return &restProfileRepository{client: client}
}

func (r *restProfileRepository) GetByID(ctx context.Context, sess *backend.Session, id string) (*models.Profile, error) {
	var rows []models.Profile
	err := r.client.Select(ctx, sess, "profiles", backend.Query{
		Filters: []backend.Filter{backend.Eq("id", id)},
		Limit:   1,
	}, &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrProfileNotFound
	}
	return &rows[0], nil
}

func (r *restProfileRepository) GetSummariesByIDs(ctx context.Context, sess *backend.Session, ids []string) (map[string]models.ProfileSummary, error) {
	summaries := make(map[string]models.ProfileSummary, len(ids))
	if len(ids) == 0 {
		return summaries, nil
	}

	var rows []models.ProfileSummary
	err := r.client.Select(ctx, sess, "profiles", backend.Query{
		Columns: profileSummaryColumns,
		Filters: []backend.Filter{backend.In("id", ids)},
	}, &rows)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		summaries[row.ID] = row
	}
	return summaries, nil
}

func (r *restProfileRepository) SearchByName(ctx context.Context, sess *backend.Session, term string, limit int) ([]models.ProfileSummary, error) {
	var rows []models.ProfileSummary
	err := r.client.Select(ctx, sess, "profiles", backend.Query{
		Columns: profileSummaryColumns,
		Filters: []backend.Filter{backend.Ilike("name", "%"+term+"%")},
		Limit:   limit,
	}, &rows)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *restProfileRepository) Upsert(ctx context.Context, sess *backend.Session, profile *models.Profile) error {
	return r.client.Upsert(ctx, sess, "profiles", profile, "id")
}

func (r *restProfileRepository) Update(ctx context.Context, sess *backend.Session, profile *models.Profile) error {
	return r.client.Update(ctx, sess, "profiles", profile, []backend.Filter{
		backend.Eq("id", profile.ID),
	})
}
