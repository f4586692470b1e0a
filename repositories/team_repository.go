package repositories

import (
	"context"

	"github.com/DCirincione/ASLWebsite/backend"
	"github.com/DCirincione/ASLWebsite/models"
)

// TeamRepository reads the backend `team_memberships` table.
type TeamRepository interface {
	// ListByUserID returns the user's memberships, newest first.
	ListByUserID(ctx context.Context, sess *backend.Session, userID string) ([]models.TeamMembership, error)
}

type restTeamRepository struct {
	client *backend.Client
}

func NewRESTTeamRepository(client *backend.Client) TeamRepository {
	return &restTeamRepository{client: client}
}

func (r *restTeamRepository) ListByUserID(ctx context.Context, sess *backend.Session, userID string) ([]models.TeamMembership, error) {
	var rows []models.TeamMembership
	err := r.client.Select(ctx, sess, "team_memberships", backend.Query{
		Filters:    []backend.Filter{backend.Eq("user_id", userID)},
		OrderBy:    "created_at",
		Descending: true,
	}, &rows)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
