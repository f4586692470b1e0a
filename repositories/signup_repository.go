package repositories

import (
	"context"

	"github.com/DCirincione/ASLWebsite/backend"
	"github.com/DCirincione/ASLWebsite/models"
)

// SignupRepository reads and writes the backend `event_signups` join table.
type SignupRepository interface {
	ListEventIDsByUser(ctx context.Context, sess *backend.Session, userID string) ([]string, error)

	// Upsert records the signup, keeping the (event_id, user_id) pair unique.
	Upsert(ctx context.Context, sess *backend.Session, signup models.EventSignup) error
}

type restSignupRepository struct {
	client *backend.Client
}

func NewRESTSignupRepository(client *backend.Client) SignupRepository {
	return &restSignupRepository{client: client}
}

func (r *restSignupRepository) ListEventIDsByUser(ctx context.Context, sess *backend.Session, userID string) ([]string, error) {
	var rows []struct {
		EventID string `json:"event_id"`
	}
	err := r.client.Select(ctx, sess, "event_signups", backend.Query{
		Columns: "event_id",
		Filters: []backend.Filter{backend.Eq("user_id", userID)},
	}, &rows)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		if row.EventID != "" {
			ids = append(ids, row.EventID)
		}
	}
	return ids, nil
}

func (r *restSignupRepository) Upsert(ctx context.Context, sess *backend.Session, signup models.EventSignup) error {
	return r.client.Upsert(ctx, sess, "event_signups", signup, "event_id,user_id")
}
