package repositories

import (
	"context"

	"github.com/DCirincione/ASLWebsite/backend"
	"github.com/DCirincione/ASLWebsite/models"
)

const eventColumns = "id,title,start_date,end_date,time_info,location,description,status,host_type,registration_program_slug,image_url,sport_slug"

// EventRepository reads the backend `events` table.
type EventRepository interface {
	// ListAll returns every event ordered by start date ascending with
	// dateless events last.
	ListAll(ctx context.Context, sess *backend.Session) ([]models.Event, error)

	ListByIDs(ctx context.Context, sess *backend.Session, ids []string) ([]models.Event, error)
}

type restEventRepository struct {
	client *backend.Client
}

func NewRESTEventRepository(client *backend.Client) EventRepository {
	return &restEventRepository{client: client}
}

func (r *restEventRepository) ListAll(ctx context.Context, sess *backend.Session) ([]models.Event, error) {
	var rows []models.Event
	err := r.client.Select(ctx, sess, "events", backend.Query{
		Columns:   eventColumns,
		OrderBy:   "start_date",
		NullsLast: true,
	}, &rows)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *restEventRepository) ListByIDs(ctx context.Context, sess *backend.Session, ids []string) ([]models.Event, error) {
	if len(ids) == 0 {
		return []models.Event{}, nil
	}
	var rows []models.Event
	err := r.client.Select(ctx, sess, "events", backend.Query{
		Columns: eventColumns,
		Filters: []backend.Filter{backend.In("id", ids)},
	}, &rows)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
