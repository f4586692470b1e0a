package repositories

import (
	"context"
	"errors"

	"github.com/DCirincione/ASLWebsite/backend"
	"github.com/DCirincione/ASLWebsite/models"
)

var ErrSportNotFound = errors.New("sport not found")

// SportRepository reads the backend `sports` and `sport_items` tables.
type SportRepository interface {
	ListAll(ctx context.Context, sess *backend.Session) ([]models.Sport, error)

	GetBySlug(ctx context.Context, sess *backend.Session, slug string) (*models.Sport, error)

	// ListItemsBySport returns the sport's offering cards ordered by start
	// date with dateless cards last.
	ListItemsBySport(ctx context.Context, sess *backend.Session, slug string) ([]models.SportItem, error)
}

type restSportRepository struct {
	client *backend.Client
}

func NewRESTSportRepository(client *backend.Client) SportRepository {
	return &restSportRepository{client: client}
}

func (r *restSportRepository) ListAll(ctx context.Context, sess *backend.Session) ([]models.Sport, error) {
	var rows []models.Sport
	err := r.client.Select(ctx, sess, "sports", backend.Query{
		OrderBy: "name",
	}, &rows)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *restSportRepository) GetBySlug(ctx context.Context, sess *backend.Session, slug string) (*models.Sport, error) {
	var rows []models.Sport
	err := r.client.Select(ctx, sess, "sports", backend.Query{
		Filters: []backend.Filter{backend.Eq("slug", slug)},
		Limit:   1,
	}, &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrSportNotFound
	}
	return &rows[0], nil
}

func (r *restSportRepository) ListItemsBySport(ctx context.Context, sess *backend.Session, slug string) ([]models.SportItem, error) {
	var rows []models.SportItem
	err := r.client.Select(ctx, sess, "sport_items", backend.Query{
		Filters:   []backend.Filter{backend.Eq("sport_slug", slug)},
		OrderBy:   "start_date",
		NullsLast: true,
	}, &rows)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
