package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/DCirincione/ASLWebsite/backend"
	"github.com/DCirincione/ASLWebsite/models"
	"github.com/DCirincione/ASLWebsite/repositories"
)

// SportItemView is an offering card with its display date label.
type SportItemView struct {
	models.SportItem
	DateLabel string `json:"date_label"`
}

func NewSportItemView(item models.SportItem) SportItemView {
	return SportItemView{
		SportItem: item,
		DateLabel: DateLabel(item.StartDate, item.EndDate),
	}
}

// SportPageView is everything a per-sport page renders: the sport itself,
// its offerings grouped by type, and the relevant slice of the event
// calendar.
type SportPageView struct {
	Sport       models.Sport    `json:"sport"`
	Clinics     []SportItemView `json:"clinics"`
	Leagues     []SportItemView `json:"leagues"`
	Pickup      []SportItemView `json:"pickup"`
	Tournaments []SportItemView `json:"tournaments"`
	Events      []EventView     `json:"events"`
}

type SportService interface {
	// ListSports returns every sport for the sports index and navigation.
	ListSports(ctx context.Context, sess *backend.Session) ([]models.Sport, error)

	// SportPage assembles a per-sport page by slug. Events tagged with the
	// sport's slug are shown; when no event carries the tag the whole
	// calendar is shown instead.
	SportPage(ctx context.Context, sess *backend.Session, slug string) (*SportPageView, error)
}

type sportService struct {
	sportRepo repositories.SportRepository
	eventRepo repositories.EventRepository
}

func NewSportService(sportRepo repositories.SportRepository, eventRepo repositories.EventRepository) SportService {
	return &sportService{
		sportRepo: sportRepo,
		eventRepo: eventRepo,
	}
}

func (s *sportService) ListSports(ctx context.Context, sess *backend.Session) ([]models.Sport, error) {
	sports, err := s.sportRepo.ListAll(ctx, sess)
	if err != nil {
		if errors.Is(err, backend.ErrNotConfigured) {
			return FallbackSports(), nil
		}
		return nil, fmt.Errorf("failed to list sports: %w", err)
	}
	return sports, nil
}

func (s *sportService) SportPage(ctx context.Context, sess *backend.Session, slug string) (*SportPageView, error) {
	sport, err := s.sportRepo.GetBySlug(ctx, sess, slug)
	if err != nil {
		if errors.Is(err, backend.ErrNotConfigured) {
			return s.fallbackPage(slug)
		}
		return nil, err
	}

	items, err := s.sportRepo.ListItemsBySport(ctx, sess, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to load sport offerings: %w", err)
	}

	events, err := s.eventRepo.ListAll(ctx, sess)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	view := buildSportPage(*sport, items, events)
	return view, nil
}

func (s *sportService) fallbackPage(slug string) (*SportPageView, error) {
	for _, sport := range FallbackSports() {
		if sport.Slug == slug {
			view := buildSportPage(sport, nil, FallbackEvents())
			return view, nil
		}
	}
	return nil, repositories.ErrSportNotFound
}

func buildSportPage(sport models.Sport, items []models.SportItem, events []models.Event) *SportPageView {
	view := &SportPageView{
		Sport:       sport,
		Clinics:     []SportItemView{},
		Leagues:     []SportItemView{},
		Pickup:      []SportItemView{},
		Tournaments: []SportItemView{},
		Events:      []EventView{},
	}

	for _, item := range items {
		itemView := NewSportItemView(item)
		switch item.Type {
		case models.SportItemClinic:
			view.Clinics = append(view.Clinics, itemView)
		case models.SportItemLeague:
			view.Leagues = append(view.Leagues, itemView)
		case models.SportItemPickup:
			view.Pickup = append(view.Pickup, itemView)
		case models.SportItemTournament:
			view.Tournaments = append(view.Tournaments, itemView)
		}
	}

	for _, event := range SortByStartDate(filterEventsBySport(events, sport.Slug)) {
		view.Events = append(view.Events, NewEventView(event, false))
	}
	return view
}

// filterEventsBySport keeps events tagged with the slug. When nothing is
// tagged the full calendar is shown so the page never renders empty.
func filterEventsBySport(events []models.Event, slug string) []models.Event {
	tagged := make([]models.Event, 0, len(events))
	for _, event := range events {
		if event.SportSlug != nil && *event.SportSlug == slug {
			tagged = append(tagged, event)
		}
	}
	if len(tagged) == 0 {
		return events
	}
	return tagged
}
