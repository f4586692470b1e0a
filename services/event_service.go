package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/DCirincione/ASLWebsite/backend"
	"github.com/DCirincione/ASLWebsite/models"
	"github.com/DCirincione/ASLWebsite/repositories"
)

// ParseCalendarDate parses an ISO calendar date (YYYY-MM-DD) as a UTC date.
// Parsing in UTC keeps display labels from shifting a day in local timezones.
// Returns nil for missing or malformed values.
func ParseCalendarDate(value *string) *time.Time {
	if value == nil || *value == "" {
		return nil
	}
	t, err := time.ParseInLocation("2006-01-02", *value, time.UTC)
	if err != nil {
		return nil
	}
	return &t
}

// DateLabel renders a short display label for an event's date or date range:
// "Mar 15", "Mar 1 – 5" within one month, "Mar 28 – Apr 2" across months.
// Returns "" when no parseable start date exists.
func DateLabel(start, end *string) string {
	startDate := ParseCalendarDate(start)
	endDate := ParseCalendarDate(end)

	if startDate == nil {
		return ""
	}
	if endDate == nil || startDate.Equal(*endDate) {
		return startDate.Format("Jan 2")
	}

	sameMonth := startDate.Month() == endDate.Month() && startDate.Year() == endDate.Year()
	if sameMonth {
		return startDate.Format("Jan 2") + " – " + strconv.Itoa(endDate.Day())
	}
	return startDate.Format("Jan 2") + " – " + endDate.Format("Jan 2")
}

// FullDateLabel renders a single date with its year, or "Date TBD".
func FullDateLabel(value *string) string {
	date := ParseCalendarDate(value)
	if date == nil {
		return "Date TBD"
	}
	return date.Format("Jan 2, 2006")
}

// StatusLabel maps an event status to its display label. Absent status reads
// as scheduled.
func StatusLabel(status *models.EventStatus) string {
	if status == nil {
		return "Scheduled"
	}
	switch *status {
	case models.EventPotential:
		return "Potential"
	case models.EventTBD:
		return "TBD"
	default:
		return "Scheduled"
	}
}

// StatusClass maps an event status to its pill style class.
func StatusClass(status *models.EventStatus) string {
	if status == nil {
		return "pill pill--green"
	}
	switch *status {
	case models.EventPotential:
		return "pill pill--amber"
	case models.EventTBD:
		return "pill pill--muted"
	default:
		return "pill pill--green"
	}
}

// SortByStartDate returns the events ordered ascending by parsed start date.
// Events with a missing or unparseable date sort last; ties and dateless
// events keep their relative input order.
func SortByStartDate(events []models.Event) []models.Event {
	sorted := make([]models.Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		a := ParseCalendarDate(sorted[i].StartDate)
		b := ParseCalendarDate(sorted[j].StartDate)
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})
	return sorted
}

// EventBuckets is the home-page display grouping.
type EventBuckets struct {
	Official []models.Event `json:"official"`
	Featured []models.Event `json:"featured"`
}

// Categorize partitions events into league-run and featured/partner buckets.
// host_type is authoritative; events without one go through the best-effort
// keyword classifier. An empty bucket falls back to the first four events in
// chronological order. Display convenience only.
func Categorize(events []models.Event) EventBuckets {
	sorted := SortByStartDate(events)

	var buckets EventBuckets
	for _, event := range sorted {
		switch classifyHost(event) {
		case hostClassOfficial:
			buckets.Official = append(buckets.Official, event)
		case hostClassFeatured:
			buckets.Featured = append(buckets.Featured, event)
		}
	}

	if len(buckets.Official) == 0 {
		buckets.Official = firstN(sorted, 4)
	}
	if len(buckets.Featured) == 0 {
		buckets.Featured = firstN(sorted, 4)
	}
	return buckets
}

func firstN(events []models.Event, n int) []models.Event {
	if len(events) < n {
		n = len(events)
	}
	return events[:n]
}

// EventView is an event decorated with its display labels and the viewer's
// signup state.
type EventView struct {
	models.Event
	DateLabel     string `json:"date_label"`
	FullDateLabel string `json:"full_date_label"`
	StatusLabel   string `json:"status_label"`
	StatusClass   string `json:"status_class"`
	SignedUp      bool   `json:"signed_up"`
}

func NewEventView(event models.Event, signedUp bool) EventView {
	return EventView{
		Event:         event,
		DateLabel:     DateLabel(event.StartDate, event.EndDate),
		FullDateLabel: FullDateLabel(event.StartDate),
		StatusLabel:   StatusLabel(event.Status),
		StatusClass:   StatusClass(event.Status),
		SignedUp:      signedUp,
	}
}

type EventService interface {
	// ListEvents returns all events in display order with the viewer's
	// signup state. Serves the fallback schedule when the backend is
	// unavailable.
	ListEvents(ctx context.Context, sess *backend.Session) ([]EventView, error)

	// HomeBuckets returns the categorized home-page grouping.
	HomeBuckets(ctx context.Context, sess *backend.Session) (*EventBuckets, error)

	// SignUp records the user's intent to attend. Idempotent per
	// (event, user).
	SignUp(ctx context.Context, sess *backend.Session, eventID string) error

	// MyEvents returns the events the user signed up for.
	MyEvents(ctx context.Context, sess *backend.Session) ([]EventView, error)
}

type eventService struct {
	eventRepo  repositories.EventRepository
	signupRepo repositories.SignupRepository
}

func NewEventService(eventRepo repositories.EventRepository, signupRepo repositories.SignupRepository) EventService {
	return &eventService{
		eventRepo:  eventRepo,
		signupRepo: signupRepo,
	}
}

func (s *eventService) ListEvents(ctx context.Context, sess *backend.Session) ([]EventView, error) {
	events, err := s.eventRepo.ListAll(ctx, sess)
	if err != nil {
		if errors.Is(err, backend.ErrNotConfigured) {
			events = FallbackEvents()
		} else {
			return nil, fmt.Errorf("failed to list events: %w", err)
		}
	}

	signedUp := s.signupSet(ctx, sess)
	views := make([]EventView, 0, len(events))
	for _, event := range events {
		views = append(views, NewEventView(event, signedUp[event.ID]))
	}
	return views, nil
}

func (s *eventService) HomeBuckets(ctx context.Context, sess *backend.Session) (*EventBuckets, error) {
	events, err := s.eventRepo.ListAll(ctx, sess)
	if err != nil {
		if errors.Is(err, backend.ErrNotConfigured) {
			events = FallbackEvents()
		} else {
			return nil, fmt.Errorf("failed to list events: %w", err)
		}
	}
	buckets := Categorize(events)
	return &buckets, nil
}

func (s *eventService) SignUp(ctx context.Context, sess *backend.Session, eventID string) error {
	if sess == nil || sess.UserID == "" {
		return ErrAuthenticationRequired
	}

	events, err := s.eventRepo.ListByIDs(ctx, sess, []string{eventID})
	if err != nil {
		return fmt.Errorf("failed to load event: %w", err)
	}
	if len(events) == 0 {
		return ErrEventNotFound
	}

	signup := models.EventSignup{EventID: eventID, UserID: sess.UserID}
	if err := s.signupRepo.Upsert(ctx, sess, signup); err != nil {
		return fmt.Errorf("failed to save event signup: %w", err)
	}
	return nil
}

func (s *eventService) MyEvents(ctx context.Context, sess *backend.Session) ([]EventView, error) {
	if sess == nil || sess.UserID == "" {
		return nil, ErrAuthenticationRequired
	}

	ids, err := s.signupRepo.ListEventIDsByUser(ctx, sess, sess.UserID)
	if err != nil {
		if errors.Is(err, backend.ErrNotConfigured) {
			views := make([]EventView, 0)
			for _, event := range FallbackEvents() {
				views = append(views, NewEventView(event, true))
			}
			return views, nil
		}
		return nil, fmt.Errorf("failed to load signups: %w", err)
	}
	if len(ids) == 0 {
		return []EventView{}, nil
	}

	events, err := s.eventRepo.ListByIDs(ctx, sess, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load signed-up events: %w", err)
	}

	views := make([]EventView, 0, len(events))
	for _, event := range SortByStartDate(events) {
		views = append(views, NewEventView(event, true))
	}
	return views, nil
}

func (s *eventService) signupSet(ctx context.Context, sess *backend.Session) map[string]bool {
	signedUp := make(map[string]bool)
	if sess == nil || sess.UserID == "" {
		return signedUp
	}
	ids, err := s.signupRepo.ListEventIDsByUser(ctx, sess, sess.UserID)
	if err != nil {
		// Signup markers are decoration; the event list still renders.
		return signedUp
	}
	for _, id := range ids {
		signedUp[id] = true
	}
	return signedUp
}
