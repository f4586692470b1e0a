package models

type EventStatus string

const (
	EventScheduled EventStatus = "scheduled"
	EventPotential EventStatus = "potential"
	EventTBD       EventStatus = "tbd"
)

type HostType string

const (
	HostAldrich  HostType = "aldrich"
	HostFeatured HostType = "featured"
	HostPartner  HostType = "partner"
	HostOther    HostType = "other"
)

// Event is a league calendar entry. Start/end dates are ISO calendar dates
// (YYYY-MM-DD) with no time component; free-form scheduling detail lives in
// TimeInfo.
type Event struct {
	ID                      string       `json:"id"`
	Title                   string       `json:"title"`
	StartDate               *string      `json:"start_date,omitempty"`
	EndDate                 *string      `json:"end_date,omitempty"`
	TimeInfo                *string      `json:"time_info,omitempty"`
	Location                *string      `json:"location,omitempty"`
	Description             *string      `json:"description,omitempty"`
	Status                  *EventStatus `json:"status,omitempty"`
	HostType                *HostType    `json:"host_type,omitempty"`
	RegistrationProgramSlug *string      `json:"registration_program_slug,omitempty"`
	ImageURL                *string      `json:"image_url,omitempty"`
	SportSlug               *string      `json:"sport_slug,omitempty"`
}

// EventSignup records a user's intent to attend an event. The pair
// (event_id, user_id) is unique in the backend.
type EventSignup struct {
	EventID string `json:"event_id"`
	UserID  string `json:"user_id"`
}
