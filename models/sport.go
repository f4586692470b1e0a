package models

// Sport is a sport offered by the league, addressable by slug
// (/sports/{slug}).
type Sport struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Slug    string  `json:"slug"`
	LogoURL *string `json:"logo_url,omitempty"`
}

type SportItemType string

const (
	SportItemClinic     SportItemType = "clinic"
	SportItemLeague     SportItemType = "league"
	SportItemPickup     SportItemType = "pickup"
	SportItemTournament SportItemType = "tournament"
)

// SportItem is one offering card on a per-sport page: a clinic, a league
// night, a pickup run, or a tournament.
type SportItem struct {
	ID          string        `json:"id"`
	SportSlug   string        `json:"sport_slug"`
	Title       string        `json:"title"`
	Type        SportItemType `json:"type"`
	StartDate   *string       `json:"start_date,omitempty"`
	EndDate     *string       `json:"end_date,omitempty"`
	TimeInfo    *string       `json:"time_info,omitempty"`
	Location    *string       `json:"location,omitempty"`
	Description *string       `json:"description,omitempty"`
	Level       *string       `json:"level,omitempty"`
	CTALabel    *string       `json:"cta_label,omitempty"`
	CTAURL      *string       `json:"cta_url,omitempty"`
	ImageURL    *string       `json:"image_url,omitempty"`
}
