package models

import "time"

// TeamMembership links a user to a team they play on. Role is free text
// ("Captain", "Player", ...).
type TeamMembership struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	TeamName  string    `json:"team_name"`
	Role      *string   `json:"role,omitempty"`
	LogoURL   *string   `json:"logo_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
