package models

// Profile is a member's public player profile, owned by the backend
// `profiles` table and mutated only by the owning user.
type Profile struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Age        *int     `json:"age,omitempty"`
	AvatarURL  *string  `json:"avatar_url,omitempty"`
	Positions  []string `json:"positions,omitempty"`
	SkillLevel *int     `json:"skill_level,omitempty"`
	Sports     []string `json:"sports,omitempty"`
	About      *string  `json:"about,omitempty"`
	HeightCM   *int     `json:"height_cm,omitempty"`
	WeightLbs  *int     `json:"weight_lbs,omitempty"`
}

// ProfileSummary is the subset of a profile fetched for lists, search
// results, and friend-request labels.
type ProfileSummary struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	AvatarURL  *string  `json:"avatar_url,omitempty"`
	Sports     []string `json:"sports,omitempty"`
	SkillLevel *int     `json:"skill_level,omitempty"`
}
