package services

import "github.com/DCirincione/ASLWebsite/models"

// Demo datasets served when the hosted backend is unreachable or not
// configured. Every data-dependent page degrades to these instead of erroring.

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func statusPtr(s models.EventStatus) *models.EventStatus { return &s }

// FallbackEvents mirrors the sample schedule shown before the backend is
// connected.
func FallbackEvents() []models.Event {
	return []models.Event{
		{
			ID:          "fallback-1",
			Title:       "3v3 Basketball Tournament",
			StartDate:   strPtr("2024-03-15"),
			EndDate:     strPtr("2024-03-15"),
			TimeInfo:    strPtr("8:00 AM tip-off"),
			Location:    strPtr("Central Sports Complex"),
			Description: strPtr("Fast-paced half-court games for every division."),
			Status:      statusPtr(models.EventScheduled),
		},
		{
			ID:          "fallback-2",
			Title:       "Pickleball League",
			StartDate:   strPtr("2024-03-20"),
			EndDate:     strPtr("2024-04-20"),
			TimeInfo:    strPtr("Weeknight doubles"),
			Location:    strPtr("Riverside Courts"),
			Description: strPtr("Round-robin league with playoffs and prizes."),
			Status:      statusPtr(models.EventPotential),
		},
	}
}

// FallbackSports is the sport catalog shown before the backend is connected.
func FallbackSports() []models.Sport {
	return []models.Sport{
		{ID: "s1", Name: "Basketball", Slug: "basketball"},
		{ID: "s2", Name: "Flag Football", Slug: "flag-football"},
		{ID: "s3", Name: "Pickleball", Slug: "pickleball"},
		{ID: "s4", Name: "Volleyball", Slug: "volleyball"},
	}
}

// FallbackFriends is the demo friend list for the account area.
func FallbackFriends() []models.Friend {
	return []models.Friend{
		{ID: "f1", Name: "Jordan Lee", Sport: strPtr("Basketball"), SkillLevel: intPtr(9)},
		{ID: "f2", Name: "Sam Patel", Sport: strPtr("Flag Football"), SkillLevel: intPtr(7)},
		{ID: "f3", Name: "Morgan Diaz", Sport: strPtr("Pickleball"), SkillLevel: intPtr(6)},
	}
}

// FallbackProfile is the demo account profile.
func FallbackProfile() models.Profile {
	return models.Profile{
		ID:         "demo",
		Name:       "Alex Johnson",
		Age:        intPtr(24),
		Positions:  []string{"Forward", "Wing"},
		SkillLevel: intPtr(8),
		Sports:     []string{"Basketball", "Flag Football"},
		About:      strPtr("Community player focused on team play and sportsmanship. Loves weekend tournaments and pickup games."),
	}
}

// FallbackTeams is the demo team membership list.
func FallbackTeams() []models.TeamMembership {
	return []models.TeamMembership{
		{ID: "t1", TeamName: "Downtown Warriors", Role: strPtr("Captain")},
		{ID: "t2", TeamName: "City League All-Stars", Role: strPtr("Player")},
	}
}
