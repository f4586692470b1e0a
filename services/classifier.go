package services

import (
	"strings"

	"github.com/DCirincione/ASLWebsite/models"
)

type hostClass int

const (
	hostClassNone hostClass = iota
	hostClassOfficial
	hostClassFeatured
)

// classifyHost decides which display bucket an event belongs to. host_type is
// the authoritative signal; only events without one fall through to the
// keyword heuristic.
func classifyHost(event models.Event) hostClass {
	if event.HostType != nil {
		switch *event.HostType {
		case models.HostAldrich:
			return hostClassOfficial
		case models.HostFeatured, models.HostPartner:
			return hostClassFeatured
		default:
			return hostClassNone
		}
	}
	return bestEffortHostClass(event)
}

// Promotional keywords that mark an event as featured/partner content.
var featuredKeywords = []string{"charity", "fundraiser", "partner"}

// bestEffortHostClass guesses a bucket from free text when host_type is
// absent. Keyword matching is inherently fuzzy and may misclassify; keep this
// behind classifyHost so it can be swapped out without touching the
// formatting logic.
func bestEffortHostClass(event models.Event) hostClass {
	title := strings.ToLower(event.Title)
	location := lower(event.Location)
	description := lower(event.Description)

	if strings.Contains(title, "aldrich") || strings.Contains(location, "aldrich") {
		return hostClassOfficial
	}
	if event.Status != nil && *event.Status == models.EventScheduled {
		return hostClassOfficial
	}

	for _, keyword := range featuredKeywords {
		if strings.Contains(title, keyword) || strings.Contains(description, keyword) {
			return hostClassFeatured
		}
	}
	if containsWord(title, "vs") || containsWord(description, "vs") {
		return hostClassFeatured
	}
	if event.Status != nil && *event.Status == models.EventPotential {
		return hostClassFeatured
	}

	return hostClassNone
}

func lower(value *string) string {
	if value == nil {
		return ""
	}
	return strings.ToLower(*value)
}

// containsWord matches whole words only, so "vs" does not fire inside words
// like "canvas".
func containsWord(text, word string) bool {
	for _, field := range strings.Fields(text) {
		if strings.Trim(field, ".,!?:;()") == word {
			return true
		}
	}
	return false
}
