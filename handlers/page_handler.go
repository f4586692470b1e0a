package handlers

import (
	"net/http"

	"github.com/DCirincione/ASLWebsite/middleware"
	"github.com/DCirincione/ASLWebsite/services"
)

// PageHandler serves the fixed navigation surface: home, community, contact,
// sponsors, and leagues. Everything here is a static view model except the
// home page's event buckets.
type PageHandler struct {
	eventService services.EventService
}

func NewPageHandler(eventService services.EventService) *PageHandler {
	return &PageHandler{eventService: eventService}
}

type article struct {
	Title string `json:"title"`
	Blurb string `json:"blurb"`
	URL   string `json:"url"`
	Date  string `json:"date,omitempty"`
	Image string `json:"image,omitempty"`
}

func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.SessionFromContext(r.Context())

	buckets, err := h.eventService.HomeBuckets(r.Context(), sess)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"hero": jsonResponse{
			"eyebrow":     "Aldrich Sports League",
			"title":       "Community sports for everyone",
			"description": "Leagues, tournaments, clinics, and pickup runs built around bringing people together through sports.",
		},
		"official_events": buckets.Official,
		"featured_events": buckets.Featured,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PageHandler) Community(w http.ResponseWriter, r *http.Request) {
	response := jsonResponse{
		"eyebrow":     "Community",
		"title":       "Community hub",
		"description": "A note from ownership.",
		"ownership_note": []string{
			"COMMUNITY FIRST, ALWAYS.",
			"At Aldrich Sports, Community is not an add-on, it is the whole point. Everything we do is built around bringing people together through sports, giving back to causes that matter and creating events that feel welcoming, fun and meaningful.",
			"From charity tournaments and fundraisers to youth programs and local partnerships, our goal is to be a hub where athletes, families and neighbors connect. We believe sports should do more than keep score, they should create opportunities, support local organizations and leave the community better than we found it.",
			"This is bigger than leagues and events, it is about showing up, supporting one another and building something lasting - together.",
		},
		"articles": communityArticles(),
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PageHandler) Contact(w http.ResponseWriter, r *http.Request) {
	response := jsonResponse{
		"eyebrow":     "Contact",
		"title":       "Contact Us",
		"description": "Have questions? Get in touch with ALDRICH SPORTS.",
		"email":       "joeandfrancismail@gmail.com",
		"phone":       "(631) 644-0871",
		"location":    "350 Aldrich Ln, Laurel, NY 11948",
		"social": jsonResponse{
			"instagram": "https://www.instagram.com/aldrichsportsleague/",
			"facebook":  "https://www.facebook.com/profile.php?id=61558144266881",
		},
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PageHandler) Sponsors(w http.ResponseWriter, r *http.Request) {
	response := jsonResponse{
		"eyebrow":     "Sponsors",
		"title":       "Our sponsors",
		"description": "Feature partners, sponsorship packages, and how to support the league.",
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PageHandler) Leagues(w http.ResponseWriter, r *http.Request) {
	response := jsonResponse{
		"eyebrow":     "Leagues",
		"title":       "League info",
		"description": "Standings, divisions, and schedules. Use this page to keep every team on the same page.",
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func communityArticles() []article {
	return []article{
		{
			Title: "Aldrich Sports League Helps Raise Over $2000 For The American Amputee Soccer Association",
			Blurb: "Fundraiser highlights: $2,124 raised and huge community turnout for the national amputee team.",
			URL:   "https://www.usampsoccer.org/post/aldrich-sports-league-helps-raise-over-2000-for-the-american-amputee-soccer-association",
			Date:  "Aug 5, 2024",
		},
		{
			Title: "Have a jolly old time at Aldrich Sports League's inaugural Christmas Pickleball Tournament",
			Blurb: "Dec. 20 tournament at Box Pickleball brings holiday spirit, raffles, and community brackets.",
			URL:   "https://riverheadnewsreview.timesreview.com/2025/11/130112/have-a-jolly-old-time-at-aldrich-sports-leagues-inaugural-christmas-pickleball-tournament/",
			Date:  "Nov 18, 2025",
		},
		{
			Title: "Aldrich Sports League hosts full day of champions",
			Blurb: "Summer Sunday soccer playoffs plus amputee team exhibition raise funds for AASA in Laurel.",
			URL:   "https://suffolktimes.timesreview.com/2025/08/aldrich-sports-league-hosts-full-day-of-champions/",
			Date:  "Aug 4, 2025",
		},
		{
			Title: "Aldrich Sports League hosts second full-day fundraiser for amputee team",
			Blurb: "Aug. 3 fundraiser returns with soccer playoffs, exhibition match, raffles, and local sponsors.",
			URL:   "https://suffolktimes.timesreview.com/2025/07/aldrich-sports-league-to-host-full-day-of-sports-fundraiser/",
			Date:  "Jul 21, 2025",
		},
		{
			Title: "Local ballers bring the heat to Laurel in new charity tournament",
			Blurb: "Community Kids Basketball Tournament mixes local talent and fundraises for youth sports scholarships.",
			URL:   "https://suffolktimes.timesreview.com/2025/06/local-ballers-bring-the-heat-to-laurel-in-new-charity-tournament/",
			Date:  "Jun 3, 2025",
		},
	}
}
