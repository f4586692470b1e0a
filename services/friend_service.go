package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/DCirincione/ASLWebsite/backend"
	"github.com/DCirincione/ASLWebsite/models"
	"github.com/DCirincione/ASLWebsite/repositories"
)

const searchResultLimit = 10

// pairKey identifies an unordered {sender, receiver} pair.
func pairKey(a, b string) string {
	if a < b {
		return a + ":" + b
	}
	return b + ":" + a
}

// FriendGraph is the reduced view of a user's friend-request rows.
type FriendGraph struct {
	// LatestPerPair holds exactly one row per unordered {sender, receiver}
	// pair: the most recently created one. When several rows share the same
	// created_at the earliest in input order wins, so callers control ties
	// through the order they fetch in.
	LatestPerPair []models.FriendRequest

	PendingIncoming []models.FriendRequest
	PendingOutgoing []models.FriendRequest
}

// ReduceRequests collapses raw friend-request rows into the per-pair graph
// for the viewing user. Pure over its inputs.
func ReduceRequests(rows []models.FriendRequest, viewerID string) FriendGraph {
	latestByPair := make(map[string]models.FriendRequest)
	order := make([]string, 0, len(rows))

	for _, row := range rows {
		key := pairKey(row.SenderID, row.ReceiverID)
		current, seen := latestByPair[key]
		if !seen {
			latestByPair[key] = row
			order = append(order, key)
			continue
		}
		if row.CreatedAt.After(current.CreatedAt) {
			latestByPair[key] = row
		}
	}

	graph := FriendGraph{LatestPerPair: make([]models.FriendRequest, 0, len(order))}
	for _, key := range order {
		row := latestByPair[key]
		graph.LatestPerPair = append(graph.LatestPerPair, row)
		if row.Status != models.FriendRequestPending {
			continue
		}
		switch {
		case row.ReceiverID == viewerID:
			graph.PendingIncoming = append(graph.PendingIncoming, row)
		case row.SenderID == viewerID && row.ReceiverID != viewerID:
			graph.PendingOutgoing = append(graph.PendingOutgoing, row)
		}
	}
	return graph
}

// PeerIDs returns the other participant of every latest-pair row, in order.
func (g FriendGraph) PeerIDs(viewerID string) []string {
	ids := make([]string, 0, len(g.LatestPerPair))
	seen := make(map[string]bool, len(g.LatestPerPair))
	for _, row := range g.LatestPerPair {
		peer := row.Peer(viewerID)
		if peer == "" || seen[peer] {
			continue
		}
		seen[peer] = true
		ids = append(ids, peer)
	}
	return ids
}

// AcceptedFriends derives the viewer's friend list from the latest-pair rows.
// One entry per distinct peer id, first occurrence wins; missing profile
// summaries get placeholder display values.
func AcceptedFriends(latest []models.FriendRequest, viewerID string, profiles map[string]models.ProfileSummary) []models.Friend {
	friends := make([]models.Friend, 0)
	seen := make(map[string]bool)

	for _, row := range latest {
		if row.Status != models.FriendRequestAccepted {
			continue
		}
		peer := row.Peer(viewerID)
		if peer == "" || seen[peer] {
			continue
		}
		seen[peer] = true

		friend := models.Friend{ID: peer, Name: "Friend"}
		if profile, ok := profiles[peer]; ok {
			friend.Name = profile.Name
			friend.AvatarURL = profile.AvatarURL
			friend.SkillLevel = profile.SkillLevel
			if len(profile.Sports) > 0 {
				sport := profile.Sports[0]
				friend.Sport = &sport
			}
		}
		friends = append(friends, friend)
	}
	return friends
}

// FriendRequestView decorates a pending request with its peer's display
// summary.
type FriendRequestView struct {
	models.FriendRequest
	PeerID        string  `json:"peer_id"`
	PeerName      string  `json:"peer_name"`
	PeerAvatarURL *string `json:"peer_avatar_url,omitempty"`
}

// FriendsPageView is everything the friends page renders.
type FriendsPageView struct {
	Friends         []models.Friend     `json:"friends"`
	PendingIncoming []FriendRequestView `json:"pending_incoming"`
	PendingOutgoing []FriendRequestView `json:"pending_outgoing"`
}

type FriendService interface {
	FriendsPage(ctx context.Context, sess *backend.Session) (*FriendsPageView, error)

	// SearchPlayers matches community profiles by name, excluding the viewer
	// and anyone already connected or in a request pair with them.
	SearchPlayers(ctx context.Context, sess *backend.Session, term string) ([]models.ProfileSummary, error)

	// SendRequest creates a pending request. It refuses, without writing,
	// when a pending request already exists between the pair or the peer is
	// already a friend.
	SendRequest(ctx context.Context, sess *backend.Session, receiverID string) (*models.FriendRequest, error)

	// RespondToRequest accepts or declines an incoming request.
	RespondToRequest(ctx context.Context, sess *backend.Session, requestID string, status models.FriendRequestStatus) error
}

type friendService struct {
	requestRepo repositories.FriendRequestRepository
	profileRepo repositories.ProfileRepository
}

func NewFriendService(requestRepo repositories.FriendRequestRepository, profileRepo repositories.ProfileRepository) FriendService {
	return &friendService{
		requestRepo: requestRepo,
		profileRepo: profileRepo,
	}
}

func (s *friendService) FriendsPage(ctx context.Context, sess *backend.Session) (*FriendsPageView, error) {
	if sess == nil || sess.UserID == "" {
		return nil, ErrAuthenticationRequired
	}

	rows, err := s.requestRepo.ListInvolving(ctx, sess, sess.UserID)
	if err != nil {
		if errors.Is(err, backend.ErrNotConfigured) {
			return &FriendsPageView{
				Friends:         FallbackFriends(),
				PendingIncoming: []FriendRequestView{},
				PendingOutgoing: []FriendRequestView{},
			}, nil
		}
		return nil, fmt.Errorf("failed to load friend requests: %w", err)
	}

	graph := ReduceRequests(rows, sess.UserID)
	profiles, err := s.profileRepo.GetSummariesByIDs(ctx, sess, graph.PeerIDs(sess.UserID))
	if err != nil {
		return nil, fmt.Errorf("failed to load peer profiles: %w", err)
	}

	view := &FriendsPageView{
		Friends:         AcceptedFriends(graph.LatestPerPair, sess.UserID, profiles),
		PendingIncoming: requestViews(graph.PendingIncoming, sess.UserID, profiles),
		PendingOutgoing: requestViews(graph.PendingOutgoing, sess.UserID, profiles),
	}
	return view, nil
}

func requestViews(rows []models.FriendRequest, viewerID string, profiles map[string]models.ProfileSummary) []FriendRequestView {
	views := make([]FriendRequestView, 0, len(rows))
	for _, row := range rows {
		peer := row.Peer(viewerID)
		view := FriendRequestView{FriendRequest: row, PeerID: peer, PeerName: "Player"}
		if profile, ok := profiles[peer]; ok {
			view.PeerName = profile.Name
			view.PeerAvatarURL = profile.AvatarURL
		}
		views = append(views, view)
	}
	return views
}

func (s *friendService) SearchPlayers(ctx context.Context, sess *backend.Session, term string) ([]models.ProfileSummary, error) {
	if sess == nil || sess.UserID == "" {
		return nil, ErrAuthenticationRequired
	}
	term = strings.TrimSpace(term)
	if term == "" {
		return []models.ProfileSummary{}, nil
	}

	results, err := s.profileRepo.SearchByName(ctx, sess, term, searchResultLimit)
	if err != nil {
		if errors.Is(err, backend.ErrNotConfigured) {
			return []models.ProfileSummary{}, nil
		}
		return nil, fmt.Errorf("failed to search profiles: %w", err)
	}

	rows, err := s.requestRepo.ListInvolving(ctx, sess, sess.UserID)
	if err != nil && !errors.Is(err, backend.ErrNotConfigured) {
		return nil, fmt.Errorf("failed to load friend requests: %w", err)
	}
	graph := ReduceRequests(rows, sess.UserID)

	return ExcludeConnected(results, sess.UserID, graph), nil
}

// ExcludeConnected filters search results down to players the viewer has no
// existing connection or request pair with.
func ExcludeConnected(results []models.ProfileSummary, viewerID string, graph FriendGraph) []models.ProfileSummary {
	excluded := map[string]bool{viewerID: true}
	for _, row := range graph.LatestPerPair {
		excluded[row.SenderID] = true
		excluded[row.ReceiverID] = true
	}

	filtered := make([]models.ProfileSummary, 0, len(results))
	for _, result := range results {
		if !excluded[result.ID] {
			filtered = append(filtered, result)
		}
	}
	return filtered
}

func (s *friendService) SendRequest(ctx context.Context, sess *backend.Session, receiverID string) (*models.FriendRequest, error) {
	if sess == nil || sess.UserID == "" {
		return nil, ErrAuthenticationRequired
	}
	if receiverID == "" || receiverID == sess.UserID {
		return nil, ErrSelfFriendRequest
	}

	rows, err := s.requestRepo.ListInvolving(ctx, sess, sess.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load friend requests: %w", err)
	}

	key := pairKey(sess.UserID, receiverID)
	graph := ReduceRequests(rows, sess.UserID)
	for _, row := range graph.LatestPerPair {
		if pairKey(row.SenderID, row.ReceiverID) != key {
			continue
		}
		switch row.Status {
		case models.FriendRequestPending:
			return nil, ErrRequestAlreadyPending
		case models.FriendRequestAccepted:
			return nil, ErrAlreadyFriends
		}
	}

	request := &models.FriendRequest{
		SenderID:   sess.UserID,
		ReceiverID: receiverID,
		Status:     models.FriendRequestPending,
	}
	if err := s.requestRepo.Create(ctx, sess, request); err != nil {
		return nil, fmt.Errorf("failed to send friend request: %w", err)
	}
	return request, nil
}

func (s *friendService) RespondToRequest(ctx context.Context, sess *backend.Session, requestID string, status models.FriendRequestStatus) error {
	if sess == nil || sess.UserID == "" {
		return ErrAuthenticationRequired
	}
	if status != models.FriendRequestAccepted && status != models.FriendRequestDeclined {
		return ErrInvalidRequestResponse
	}
	if err := s.requestRepo.UpdateStatus(ctx, sess, requestID, status); err != nil {
		return fmt.Errorf("failed to respond to friend request: %w", err)
	}
	return nil
}
