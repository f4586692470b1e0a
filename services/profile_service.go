package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/DCirincione/ASLWebsite/backend"
	"github.com/DCirincione/ASLWebsite/models"
	"github.com/DCirincione/ASLWebsite/repositories"
	"github.com/DCirincione/ASLWebsite/storage"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// AccountOverview is the signed-in account dashboard.
type AccountOverview struct {
	Profile models.Profile          `json:"profile"`
	Teams   []models.TeamMembership `json:"teams"`
	Friends []models.Friend         `json:"friends"`
	// Demo is set when the backend was unavailable and the fallback profile
	// is shown.
	Demo bool `json:"demo,omitempty"`
}

// PublicProfileView is the public profile-by-id page.
type PublicProfileView struct {
	Profile models.Profile          `json:"profile"`
	Teams   []models.TeamMembership `json:"teams"`
	Friends []models.Friend         `json:"friends"`
}

// SignUpProfileInput carries the free-form signup fields; numbers and
// comma-separated lists arrive as text and are parsed tolerantly.
type SignUpProfileInput struct {
	Name       string `json:"name"`
	Age        string `json:"age"`
	Positions  string `json:"positions"`
	Sports     string `json:"sports"`
	SkillLevel string `json:"skill_level"`
	About      string `json:"about"`
}

// ParseList splits a comma-separated input into trimmed, non-empty entries.
func ParseList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ParseNumber returns nil for anything that is not a number.
func ParseNumber(value string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return nil
	}
	return &n
}

type ProfileService interface {
	// AccountOverview assembles the dashboard for the signed-in user.
	AccountOverview(ctx context.Context, sess *backend.Session) (*AccountOverview, error)

	// PublicProfile renders any user's public profile page.
	PublicProfile(ctx context.Context, sess *backend.Session, profileID string) (*PublicProfileView, error)

	// TeamMemberships lists the signed-in user's teams, newest first.
	TeamMemberships(ctx context.Context, sess *backend.Session) ([]models.TeamMembership, error)

	// CreateProfile upserts the profile row right after account signup.
	CreateProfile(ctx context.Context, sess *backend.Session, input SignUpProfileInput) error

	// UpdateProfile saves edits to the user's own profile.
	UpdateProfile(ctx context.Context, sess *backend.Session, profile models.Profile) error

	// UploadAvatar stores a new avatar image and records its public URL on
	// the profile.
	UploadAvatar(ctx context.Context, sess *backend.Session, filename, contentType string, reader io.Reader) (string, error)
}

type profileService struct {
	profileRepo repositories.ProfileRepository
	teamRepo    repositories.TeamRepository
	requestRepo repositories.FriendRequestRepository
	uploader    storage.FileUploader
}

func NewProfileService(
	profileRepo repositories.ProfileRepository,
	teamRepo repositories.TeamRepository,
	requestRepo repositories.FriendRequestRepository,
	uploader storage.FileUploader,
) ProfileService {
	return &profileService{
		profileRepo: profileRepo,
		teamRepo:    teamRepo,
		requestRepo: requestRepo,
		uploader:    uploader,
	}
}

func (s *profileService) AccountOverview(ctx context.Context, sess *backend.Session) (*AccountOverview, error) {
	if sess == nil || sess.UserID == "" {
		return nil, ErrAuthenticationRequired
	}

	var (
		profile  *models.Profile
		teams    []models.TeamMembership
		requests []models.FriendRequest
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		profile, err = s.profileRepo.GetByID(groupCtx, sess, sess.UserID)
		return err
	})
	group.Go(func() error {
		var err error
		teams, err = s.teamRepo.ListByUserID(groupCtx, sess, sess.UserID)
		return err
	})
	group.Go(func() error {
		var err error
		requests, err = s.requestRepo.ListInvolving(groupCtx, sess, sess.UserID)
		return err
	})

	if err := group.Wait(); err != nil {
		if errors.Is(err, backend.ErrNotConfigured) || errors.Is(err, repositories.ErrProfileNotFound) {
			return &AccountOverview{
				Profile: FallbackProfile(),
				Teams:   FallbackTeams(),
				Friends: FallbackFriends(),
				Demo:    true,
			}, nil
		}
		return nil, fmt.Errorf("failed to load account overview: %w", err)
	}

	graph := ReduceRequests(requests, sess.UserID)
	profiles, err := s.profileRepo.GetSummariesByIDs(ctx, sess, graph.PeerIDs(sess.UserID))
	if err != nil {
		return nil, fmt.Errorf("failed to load peer profiles: %w", err)
	}

	return &AccountOverview{
		Profile: *profile,
		Teams:   teams,
		Friends: AcceptedFriends(graph.LatestPerPair, sess.UserID, profiles),
	}, nil
}

func (s *profileService) PublicProfile(ctx context.Context, sess *backend.Session, profileID string) (*PublicProfileView, error) {
	profile, err := s.profileRepo.GetByID(ctx, sess, profileID)
	if err != nil {
		if errors.Is(err, backend.ErrNotConfigured) {
			fallback := FallbackProfile()
			fallback.ID = profileID
			return &PublicProfileView{Profile: fallback, Teams: []models.TeamMembership{}, Friends: []models.Friend{}}, nil
		}
		return nil, err
	}

	teams, err := s.teamRepo.ListByUserID(ctx, sess, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to load team memberships: %w", err)
	}

	accepted, err := s.requestRepo.ListAcceptedInvolving(ctx, sess, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to load friend list: %w", err)
	}
	graph := ReduceRequests(accepted, profileID)
	profiles, err := s.profileRepo.GetSummariesByIDs(ctx, sess, graph.PeerIDs(profileID))
	if err != nil {
		return nil, fmt.Errorf("failed to load peer profiles: %w", err)
	}

	return &PublicProfileView{
		Profile: *profile,
		Teams:   teams,
		Friends: AcceptedFriends(graph.LatestPerPair, profileID, profiles),
	}, nil
}

func (s *profileService) TeamMemberships(ctx context.Context, sess *backend.Session) ([]models.TeamMembership, error) {
	if sess == nil || sess.UserID == "" {
		return nil, ErrAuthenticationRequired
	}
	teams, err := s.teamRepo.ListByUserID(ctx, sess, sess.UserID)
	if err != nil {
		if errors.Is(err, backend.ErrNotConfigured) {
			return FallbackTeams(), nil
		}
		return nil, fmt.Errorf("failed to load team memberships: %w", err)
	}
	return teams, nil
}

func (s *profileService) CreateProfile(ctx context.Context, sess *backend.Session, input SignUpProfileInput) error {
	if sess == nil || sess.UserID == "" {
		return ErrAuthenticationRequired
	}
	profile := &models.Profile{
		ID:         sess.UserID,
		Name:       strings.TrimSpace(input.Name),
		Age:        ParseNumber(input.Age),
		Positions:  ParseList(input.Positions),
		SkillLevel: ParseNumber(input.SkillLevel),
		Sports:     ParseList(input.Sports),
	}
	if about := strings.TrimSpace(input.About); about != "" {
		profile.About = &about
	}
	if err := s.profileRepo.Upsert(ctx, sess, profile); err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

func (s *profileService) UpdateProfile(ctx context.Context, sess *backend.Session, profile models.Profile) error {
	if sess == nil || sess.UserID == "" {
		return ErrAuthenticationRequired
	}
	// Profiles are mutated by the owning user only.
	profile.ID = sess.UserID
	if err := s.profileRepo.Update(ctx, sess, &profile); err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}

func (s *profileService) UploadAvatar(ctx context.Context, sess *backend.Session, filename, contentType string, reader io.Reader) (string, error) {
	if sess == nil || sess.UserID == "" {
		return "", ErrAuthenticationRequired
	}

	key := fmt.Sprintf("avatars/%s/%s-%s", sess.UserID, uuid.NewString(), sanitizeFilename(filename))
	result, err := s.uploader.Upload(ctx, key, contentType, reader)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}

	profile, err := s.profileRepo.GetByID(ctx, sess, sess.UserID)
	if err != nil {
		return "", fmt.Errorf("failed to load profile for avatar update: %w", err)
	}
	profile.AvatarURL = &result.Location
	if err := s.profileRepo.Update(ctx, sess, profile); err != nil {
		return "", fmt.Errorf("failed to save avatar: %w", err)
	}
	return result.Location, nil
}
