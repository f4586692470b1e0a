package services

import (
	"context"
	"testing"

	"github.com/DCirincione/ASLWebsite/backend"
	"github.com/DCirincione/ASLWebsite/models"
	"github.com/DCirincione/ASLWebsite/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTeamRepo struct {
	teams []models.TeamMembership
	err   error
}

func (f *fakeTeamRepo) ListByUserID(_ context.Context, _ *backend.Session, _ string) ([]models.TeamMembership, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.teams, nil
}

func newProfileService(profiles *fakeProfileRepo, teams *fakeTeamRepo, requests *fakeFriendRequestRepo) ProfileService {
	return NewProfileService(profiles, teams, requests, &fakeUploader{baseURL: "https://files.example.com"})
}

func TestParseList(t *testing.T) {
	assert.Equal(t, []string{"Forward", "Wing"}, ParseList("Forward, Wing"))
	assert.Equal(t, []string{"Soccer"}, ParseList("  Soccer  "))
	assert.Equal(t, []string{"a", "b"}, ParseList("a,,b,"))
	assert.Empty(t, ParseList(""))
	assert.Empty(t, ParseList(" , , "))
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *int
	}{
		{"plain number", "27", intPtr(27)},
		{"padded number", " 8 ", intPtr(8)},
		{"junk", "twenty", nil},
		{"empty", "", nil},
		{"decimal", "7.5", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseNumber(tt.input))
		})
	}
}

func TestCreateProfileParsesFreeFormInput(t *testing.T) {
	profiles := &fakeProfileRepo{}
	svc := newProfileService(profiles, &fakeTeamRepo{}, &fakeFriendRequestRepo{})

	input := SignUpProfileInput{
		Name:       "  Alex Johnson ",
		Age:        "24",
		Positions:  "Forward, Wing",
		Sports:     "Basketball,Flag Football",
		SkillLevel: "not a number",
		About:      "   ",
	}
	err := svc.CreateProfile(context.Background(), sessionFor("u1"), input)

	require.NoError(t, err)
	require.Len(t, profiles.upserted, 1)
	profile := profiles.upserted[0]

	assert.Equal(t, "u1", profile.ID)
	assert.Equal(t, "Alex Johnson", profile.Name)
	require.NotNil(t, profile.Age)
	assert.Equal(t, 24, *profile.Age)
	assert.Equal(t, []string{"Forward", "Wing"}, profile.Positions)
	assert.Equal(t, []string{"Basketball", "Flag Football"}, profile.Sports)
	assert.Nil(t, profile.SkillLevel)
	assert.Nil(t, profile.About)
}

func TestCreateProfileRequiresSession(t *testing.T) {
	profiles := &fakeProfileRepo{}
	svc := newProfileService(profiles, &fakeTeamRepo{}, &fakeFriendRequestRepo{})

	err := svc.CreateProfile(context.Background(), nil, SignUpProfileInput{Name: "Alex"})

	assert.ErrorIs(t, err, ErrAuthenticationRequired)
	assert.Empty(t, profiles.upserted)
}

func TestAccountOverviewAssemblesDashboard(t *testing.T) {
	profiles := &fakeProfileRepo{summaries: map[string]models.ProfileSummary{
		"me":  {ID: "me", Name: "Alex Johnson"},
		"ana": {ID: "ana", Name: "Ana Silva"},
	}}
	teams := &fakeTeamRepo{teams: []models.TeamMembership{{ID: "t1", TeamName: "Downtown Warriors"}}}
	requests := &fakeFriendRequestRepo{rows: []models.FriendRequest{
		request("r1", "me", "ana", models.FriendRequestAccepted, at(0)),
	}}
	svc := newProfileService(profiles, teams, requests)

	overview, err := svc.AccountOverview(context.Background(), sessionFor("me"))

	require.NoError(t, err)
	assert.False(t, overview.Demo)
	assert.Equal(t, "Alex Johnson", overview.Profile.Name)
	require.Len(t, overview.Teams, 1)
	require.Len(t, overview.Friends, 1)
	assert.Equal(t, "Ana Silva", overview.Friends[0].Name)
}

func TestAccountOverviewFallsBackWhenProfileMissing(t *testing.T) {
	profiles := &fakeProfileRepo{getErr: repositories.ErrProfileNotFound}
	svc := newProfileService(profiles, &fakeTeamRepo{}, &fakeFriendRequestRepo{})

	overview, err := svc.AccountOverview(context.Background(), sessionFor("me"))

	require.NoError(t, err)
	assert.True(t, overview.Demo)
	assert.Equal(t, "Alex Johnson", overview.Profile.Name)
	assert.NotEmpty(t, overview.Teams)
	assert.NotEmpty(t, overview.Friends)
}

func TestUpdateProfileOwnerOnly(t *testing.T) {
	profiles := &fakeProfileRepo{}
	svc := newProfileService(profiles, &fakeTeamRepo{}, &fakeFriendRequestRepo{})

	err := svc.UpdateProfile(context.Background(), sessionFor("me"), models.Profile{ID: "someone-else", Name: "Alex"})

	require.NoError(t, err)
	require.Len(t, profiles.updated, 1)
	assert.Equal(t, "me", profiles.updated[0].ID)
}
