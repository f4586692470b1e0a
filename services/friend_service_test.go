package services

import (
	"context"
	"testing"
	"time"

	"github.com/DCirincione/ASLWebsite/backend"
	"github.com/DCirincione/ASLWebsite/models"
	"github.com/DCirincione/ASLWebsite/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(offset int) time.Time {
	return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC).Add(time.Duration(offset) * time.Minute)
}

func request(id, sender, receiver string, status models.FriendRequestStatus, created time.Time) models.FriendRequest {
	return models.FriendRequest{ID: id, SenderID: sender, ReceiverID: receiver, Status: status, CreatedAt: created}
}

func TestReduceRequestsKeepsNewestPerPair(t *testing.T) {
	rows := []models.FriendRequest{
		request("r1", "me", "ana", models.FriendRequestDeclined, at(0)),
		request("r2", "ana", "me", models.FriendRequestPending, at(5)),
		request("r3", "me", "ben", models.FriendRequestAccepted, at(2)),
	}

	graph := ReduceRequests(rows, "me")

	require.Len(t, graph.LatestPerPair, 2)
	assert.Equal(t, "r2", graph.LatestPerPair[0].ID)
	assert.Equal(t, "r3", graph.LatestPerPair[1].ID)
}

func TestReduceRequestsPairIsUnordered(t *testing.T) {
	// Same pair in both directions collapses to one entry.
	rows := []models.FriendRequest{
		request("r1", "me", "ana", models.FriendRequestDeclined, at(0)),
		request("r2", "ana", "me", models.FriendRequestPending, at(1)),
	}

	graph := ReduceRequests(rows, "me")

	require.Len(t, graph.LatestPerPair, 1)
	assert.Equal(t, "r2", graph.LatestPerPair[0].ID)
}

func TestReduceRequestsEqualTimestampsKeepFirstSeen(t *testing.T) {
	rows := []models.FriendRequest{
		request("r1", "me", "ana", models.FriendRequestPending, at(0)),
		request("r2", "ana", "me", models.FriendRequestDeclined, at(0)),
	}

	graph := ReduceRequests(rows, "me")

	require.Len(t, graph.LatestPerPair, 1)
	assert.Equal(t, "r1", graph.LatestPerPair[0].ID)
}

func TestReduceRequestsSplitsPendingByDirection(t *testing.T) {
	rows := []models.FriendRequest{
		request("in", "ana", "me", models.FriendRequestPending, at(0)),
		request("out", "me", "ben", models.FriendRequestPending, at(1)),
		request("done", "me", "cam", models.FriendRequestAccepted, at(2)),
	}

	graph := ReduceRequests(rows, "me")

	require.Len(t, graph.PendingIncoming, 1)
	assert.Equal(t, "in", graph.PendingIncoming[0].ID)
	require.Len(t, graph.PendingOutgoing, 1)
	assert.Equal(t, "out", graph.PendingOutgoing[0].ID)
}

func TestAcceptedFriendsDeduplicatesPeers(t *testing.T) {
	latest := []models.FriendRequest{
		request("r1", "me", "ana", models.FriendRequestAccepted, at(0)),
		request("r2", "ana", "me", models.FriendRequestAccepted, at(1)),
		request("r3", "me", "ben", models.FriendRequestPending, at(2)),
	}
	profiles := map[string]models.ProfileSummary{
		"ana": {ID: "ana", Name: "Ana Silva", Sports: []string{"Pickleball", "Tennis"}},
	}

	friends := AcceptedFriends(latest, "me", profiles)

	require.Len(t, friends, 1)
	assert.Equal(t, "ana", friends[0].ID)
	assert.Equal(t, "Ana Silva", friends[0].Name)
	require.NotNil(t, friends[0].Sport)
	assert.Equal(t, "Pickleball", *friends[0].Sport)
}

func TestAcceptedFriendsMissingProfileGetsPlaceholder(t *testing.T) {
	latest := []models.FriendRequest{
		request("r1", "me", "ghost", models.FriendRequestAccepted, at(0)),
	}

	friends := AcceptedFriends(latest, "me", nil)

	require.Len(t, friends, 1)
	assert.Equal(t, "Friend", friends[0].Name)
	assert.Nil(t, friends[0].Sport)
}

func TestExcludeConnected(t *testing.T) {
	graph := ReduceRequests([]models.FriendRequest{
		request("r1", "me", "ana", models.FriendRequestAccepted, at(0)),
		request("r2", "ben", "me", models.FriendRequestPending, at(1)),
		request("r3", "me", "cam", models.FriendRequestDeclined, at(2)),
	}, "me")

	results := []models.ProfileSummary{
		{ID: "me", Name: "Me"},
		{ID: "ana", Name: "Ana"},
		{ID: "ben", Name: "Ben"},
		{ID: "cam", Name: "Cam"},
		{ID: "dee", Name: "Dee"},
	}

	filtered := ExcludeConnected(results, "me", graph)

	require.Len(t, filtered, 1)
	assert.Equal(t, "dee", filtered[0].ID)
}

type fakeFriendRequestRepo struct {
	rows    []models.FriendRequest
	created []models.FriendRequest
	updated map[string]models.FriendRequestStatus
}

func (f *fakeFriendRequestRepo) ListInvolving(_ context.Context, _ *backend.Session, _ string) ([]models.FriendRequest, error) {
	return f.rows, nil
}

func (f *fakeFriendRequestRepo) ListAcceptedInvolving(_ context.Context, _ *backend.Session, userID string) ([]models.FriendRequest, error) {
	accepted := make([]models.FriendRequest, 0)
	for _, row := range f.rows {
		if row.Status == models.FriendRequestAccepted {
			accepted = append(accepted, row)
		}
	}
	return accepted, nil
}

func (f *fakeFriendRequestRepo) Create(_ context.Context, _ *backend.Session, request *models.FriendRequest) error {
	request.ID = "created"
	f.created = append(f.created, *request)
	return nil
}

func (f *fakeFriendRequestRepo) UpdateStatus(_ context.Context, _ *backend.Session, id string, status models.FriendRequestStatus) error {
	if f.updated == nil {
		f.updated = make(map[string]models.FriendRequestStatus)
	}
	f.updated[id] = status
	return nil
}

type fakeProfileRepo struct {
	summaries map[string]models.ProfileSummary
	search    []models.ProfileSummary
	getErr    error
	upserted  []models.Profile
	updated   []models.Profile
}

func (f *fakeProfileRepo) GetByID(_ context.Context, _ *backend.Session, id string) (*models.Profile, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	summary, ok := f.summaries[id]
	if !ok {
		return nil, repositories.ErrProfileNotFound
	}
	return &models.Profile{ID: summary.ID, Name: summary.Name}, nil
}

func (f *fakeProfileRepo) GetSummariesByIDs(_ context.Context, _ *backend.Session, ids []string) (map[string]models.ProfileSummary, error) {
	out := make(map[string]models.ProfileSummary)
	for _, id := range ids {
		if summary, ok := f.summaries[id]; ok {
			out[id] = summary
		}
	}
	return out, nil
}

func (f *fakeProfileRepo) SearchByName(_ context.Context, _ *backend.Session, _ string, _ int) ([]models.ProfileSummary, error) {
	return f.search, nil
}

func (f *fakeProfileRepo) Upsert(_ context.Context, _ *backend.Session, profile *models.Profile) error {
	f.upserted = append(f.upserted, *profile)
	return nil
}

func (f *fakeProfileRepo) Update(_ context.Context, _ *backend.Session, profile *models.Profile) error {
	f.updated = append(f.updated, *profile)
	return nil
}

func sessionFor(userID string) *backend.Session {
	return &backend.Session{AccessToken: "token", UserID: userID}
}

func TestSendRequestRefusesDuplicatePending(t *testing.T) {
	repo := &fakeFriendRequestRepo{rows: []models.FriendRequest{
		request("r1", "ana", "me", models.FriendRequestPending, at(0)),
	}}
	svc := NewFriendService(repo, &fakeProfileRepo{})

	_, err := svc.SendRequest(context.Background(), sessionFor("me"), "ana")

	assert.ErrorIs(t, err, ErrRequestAlreadyPending)
	assert.Empty(t, repo.created)
}

func TestSendRequestRefusesExistingFriend(t *testing.T) {
	repo := &fakeFriendRequestRepo{rows: []models.FriendRequest{
		request("r1", "me", "ana", models.FriendRequestAccepted, at(0)),
	}}
	svc := NewFriendService(repo, &fakeProfileRepo{})

	_, err := svc.SendRequest(context.Background(), sessionFor("me"), "ana")

	assert.ErrorIs(t, err, ErrAlreadyFriends)
	assert.Empty(t, repo.created)
}

func TestSendRequestDeclinedPairCanRetry(t *testing.T) {
	repo := &fakeFriendRequestRepo{rows: []models.FriendRequest{
		request("r1", "ana", "me", models.FriendRequestDeclined, at(0)),
	}}
	svc := NewFriendService(repo, &fakeProfileRepo{})

	created, err := svc.SendRequest(context.Background(), sessionFor("me"), "ana")

	require.NoError(t, err)
	assert.Equal(t, "me", created.SenderID)
	assert.Equal(t, "ana", created.ReceiverID)
	assert.Equal(t, models.FriendRequestPending, created.Status)
	require.Len(t, repo.created, 1)
}

func TestSendRequestRefusesSelf(t *testing.T) {
	svc := NewFriendService(&fakeFriendRequestRepo{}, &fakeProfileRepo{})

	_, err := svc.SendRequest(context.Background(), sessionFor("me"), "me")

	assert.ErrorIs(t, err, ErrSelfFriendRequest)
}

func TestRespondToRequestRejectsUnknownStatus(t *testing.T) {
	repo := &fakeFriendRequestRepo{}
	svc := NewFriendService(repo, &fakeProfileRepo{})

	err := svc.RespondToRequest(context.Background(), sessionFor("me"), "r1", models.FriendRequestPending)

	assert.ErrorIs(t, err, ErrInvalidRequestResponse)
	assert.Empty(t, repo.updated)
}

func TestSearchPlayersExcludesViewerAndConnections(t *testing.T) {
	repo := &fakeFriendRequestRepo{rows: []models.FriendRequest{
		request("r1", "me", "ana", models.FriendRequestAccepted, at(0)),
	}}
	profiles := &fakeProfileRepo{search: []models.ProfileSummary{
		{ID: "me", Name: "Me"},
		{ID: "ana", Name: "Ana"},
		{ID: "dee", Name: "Dee"},
	}}
	svc := NewFriendService(repo, profiles)

	results, err := svc.SearchPlayers(context.Background(), sessionFor("me"), "  d ")

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "dee", results[0].ID)
}

func TestSearchPlayersBlankTermShortCircuits(t *testing.T) {
	svc := NewFriendService(&fakeFriendRequestRepo{}, &fakeProfileRepo{})

	results, err := svc.SearchPlayers(context.Background(), sessionFor("me"), "   ")

	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestFriendsPageRequiresSession(t *testing.T) {
	svc := NewFriendService(&fakeFriendRequestRepo{}, &fakeProfileRepo{})

	_, err := svc.FriendsPage(context.Background(), nil)

	assert.ErrorIs(t, err, ErrAuthenticationRequired)
}

func TestFriendsPageDecoratesPendingRequests(t *testing.T) {
	repo := &fakeFriendRequestRepo{rows: []models.FriendRequest{
		request("in", "ana", "me", models.FriendRequestPending, at(0)),
		request("out", "me", "ben", models.FriendRequestPending, at(1)),
	}}
	profiles := &fakeProfileRepo{summaries: map[string]models.ProfileSummary{
		"ana": {ID: "ana", Name: "Ana Silva"},
	}}
	svc := NewFriendService(repo, profiles)

	page, err := svc.FriendsPage(context.Background(), sessionFor("me"))

	require.NoError(t, err)
	require.Len(t, page.PendingIncoming, 1)
	assert.Equal(t, "Ana Silva", page.PendingIncoming[0].PeerName)
	require.Len(t, page.PendingOutgoing, 1)
	assert.Equal(t, "Player", page.PendingOutgoing[0].PeerName)
}
