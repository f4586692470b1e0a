package repositories

import (
	"context"
	"errors"

	"github.com/DCirincione/ASLWebsite/backend"
	"github.com/DCirincione/ASLWebsite/models"
)

var ErrFriendRequestNotFound = errors.New("friend request not found")

// FriendRequestRepository reads and writes rows of the backend
// `friend_requests` table.
type FriendRequestRepository interface {
	// ListInvolving returns every request the user sent or received, newest
	// first. Pair de-duplication happens in the service layer.
	ListInvolving(ctx context.Context, sess *backend.Session, userID string) ([]models.FriendRequest, error)

	// ListAcceptedInvolving returns accepted requests only, for public
	// profile friend lists.
	ListAcceptedInvolving(ctx context.Context, sess *backend.Session, userID string) ([]models.FriendRequest, error)

	// Create inserts a pending request and fills in the created row.
	Create(ctx context.Context, sess *backend.Session, request *models.FriendRequest) error

	UpdateStatus(ctx context.Context, sess *backend.Session, id string, status models.FriendRequestStatus) error
}

type restFriendRequestRepository struct {
	client *backend.Client
}

func NewRESTFriendRequestRepository(client *backend.Client) FriendRequestRepository {
	return &restFriendRequestRepository{client: client}
}

func involvingFilter(userID string) backend.Filter {
	return backend.Or("sender_id.eq."+userID, "receiver_id.eq."+userID)
}

func (r *restFriendRequestRepository) ListInvolving(ctx context.Context, sess *backend.Session, userID string) ([]models.FriendRequest, error) {
	var rows []models.FriendRequest
	err := r.client.Select(ctx, sess, "friend_requests", backend.Query{
		Filters:    []backend.Filter{involvingFilter(userID)},
		OrderBy:    "created_at",
		Descending: true,
	}, &rows)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *restFriendRequestRepository) ListAcceptedInvolving(ctx context.Context, sess *backend.Session, userID string) ([]models.FriendRequest, error) {
	var rows []models.FriendRequest
	err := r.client.Select(ctx, sess, "friend_requests", backend.Query{
		Filters: []backend.Filter{
			involvingFilter(userID),
			backend.Eq("status", string(models.FriendRequestAccepted)),
		},
		OrderBy:    "created_at",
		Descending: true,
	}, &rows)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *restFriendRequestRepository) Create(ctx context.Context, sess *backend.Session, request *models.FriendRequest) error {
	payload := map[string]interface{}{
		"sender_id":   request.SenderID,
		"receiver_id": request.ReceiverID,
		"status":      request.Status,
	}
	var created []models.FriendRequest
	if err := r.client.Insert(ctx, sess, "friend_requests", payload, &created); err != nil {
		return err
	}
	if len(created) > 0 {
		*request = created[0]
	}
	return nil
}

func (r *restFriendRequestRepository) UpdateStatus(ctx context.Context, sess *backend.Session, id string, status models.FriendRequestStatus) error {
	payload := map[string]interface{}{"status": status}
	return r.client.Update(ctx, sess, "friend_requests", payload, []backend.Filter{
		backend.Eq("id", id),
	})
}
