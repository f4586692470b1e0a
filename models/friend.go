package models

import "time"

type FriendRequestStatus string

const (
	FriendRequestPending  FriendRequestStatus = "pending"
	FriendRequestAccepted FriendRequestStatus = "accepted"
	FriendRequestDeclined FriendRequestStatus = "declined"
)

// FriendRequest is one row of the bidirectional friend_requests table.
// The backend does not enforce uniqueness per user pair; the newest row per
// unordered {sender, receiver} pair is treated as the active one.
type FriendRequest struct {
	ID         string              `json:"id"`
	SenderID   string              `json:"sender_id"`
	ReceiverID string              `json:"receiver_id"`
	Status     FriendRequestStatus `json:"status"`
	CreatedAt  time.Time           `json:"created_at"`
}

// Peer returns the participant that is not the viewing user.
func (r FriendRequest) Peer(viewerID string) string {
	if r.SenderID == viewerID {
		return r.ReceiverID
	}
	return r.SenderID
}

// Friend is a display entry in a user's accepted-friends list.
type Friend struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Sport      *string `json:"sport,omitempty"`
	SkillLevel *int    `json:"skill_level,omitempty"`
	AvatarURL  *string `json:"avatar_url,omitempty"`
}
