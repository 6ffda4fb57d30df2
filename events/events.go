// File: /events/events.go
package events

// The event structs carry everything a consumer needs, so consumers never
// re-read the originating collection. Item-bearing events include the item
// kind and its author as resolved at publish time.

type UserRegistered struct {
	UserID   string
	Username string
	Email    *string
}

type PostCreated struct {
	PostID   string
	AuthorID string
}

type CommentCreated struct {
	CommentID    string
	AuthorID     string
	ItemID       string
	ItemKind     string
	ItemAuthorID string
}

type ReactionCreated struct {
	ReactionID   string
	AuthorID     string
	ItemID       string
	Type         string
	ItemKind     string
	ItemAuthorID string
}

type FollowCreated struct {
	FollowerID  string
	FollowingID string
}

type FriendRequestSent struct {
	FromID string
	ToID   string
}

type FriendRequestAccepted struct {
	// FromID sent the original request, ToID accepted it.
	FromID string
	ToID   string
}
