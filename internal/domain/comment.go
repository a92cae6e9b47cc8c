package domain

import "time"

// Comment is written by a user on an item. Both references are required.
type Comment struct {
	ID        int64
	Text      string
	UserID    int64
	ItemID    int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CommentPatch struct {
	Text   *string
	UserID *int64
	ItemID *int64
}
