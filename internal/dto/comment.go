package dto

import "time"

type CreateCommentRequest struct {
	Text   string `json:"text" binding:"required,min=1,max=2000"`
	UserID int64  `json:"user_id" binding:"required,gt=0"`
	ItemID int64  `json:"item_id" binding:"required,gt=0"`
}

type UpdateCommentRequest struct {
	Text   *string `json:"text" binding:"omitempty,min=1,max=2000"`
	UserID *int64  `json:"user_id" binding:"omitempty,gt=0"`
	ItemID *int64  `json:"item_id" binding:"omitempty,gt=0"`
}

type CommentResponse struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	UserID    int64     `json:"user_id"`
	ItemID    int64     `json:"item_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ListCommentsResponse struct {
	Items []CommentResponse `json:"items"`
}
