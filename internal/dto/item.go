package dto

import "time"

type CreateItemRequest struct {
	Name       string `json:"name" binding:"required,min=1,max=120"`
	CategoryID int64  `json:"category_id" binding:"required,gt=0"`
}

type UpdateItemRequest struct {
	Name       *string `json:"name" binding:"omitempty,min=1,max=120"`
	CategoryID *int64  `json:"category_id" binding:"omitempty,gt=0"`
}

type ItemResponse struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	CategoryID int64     `json:"category_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type ListItemsResponse struct {
	Items []ItemResponse `json:"items"`
}
