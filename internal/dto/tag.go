package dto

import "time"

type CreateTagRequest struct {
	Name string `json:"name" binding:"required,min=1,max=120"`
}

type UpdateTagRequest struct {
	Name *string `json:"name" binding:"omitempty,min=1,max=120"`
}

type TagResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ListTagsResponse struct {
	Items []TagResponse `json:"items"`
}
