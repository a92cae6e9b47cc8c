package dto

import "time"

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=120"`
}

type UpdateCategoryRequest struct {
	Name *string `json:"name" binding:"omitempty,min=1,max=120"`
}

type CategoryResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ListCategoriesResponse struct {
	Items []CategoryResponse `json:"items"`
}
