package domain

import "time"

// Item belongs to exactly one category.
type Item struct {
	ID         int64
	Name       string
	CategoryID int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type ItemPatch struct {
	Name       *string
	CategoryID *int64
}
