package domain

import "time"

// Category groups items. Name is unique across live rows.
type Category struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CategoryPatch struct {
	Name *string
}
