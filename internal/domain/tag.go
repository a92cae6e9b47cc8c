package domain

import "time"

// Tag labels items through the item_tags association.
type Tag struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type TagPatch struct {
	Name *string
}
