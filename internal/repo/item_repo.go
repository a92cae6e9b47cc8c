package repo

import (
	"context"

	dom "catalog/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ItemRepo interface {
	Create(ctx context.Context, it dom.Item) (dom.Item, error)
	GetByID(ctx context.Context, id int64) (dom.Item, error)
	List(ctx context.Context, offset, limit int) ([]dom.Item, error)
	Update(ctx context.Context, id int64, it dom.Item) (dom.Item, error)
	Delete(ctx context.Context, id int64) (bool, error)

	// item_tags association
	AttachTag(ctx context.Context, itemID, tagID int64) error
	DetachTag(ctx context.Context, itemID, tagID int64) (bool, error)
	Tags(ctx context.Context, itemID int64) ([]dom.Tag, error)
}

type PGItemRepo struct {
	db *pgxpool.Pool
}

func NewPGItemRepo(db *pgxpool.Pool) *PGItemRepo {
	return &PGItemRepo{db: db}
}

func (r *PGItemRepo) Create(ctx context.Context, it dom.Item) (dom.Item, error) {
	query := `
		INSERT INTO items (name, category_id)
		VALUES ($1, $2)
		RETURNING id, name, category_id, created_at, updated_at`
	var out dom.Item
	err := r.db.QueryRow(ctx, query, it.Name, it.CategoryID).Scan(
		&out.ID, &out.Name, &out.CategoryID, &out.CreatedAt, &out.UpdatedAt,
	)
	return out, err
}

func (r *PGItemRepo) GetByID(ctx context.Context, id int64) (dom.Item, error) {
	var it dom.Item
	err := r.db.QueryRow(ctx,
		`SELECT id, name, category_id, created_at, updated_at FROM items WHERE id = $1`,
		id,
	).Scan(&it.ID, &it.Name, &it.CategoryID, &it.CreatedAt, &it.UpdatedAt)
	return it, err
}

func (r *PGItemRepo) List(ctx context.Context, offset, limit int) ([]dom.Item, error) {
	query := `
		SELECT id, name, category_id, created_at, updated_at
		FROM items ORDER BY id OFFSET $1 LIMIT $2`
	rows, err := r.db.Query(ctx, query, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Item
	for rows.Next() {
		var it dom.Item
		if err := rows.Scan(&it.ID, &it.Name, &it.CategoryID, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

func (r *PGItemRepo) Update(ctx context.Context, id int64, it dom.Item) (dom.Item, error) {
	query := `
		UPDATE items SET name = $2, category_id = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, category_id, created_at, updated_at`
	var out dom.Item
	err := r.db.QueryRow(ctx, query, id, it.Name, it.CategoryID).Scan(
		&out.ID, &out.Name, &out.CategoryID, &out.CreatedAt, &out.UpdatedAt,
	)
	return out, err
}

func (r *PGItemRepo) Delete(ctx context.Context, id int64) (bool, error) {
	ct, err := r.db.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

// AttachTag links a tag to an item. Attaching an already-attached tag is a no-op.
func (r *PGItemRepo) AttachTag(ctx context.Context, itemID, tagID int64) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO item_tags (item_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		itemID, tagID,
	)
	return err
}

// DetachTag unlinks a tag from an item; returns whether a link was removed.
func (r *PGItemRepo) DetachTag(ctx context.Context, itemID, tagID int64) (bool, error) {
	ct, err := r.db.Exec(ctx,
		`DELETE FROM item_tags WHERE item_id = $1 AND tag_id = $2`,
		itemID, tagID,
	)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

// Tags returns all tags attached to the item.
func (r *PGItemRepo) Tags(ctx context.Context, itemID int64) ([]dom.Tag, error) {
	query := `
		SELECT t.id, t.name, t.created_at, t.updated_at
		FROM tags t JOIN item_tags it ON it.tag_id = t.id
		WHERE it.item_id = $1 ORDER BY t.id`
	rows, err := r.db.Query(ctx, query, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Tag
	for rows.Next() {
		var t dom.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}
