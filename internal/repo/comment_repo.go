package repo

import (
	"context"

	dom "catalog/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CommentRepo interface {
	Create(ctx context.Context, c dom.Comment) (dom.Comment, error)
	GetByID(ctx context.Context, id int64) (dom.Comment, error)
	List(ctx context.Context, offset, limit int) ([]dom.Comment, error)
	Update(ctx context.Context, id int64, c dom.Comment) (dom.Comment, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type PGCommentRepo struct {
	db *pgxpool.Pool
}

func NewPGCommentRepo(db *pgxpool.Pool) *PGCommentRepo {
	return &PGCommentRepo{db: db}
}

func (r *PGCommentRepo) Create(ctx context.Context, c dom.Comment) (dom.Comment, error) {
	query := `
		INSERT INTO comments (text, user_id, item_id)
		VALUES ($1, $2, $3)
		RETURNING id, text, user_id, item_id, created_at, updated_at`
	var out dom.Comment
	err := r.db.QueryRow(ctx, query, c.Text, c.UserID, c.ItemID).Scan(
		&out.ID, &out.Text, &out.UserID, &out.ItemID, &out.CreatedAt, &out.UpdatedAt,
	)
	return out, err
}

func (r *PGCommentRepo) GetByID(ctx context.Context, id int64) (dom.Comment, error) {
	var c dom.Comment
	err := r.db.QueryRow(ctx,
		`SELECT id, text, user_id, item_id, created_at, updated_at FROM comments WHERE id = $1`,
		id,
	).Scan(&c.ID, &c.Text, &c.UserID, &c.ItemID, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r *PGCommentRepo) List(ctx context.Context, offset, limit int) ([]dom.Comment, error) {
	query := `
		SELECT id, text, user_id, item_id, created_at, updated_at
		FROM comments ORDER BY id OFFSET $1 LIMIT $2`
	rows, err := r.db.Query(ctx, query, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Comment
	for rows.Next() {
		var c dom.Comment
		if err := rows.Scan(&c.ID, &c.Text, &c.UserID, &c.ItemID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *PGCommentRepo) Update(ctx context.Context, id int64, c dom.Comment) (dom.Comment, error) {
	query := `
		UPDATE comments SET text = $2, user_id = $3, item_id = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING id, text, user_id, item_id, created_at, updated_at`
	var out dom.Comment
	err := r.db.QueryRow(ctx, query, id, c.Text, c.UserID, c.ItemID).Scan(
		&out.ID, &out.Text, &out.UserID, &out.ItemID, &out.CreatedAt, &out.UpdatedAt,
	)
	return out, err
}

func (r *PGCommentRepo) Delete(ctx context.Context, id int64) (bool, error) {
	ct, err := r.db.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}
