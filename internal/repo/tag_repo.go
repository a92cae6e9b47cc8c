package repo

import (
	"context"

	dom "catalog/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type TagRepo interface {
	Create(ctx context.Context, t dom.Tag) (dom.Tag, error)
	GetByID(ctx context.Context, id int64) (dom.Tag, error)
	List(ctx context.Context, offset, limit int) ([]dom.Tag, error)
	Update(ctx context.Context, id int64, t dom.Tag) (dom.Tag, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type PGTagRepo struct {
	db *pgxpool.Pool
}

func NewPGTagRepo(db *pgxpool.Pool) *PGTagRepo {
	return &PGTagRepo{db: db}
}

func (r *PGTagRepo) Create(ctx context.Context, t dom.Tag) (dom.Tag, error) {
	query := `
		INSERT INTO tags (name)
		VALUES ($1)
		RETURNING id, name, created_at, updated_at`
	var out dom.Tag
	err := r.db.QueryRow(ctx, query, t.Name).Scan(
		&out.ID, &out.Name, &out.CreatedAt, &out.UpdatedAt,
	)
	return out, err
}

func (r *PGTagRepo) GetByID(ctx context.Context, id int64) (dom.Tag, error) {
	var t dom.Tag
	err := r.db.QueryRow(ctx,
		`SELECT id, name, created_at, updated_at FROM tags WHERE id = $1`,
		id,
	).Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func (r *PGTagRepo) List(ctx context.Context, offset, limit int) ([]dom.Tag, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM tags ORDER BY id OFFSET $1 LIMIT $2`
	rows, err := r.db.Query(ctx, query, offset, limit)
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

func (r *PGTagRepo) Update(ctx context.Context, id int64, t dom.Tag) (dom.Tag, error) {
	query := `
		UPDATE tags SET name = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, created_at, updated_at`
	var out dom.Tag
	err := r.db.QueryRow(ctx, query, id, t.Name).Scan(
		&out.ID, &out.Name, &out.CreatedAt, &out.UpdatedAt,
	)
	return out, err
}

func (r *PGTagRepo) Delete(ctx context.Context, id int64) (bool, error) {
	ct, err := r.db.Exec(ctx, `DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}
