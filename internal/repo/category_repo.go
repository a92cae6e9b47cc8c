package repo

import (
	"context"

	dom "catalog/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CategoryRepo interface {
	Create(ctx context.Context, c dom.Category) (dom.Category, error)
	GetByID(ctx context.Context, id int64) (dom.Category, error)
	List(ctx context.Context, offset, limit int) ([]dom.Category, error)
	Update(ctx context.Context, id int64, c dom.Category) (dom.Category, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type PGCategoryRepo struct {
	db *pgxpool.Pool
}

func NewPGCategoryRepo(db *pgxpool.Pool) *PGCategoryRepo {
	return &PGCategoryRepo{db: db}
}

func (r *PGCategoryRepo) Create(ctx context.Context, c dom.Category) (dom.Category, error) {
	query := `
		INSERT INTO categories (name)
		VALUES ($1)
		RETURNING id, name, created_at, updated_at`
	var out dom.Category
	err := r.db.QueryRow(ctx, query, c.Name).Scan(
		&out.ID, &out.Name, &out.CreatedAt, &out.UpdatedAt,
	)
	return out, err
}

func (r *PGCategoryRepo) GetByID(ctx context.Context, id int64) (dom.Category, error) {
	var c dom.Category
	err := r.db.QueryRow(ctx,
		`SELECT id, name, created_at, updated_at FROM categories WHERE id = $1`,
		id,
	).Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r *PGCategoryRepo) List(ctx context.Context, offset, limit int) ([]dom.Category, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM categories ORDER BY id OFFSET $1 LIMIT $2`
	rows, err := r.db.Query(ctx, query, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Category
	for rows.Next() {
		var c dom.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *PGCategoryRepo) Update(ctx context.Context, id int64, c dom.Category) (dom.Category, error) {
	query := `
		UPDATE categories SET name = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, created_at, updated_at`
	var out dom.Category
	err := r.db.QueryRow(ctx, query, id, c.Name).Scan(
		&out.ID, &out.Name, &out.CreatedAt, &out.UpdatedAt,
	)
	return out, err
}

func (r *PGCategoryRepo) Delete(ctx context.Context, id int64) (bool, error) {
	ct, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}
