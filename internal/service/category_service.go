package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"catalog/internal/cache"
	dom "catalog/internal/domain"
	"catalog/internal/notify"
	"catalog/internal/repo"
	"catalog/internal/utils"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/singleflight"
)

const categoryKind = "categories"

type CategoryService struct {
	repo     repo.CategoryRepo
	cache    *cache.Lists
	notifier *notify.Notifier
	sf       singleflight.Group
}

// NewCategoryService creates a CategoryService. If c is nil, caching is disabled.
func NewCategoryService(r repo.CategoryRepo, c *cache.Lists, n *notify.Notifier) *CategoryService {
	return &CategoryService{repo: r, cache: c, notifier: n}
}

func (s *CategoryService) Create(ctx context.Context, name string) (dom.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return dom.Category{}, ErrRequired
	}
	c, err := s.repo.Create(ctx, dom.Category{Name: name})
	if err != nil {
		if utils.IsPGUniqueViolation(err) {
			return dom.Category{}, ErrNameTaken
		}
		return dom.Category{}, err
	}
	s.invalidateCache(ctx)
	s.notifier.Created("Category", c.Name)
	return c, nil
}

func (s *CategoryService) List(ctx context.Context, offset, limit int) ([]dom.Category, error) {
	if s.cache != nil {
		key := fmt.Sprintf("list:%d:%d", offset, limit)
		v, err, _ := s.sf.Do(key, func() (interface{}, error) {
			if list, err := cache.GetPage[dom.Category](ctx, s.cache, categoryKind, offset, limit); err == nil && list != nil {
				return list, nil
			}
			list, err := s.repo.List(ctx, offset, limit)
			if err != nil {
				return nil, err
			}
			_ = cache.SetPage(ctx, s.cache, categoryKind, offset, limit, list)
			return list, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]dom.Category), nil
	}
	return s.repo.List(ctx, offset, limit)
}

func (s *CategoryService) GetByID(ctx context.Context, id int64) (dom.Category, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Category{}, ErrNotFound
		}
		return dom.Category{}, err
	}
	return c, nil
}

func (s *CategoryService) Update(ctx context.Context, id int64, patch dom.CategoryPatch) (dom.Category, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Category{}, ErrNotFound
		}
		return dom.Category{}, err
	}
	next := existing
	if patch.Name != nil {
		next.Name = strings.TrimSpace(*patch.Name)
		if next.Name == "" {
			return dom.Category{}, ErrRequired
		}
	}
	c, err := s.repo.Update(ctx, id, next)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Category{}, ErrNotFound
		}
		if utils.IsPGUniqueViolation(err) {
			return dom.Category{}, ErrNameTaken
		}
		return dom.Category{}, err
	}
	s.invalidateCache(ctx)
	s.notifier.Updated("Category", c.Name)
	return c, nil
}

func (s *CategoryService) Delete(ctx context.Context, id int64) (bool, error) {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		if utils.IsPGForeignKeyViolation(err) {
			return false, ErrReferenced
		}
		return false, err
	}
	if !ok {
		return false, nil
	}
	s.invalidateCache(ctx)
	s.notifier.Deleted("Category", id)
	return true, nil
}

func (s *CategoryService) invalidateCache(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, categoryKind)
	}
}
