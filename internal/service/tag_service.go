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

const tagKind = "tags"

type TagService struct {
	repo     repo.TagRepo
	cache    *cache.Lists
	notifier *notify.Notifier
	sf       singleflight.Group
}

// NewTagService creates a TagService. If c is nil, caching is disabled.
func NewTagService(r repo.TagRepo, c *cache.Lists, n *notify.Notifier) *TagService {
	return &TagService{repo: r, cache: c, notifier: n}
}

func (s *TagService) Create(ctx context.Context, name string) (dom.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return dom.Tag{}, ErrRequired
	}
	t, err := s.repo.Create(ctx, dom.Tag{Name: name})
	if err != nil {
		if utils.IsPGUniqueViolation(err) {
			return dom.Tag{}, ErrNameTaken
		}
		return dom.Tag{}, err
	}
	s.invalidateCache(ctx)
	s.notifier.Created("Tag", t.Name)
	return t, nil
}

func (s *TagService) List(ctx context.Context, offset, limit int) ([]dom.Tag, error) {
	if s.cache != nil {
		key := fmt.Sprintf("list:%d:%d", offset, limit)
		v, err, _ := s.sf.Do(key, func() (interface{}, error) {
			if list, err := cache.GetPage[dom.Tag](ctx, s.cache, tagKind, offset, limit); err == nil && list != nil {
				return list, nil
			}
			list, err := s.repo.List(ctx, offset, limit)
			if err != nil {
				return nil, err
			}
			_ = cache.SetPage(ctx, s.cache, tagKind, offset, limit, list)
			return list, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]dom.Tag), nil
	}
	return s.repo.List(ctx, offset, limit)
}

func (s *TagService) GetByID(ctx context.Context, id int64) (dom.Tag, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Tag{}, ErrNotFound
		}
		return dom.Tag{}, err
	}
	return t, nil
}

func (s *TagService) Update(ctx context.Context, id int64, patch dom.TagPatch) (dom.Tag, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Tag{}, ErrNotFound
		}
		return dom.Tag{}, err
	}
	next := existing
	if patch.Name != nil {
		next.Name = strings.TrimSpace(*patch.Name)
		if next.Name == "" {
			return dom.Tag{}, ErrRequired
		}
	}
	t, err := s.repo.Update(ctx, id, next)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Tag{}, ErrNotFound
		}
		if utils.IsPGUniqueViolation(err) {
			return dom.Tag{}, ErrNameTaken
		}
		return dom.Tag{}, err
	}
	s.invalidateCache(ctx)
	s.notifier.Updated("Tag", t.Name)
	return t, nil
}

func (s *TagService) Delete(ctx context.Context, id int64) (bool, error) {
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
	s.notifier.Deleted("Tag", id)
	return true, nil
}

func (s *TagService) invalidateCache(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, tagKind)
	}
}
