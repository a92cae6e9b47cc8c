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

const itemKind = "items"

type ItemService struct {
	repo     repo.ItemRepo
	cache    *cache.Lists
	notifier *notify.Notifier
	sf       singleflight.Group
}

// NewItemService creates an ItemService. If c is nil, caching is disabled.
func NewItemService(r repo.ItemRepo, c *cache.Lists, n *notify.Notifier) *ItemService {
	return &ItemService{repo: r, cache: c, notifier: n}
}

func (s *ItemService) Create(ctx context.Context, name string, categoryID int64) (dom.Item, error) {
	name = strings.TrimSpace(name)
	if name == "" || categoryID <= 0 {
		return dom.Item{}, ErrRequired
	}
	it, err := s.repo.Create(ctx, dom.Item{Name: name, CategoryID: categoryID})
	if err != nil {
		if utils.IsPGForeignKeyViolation(err) {
			return dom.Item{}, ErrUnknownReference
		}
		return dom.Item{}, err
	}
	s.invalidateCache(ctx)
	s.notifier.Created("Item", it.Name)
	return it, nil
}

func (s *ItemService) List(ctx context.Context, offset, limit int) ([]dom.Item, error) {
	if s.cache != nil {
		key := fmt.Sprintf("list:%d:%d", offset, limit)
		v, err, _ := s.sf.Do(key, func() (interface{}, error) {
			if list, err := cache.GetPage[dom.Item](ctx, s.cache, itemKind, offset, limit); err == nil && list != nil {
				return list, nil
			}
			list, err := s.repo.List(ctx, offset, limit)
			if err != nil {
				return nil, err
			}
			_ = cache.SetPage(ctx, s.cache, itemKind, offset, limit, list)
			return list, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]dom.Item), nil
	}
	return s.repo.List(ctx, offset, limit)
}

func (s *ItemService) GetByID(ctx context.Context, id int64) (dom.Item, error) {
	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Item{}, ErrNotFound
		}
		return dom.Item{}, err
	}
	return it, nil
}

func (s *ItemService) Update(ctx context.Context, id int64, patch dom.ItemPatch) (dom.Item, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Item{}, ErrNotFound
		}
		return dom.Item{}, err
	}
	next := existing
	if patch.Name != nil {
		next.Name = strings.TrimSpace(*patch.Name)
		if next.Name == "" {
			return dom.Item{}, ErrRequired
		}
	}
	if patch.CategoryID != nil {
		if *patch.CategoryID <= 0 {
			return dom.Item{}, ErrRequired
		}
		next.CategoryID = *patch.CategoryID
	}
	it, err := s.repo.Update(ctx, id, next)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Item{}, ErrNotFound
		}
		if utils.IsPGForeignKeyViolation(err) {
			return dom.Item{}, ErrUnknownReference
		}
		return dom.Item{}, err
	}
	s.invalidateCache(ctx)
	s.notifier.Updated("Item", it.Name)
	return it, nil
}

func (s *ItemService) Delete(ctx context.Context, id int64) (bool, error) {
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
	s.notifier.Deleted("Item", id)
	return true, nil
}

// Tags lists the tags attached to an item. Unknown item is ErrNotFound.
func (s *ItemService) Tags(ctx context.Context, itemID int64) ([]dom.Tag, error) {
	if _, err := s.GetByID(ctx, itemID); err != nil {
		return nil, err
	}
	return s.repo.Tags(ctx, itemID)
}

// AttachTag links a tag to an item; attaching twice is a no-op.
func (s *ItemService) AttachTag(ctx context.Context, itemID, tagID int64) error {
	err := s.repo.AttachTag(ctx, itemID, tagID)
	if err != nil {
		if utils.IsPGForeignKeyViolation(err) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// DetachTag unlinks a tag; reports whether a link existed.
func (s *ItemService) DetachTag(ctx context.Context, itemID, tagID int64) (bool, error) {
	return s.repo.DetachTag(ctx, itemID, tagID)
}

func (s *ItemService) invalidateCache(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, itemKind)
	}
}
