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

const commentKind = "comments"

type CommentService struct {
	repo     repo.CommentRepo
	cache    *cache.Lists
	notifier *notify.Notifier
	sf       singleflight.Group
}

// NewCommentService creates a CommentService. If c is nil, caching is disabled.
func NewCommentService(r repo.CommentRepo, c *cache.Lists, n *notify.Notifier) *CommentService {
	return &CommentService{repo: r, cache: c, notifier: n}
}

func (s *CommentService) Create(ctx context.Context, text string, userID, itemID int64) (dom.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" || userID <= 0 || itemID <= 0 {
		return dom.Comment{}, ErrRequired
	}
	c, err := s.repo.Create(ctx, dom.Comment{Text: text, UserID: userID, ItemID: itemID})
	if err != nil {
		if utils.IsPGForeignKeyViolation(err) {
			return dom.Comment{}, ErrUnknownReference
		}
		return dom.Comment{}, err
	}
	s.invalidateCache(ctx)
	s.notifier.Created("Comment", c.Text)
	return c, nil
}

func (s *CommentService) List(ctx context.Context, offset, limit int) ([]dom.Comment, error) {
	if s.cache != nil {
		key := fmt.Sprintf("list:%d:%d", offset, limit)
		v, err, _ := s.sf.Do(key, func() (interface{}, error) {
			if list, err := cache.GetPage[dom.Comment](ctx, s.cache, commentKind, offset, limit); err == nil && list != nil {
				return list, nil
			}
			list, err := s.repo.List(ctx, offset, limit)
			if err != nil {
				return nil, err
			}
			_ = cache.SetPage(ctx, s.cache, commentKind, offset, limit, list)
			return list, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]dom.Comment), nil
	}
	return s.repo.List(ctx, offset, limit)
}

func (s *CommentService) GetByID(ctx context.Context, id int64) (dom.Comment, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Comment{}, ErrNotFound
		}
		return dom.Comment{}, err
	}
	return c, nil
}

func (s *CommentService) Update(ctx context.Context, id int64, patch dom.CommentPatch) (dom.Comment, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Comment{}, ErrNotFound
		}
		return dom.Comment{}, err
	}
	next := existing
	if patch.Text != nil {
		next.Text = strings.TrimSpace(*patch.Text)
		if next.Text == "" {
			return dom.Comment{}, ErrRequired
		}
	}
	if patch.UserID != nil {
		if *patch.UserID <= 0 {
			return dom.Comment{}, ErrRequired
		}
		next.UserID = *patch.UserID
	}
	if patch.ItemID != nil {
		if *patch.ItemID <= 0 {
			return dom.Comment{}, ErrRequired
		}
		next.ItemID = *patch.ItemID
	}
	c, err := s.repo.Update(ctx, id, next)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Comment{}, ErrNotFound
		}
		if utils.IsPGForeignKeyViolation(err) {
			return dom.Comment{}, ErrUnknownReference
		}
		return dom.Comment{}, err
	}
	s.invalidateCache(ctx)
	s.notifier.Updated("Comment", c.Text)
	return c, nil
}

func (s *CommentService) Delete(ctx context.Context, id int64) (bool, error) {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	s.invalidateCache(ctx)
	s.notifier.Deleted("Comment", id)
	return true, nil
}

func (s *CommentService) invalidateCache(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, commentKind)
	}
}
