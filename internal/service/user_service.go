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
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/singleflight"
)

const userKind = "users"

// UserService owns user CRUD rules: trimming, password hashing, uniqueness
// mapping, cache invalidation and write notifications.
type UserService struct {
	repo     repo.UserRepo
	cache    *cache.Lists
	notifier *notify.Notifier
	sf       singleflight.Group
}

// NewUserService creates a UserService. If c is nil, caching is disabled.
func NewUserService(r repo.UserRepo, c *cache.Lists, n *notify.Notifier) *UserService {
	return &UserService{repo: r, cache: c, notifier: n}
}

func (s *UserService) Create(ctx context.Context, username, email, password string) (dom.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return dom.User{}, ErrRequired
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return dom.User{}, err
	}
	u, err := s.repo.Create(ctx, dom.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		return dom.User{}, mapUserWriteErr(err)
	}
	s.invalidateCache(ctx)
	s.notifier.Created("User", u.Username)
	return u, nil
}

func (s *UserService) List(ctx context.Context, offset, limit int) ([]dom.User, error) {
	if s.cache != nil {
		key := fmt.Sprintf("list:%d:%d", offset, limit)
		v, err, _ := s.sf.Do(key, func() (interface{}, error) {
			if list, err := cache.GetPage[dom.User](ctx, s.cache, userKind, offset, limit); err == nil && list != nil {
				return list, nil
			}
			list, err := s.repo.List(ctx, offset, limit)
			if err != nil {
				return nil, err
			}
			_ = cache.SetPage(ctx, s.cache, userKind, offset, limit, list)
			return list, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]dom.User), nil
	}
	return s.repo.List(ctx, offset, limit)
}

func (s *UserService) GetByID(ctx context.Context, id int64) (dom.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, ErrNotFound
		}
		return dom.User{}, err
	}
	return u, nil
}

// Update applies only the fields present in patch, rehashing the password if
// it is one of them. Absent fields keep their current value.
func (s *UserService) Update(ctx context.Context, id int64, patch dom.UserPatch) (dom.User, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, ErrNotFound
		}
		return dom.User{}, err
	}
	next := existing
	if patch.Username != nil {
		next.Username = strings.TrimSpace(*patch.Username)
		if next.Username == "" {
			return dom.User{}, ErrRequired
		}
	}
	if patch.Email != nil {
		next.Email = strings.TrimSpace(*patch.Email)
		if next.Email == "" {
			return dom.User{}, ErrRequired
		}
	}
	if patch.Password != nil {
		if *patch.Password == "" {
			return dom.User{}, ErrRequired
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
		if err != nil {
			return dom.User{}, err
		}
		next.PasswordHash = string(hash)
	}
	u, err := s.repo.Update(ctx, id, next)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, ErrNotFound
		}
		return dom.User{}, mapUserWriteErr(err)
	}
	s.invalidateCache(ctx)
	s.notifier.Updated("User", u.Username)
	return u, nil
}

func (s *UserService) Delete(ctx context.Context, id int64) (bool, error) {
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
	s.notifier.Deleted("User", id)
	return true, nil
}

func (s *UserService) invalidateCache(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, userKind)
	}
}

func mapUserWriteErr(err error) error {
	if !utils.IsPGUniqueViolation(err) {
		return err
	}
	if strings.Contains(utils.PGConstraintName(err), "email") {
		return ErrEmailTaken
	}
	return ErrUsernameTaken
}
