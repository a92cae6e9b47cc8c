package handlers

import (
	"context"
	"sort"
	"sync"
	"time"

	dom "catalog/internal/domain"
	"catalog/internal/notify"
	"catalog/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type nopBroadcaster struct{}

func (nopBroadcaster) Broadcast(string) {}

func testNotifier() *notify.Notifier { return notify.New(nopBroadcaster{}) }

// fakeUserRepo is an in-memory stand-in enforcing the schema's uniqueness.
type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]dom.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{rows: map[int64]dom.User{}}
}

func (f *fakeUserRepo) conflict(u dom.User, exceptID int64) error {
	for id, row := range f.rows {
		if id == exceptID {
			continue
		}
		if row.Username == u.Username {
			return &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"}
		}
		if row.Email == u.Email {
			return &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
		}
	}
	return nil
}

func (f *fakeUserRepo) Create(ctx context.Context, u dom.User) (dom.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.conflict(u, 0); err != nil {
		return dom.User{}, err
	}
	f.nextID++
	now := time.Now().UTC()
	u.ID = f.nextID
	u.CreatedAt = now
	u.UpdatedAt = now
	f.rows[u.ID] = u
	return u, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (dom.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.rows[id]
	if !ok {
		return dom.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (f *fakeUserRepo) List(ctx context.Context, offset, limit int) ([]dom.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]int64, 0, len(f.rows))
	for id := range f.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	var out []dom.User
	for i, id := range ids {
		if i < offset {
			continue
		}
		if len(out) == limit {
			break
		}
		out = append(out, f.rows[id])
	}
	return out, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, id int64, u dom.User) (dom.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.rows[id]
	if !ok {
		return dom.User{}, pgx.ErrNoRows
	}
	if err := f.conflict(u, id); err != nil {
		return dom.User{}, err
	}
	u.ID = id
	u.CreatedAt = existing.CreatedAt
	u.UpdatedAt = time.Now().UTC()
	f.rows[id] = u
	return u, nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[id]; !ok {
		return false, nil
	}
	delete(f.rows, id)
	return true, nil
}

type fakeCategoryRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]dom.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{rows: map[int64]dom.Category{}}
}

func (f *fakeCategoryRepo) Create(ctx context.Context, c dom.Category) (dom.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.rows {
		if row.Name == c.Name {
			return dom.Category{}, &pgconn.PgError{Code: "23505", ConstraintName: "categories_name_key"}
		}
	}
	f.nextID++
	now := time.Now().UTC()
	c.ID = f.nextID
	c.CreatedAt = now
	c.UpdatedAt = now
	f.rows[c.ID] = c
	return c, nil
}

func (f *fakeCategoryRepo) GetByID(ctx context.Context, id int64) (dom.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.rows[id]
	if !ok {
		return dom.Category{}, pgx.ErrNoRows
	}
	return c, nil
}

func (f *fakeCategoryRepo) List(ctx context.Context, offset, limit int) ([]dom.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]int64, 0, len(f.rows))
	for id := range f.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	var out []dom.Category
	for i, id := range ids {
		if i < offset {
			continue
		}
		if len(out) == limit {
			break
		}
		out = append(out, f.rows[id])
	}
	return out, nil
}

func (f *fakeCategoryRepo) Update(ctx context.Context, id int64, c dom.Category) (dom.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.rows[id]
	if !ok {
		return dom.Category{}, pgx.ErrNoRows
	}
	c.ID = id
	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = time.Now().UTC()
	f.rows[id] = c
	return c, nil
}

func (f *fakeCategoryRepo) Delete(ctx context.Context, id int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[id]; !ok {
		return false, nil
	}
	delete(f.rows, id)
	return true, nil
}

// fakeItemRepo checks the category reference against a category fake.
type fakeItemRepo struct {
	mu         sync.Mutex
	nextID     int64
	rows       map[int64]dom.Item
	categories *fakeCategoryRepo
	tags       map[int64]map[int64]bool
	knownTags  map[int64]dom.Tag
}

func newFakeItemRepo(categories *fakeCategoryRepo) *fakeItemRepo {
	return &fakeItemRepo{
		rows:       map[int64]dom.Item{},
		categories: categories,
		tags:       map[int64]map[int64]bool{},
		knownTags:  map[int64]dom.Tag{},
	}
}

func (f *fakeItemRepo) categoryExists(id int64) bool {
	f.categories.mu.Lock()
	defer f.categories.mu.Unlock()
	_, ok := f.categories.rows[id]
	return ok
}

func (f *fakeItemRepo) Create(ctx context.Context, it dom.Item) (dom.Item, error) {
	if !f.categoryExists(it.CategoryID) {
		return dom.Item{}, &pgconn.PgError{Code: "23503", ConstraintName: "items_category_id_fkey"}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	now := time.Now().UTC()
	it.ID = f.nextID
	it.CreatedAt = now
	it.UpdatedAt = now
	f.rows[it.ID] = it
	return it, nil
}

func (f *fakeItemRepo) GetByID(ctx context.Context, id int64) (dom.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	it, ok := f.rows[id]
	if !ok {
		return dom.Item{}, pgx.ErrNoRows
	}
	return it, nil
}

func (f *fakeItemRepo) List(ctx context.Context, offset, limit int) ([]dom.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]int64, 0, len(f.rows))
	for id := range f.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	var out []dom.Item
	for i, id := range ids {
		if i < offset {
			continue
		}
		if len(out) == limit {
			break
		}
		out = append(out, f.rows[id])
	}
	return out, nil
}

func (f *fakeItemRepo) Update(ctx context.Context, id int64, it dom.Item) (dom.Item, error) {
	if !f.categoryExists(it.CategoryID) {
		return dom.Item{}, &pgconn.PgError{Code: "23503", ConstraintName: "items_category_id_fkey"}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.rows[id]
	if !ok {
		return dom.Item{}, pgx.ErrNoRows
	}
	it.ID = id
	it.CreatedAt = existing.CreatedAt
	it.UpdatedAt = time.Now().UTC()
	f.rows[id] = it
	return it, nil
}

func (f *fakeItemRepo) Delete(ctx context.Context, id int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[id]; !ok {
		return false, nil
	}
	delete(f.rows, id)
	delete(f.tags, id)
	return true, nil
}

func (f *fakeItemRepo) AttachTag(ctx context.Context, itemID, tagID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[itemID]; !ok {
		return &pgconn.PgError{Code: "23503", ConstraintName: "item_tags_item_id_fkey"}
	}
	if _, ok := f.knownTags[tagID]; !ok {
		return &pgconn.PgError{Code: "23503", ConstraintName: "item_tags_tag_id_fkey"}
	}
	if f.tags[itemID] == nil {
		f.tags[itemID] = map[int64]bool{}
	}
	f.tags[itemID][tagID] = true
	return nil
}

func (f *fakeItemRepo) DetachTag(ctx context.Context, itemID, tagID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.tags[itemID][tagID] {
		return false, nil
	}
	delete(f.tags[itemID], tagID)
	return true, nil
}

func (f *fakeItemRepo) Tags(ctx context.Context, itemID int64) ([]dom.Tag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]int64, 0, len(f.tags[itemID]))
	for id := range f.tags[itemID] {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	var out []dom.Tag
	for _, id := range ids {
		out = append(out, f.knownTags[id])
	}
	return out, nil
}

// newUserRouter wires a user handler over a fake repo onto a fresh engine,
// mirroring the production route table.
func newUserRouter() (*gin.Engine, *fakeUserRepo) {
	gin.SetMode(gin.TestMode)
	r := newFakeUserRepo()
	h := NewUserHandler(service.NewUserService(r, nil, testNotifier()))
	e := gin.New()
	api := e.Group("/api/v1")
	api.POST("/users", h.Create)
	api.GET("/users", h.List)
	api.GET("/users/:id", h.GetByID)
	api.PATCH("/users/:id", h.Update)
	api.DELETE("/users/:id", h.Delete)
	return e, r
}

func newItemRouter() (*gin.Engine, *fakeItemRepo, *fakeCategoryRepo) {
	gin.SetMode(gin.TestMode)
	cats := newFakeCategoryRepo()
	r := newFakeItemRepo(cats)
	h := NewItemHandler(service.NewItemService(r, nil, testNotifier()))
	e := gin.New()
	api := e.Group("/api/v1")
	api.POST("/items", h.Create)
	api.GET("/items", h.List)
	api.GET("/items/:id", h.GetByID)
	api.PATCH("/items/:id", h.Update)
	api.DELETE("/items/:id", h.Delete)
	api.GET("/items/:id/tags", h.Tags)
	api.POST("/items/:id/tags/:tag_id", h.AttachTag)
	api.DELETE("/items/:id/tags/:tag_id", h.DetachTag)
	return e, r, cats
}
