package service

import (
	"context"
	"sort"
	"sync"
	"time"

	dom "catalog/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// recorder captures broadcasts handed to the notifier.
type recorder struct {
	mu   sync.Mutex
	msgs []string
}

func (r *recorder) Broadcast(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, text)
}

func (r *recorder) messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.msgs))
	copy(out, r.msgs)
	return out
}

func strPtr(s string) *string { return &s }

func int64Ptr(v int64) *int64 { return &v }

func userPatch(username, email, password *string) dom.UserPatch {
	return dom.UserPatch{Username: username, Email: email, Password: password}
}

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

func fkViolation(constraint string) error {
	return &pgconn.PgError{Code: "23503", ConstraintName: constraint}
}

// clock hands out strictly increasing timestamps so updated_at advances
// between writes even inside one test.
type clock struct {
	mu   sync.Mutex
	base time.Time
	tick int64
}

func newClock() *clock {
	return &clock{base: time.Now().UTC()}
}

func (c *clock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tick++
	return c.base.Add(time.Duration(c.tick) * time.Millisecond)
}

// fakeUserRepo is an in-memory UserRepo enforcing the same uniqueness rules
// as the schema.
type fakeUserRepo struct {
	mu     sync.Mutex
	clock  *clock
	nextID int64
	rows   map[int64]dom.User

	deleteErr error // injected for the FK-on-delete path
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{clock: newClock(), rows: map[int64]dom.User{}}
}

func (f *fakeUserRepo) conflict(u dom.User, exceptID int64) error {
	for id, row := range f.rows {
		if id == exceptID {
			continue
		}
		if row.Username == u.Username {
			return uniqueViolation("users_username_key")
		}
		if row.Email == u.Email {
			return uniqueViolation("users_email_key")
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
	now := f.clock.now()
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
	u.UpdatedAt = f.clock.now()
	f.rows[id] = u
	return u, nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return false, f.deleteErr
	}
	if _, ok := f.rows[id]; !ok {
		return false, nil
	}
	delete(f.rows, id)
	return true, nil
}

// fakeCategoryRepo mirrors the categories table; it also backs the item fake's
// referential check.
type fakeCategoryRepo struct {
	mu     sync.Mutex
	clock  *clock
	nextID int64
	rows   map[int64]dom.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{clock: newClock(), rows: map[int64]dom.Category{}}
}

func (f *fakeCategoryRepo) conflict(name string, exceptID int64) error {
	for id, row := range f.rows {
		if id != exceptID && row.Name == name {
			return uniqueViolation("categories_name_key")
		}
	}
	return nil
}

func (f *fakeCategoryRepo) Create(ctx context.Context, c dom.Category) (dom.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.conflict(c.Name, 0); err != nil {
		return dom.Category{}, err
	}
	f.nextID++
	now := f.clock.now()
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
	if err := f.conflict(c.Name, id); err != nil {
		return dom.Category{}, err
	}
	c.ID = id
	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = f.clock.now()
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

// fakeItemRepo enforces the category foreign key against a category fake,
// the way the schema would.
type fakeItemRepo struct {
	mu         sync.Mutex
	clock      *clock
	nextID     int64
	rows       map[int64]dom.Item
	categories *fakeCategoryRepo
	tags       map[int64]map[int64]bool // item id -> tag ids
	knownTags  map[int64]dom.Tag
}

func newFakeItemRepo(categories *fakeCategoryRepo) *fakeItemRepo {
	return &fakeItemRepo{
		clock:      newClock(),
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
		return dom.Item{}, fkViolation("items_category_id_fkey")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	now := f.clock.now()
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
		return dom.Item{}, fkViolation("items_category_id_fkey")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.rows[id]
	if !ok {
		return dom.Item{}, pgx.ErrNoRows
	}
	it.ID = id
	it.CreatedAt = existing.CreatedAt
	it.UpdatedAt = f.clock.now()
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
		return fkViolation("item_tags_item_id_fkey")
	}
	if _, ok := f.knownTags[tagID]; !ok {
		return fkViolation("item_tags_tag_id_fkey")
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

type fakeTagRepo struct {
	mu     sync.Mutex
	clock  *clock
	nextID int64
	rows   map[int64]dom.Tag

	deleteErr error
}

func newFakeTagRepo() *fakeTagRepo {
	return &fakeTagRepo{clock: newClock(), rows: map[int64]dom.Tag{}}
}

func (f *fakeTagRepo) conflict(name string, exceptID int64) error {
	for id, row := range f.rows {
		if id != exceptID && row.Name == name {
			return uniqueViolation("tags_name_key")
		}
	}
	return nil
}

func (f *fakeTagRepo) Create(ctx context.Context, t dom.Tag) (dom.Tag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.conflict(t.Name, 0); err != nil {
		return dom.Tag{}, err
	}
	f.nextID++
	now := f.clock.now()
	t.ID = f.nextID
	t.CreatedAt = now
	t.UpdatedAt = now
	f.rows[t.ID] = t
	return t, nil
}

func (f *fakeTagRepo) GetByID(ctx context.Context, id int64) (dom.Tag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.rows[id]
	if !ok {
		return dom.Tag{}, pgx.ErrNoRows
	}
	return t, nil
}

func (f *fakeTagRepo) List(ctx context.Context, offset, limit int) ([]dom.Tag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]int64, 0, len(f.rows))
	for id := range f.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	var out []dom.Tag
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

func (f *fakeTagRepo) Update(ctx context.Context, id int64, t dom.Tag) (dom.Tag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.rows[id]
	if !ok {
		return dom.Tag{}, pgx.ErrNoRows
	}
	if err := f.conflict(t.Name, id); err != nil {
		return dom.Tag{}, err
	}
	t.ID = id
	t.CreatedAt = existing.CreatedAt
	t.UpdatedAt = f.clock.now()
	f.rows[id] = t
	return t, nil
}

func (f *fakeTagRepo) Delete(ctx context.Context, id int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return false, f.deleteErr
	}
	if _, ok := f.rows[id]; !ok {
		return false, nil
	}
	delete(f.rows, id)
	return true, nil
}

// fakeCommentRepo accepts any user/item id unless told which ones exist.
type fakeCommentRepo struct {
	mu     sync.Mutex
	clock  *clock
	nextID int64
	rows   map[int64]dom.Comment

	validUsers map[int64]bool // nil = all valid
	validItems map[int64]bool
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{clock: newClock(), rows: map[int64]dom.Comment{}}
}

func (f *fakeCommentRepo) refErr(c dom.Comment) error {
	if f.validUsers != nil && !f.validUsers[c.UserID] {
		return fkViolation("comments_user_id_fkey")
	}
	if f.validItems != nil && !f.validItems[c.ItemID] {
		return fkViolation("comments_item_id_fkey")
	}
	return nil
}

func (f *fakeCommentRepo) Create(ctx context.Context, c dom.Comment) (dom.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.refErr(c); err != nil {
		return dom.Comment{}, err
	}
	f.nextID++
	now := f.clock.now()
	c.ID = f.nextID
	c.CreatedAt = now
	c.UpdatedAt = now
	f.rows[c.ID] = c
	return c, nil
}

func (f *fakeCommentRepo) GetByID(ctx context.Context, id int64) (dom.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.rows[id]
	if !ok {
		return dom.Comment{}, pgx.ErrNoRows
	}
	return c, nil
}

func (f *fakeCommentRepo) List(ctx context.Context, offset, limit int) ([]dom.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]int64, 0, len(f.rows))
	for id := range f.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	var out []dom.Comment
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

func (f *fakeCommentRepo) Update(ctx context.Context, id int64, c dom.Comment) (dom.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.rows[id]
	if !ok {
		return dom.Comment{}, pgx.ErrNoRows
	}
	if err := f.refErr(c); err != nil {
		return dom.Comment{}, err
	}
	c.ID = id
	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = f.clock.now()
	f.rows[id] = c
	return c, nil
}

func (f *fakeCommentRepo) Delete(ctx context.Context, id int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[id]; !ok {
		return false, nil
	}
	delete(f.rows, id)
	return true, nil
}
