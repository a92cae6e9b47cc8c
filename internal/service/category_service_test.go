package service

import (
	"context"
	"errors"
	"testing"

	dom "catalog/internal/domain"
	"catalog/internal/notify"
)

func newCategoryFixture() (*CategoryService, *fakeCategoryRepo, *recorder) {
	r := newFakeCategoryRepo()
	rec := &recorder{}
	return NewCategoryService(r, nil, notify.New(rec)), r, rec
}

func TestCategoryCreate(t *testing.T) {
	svc, _, rec := newCategoryFixture()
	ctx := context.Background()

	c, err := svc.Create(ctx, " Books ")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.Name != "Books" {
		t.Fatalf("name not trimmed: %q", c.Name)
	}

	if _, err := svc.Create(ctx, "Books"); !errors.Is(err, ErrNameTaken) {
		t.Fatalf("duplicate name err = %v", err)
	}
	if _, err := svc.Create(ctx, "  "); !errors.Is(err, ErrRequired) {
		t.Fatalf("blank name err = %v", err)
	}

	msgs := rec.messages()
	if len(msgs) != 1 || msgs[0] != "Category added: Books" {
		t.Fatalf("broadcasts = %v", msgs)
	}
}

func TestCategoryUpdate(t *testing.T) {
	svc, _, rec := newCategoryFixture()
	ctx := context.Background()

	c, err := svc.Create(ctx, "Books")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	got, err := svc.Update(ctx, c.ID, dom.CategoryPatch{Name: strPtr("Fiction")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Name != "Fiction" {
		t.Fatalf("name = %q", got.Name)
	}
	if !got.UpdatedAt.After(c.UpdatedAt) {
		t.Fatal("updated_at must advance")
	}

	if _, err := svc.Update(ctx, 99, dom.CategoryPatch{Name: strPtr("X")}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing id err = %v", err)
	}

	msgs := rec.messages()
	if len(msgs) != 2 || msgs[1] != "Category updated: Fiction" {
		t.Fatalf("broadcasts = %v", msgs)
	}
}

func TestCategoryUpdateNameConflict(t *testing.T) {
	svc, _, _ := newCategoryFixture()
	ctx := context.Background()

	if _, err := svc.Create(ctx, "Books"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	c, err := svc.Create(ctx, "Music")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := svc.Update(ctx, c.ID, dom.CategoryPatch{Name: strPtr("Books")}); !errors.Is(err, ErrNameTaken) {
		t.Fatalf("rename onto taken name err = %v", err)
	}
}

func TestCategoryDelete(t *testing.T) {
	svc, _, rec := newCategoryFixture()
	ctx := context.Background()

	c, err := svc.Create(ctx, "Books")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	ok, err := svc.Delete(ctx, c.ID)
	if err != nil || !ok {
		t.Fatalf("delete = %v, %v", ok, err)
	}
	ok, err = svc.Delete(ctx, c.ID)
	if err != nil || ok {
		t.Fatalf("second delete = %v, %v, want false, nil", ok, err)
	}

	msgs := rec.messages()
	if len(msgs) != 2 || msgs[1] != "Category deleted: ID 1" {
		t.Fatalf("broadcasts = %v", msgs)
	}
}
