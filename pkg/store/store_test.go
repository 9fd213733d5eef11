package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-pagefill/pkg/placeholder"
	"github.com/goliatone/go-pagefill/pkg/store"
)

func fixedClock() func() time.Time {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		ts = ts.Add(time.Minute)
		return ts
	}
}

func TestMemoryPutAndGetByIDOrSlug(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory(store.WithClock(fixedClock()))

	saved, err := mem.Put(ctx, store.Template{Name: "Invoice", Slug: "invoice", HTML: "<p>{{x}}</p>"})
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if saved.ID == "" {
		t.Fatalf("expected generated id")
	}
	if saved.Type != store.TypeHTML {
		t.Fatalf("expected default type html, got %q", saved.Type)
	}

	for _, ref := range []store.Ref{
		{ID: saved.ID},
		{Slug: "invoice"},
		{ID: "invoice"},
		{ID: saved.ID, Slug: "ignored"},
	} {
		got, err := mem.Get(ctx, ref)
		if err != nil {
			t.Fatalf("Get(%v): %v", ref, err)
		}
		if diff := cmp.Diff(saved, got); diff != "" {
			t.Fatalf("Get(%v) mismatch (-want +got):\n%s", ref, diff)
		}
	}
}

func TestMemoryGetErrors(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()

	if _, err := mem.Get(ctx, store.Ref{}); !errors.Is(err, store.ErrEmptyRef) {
		t.Fatalf("expected ErrEmptyRef, got %v", err)
	}
	if _, err := mem.Get(ctx, store.Ref{Slug: "missing"}); !errors.Is(err, store.ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}
	if _, err := mem.Get(ctx, store.Ref{ID: "missing"}); !errors.Is(err, store.ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}
}

func TestMemoryRejectsDuplicateSlug(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	if _, err := mem.Put(ctx, store.Template{ID: "a", Slug: "same"}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, err := mem.Put(ctx, store.Template{ID: "b", Slug: "same"}); !errors.Is(err, store.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	if _, err := mem.Put(ctx, store.Template{Name: "no slug"}); err == nil {
		t.Fatalf("expected error for missing slug")
	}
}

func TestMemoryUpdateKeepsCreatedAtAndMovesSlug(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory(store.WithClock(fixedClock()))

	first, err := mem.Put(ctx, store.Template{ID: "a", Slug: "old"})
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	second, err := mem.Put(ctx, store.Template{ID: "a", Slug: "new"})
	if err != nil {
		t.Fatalf("Put update: %v", err)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Fatalf("CreatedAt changed: %v -> %v", first.CreatedAt, second.CreatedAt)
	}
	if !second.UpdatedAt.After(first.UpdatedAt) {
		t.Fatalf("UpdatedAt not advanced")
	}
	if _, err := mem.Get(ctx, store.Ref{Slug: "old"}); !errors.Is(err, store.ErrTemplateNotFound) {
		t.Fatalf("old slug should be released, got %v", err)
	}
	if mem.Len() != 1 {
		t.Fatalf("Len = %d, want 1", mem.Len())
	}
}

func TestMemoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	saved, err := mem.Put(ctx, store.Template{ID: "a", Slug: "a", Values: map[string]string{"k": "v"}})
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	saved.Values["k"] = "mutated"

	got, err := mem.Get(ctx, store.Ref{ID: "a"})
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Values["k"] != "v" {
		t.Fatalf("stored template was mutated through returned copy")
	}
}

func TestMemoryListAndDelete(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory(store.WithClock(fixedClock()))
	for _, slug := range []string{"one", "two", "three"} {
		if _, err := mem.Put(ctx, store.Template{ID: slug, Slug: slug}); err != nil {
			t.Fatalf("Put %s: %v", slug, err)
		}
	}

	list, err := mem.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	var slugs []string
	for _, tpl := range list {
		slugs = append(slugs, tpl.Slug)
	}
	if diff := cmp.Diff([]string{"three", "two", "one"}, slugs); diff != "" {
		t.Fatalf("List order mismatch (-want +got):\n%s", diff)
	}

	if err := mem.Delete(ctx, store.Ref{Slug: "two"}); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := mem.Delete(ctx, store.Ref{Slug: "two"}); !errors.Is(err, store.ErrTemplateNotFound) {
		t.Fatalf("second Delete: expected ErrTemplateNotFound, got %v", err)
	}
	if mem.Len() != 2 {
		t.Fatalf("Len = %d, want 2", mem.Len())
	}
}

func TestTemplateDelimiters(t *testing.T) {
	cases := []struct {
		brackets []string
		want     placeholder.Delimiters
	}{
		{brackets: nil, want: placeholder.Default()},
		{brackets: []string{"[["}, want: placeholder.Default()},
		{brackets: []string{"[[", "]]"}, want: placeholder.Delimiters{Open: "[[", Close: "]]"}},
	}
	for _, tc := range cases {
		got := store.Template{Brackets: tc.brackets}.Delimiters()
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Fatalf("Delimiters(%v) mismatch (-want +got):\n%s", tc.brackets, diff)
		}
	}
}
