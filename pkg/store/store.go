package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

var (
	// ErrTemplateNotFound is returned when no template matches a Ref.
	ErrTemplateNotFound = errors.New("store: template not found")
	// ErrEmptyRef is returned when a Ref carries neither id nor slug.
	ErrEmptyRef = errors.New("store: template id or slug is required")
	// ErrDuplicate is returned when an id or slug is already taken by a
	// different template.
	ErrDuplicate = errors.New("store: duplicate template")
)

// Ref identifies a template by id or slug. ID wins when both are set.
type Ref struct {
	ID   string `json:"id,omitempty" yaml:"id,omitempty"`
	Slug string `json:"slug,omitempty" yaml:"slug,omitempty"`
}

// IsZero reports whether the ref names nothing.
func (r Ref) IsZero() bool {
	return strings.TrimSpace(r.ID) == "" && strings.TrimSpace(r.Slug) == ""
}

func (r Ref) String() string {
	if id := strings.TrimSpace(r.ID); id != "" {
		return "id=" + id
	}
	return "slug=" + strings.TrimSpace(r.Slug)
}

// Store resolves templates.
type Store interface {
	Get(ctx context.Context, ref Ref) (Template, error)
}

// Lister is implemented by stores that can enumerate their templates.
type Lister interface {
	List(ctx context.Context) ([]Template, error)
}

// MemoryOption configures a Memory store.
type MemoryOption func(*Memory)

// WithClock overrides the timestamp source used by Put.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *Memory) {
		if now != nil {
			m.now = now
		}
	}
}

// Memory is a concurrency-safe in-process Store.
type Memory struct {
	mu     sync.RWMutex
	byID   map[string]Template
	slugs  map[string]string
	nextID int
	now    func() time.Time
}

var (
	_ Store  = (*Memory)(nil)
	_ Lister = (*Memory)(nil)
)

// NewMemory returns an empty store.
func NewMemory(options ...MemoryOption) *Memory {
	m := &Memory{
		byID:  make(map[string]Template),
		slugs: make(map[string]string),
		now:   time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(m)
	}
	return m
}

// Put inserts or replaces a template and returns the stored copy. Templates
// without an id get a generated one; a slug is required and must be unique.
func (m *Memory) Put(_ context.Context, tpl Template) (Template, error) {
	tpl.normalise()
	if tpl.Slug == "" {
		return Template{}, fmt.Errorf("store: template %q has no slug", tpl.Name)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if tpl.ID == "" {
		tpl.ID = m.generateID()
	}
	if owner, ok := m.slugs[tpl.Slug]; ok && owner != tpl.ID {
		return Template{}, fmt.Errorf("%w: slug %q already used by %q", ErrDuplicate, tpl.Slug, owner)
	}

	now := m.now().UTC()
	if previous, ok := m.byID[tpl.ID]; ok {
		delete(m.slugs, previous.Slug)
		if tpl.CreatedAt.IsZero() {
			tpl.CreatedAt = previous.CreatedAt
		}
	}
	if tpl.CreatedAt.IsZero() {
		tpl.CreatedAt = now
	}
	tpl.UpdatedAt = now

	stored := tpl.clone()
	m.byID[stored.ID] = stored
	m.slugs[stored.Slug] = stored.ID
	return stored.clone(), nil
}

// Get resolves ref. An id that is not a known id is retried as a slug, so
// callers can pass whichever identifier they have.
func (m *Memory) Get(_ context.Context, ref Ref) (Template, error) {
	if ref.IsZero() {
		return Template{}, ErrEmptyRef
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if id := strings.TrimSpace(ref.ID); id != "" {
		if tpl, ok := m.byID[id]; ok {
			return tpl.clone(), nil
		}
		if owner, ok := m.slugs[id]; ok {
			return m.byID[owner].clone(), nil
		}
		return Template{}, fmt.Errorf("%w: %s", ErrTemplateNotFound, ref)
	}

	if owner, ok := m.slugs[strings.TrimSpace(ref.Slug)]; ok {
		return m.byID[owner].clone(), nil
	}
	return Template{}, fmt.Errorf("%w: %s", ErrTemplateNotFound, ref)
}

// List returns every template, newest first.
func (m *Memory) List(_ context.Context) ([]Template, error) {
	m.mu.RLock()
	out := make([]Template, 0, len(m.byID))
	for _, tpl := range m.byID {
		out = append(out, tpl.clone())
	}
	m.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Delete removes the template ref resolves to.
func (m *Memory) Delete(ctx context.Context, ref Ref) error {
	tpl, err := m.Get(ctx, ref)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byID, tpl.ID)
	delete(m.slugs, tpl.Slug)
	return nil
}

// Len reports the number of stored templates.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.byID)
}

func (m *Memory) generateID() string {
	for {
		m.nextID++
		id := fmt.Sprintf("tpl-%04d", m.nextID)
		if _, taken := m.byID[id]; !taken {
			return id
		}
	}
}
