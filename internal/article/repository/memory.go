package repository

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/newsbook/newsbook-api/internal/article"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound = errors.New("article not found")
)

// Repository persists articles. Delete removes the article only when both id and owner
// match, so a concurrent second delete observes ErrNotFound.
type Repository interface {
	Create(ctx context.Context, a *article.Article) error
	Get(ctx context.Context, id string) (*article.Article, error)
	ListByOwner(ctx context.Context, owner string) ([]*article.Article, error)
	Delete(ctx context.Context, id, owner string) error
}

// MemoryRepo is an in-memory repository used for development and unit tests.
type MemoryRepo struct {
	mu    sync.RWMutex
	seq   uint64
	store map[string]memEntry
}

type memEntry struct {
	a   article.Article
	seq uint64
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[string]memEntry)}
}

func (m *MemoryRepo) Create(_ context.Context, a *article.Article) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a.ID == "" {
		a.ID = primitive.NewObjectID().Hex()
	}
	a.CreatedAt = time.Now().UTC()
	a.UpdatedAt = a.CreatedAt
	m.seq++
	m.store[a.ID] = memEntry{a: *a, seq: m.seq}
	return nil
}

func (m *MemoryRepo) Get(_ context.Context, id string) (*article.Article, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	a := e.a
	return &a, nil
}

// ListByOwner returns the owner's articles newest first; insertion order breaks timestamp ties.
func (m *MemoryRepo) ListByOwner(_ context.Context, owner string) ([]*article.Article, error) {
	m.mu.RLock()
	entries := make([]memEntry, 0)
	for _, e := range m.store {
		if e.a.Owner == owner {
			entries = append(entries, e)
		}
	}
	m.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].a.CreatedAt.Equal(entries[j].a.CreatedAt) {
			return entries[i].a.CreatedAt.After(entries[j].a.CreatedAt)
		}
		return entries[i].seq > entries[j].seq
	})
	out := make([]*article.Article, 0, len(entries))
	for i := range entries {
		a := entries[i].a
		out = append(out, &a)
	}
	return out, nil
}

func (m *MemoryRepo) Delete(_ context.Context, id, owner string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.store[id]
	if !ok || e.a.Owner != owner {
		return ErrNotFound
	}
	delete(m.store, id)
	return nil
}
