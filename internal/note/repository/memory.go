package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/inkling-notes/inkling-server/internal/note"
)

// MemoryRepo is an in-memory NoteRepository used by unit tests and local
// development without a MongoDB instance. It mirrors the Mongo repo's
// semantics, including ownership scoping and history prepend.
type MemoryRepo struct {
	mu    sync.RWMutex
	store map[string]*note.Note
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[string]*note.Note)}
}

func (m *MemoryRepo) find(userID, id string) (*note.Note, bool) {
	n, ok := m.store[id]
	if !ok || n.UserID != userID {
		return nil, false
	}
	return n, true
}

// clone guards stored notes against aliasing by callers.
func clone(n *note.Note) *note.Note {
	c := *n
	c.Tags = append([]string{}, n.Tags...)
	c.AIOutputs = append([]note.AIOutput{}, n.AIOutputs...)
	return c.Normalize()
}

func (m *MemoryRepo) List(ctx context.Context, userID, search string) ([]*note.Note, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	term := strings.ToLower(search)
	out := []*note.Note{}
	for _, n := range m.store {
		if n.UserID != userID {
			continue
		}
		if term != "" && !matches(n, term) {
			continue
		}
		out = append(out, clone(n))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func matches(n *note.Note, term string) bool {
	if strings.Contains(strings.ToLower(n.Title), term) {
		return true
	}
	for _, tag := range n.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

func (m *MemoryRepo) Get(ctx context.Context, userID, id string) (*note.Note, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n, ok := m.find(userID, id)
	if !ok {
		return nil, ErrNotFound
	}
	return clone(n), nil
}

func (m *MemoryRepo) Create(ctx context.Context, userID, title, content string) (*note.Note, error) {
	if title == "" {
		title = "Untitled"
	}
	now := time.Now().UTC()
	n := &note.Note{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		Content:   content,
		Tags:      []string{},
		AIOutputs: []note.AIOutput{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.mu.Lock()
	m.store[n.ID] = n
	m.mu.Unlock()
	return clone(n), nil
}

func (m *MemoryRepo) Update(ctx context.Context, userID, id string, patch note.Patch) (*note.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.find(userID, id)
	if !ok {
		return nil, ErrNotFound
	}
	if patch.Title != nil {
		n.Title = *patch.Title
	}
	if patch.Content != nil {
		n.Content = *patch.Content
	}
	if patch.Summary != nil {
		n.Summary = *patch.Summary
	}
	if patch.Tags != nil {
		n.Tags = append([]string{}, (*patch.Tags)...)
	}
	if patch.IsPinned != nil {
		n.IsPinned = *patch.IsPinned
	}
	if patch.AIOutputs != nil {
		n.AIOutputs = append([]note.AIOutput{}, (*patch.AIOutputs)...)
	}
	n.UpdatedAt = time.Now().UTC()
	return clone(n), nil
}

func (m *MemoryRepo) AppendHistory(ctx context.Context, userID, id string, entry note.AIOutput) (*note.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.find(userID, id)
	if !ok {
		return nil, ErrNotFound
	}
	entry.ID = uuid.NewString()
	entry.CreatedAt = time.Now().UTC()
	n.AIOutputs = append([]note.AIOutput{entry}, n.AIOutputs...)
	n.UpdatedAt = entry.CreatedAt
	return clone(n), nil
}

func (m *MemoryRepo) Delete(ctx context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.find(userID, id); !ok {
		return ErrNotFound
	}
	delete(m.store, id)
	return nil
}

// Seed inserts a note as-is, bypassing Create defaults. Tests use it to model
// legacy records where storage omitted the array fields.
func (m *MemoryRepo) Seed(n *note.Note) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[n.ID] = n
}
