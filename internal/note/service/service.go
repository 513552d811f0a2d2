package service

import (
	"context"

	"github.com/inkling-notes/inkling-server/internal/note"
	"github.com/inkling-notes/inkling-server/internal/note/repository"
)

// Service defines the note business operations used by the handler layer and
// by the AI operation service.
type Service interface {
	List(ctx context.Context, userID, search string) ([]*note.Note, error)
	Get(ctx context.Context, userID, id string) (*note.Note, error)
	Create(ctx context.Context, userID, title, content string) (*note.Note, error)
	Update(ctx context.Context, userID, id string, patch note.Patch) (*note.Note, error)
	AppendHistory(ctx context.Context, userID, id string, entry note.AIOutput) (*note.Note, error)
	Delete(ctx context.Context, userID, id string) error
}

type noteService struct {
	repo repository.NoteRepository
}

// New returns a Service backed by the given repository (Mongo in production,
// in-memory in tests).
func New(repo repository.NoteRepository) Service {
	return &noteService{repo: repo}
}

func (s *noteService) List(ctx context.Context, userID, search string) ([]*note.Note, error) {
	return s.repo.List(ctx, userID, search)
}

func (s *noteService) Get(ctx context.Context, userID, id string) (*note.Note, error) {
	return s.repo.Get(ctx, userID, id)
}

func (s *noteService) Create(ctx context.Context, userID, title, content string) (*note.Note, error) {
	return s.repo.Create(ctx, userID, title, content)
}

func (s *noteService) Update(ctx context.Context, userID, id string, patch note.Patch) (*note.Note, error) {
	return s.repo.Update(ctx, userID, id, patch)
}

func (s *noteService) AppendHistory(ctx context.Context, userID, id string, entry note.AIOutput) (*note.Note, error) {
	return s.repo.AppendHistory(ctx, userID, id, entry)
}

func (s *noteService) Delete(ctx context.Context, userID, id string) error {
	return s.repo.Delete(ctx, userID, id)
}
