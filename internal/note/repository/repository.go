package repository

import (
	"context"
	"errors"

	"github.com/inkling-notes/inkling-server/internal/note"
)

var ErrNotFound = errors.New("note not found")

// NoteRepository defines persistence for notes. All operations are scoped by
// the owner's user id; a note owned by someone else is indistinguishable from
// a missing one.
type NoteRepository interface {
	List(ctx context.Context, userID, search string) ([]*note.Note, error)
	Get(ctx context.Context, userID, id string) (*note.Note, error)
	Create(ctx context.Context, userID, title, content string) (*note.Note, error)
	Update(ctx context.Context, userID, id string, patch note.Patch) (*note.Note, error)
	AppendHistory(ctx context.Context, userID, id string, entry note.AIOutput) (*note.Note, error)
	Delete(ctx context.Context, userID, id string) error
}
