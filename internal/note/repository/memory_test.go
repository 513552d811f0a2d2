package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/inkling-notes/inkling-server/internal/note"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateGetRoundTrip(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	created, err := repo.Create(ctx, "alice", "", "")
	require.NoError(t, err)
	assert.Equal(t, "Untitled", created.Title)
	assert.Equal(t, "alice", created.UserID)

	got, err := repo.Get(ctx, "alice", created.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.Tags)
	assert.NotNil(t, got.AIOutputs)
	assert.Empty(t, got.Tags)
	assert.Empty(t, got.AIOutputs)
}

func TestLegacyRecordNormalization(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	// legacy record persisted before tags/aiOutputs existed
	repo.Seed(&note.Note{ID: "legacy-1", UserID: "alice", Title: "old"})

	got, err := repo.Get(ctx, "alice", "legacy-1")
	require.NoError(t, err)
	require.NotNil(t, got.Tags)
	require.NotNil(t, got.AIOutputs)
	assert.Equal(t, []string{}, got.Tags)
	assert.Equal(t, []note.AIOutput{}, got.AIOutputs)
}

func TestOwnershipIsolation(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	created, err := repo.Create(ctx, "alice", "private", "secret")
	require.NoError(t, err)

	_, err = repo.Get(ctx, "bob", created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	title := "stolen"
	_, err = repo.Update(ctx, "bob", created.ID, note.Patch{Title: &title})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.AppendHistory(ctx, "bob", created.ID, note.AIOutput{OriginalInput: "x", Feature: "summarize", Output: "y"})
	assert.ErrorIs(t, err, ErrNotFound)

	err = repo.Delete(ctx, "bob", created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// owner still sees the untouched note
	got, err := repo.Get(ctx, "alice", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "private", got.Title)
}

func TestListSearchByTitleAndTags(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	n, err := repo.Create(ctx, "alice", "Caching strategies", "")
	require.NoError(t, err)
	tags := []string{"golang", "cache"}
	_, err = repo.Update(ctx, "alice", n.ID, note.Patch{Tags: &tags})
	require.NoError(t, err)

	_, err = repo.Create(ctx, "alice", "Groceries", "")
	require.NoError(t, err)

	byTag, err := repo.List(ctx, "alice", "cache")
	require.NoError(t, err)
	require.Len(t, byTag, 1)
	assert.Equal(t, n.ID, byTag[0].ID)

	caseInsensitive, err := repo.List(ctx, "alice", "GOLA")
	require.NoError(t, err)
	require.Len(t, caseInsensitive, 1)

	none, err := repo.List(ctx, "alice", "xyz")
	require.NoError(t, err)
	assert.Empty(t, none)

	all, err := repo.List(ctx, "alice", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestListSortsNewestUpdatedFirst(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	first, err := repo.Create(ctx, "alice", "first", "")
	require.NoError(t, err)
	second, err := repo.Create(ctx, "alice", "second", "")
	require.NoError(t, err)

	// touching the older note moves it to the top
	time.Sleep(2 * time.Millisecond)
	content := "updated"
	_, err = repo.Update(ctx, "alice", first.ID, note.Patch{Content: &content})
	require.NoError(t, err)

	list, err := repo.List(ctx, "alice", "")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)
}

func TestUpdateAppliesOnlyProvidedFields(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	created, err := repo.Create(ctx, "alice", "T", "C")
	require.NoError(t, err)

	summary := "a summary"
	updated, err := repo.Update(ctx, "alice", created.ID, note.Patch{Summary: &summary})
	require.NoError(t, err)
	assert.Equal(t, "a summary", updated.Summary)
	assert.Equal(t, "T", updated.Title)
	assert.Equal(t, "C", updated.Content)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt) || updated.UpdatedAt.Equal(created.UpdatedAt))
}

func TestAppendHistoryPrepends(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	created, err := repo.Create(ctx, "alice", "T", "C")
	require.NoError(t, err)

	var latest *note.Note
	for i := 0; i < 3; i++ {
		latest, err = repo.AppendHistory(ctx, "alice", created.ID, note.AIOutput{
			OriginalInput: "input",
			Feature:       "rewrite",
			Output:        fmt.Sprintf("output-%d", i),
		})
		require.NoError(t, err)
		require.Len(t, latest.AIOutputs, i+1)
		assert.Equal(t, fmt.Sprintf("output-%d", i), latest.AIOutputs[0].Output)
		assert.NotEmpty(t, latest.AIOutputs[0].ID)
	}

	// oldest entry sits at the tail
	assert.Equal(t, "output-0", latest.AIOutputs[2].Output)
}

func TestConcurrentUpdatesDoNotCorrupt(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	created, err := repo.Create(ctx, "alice", "T", "C")
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 50; i++ {
			title := fmt.Sprintf("title-%d", i)
			_, _ = repo.Update(ctx, "alice", created.ID, note.Patch{Title: &title})
		}
	}()
	for i := 0; i < 50; i++ {
		content := fmt.Sprintf("content-%d", i)
		_, err := repo.Update(ctx, "alice", created.ID, note.Patch{Content: &content})
		require.NoError(t, err)
	}
	<-done

	got, err := repo.Get(ctx, "alice", created.ID)
	require.NoError(t, err)
	// last write wins per field; the document itself stays consistent
	assert.Equal(t, "content-49", got.Content)
	assert.Equal(t, "title-49", got.Title)
}
