package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/inkling-notes/inkling-server/internal/note"
	"github.com/inkling-notes/inkling-server/internal/note/repository"
	"github.com/inkling-notes/inkling-server/internal/note/service"
	"github.com/inkling-notes/inkling-server/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// asUser is a test stand-in for the auth middleware.
func asUser(id string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, id)
		c.Next()
	}
}

func newNotesEngine(repo *repository.MemoryRepo, userID string) *gin.Engine {
	g := gin.New()
	h := NewNotesHandler(service.New(repo))
	h.Register(g.Group("/notes", asUser(userID)))
	return g
}

func doJSON(t *testing.T, g *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	g.ServeHTTP(w, req)
	return w
}

func TestNotesCRUD(t *testing.T) {
	repo := repository.NewMemoryRepo()
	g := newNotesEngine(repo, "alice")

	// CREATE with defaults
	w := doJSON(t, g, http.MethodPost, "/notes", `{}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var created note.Note
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "Untitled", created.Title)
	assert.NotEmpty(t, created.ID)
	// arrays present even on a fresh note
	assert.Contains(t, w.Body.String(), `"tags":[]`)
	assert.Contains(t, w.Body.String(), `"aiOutputs":[]`)

	// GET
	w = doJSON(t, g, http.MethodGet, "/notes/"+created.ID, "")
	require.Equal(t, http.StatusOK, w.Code)

	// PUT partial update leaves other fields alone
	w = doJSON(t, g, http.MethodPut, "/notes/"+created.ID, `{"title":"Renamed"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var updated note.Note
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, created.Content, updated.Content)

	// LIST
	w = doJSON(t, g, http.MethodGet, "/notes", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []note.Note
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)

	// DELETE
	w = doJSON(t, g, http.MethodDelete, "/notes/"+created.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Note deleted")

	w = doJSON(t, g, http.MethodGet, "/notes/"+created.ID, "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Note not found")
}

func TestNotesSearchQuery(t *testing.T) {
	repo := repository.NewMemoryRepo()
	g := newNotesEngine(repo, "alice")

	w := doJSON(t, g, http.MethodPost, "/notes", `{"title":"Golang caching"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(t, g, http.MethodPost, "/notes", `{"title":"Groceries"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, g, http.MethodGet, "/notes?search=golang", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []note.Note
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Golang caching", list[0].Title)
}

func TestNotesCrossUserIsNotFound(t *testing.T) {
	repo := repository.NewMemoryRepo()
	alice := newNotesEngine(repo, "alice")
	bob := newNotesEngine(repo, "bob")

	w := doJSON(t, alice, http.MethodPost, "/notes", `{"title":"mine"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var created note.Note
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	for _, probe := range []struct{ method, path, body string }{
		{http.MethodGet, "/notes/" + created.ID, ""},
		{http.MethodPut, "/notes/" + created.ID, `{"title":"taken"}`},
		{http.MethodDelete, "/notes/" + created.ID, ""},
	} {
		w = doJSON(t, bob, probe.method, probe.path, probe.body)
		assert.Equal(t, http.StatusNotFound, w.Code, "%s %s", probe.method, probe.path)
		assert.Contains(t, w.Body.String(), "Note not found")
	}
}

func TestAppendAIOutputEndpoint(t *testing.T) {
	repo := repository.NewMemoryRepo()
	g := newNotesEngine(repo, "alice")

	w := doJSON(t, g, http.MethodPost, "/notes", `{"title":"T","content":"C"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var created note.Note
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	for i := 0; i < 2; i++ {
		body := fmt.Sprintf(`{"originalInput":"in","feature":"rewrite","output":"out-%d"}`, i)
		w = doJSON(t, g, http.MethodPost, "/notes/"+created.ID+"/ai-output", body)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	var n note.Note
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &n))
	require.Len(t, n.AIOutputs, 2)
	assert.Equal(t, "out-1", n.AIOutputs[0].Output, "newest entry first")

	// missing required fields
	w = doJSON(t, g, http.MethodPost, "/notes/"+created.ID+"/ai-output", `{"feature":"rewrite"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
