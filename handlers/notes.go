package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/inkling-notes/inkling-server/internal/note"
	"github.com/inkling-notes/inkling-server/internal/note/repository"
	"github.com/inkling-notes/inkling-server/internal/note/service"
	"github.com/inkling-notes/inkling-server/pkg/logger"
	"github.com/inkling-notes/inkling-server/pkg/middleware"
)

// NotesHandler serves the owner-scoped note CRUD surface.
type NotesHandler struct {
	svc service.Service
}

func NewNotesHandler(svc service.Service) *NotesHandler {
	return &NotesHandler{svc: svc}
}

// Register mounts the note routes on the given (already authenticated) group.
func (h *NotesHandler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.POST("/:id/ai-output", h.AppendAIOutput)
	rg.DELETE("/:id", h.Delete)
}

func ownerID(c *gin.Context) string {
	return c.GetString(middleware.UserIDKey)
}

func (h *NotesHandler) List(c *gin.Context) {
	search := strings.TrimSpace(c.Query("search"))
	notes, err := h.svc.List(c.Request.Context(), ownerID(c), search)
	if err != nil {
		logger.Errorf("list notes: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load notes"})
		return
	}
	c.JSON(http.StatusOK, notes)
}

func (h *NotesHandler) Get(c *gin.Context) {
	n, err := h.svc.Get(c.Request.Context(), ownerID(c), c.Param("id"))
	if err != nil {
		writeNoteError(c, err)
		return
	}
	c.JSON(http.StatusOK, n)
}

func (h *NotesHandler) Create(c *gin.Context) {
	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	n, err := h.svc.Create(c.Request.Context(), ownerID(c), req.Title, req.Content)
	if err != nil {
		logger.Errorf("create note: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create note"})
		return
	}
	c.JSON(http.StatusCreated, n)
}

func (h *NotesHandler) Update(c *gin.Context) {
	var patch note.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	n, err := h.svc.Update(c.Request.Context(), ownerID(c), c.Param("id"), patch)
	if err != nil {
		writeNoteError(c, err)
		return
	}
	c.JSON(http.StatusOK, n)
}

func (h *NotesHandler) AppendAIOutput(c *gin.Context) {
	var req struct {
		OriginalInput string `json:"originalInput" binding:"required"`
		Feature       string `json:"feature" binding:"required"`
		Output        string `json:"output" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	n, err := h.svc.AppendHistory(c.Request.Context(), ownerID(c), c.Param("id"), note.AIOutput{
		OriginalInput: req.OriginalInput,
		Feature:       req.Feature,
		Output:        req.Output,
	})
	if err != nil {
		writeNoteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, n)
}

func (h *NotesHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), ownerID(c), c.Param("id")); err != nil {
		writeNoteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Note deleted"})
}

func writeNoteError(c *gin.Context, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Note not found"})
		return
	}
	logger.Errorf("note operation: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal error"})
}
