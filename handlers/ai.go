package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inkling-notes/inkling-server/internal/ai"
	"github.com/inkling-notes/inkling-server/pkg/logger"
	"github.com/inkling-notes/inkling-server/pkg/metrics"
)

// AIHandler serves the text-transformation endpoints. They are stateless with
// respect to notes: folding results into a note is the client's second step
// (or the operation service's, when a run is note-bound).
type AIHandler struct {
	svc *ai.Service
}

func NewAIHandler(svc *ai.Service) *AIHandler {
	return &AIHandler{svc: svc}
}

func (h *AIHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/process", h.Process)
	rg.POST("/tags", h.Tags)
	rg.POST("/summarize", h.Summarize)
	rg.POST("/improve", h.Improve)
}

func (h *AIHandler) Process(c *gin.Context) {
	var req struct {
		Content  string `json:"content" binding:"required"`
		Feature  string `json:"feature" binding:"required"`
		Language string `json:"language"`
		Format   string `json:"format"`
		Question string `json:"question"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	res, err := h.svc.Run(c.Request.Context(), ownerID(c), "", req.Feature, req.Content, ai.Params{
		Language: req.Language,
		Format:   req.Format,
		Question: req.Question,
	})
	if err != nil {
		metrics.AIRequests.WithLabelValues(req.Feature, "error").Inc()
		writeAIError(c, err)
		return
	}
	metrics.AIRequests.WithLabelValues(req.Feature, "ok").Inc()
	c.JSON(http.StatusOK, gin.H{"feature": res.Feature, "output": res.Output})
}

func (h *AIHandler) Tags(c *gin.Context) {
	var req struct {
		Title   string `json:"title"`
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	tags, _, err := h.svc.GenerateTags(c.Request.Context(), ownerID(c), "", req.Title, req.Content)
	if err != nil {
		metrics.AIRequests.WithLabelValues(ai.FeatureTags, "error").Inc()
		writeAIError(c, err)
		return
	}
	metrics.AIRequests.WithLabelValues(ai.FeatureTags, "ok").Inc()
	c.JSON(http.StatusOK, gin.H{"tags": tags})
}

func (h *AIHandler) Summarize(c *gin.Context) {
	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	summary, err := h.svc.Summarize(c.Request.Context(), req.Content)
	if err != nil {
		metrics.AIRequests.WithLabelValues(ai.FeatureSummarize, "error").Inc()
		writeAIError(c, err)
		return
	}
	metrics.AIRequests.WithLabelValues(ai.FeatureSummarize, "ok").Inc()
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

func (h *AIHandler) Improve(c *gin.Context) {
	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	improved, err := h.svc.Improve(c.Request.Context(), req.Content)
	if err != nil {
		metrics.AIRequests.WithLabelValues(ai.FeatureImprove, "error").Inc()
		writeAIError(c, err)
		return
	}
	metrics.AIRequests.WithLabelValues(ai.FeatureImprove, "ok").Inc()
	c.JSON(http.StatusOK, gin.H{"improved": improved})
}

// writeAIError maps operation failures to the API's status codes: bad input
// is 400, everything provider-related is 503 with a best-effort message.
func writeAIError(c *gin.Context, err error) {
	var pe *ai.ParamError
	switch {
	case errors.As(err, &pe):
		c.JSON(http.StatusBadRequest, gin.H{"message": pe.Message})
	case errors.Is(err, ai.ErrUnsupportedFeature):
		c.JSON(http.StatusBadRequest, gin.H{"message": "unsupported feature"})
	default:
		logger.Errorf("AI operation: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": err.Error()})
	}
}
