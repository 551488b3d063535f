package notify

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hrms-backend/internal/domain"
	"hrms-backend/internal/shared/server/middleware"
	"hrms-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches notification routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/notifications/bulk", h.bulk)
	rg.POST("/postings/:id/broadcast", h.broadcast)
}

type bulkRequest struct {
	CandidateIDs []int  `json:"candidateIds"`
	Status       string `json:"status"`
}

func (h *Handler) bulk(c *gin.Context) {
	var req bulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	out, err := h.Svc.BulkNotify(c.Request.Context(), req.CandidateIDs,
		domain.CandidateStatus(req.Status), middleware.RequestIDFromContext(c))
	if err != nil {
		respond.FromError(c, err, "failed to send bulk notifications")
		return
	}
	respond.JSON(c, http.StatusOK, out)
}

type broadcastRequest struct {
	Recipients []Recipient `json:"recipients"`
}

func (h *Handler) broadcast(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid id", nil)
		return
	}
	var req broadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	sent, err := h.Svc.BroadcastPosting(c.Request.Context(), id, req.Recipients, middleware.RequestIDFromContext(c))
	if err != nil {
		respond.FromError(c, err, "failed to broadcast posting")
		return
	}
	c.Set("postingId", id)
	respond.JSON(c, http.StatusOK, gin.H{"enqueued": sent})
}
