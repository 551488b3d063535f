package requirements

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

// RegisterRoutes attaches requirement routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/requirements", h.create)
	rg.GET("/requirements", h.list)
	rg.GET("/requirements/:id", h.get)
	rg.POST("/requirements/:id/approve", h.approve)
	rg.POST("/requirements/:id/reject", h.reject)
}

type createRequest struct {
	Title       string  `json:"title"`
	Department  string  `json:"department"`
	Description string  `json:"description"`
	Budget      float64 `json:"budget"`
	Positions   int     `json:"positions"`
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	created, err := h.Svc.Create(c.Request.Context(), CreateInput{
		Title:       req.Title,
		Department:  req.Department,
		Description: req.Description,
		Budget:      req.Budget,
		Positions:   req.Positions,
		CreatedBy:   middleware.UserIDFromContext(c),
	})
	if err != nil {
		respond.FromError(c, err, "failed to create requirement")
		return
	}
	respond.JSON(c, http.StatusCreated, created)
}

func (h *Handler) list(c *gin.Context) {
	out, err := h.Svc.List(c.Request.Context(), ListFilter{
		Department: c.Query("department"),
		Status:     domain.RequirementStatus(c.Query("status")),
		CreatedBy:  c.Query("createdBy"),
	})
	if err != nil {
		respond.FromError(c, err, "failed to list requirements")
		return
	}
	respond.JSON(c, http.StatusOK, out)
}

func (h *Handler) get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	out, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		respond.FromError(c, err, "failed to fetch requirement")
		return
	}
	respond.JSON(c, http.StatusOK, out)
}

func (h *Handler) approve(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	out, err := h.Svc.Approve(c.Request.Context(), id, middleware.UserIDFromContext(c))
	if err != nil {
		respond.FromError(c, err, "failed to approve requirement")
		return
	}
	respond.JSON(c, http.StatusOK, out)
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

func (h *Handler) reject(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req rejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	out, err := h.Svc.Reject(c.Request.Context(), id, req.Reason)
	if err != nil {
		respond.FromError(c, err, "failed to reject requirement")
		return
	}
	respond.JSON(c, http.StatusOK, out)
}

func idParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid id", nil)
		return 0, false
	}
	return id, true
}
