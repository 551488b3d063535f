package postings

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

// RegisterRoutes attaches posting routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/postings", h.create)
	rg.GET("/postings", h.list)
	rg.GET("/postings/:id", h.get)
	rg.PATCH("/postings/:id/status", h.updateStatus)
}

type createRequest struct {
	RequirementID       int    `json:"requirementId"`
	Title               string `json:"title"`
	Description         string `json:"description"`
	Location            string `json:"location"`
	SalaryRange         string `json:"salaryRange"`
	ApplicationDeadline string `json:"applicationDeadline"`
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	created, err := h.Svc.Create(c.Request.Context(), CreateInput{
		RequirementID:       req.RequirementID,
		Title:               req.Title,
		Description:         req.Description,
		Location:            req.Location,
		SalaryRange:         req.SalaryRange,
		ApplicationDeadline: req.ApplicationDeadline,
		CreatedBy:           middleware.UserIDFromContext(c),
	})
	if err != nil {
		respond.FromError(c, err, "failed to create posting")
		return
	}
	c.Set("postingId", created.ID)
	respond.JSON(c, http.StatusCreated, created)
}

func (h *Handler) list(c *gin.Context) {
	out, err := h.Svc.List(c.Request.Context(), ListFilter{
		Status:     domain.PostingStatus(c.Query("status")),
		Department: c.Query("department"),
		Location:   c.Query("location"),
	})
	if err != nil {
		respond.FromError(c, err, "failed to list postings")
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
		respond.FromError(c, err, "failed to fetch posting")
		return
	}
	respond.JSON(c, http.StatusOK, out)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) updateStatus(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	out, err := h.Svc.UpdateStatus(c.Request.Context(), id, domain.PostingStatus(req.Status))
	if err != nil {
		respond.FromError(c, err, "failed to update posting status")
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
