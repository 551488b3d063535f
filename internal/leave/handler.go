package leave

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

// RegisterRoutes attaches leave routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/leave", h.request)
	rg.GET("/leave", h.list)
	rg.GET("/leave/:id", h.get)
	rg.POST("/leave/:id/approve", h.approve)
	rg.POST("/leave/:id/reject", h.reject)
	rg.GET("/employees/:id/leave/summary", h.summary)
}

type requestBody struct {
	EmployeeID int    `json:"employeeId"`
	Type       string `json:"type"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	Reason     string `json:"reason"`
}

func (h *Handler) request(c *gin.Context) {
	var req requestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	created, err := h.Svc.Request(c.Request.Context(), RequestInput{
		EmployeeID: req.EmployeeID,
		Type:       domain.LeaveType(req.Type),
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Reason:     req.Reason,
	})
	if err != nil {
		respond.FromError(c, err, "failed to request leave")
		return
	}
	respond.JSON(c, http.StatusCreated, created)
}

func (h *Handler) list(c *gin.Context) {
	employeeID, _ := strconv.Atoi(c.Query("employeeId"))
	out, err := h.Svc.List(c.Request.Context(), ListFilter{
		EmployeeID: employeeID,
		Status:     domain.LeaveStatus(c.Query("status")),
		Type:       domain.LeaveType(c.Query("type")),
	})
	if err != nil {
		respond.FromError(c, err, "failed to list leave requests")
		return
	}
	respond.JSON(c, http.StatusOK, out)
}

func (h *Handler) get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	out, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		respond.FromError(c, err, "failed to fetch leave request")
		return
	}
	respond.JSON(c, http.StatusOK, out)
}

type decisionRequest struct {
	Note string `json:"note"`
}

func (h *Handler) approve(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req decisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	out, err := h.Svc.Approve(c.Request.Context(), id, middleware.UserIDFromContext(c), req.Note)
	if err != nil {
		respond.FromError(c, err, "failed to approve leave request")
		return
	}
	respond.JSON(c, http.StatusOK, out)
}

func (h *Handler) reject(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req decisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	out, err := h.Svc.Reject(c.Request.Context(), id, middleware.UserIDFromContext(c), req.Note)
	if err != nil {
		respond.FromError(c, err, "failed to reject leave request")
		return
	}
	respond.JSON(c, http.StatusOK, out)
}

func (h *Handler) summary(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	out, err := h.Svc.SummaryFor(c.Request.Context(), id)
	if err != nil {
		respond.FromError(c, err, "failed to build leave summary")
		return
	}
	respond.JSON(c, http.StatusOK, out)
}

func idParam(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid id", nil)
		return 0, false
	}
	return id, true
}
