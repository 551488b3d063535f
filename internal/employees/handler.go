package employees

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hrms-backend/internal/domain"
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

// RegisterRoutes attaches employee routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/employees", h.create)
	rg.GET("/employees", h.list)
	rg.GET("/employees/:id", h.get)
	rg.PATCH("/employees/:id", h.update)
	rg.POST("/employees/:id/exit", h.exit)
}

type createRequest struct {
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Department string  `json:"department"`
	Position   string  `json:"position"`
	Salary     float64 `json:"salary"`
	JoinDate   string  `json:"joinDate"`
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	created, err := h.Svc.Create(c.Request.Context(), CreateInput{
		Name:       req.Name,
		Email:      req.Email,
		Department: req.Department,
		Position:   req.Position,
		Salary:     req.Salary,
		JoinDate:   req.JoinDate,
	})
	if err != nil {
		respond.FromError(c, err, "failed to create employee")
		return
	}
	respond.JSON(c, http.StatusCreated, created)
}

func (h *Handler) list(c *gin.Context) {
	out, err := h.Svc.List(c.Request.Context(), ListFilter{
		Department: c.Query("department"),
		Status:     domain.EmployeeStatus(c.Query("status")),
	})
	if err != nil {
		respond.FromError(c, err, "failed to list employees")
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
		respond.FromError(c, err, "failed to fetch employee")
		return
	}
	respond.JSON(c, http.StatusOK, out)
}

type updateRequest struct {
	Name       *string  `json:"name"`
	Department *string  `json:"department"`
	Position   *string  `json:"position"`
	Salary     *float64 `json:"salary"`
	Status     *string  `json:"status"`
}

func (h *Handler) update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	in := UpdateInput{
		Name:       req.Name,
		Department: req.Department,
		Position:   req.Position,
		Salary:     req.Salary,
	}
	if req.Status != nil {
		status := domain.EmployeeStatus(*req.Status)
		in.Status = &status
	}
	out, err := h.Svc.Update(c.Request.Context(), id, in)
	if err != nil {
		respond.FromError(c, err, "failed to update employee")
		return
	}
	respond.JSON(c, http.StatusOK, out)
}

type exitRequest struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

func (h *Handler) exit(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req exitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	out, err := h.Svc.Exit(c.Request.Context(), id, req.Date, req.Reason)
	if err != nil {
		respond.FromError(c, err, "failed to exit employee")
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
