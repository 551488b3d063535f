package reports

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"hrms-backend/internal/shared/server/respond"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches report routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/reports/overview", h.overview)
	rg.GET("/reports/top-candidates", h.topCandidates)
	rg.GET("/reports/recruitment.xlsx", h.export)
}

func (h *Handler) overview(c *gin.Context) {
	out, err := h.Svc.Overview(c.Request.Context())
	if err != nil {
		respond.FromError(c, err, "failed to build overview")
		return
	}
	respond.JSON(c, http.StatusOK, out)
}

func (h *Handler) topCandidates(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	out, err := h.Svc.TopCandidates(c.Request.Context(), limit)
	if err != nil {
		respond.FromError(c, err, "failed to rank candidates")
		return
	}
	respond.JSON(c, http.StatusOK, out)
}

func (h *Handler) export(c *gin.Context) {
	buf, err := h.Svc.ExportWorkbook(c.Request.Context())
	if err != nil {
		respond.FromError(c, err, "failed to export workbook")
		return
	}
	fileName := fmt.Sprintf("recruitment-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
