package candidates

import (
	"encoding/json"
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

// RegisterRoutes attaches candidate routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/candidates", h.apply)
	rg.GET("/candidates", h.list)
	rg.GET("/candidates/:id", h.get)
	rg.PATCH("/candidates/:id/status", h.updateStatus)
	rg.POST("/candidates/:id/interviews", h.addInterview)
	rg.POST("/candidates/:id/resume", h.uploadResume)
	rg.GET("/candidates/:id/history", h.history)
	rg.GET("/postings/:id/candidates", h.listByPosting)
}

type applyRequest struct {
	JobPostingID    int             `json:"jobPostingId"`
	Name            string          `json:"name"`
	Email           string          `json:"email"`
	Phone           string          `json:"phone"`
	Experience      string          `json:"experience"`
	Skills          json.RawMessage `json:"skills"`
	LinkedinProfile string          `json:"linkedinProfile"`
}

// skillsList accepts either an array of strings or a single scalar string,
// which clients historically send for a one-skill candidate.
func skillsList(raw json.RawMessage) ([]string, bool) {
	if len(raw) == 0 {
		return nil, true
	}
	var many []string
	if err := json.Unmarshal(raw, &many); err == nil {
		return many, true
	}
	var one string
	if err := json.Unmarshal(raw, &one); err == nil {
		return []string{one}, true
	}
	return nil, false
}

func (h *Handler) apply(c *gin.Context) {
	var req applyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	skills, ok := skillsList(req.Skills)
	if !ok {
		respond.Error(c, http.StatusBadRequest, "validation_error", "skills must be a string or a list of strings", nil)
		return
	}

	created, err := h.Svc.Apply(c.Request.Context(), ApplyInput{
		JobPostingID:    req.JobPostingID,
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		Experience:      req.Experience,
		Skills:          skills,
		LinkedinProfile: req.LinkedinProfile,
		RequestID:       middleware.RequestIDFromContext(c),
	})
	if err != nil {
		respond.FromError(c, err, "failed to submit application")
		return
	}
	c.Set("candidateId", created.ID)
	c.Set("postingId", created.JobPostingID)
	respond.JSON(c, http.StatusCreated, created)
}

func (h *Handler) list(c *gin.Context) {
	postingID, _ := strconv.Atoi(c.Query("jobPostingId"))
	out, err := h.Svc.List(c.Request.Context(), ListFilter{
		JobPostingID: postingID,
		Status:       domain.CandidateStatus(c.Query("status")),
		Email:        c.Query("email"),
	})
	if err != nil {
		respond.FromError(c, err, "failed to list candidates")
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
		respond.FromError(c, err, "failed to fetch candidate")
		return
	}
	respond.JSON(c, http.StatusOK, out)
}

type updateStatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
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
	out, err := h.Svc.UpdateStatus(c.Request.Context(), id, UpdateStatusInput{
		Status:    domain.CandidateStatus(req.Status),
		Notes:     req.Notes,
		RequestID: middleware.RequestIDFromContext(c),
	})
	if err != nil {
		respond.FromError(c, err, "failed to update candidate status")
		return
	}
	c.Set("candidateId", out.ID)
	respond.JSON(c, http.StatusOK, out)
}

type interviewRequest struct {
	Date        string `json:"date"`
	Interviewer string `json:"interviewer"`
	Rating      int    `json:"rating"`
	Feedback    string `json:"feedback"`
}

func (h *Handler) addInterview(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req interviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	out, err := h.Svc.AddInterview(c.Request.Context(), id, InterviewInput{
		Date:        req.Date,
		Interviewer: req.Interviewer,
		Rating:      req.Rating,
		Feedback:    req.Feedback,
		RequestID:   middleware.RequestIDFromContext(c),
	})
	if err != nil {
		respond.FromError(c, err, "failed to add interview")
		return
	}
	c.Set("candidateId", out.ID)
	respond.JSON(c, http.StatusCreated, out)
}

func (h *Handler) uploadResume(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	file, header, err := c.Request.FormFile("resume")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "resume file is required", nil)
		return
	}
	defer file.Close()

	out, err := h.Svc.UploadResume(c.Request.Context(), id, header.Filename, file)
	if err != nil {
		respond.FromError(c, err, "failed to upload resume")
		return
	}
	c.Set("candidateId", out.ID)
	respond.JSON(c, http.StatusOK, out)
}

func (h *Handler) history(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	out, err := h.Svc.StatusHistory(c.Request.Context(), id)
	if err != nil {
		respond.FromError(c, err, "failed to fetch status history")
		return
	}
	respond.JSON(c, http.StatusOK, out)
}

func (h *Handler) listByPosting(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	out, err := h.Svc.ListByPosting(c.Request.Context(), id)
	if err != nil {
		respond.FromError(c, err, "failed to list posting candidates")
		return
	}
	c.Set("postingId", id)
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
