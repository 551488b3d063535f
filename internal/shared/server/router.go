package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	googleauth "hrms-backend/internal/auth"
	"hrms-backend/internal/candidates"
	"hrms-backend/internal/employees"
	"hrms-backend/internal/leave"
	"hrms-backend/internal/notify"
	"hrms-backend/internal/postings"
	"hrms-backend/internal/reports"
	"hrms-backend/internal/requirements"
	"hrms-backend/internal/shared/config"
	"hrms-backend/internal/shared/metrics"
	"hrms-backend/internal/shared/server/middleware"
	"hrms-backend/internal/users"
)

// RouterDeps carries everything the router mounts.
type RouterDeps struct {
	Config              config.Config
	RequirementsHandler *requirements.Handler
	PostingsHandler     *postings.Handler
	CandidatesHandler   *candidates.Handler
	NotifyHandler       *notify.Handler
	ReportsHandler      *reports.Handler
	EmployeesHandler    *employees.Handler
	LeaveHandler        *leave.Handler
	UsersHandler        *users.Handler
	GoogleAuth          *googleauth.GoogleService
}

// NewRouter assembles the gin engine: middleware chain, health and metrics
// endpoints, and every feature handler under /api/v1.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(deps.Config.CORSAllowOrigin))
	r.Use(middleware.Auth(deps.Config.Env))
	r.Use(middleware.RateLimit(middleware.RateLimitConfig{
		DefaultGroup: "DEFAULT",
		GroupFor: func(c *gin.Context) string {
			// Public applications are throttled harder than staff traffic.
			if c.Request.Method == http.MethodPost && c.FullPath() == "/api/v1/candidates" {
				return "APPLY"
			}
			return "DEFAULT"
		},
		Rules: map[string]middleware.RateLimitRule{
			"DEFAULT": {Rate: 20, Burst: 40},
			"APPLY":   {Rate: 2, Burst: 5},
		},
	}))

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"ok":    true,
			"env":   deps.Config.Env,
			"store": deps.Config.StoreBackend,
		})
	})

	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	if deps.UsersHandler != nil {
		deps.UsersHandler.RegisterRoutes(api)
	}
	if deps.RequirementsHandler != nil {
		deps.RequirementsHandler.RegisterRoutes(api)
	}
	if deps.PostingsHandler != nil {
		deps.PostingsHandler.RegisterRoutes(api)
	}
	if deps.CandidatesHandler != nil {
		deps.CandidatesHandler.RegisterRoutes(api)
	}
	if deps.NotifyHandler != nil {
		deps.NotifyHandler.RegisterRoutes(api)
	}
	if deps.ReportsHandler != nil {
		deps.ReportsHandler.RegisterRoutes(api)
	}
	if deps.EmployeesHandler != nil {
		deps.EmployeesHandler.RegisterRoutes(api)
	}
	if deps.LeaveHandler != nil {
		deps.LeaveHandler.RegisterRoutes(api)
	}

	return r
}
