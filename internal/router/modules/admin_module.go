package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"jobportal-api/internal/container"
	handlers "jobportal-api/internal/interface/http"
	"jobportal-api/internal/interface/middleware"
	"jobportal-api/pkg/helpers"
)

// AdminModule registers the admin routes under /api/admin. Login is public;
// the job approval endpoints require a valid admin token and reply 403 to any
// other authenticated role.

type AdminModule struct {
	Handler *handlers.AdminHandler
	JWT     *helpers.JWTManager
}

func NewAdminModule(h *handlers.AdminHandler, jwt *helpers.JWTManager) *AdminModule {
	return &AdminModule{Handler: h, JWT: jwt}
}

func (m *AdminModule) Register(rg *gin.RouterGroup) {
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)

	g := rg.Group("/admin")
	g.POST("/login", loginLimiter, m.Handler.Login)

	auth := g.Group("/")
	auth.Use(middleware.AdminOnly(m.JWT))
	{
		auth.GET("/jobs/pending", m.Handler.PendingJobs)
		auth.PUT("/jobs/:id/approve", m.Handler.ApproveJob)
		auth.PUT("/jobs/:id/reject", m.Handler.RejectJob)
	}
}
