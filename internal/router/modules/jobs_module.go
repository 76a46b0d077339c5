package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"jobportal-api/internal/container"
	handlers "jobportal-api/internal/interface/http"
	"jobportal-api/internal/interface/middleware"
)

// JobsModule exposes the public job board listing at GET /api/jobs.

type JobsModule struct {
	Handler *handlers.JobHandler
}

func NewJobsModule(h *handlers.JobHandler) *JobsModule {
	return &JobsModule{Handler: h}
}

func (m *JobsModule) Register(rg *gin.RouterGroup) {
	listLimiter := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	rg.GET("/jobs", listLimiter, m.Handler.List)
}
