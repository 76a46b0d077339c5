package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"jobportal-api/internal/application"
	"jobportal-api/internal/container"
	handlers "jobportal-api/internal/interface/http"
	"jobportal-api/internal/interface/middleware"
	"jobportal-api/pkg/helpers"
)

// RecruiterModule registers the recruiter routes under /api/recruiter.
// Registration, login, the email verification flow and the password reset flow
// are public; profile and job management require a recruiter token.

type RecruiterModule struct {
	Handler *handlers.RecruiterHandler
	Jobs    *handlers.JobHandler
	JWT     *helpers.JWTManager
}

func NewRecruiterModule(h *handlers.RecruiterHandler, jobs *handlers.JobHandler, jwt *helpers.JWTManager) *RecruiterModule {
	return &RecruiterModule{Handler: h, Jobs: jobs, JWT: jwt}
}

func (m *RecruiterModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)
	otpLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)

	g := rg.Group("/recruiter")
	g.POST("/register", registerLimiter, m.Handler.Register)
	g.POST("/login", loginLimiter, m.Handler.Login)
	g.POST("/verify-email", otpLimiter, m.Handler.VerifyEmail)
	g.POST("/resend-verification-otp", otpLimiter, m.Handler.ResendVerificationOTP)
	g.POST("/forgot-password", otpLimiter, m.Handler.ForgotPassword)
	g.POST("/verify-otp", otpLimiter, m.Handler.VerifyOTP)
	g.POST("/reset-password", otpLimiter, m.Handler.ResetPassword)

	auth := g.Group("/")
	auth.Use(middleware.Auth(m.JWT, application.RoleRecruiter))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/profile", m.Handler.GetProfile)
		auth.PUT("/profile", m.Handler.UpdateProfile)
		auth.PUT("/change-password", m.Handler.ChangePassword)
		auth.POST("/jobs", m.Jobs.Post)
		auth.GET("/my-jobs", m.Jobs.MyJobs)
	}
}
