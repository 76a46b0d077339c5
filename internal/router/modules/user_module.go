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

// UserModule wires job-seeker HTTP handlers and JWT middleware into routes.
// Public: register, login and the password reset flow under /api/user.
// Protected: profile, change-password and account deletion.

type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)
	otpLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)

	g := rg.Group("/user")
	g.POST("/register", registerLimiter, m.Handler.Register)
	g.POST("/login", loginLimiter, m.Handler.Login)
	g.POST("/forgot-password", otpLimiter, m.Handler.ForgotPassword)
	g.POST("/verify-otp", otpLimiter, m.Handler.VerifyOTP)
	g.POST("/reset-password", otpLimiter, m.Handler.ResetPassword)

	auth := g.Group("/")
	auth.Use(middleware.Auth(m.JWT, application.RoleUser))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/profile", m.Handler.GetProfile)
		auth.PUT("/profile", m.Handler.UpdateProfile)
		auth.PUT("/change-password", m.Handler.ChangePassword)
		auth.DELETE("/account", m.Handler.DeleteAccount)
	}
}
