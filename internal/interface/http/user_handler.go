package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"jobportal-api/internal/application"
	"jobportal-api/internal/domain/entity"
	"jobportal-api/internal/interface/middleware"
	"jobportal-api/pkg/response"
	"jobportal-api/pkg/validation"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type registerUserRequest struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,pwd"`
	ContactNo string `json:"contactno" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type verifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required,len=6,numeric"`
}

type resetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	OTP         string `json:"otp" binding:"required,len=6,numeric"`
	NewPassword string `json:"newPassword" binding:"required,pwd"`
}

type updateUserProfileRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email" binding:"omitempty,email"`
	ContactNo string `json:"contactno"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,pwd"`
}

func userSummary(u *entity.User) gin.H {
	return gin.H{
		"id":        u.ID,
		"name":      u.Name,
		"email":     u.Email,
		"contactno": u.ContactNo,
	}
}

// Register POST /api/user/register
func (h *UserHandler) Register(c *gin.Context) {
	var req registerUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.Register(c.Request.Context(), application.RegisterUserInput{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		ContactNo: req.ContactNo,
	})
	if err != nil {
		httpError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"user": userSummary(u)}, "registration successful", nil)
}

// Login POST /api/user/login
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, res, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httpError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"token": res.Token,
		"user":  userSummary(u),
	}, "login successful", gin.H{"expires_at": res.ExpiresAt})
}

// GetProfile GET /api/user/profile (auth)
func (h *UserHandler) GetProfile(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	u, err := h.Svc.GetProfile(c.Request.Context(), uid)
	if err != nil {
		httpError(c, err)
		return
	}
	s := userSummary(u)
	s["created_at"] = u.CreatedAt
	response.Success(c, http.StatusOK, gin.H{"user": s}, "profile", nil)
}

// UpdateProfile PUT /api/user/profile (auth)
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req updateUserProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.UpdateProfile(c.Request.Context(), uid, application.UpdateUserProfileInput{
		Name:      req.Name,
		Email:     req.Email,
		ContactNo: req.ContactNo,
	})
	if err != nil {
		httpError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": userSummary(u)}, "profile updated successfully", nil)
}

// ChangePassword PUT /api/user/change-password (auth)
func (h *UserHandler) ChangePassword(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.ChangePassword(c.Request.Context(), uid, req.CurrentPassword, req.NewPassword); err != nil {
		httpError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "password changed successfully", nil)
}

// DeleteAccount DELETE /api/user/account (auth)
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	if err := h.Svc.DeleteAccount(c.Request.Context(), uid); err != nil {
		httpError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "account deleted successfully", nil)
}

// ForgotPassword POST /api/user/forgot-password
func (h *UserHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		httpError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "OTP sent to your email successfully", nil)
}

// VerifyOTP POST /api/user/verify-otp
func (h *UserHandler) VerifyOTP(c *gin.Context) {
	var req verifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.VerifyResetOTP(c.Request.Context(), req.Email, req.OTP); err != nil {
		httpError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "OTP verified successfully", nil)
}

// ResetPassword POST /api/user/reset-password
func (h *UserHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.ResetPassword(c.Request.Context(), req.Email, req.OTP, req.NewPassword); err != nil {
		httpError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "password reset successfully, you can now login with your new password", nil)
}
