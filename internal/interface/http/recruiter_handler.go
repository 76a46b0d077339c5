package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"jobportal-api/internal/application"
	"jobportal-api/internal/domain/entity"
	"jobportal-api/internal/interface/middleware"
	"jobportal-api/pkg/response"
	"jobportal-api/pkg/validation"
)

type RecruiterHandler struct {
	Svc    *application.RecruiterService
	Logger *logrus.Logger
}

func NewRecruiterHandler(svc *application.RecruiterService, logger *logrus.Logger) *RecruiterHandler {
	return &RecruiterHandler{Svc: svc, Logger: logger}
}

type registerRecruiterRequest struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,pwd"`
	ContactNo string `json:"contactno" binding:"required"`
	Address   string `json:"address"`
}

type verifyEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required,len=6,numeric"`
}

type updateRecruiterProfileRequest struct {
	Name      string `json:"name"`
	ContactNo string `json:"contactno"`
	Address   string `json:"address"`
}

func recruiterSummary(r *entity.Recruiter) gin.H {
	return gin.H{
		"id":        r.ID,
		"name":      r.Name,
		"email":     r.Email,
		"contactno": r.ContactNo,
		"address":   r.Address,
	}
}

// Register POST /api/recruiter/register
// Registration is all-or-nothing: when the verification OTP cannot be
// delivered, the just-created account is rolled back and a 500 returned.
func (h *RecruiterHandler) Register(c *gin.Context) {
	var req registerRecruiterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	r, err := h.Svc.Register(c.Request.Context(), application.RegisterRecruiterInput{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		ContactNo: req.ContactNo,
		Address:   req.Address,
	})
	if err != nil {
		httpError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{
		"requiresVerification": true,
		"email":                r.Email,
	}, "registration successful, please check your email for the verification OTP", nil)
}

// VerifyEmail POST /api/recruiter/verify-email
func (h *RecruiterHandler) VerifyEmail(c *gin.Context) {
	var req verifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.VerifyEmail(c.Request.Context(), req.Email, req.OTP); err != nil {
		httpError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "email verified successfully, you can now login", nil)
}

// ResendVerificationOTP POST /api/recruiter/resend-verification-otp
func (h *RecruiterHandler) ResendVerificationOTP(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.ResendVerificationOTP(c.Request.Context(), req.Email); err != nil {
		httpError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "verification OTP sent to your email successfully", nil)
}

// Login POST /api/recruiter/login
// An unverified recruiter gets a 403 carrying requiresVerification so the
// frontend can route to the verification page.
func (h *RecruiterHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	r, res, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrEmailNotVerified) {
			resp := response.APIResponse[gin.H]{
				Status:    http.StatusForbidden,
				Timestamp: time.Now(),
				RequestID: c.GetString("request_id"),
				Success:   false,
				Message:   "please verify your email before logging in",
				Data:      gin.H{"requiresVerification": true, "email": r.Email},
			}
			c.JSON(http.StatusForbidden, resp)
			return
		}
		httpError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"token":     res.Token,
		"recruiter": recruiterSummary(r),
	}, "login successful", gin.H{"expires_at": res.ExpiresAt})
}

// GetProfile GET /api/recruiter/profile (auth)
func (h *RecruiterHandler) GetProfile(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	r, err := h.Svc.GetProfile(c.Request.Context(), uid)
	if err != nil {
		httpError(c, err)
		return
	}
	s := recruiterSummary(r)
	s["created_at"] = r.CreatedAt
	response.Success(c, http.StatusOK, gin.H{"recruiter": s}, "profile", nil)
}

// UpdateProfile PUT /api/recruiter/profile (auth)
func (h *RecruiterHandler) UpdateProfile(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req updateRecruiterProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	r, err := h.Svc.UpdateProfile(c.Request.Context(), uid, application.UpdateRecruiterProfileInput{
		Name:      req.Name,
		ContactNo: req.ContactNo,
		Address:   req.Address,
	})
	if err != nil {
		httpError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"recruiter": recruiterSummary(r)}, "profile updated successfully", nil)
}

// ChangePassword PUT /api/recruiter/change-password (auth)
func (h *RecruiterHandler) ChangePassword(c *gin.Context) {
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

// ForgotPassword POST /api/recruiter/forgot-password
func (h *RecruiterHandler) ForgotPassword(c *gin.Context) {
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

// VerifyOTP POST /api/recruiter/verify-otp
func (h *RecruiterHandler) VerifyOTP(c *gin.Context) {
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

// ResetPassword POST /api/recruiter/reset-password
func (h *RecruiterHandler) ResetPassword(c *gin.Context) {
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
