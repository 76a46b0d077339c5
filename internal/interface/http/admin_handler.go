package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"jobportal-api/internal/application"
	"jobportal-api/pkg/response"
	"jobportal-api/pkg/validation"
)

type AdminHandler struct {
	Svc    *application.AdminService
	Jobs   *application.JobService
	Logger *logrus.Logger
}

func NewAdminHandler(svc *application.AdminService, jobs *application.JobService, logger *logrus.Logger) *AdminHandler {
	return &AdminHandler{Svc: svc, Jobs: jobs, Logger: logger}
}

// Login POST /api/admin/login
func (h *AdminHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	a, res, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httpError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"token": res.Token,
		"admin": gin.H{"id": a.ID, "name": a.Name, "email": a.Email},
	}, "login successful", gin.H{"expires_at": res.ExpiresAt})
}

// PendingJobs GET /api/admin/jobs/pending (admin)
func (h *AdminHandler) PendingJobs(c *gin.Context) {
	jobs, err := h.Jobs.PendingJobs(c.Request.Context())
	if err != nil {
		httpError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"jobs": jobs}, "pending jobs", nil)
}

// ApproveJob PUT /api/admin/jobs/:id/approve (admin)
func (h *AdminHandler) ApproveJob(c *gin.Context) {
	j, err := h.Jobs.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"job": j}, "job approved", nil)
}

// RejectJob PUT /api/admin/jobs/:id/reject (admin)
func (h *AdminHandler) RejectJob(c *gin.Context) {
	j, err := h.Jobs.Reject(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"job": j}, "job rejected", nil)
}
