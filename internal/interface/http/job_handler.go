package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"jobportal-api/internal/application"
	"jobportal-api/internal/interface/middleware"
	"jobportal-api/pkg/response"
	"jobportal-api/pkg/validation"
)

type JobHandler struct {
	Svc    *application.JobService
	Logger *logrus.Logger
}

func NewJobHandler(svc *application.JobService, logger *logrus.Logger) *JobHandler {
	return &JobHandler{Svc: svc, Logger: logger}
}

type postJobRequest struct {
	Title       string `json:"title" binding:"required,min=2,max=120"`
	Description string `json:"description" binding:"required,min=10"`
	Company     string `json:"company" binding:"required,min=2,max=120"`
	Location    string `json:"location" binding:"required,min=2,max=120"`
	Salary      string `json:"salary" binding:"omitempty,max=60"`
}

// Post POST /api/recruiter/jobs (recruiter)
func (h *JobHandler) Post(c *gin.Context) {
	var req postJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	recruiterID := c.GetString(middleware.CtxUserIDKey)
	j, err := h.Svc.Post(c.Request.Context(), recruiterID, application.PostJobInput{
		Title:       req.Title,
		Description: req.Description,
		Company:     req.Company,
		Location:    req.Location,
		Salary:      req.Salary,
	})
	if err != nil {
		httpError(c, err)
		return
	}
	h.Logger.WithFields(logrus.Fields{"job_id": j.ID, "recruiter_id": recruiterID}).Info("job posted")
	response.Success(c, http.StatusCreated, gin.H{"job": j}, "job submitted for approval", nil)
}

// MyJobs GET /api/recruiter/my-jobs (recruiter)
func (h *JobHandler) MyJobs(c *gin.Context) {
	jobs, err := h.Svc.MyJobs(c.Request.Context(), c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		httpError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"jobs": jobs}, "your jobs", nil)
}

// List GET /api/jobs (public, approved only)
func (h *JobHandler) List(c *gin.Context) {
	jobs, err := h.Svc.ApprovedJobs(c.Request.Context())
	if err != nil {
		httpError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"jobs": jobs}, "open jobs", nil)
}
