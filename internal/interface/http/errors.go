package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobportal-api/internal/application"
	"jobportal-api/pkg/response"
)

// httpError maps domain errors to the API status codes and the user-facing
// messages the frontend expects. Unknown errors become a generic 500.
func httpError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrNotFound):
		response.Error[any](c, http.StatusNotFound, "account with this email does not exist", nil)
	case errors.Is(err, application.ErrEmailTaken):
		response.Error[any](c, http.StatusBadRequest, "an account with this email already exists", nil)
	case errors.Is(err, application.ErrAlreadyVerified):
		response.Error[any](c, http.StatusBadRequest, "email already verified, please login", nil)
	case errors.Is(err, application.ErrNoPendingOTP):
		response.Error[any](c, http.StatusBadRequest, "no OTP request found, please request a new one", nil)
	case errors.Is(err, application.ErrOTPExpired):
		response.Error[any](c, http.StatusBadRequest, "OTP has expired, please request a new one", nil)
	case errors.Is(err, application.ErrInvalidOTP):
		response.Error[any](c, http.StatusBadRequest, "invalid OTP, please try again", nil)
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error[any](c, http.StatusUnauthorized, "invalid password", nil)
	case errors.Is(err, application.ErrWrongPassword):
		response.Error[any](c, http.StatusBadRequest, "current password is incorrect", nil)
	case errors.Is(err, application.ErrDeliveryFailed):
		response.Error[any](c, http.StatusInternalServerError, "failed to send email, please try again later", nil)
	case errors.Is(err, application.ErrJobNotFound):
		response.Error[any](c, http.StatusNotFound, "job not found", nil)
	case errors.Is(err, application.ErrJobNotPending):
		response.Error[any](c, http.StatusBadRequest, "job has already been reviewed", nil)
	default:
		response.Error[any](c, http.StatusInternalServerError, "server error", nil)
	}
}
