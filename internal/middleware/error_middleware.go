package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rafly/siprojek/internal/app/models/dto"
	"github.com/rafly/siprojek/internal/pkg/apperrors"
	"github.com/rafly/siprojek/internal/pkg/logger"
)

// HandleAPIError maps a workflow error onto an HTTP response. Errors carry
// their kind as a wrapped sentinel, so one errors.Is ladder covers every
// controller.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeInvalidInput, err)
	case errors.Is(err, apperrors.ErrPreconditionFailed):
		respondError(c, http.StatusUnprocessableEntity, dto.ErrorCodePreconditionFailed, err)
	case errors.Is(err, apperrors.ErrNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, err)
	case errors.Is(err, apperrors.ErrConflict):
		respondError(c, http.StatusConflict, dto.ErrorCodeConflict, err)
	case errors.Is(err, apperrors.ErrEmailAlreadyExists), errors.Is(err, apperrors.ErrNPMAlreadyExists):
		respondError(c, http.StatusConflict, dto.ErrorCodeConflict, err)
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, err)
	case errors.Is(err, apperrors.ErrTokenExpired):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, err)
	case errors.Is(err, apperrors.ErrTokenInvalid):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, err)
	case errors.Is(err, apperrors.ErrAccountDisabled), errors.Is(err, apperrors.ErrPermissionDenied):
		respondError(c, http.StatusForbidden, dto.ErrorCodeForbidden, err)
	case errors.Is(err, apperrors.ErrStorageFailure):
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Storage failure")
		respondError(c, http.StatusInternalServerError, dto.ErrorCodeStorageFailure, errors.New("storage failure"))
	default:
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled error")
		respondError(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer, errors.New("internal server error"))
	}
}

// HandleBindingError reports a malformed request body
func HandleBindingError(c *gin.Context, err error) {
	detail := dto.NewErrorDetail(dto.ErrorCodeInvalidInput, "Invalid request body").WithDetails("%s", err.Error())
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
}

func respondError(c *gin.Context, status int, code dto.ErrorCode, err error) {
	c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, err.Error())))
}
