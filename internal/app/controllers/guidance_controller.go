package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rafly/siprojek/internal/app/models/dto"
	"github.com/rafly/siprojek/internal/app/services"
	"github.com/rafly/siprojek/internal/middleware"
	"github.com/rafly/siprojek/internal/pkg/apperrors"
)

// GuidanceController handles guidance session endpoints
type GuidanceController struct {
	guidanceService services.GuidanceService
	matchingService services.MatchingService
}

// NewGuidanceController creates a new GuidanceController
func NewGuidanceController(guidanceService services.GuidanceService, matchingService services.MatchingService) *GuidanceController {
	return &GuidanceController{
		guidanceService: guidanceService,
		matchingService: matchingService,
	}
}

// CreateSession records a supervision meeting for the caller
func (c *GuidanceController) CreateSession(ctx *gin.Context) {
	var req dto.CreateSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	student, err := currentStudent(ctx, c.matchingService)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp, err := c.guidanceService.CreateSession(ctx.Request.Context(), student.ID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp, "Guidance session recorded"))
}

// SetStatus applies the calling supervisor's decision to one session
func (c *GuidanceController) SetStatus(ctx *gin.Context) {
	sessionID, err := pathID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.SetSessionStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	supervisorID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return
	}

	if err := c.guidanceService.SetStatus(ctx.Request.Context(), sessionID, supervisorID, req.Status); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{
		"sessionId": sessionID,
		"status":    req.Status,
	}, "Session status updated"))
}

// Progress reports the caller's session totals against the quota
func (c *GuidanceController) Progress(ctx *gin.Context) {
	student, err := currentStudent(ctx, c.matchingService)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp, err := c.guidanceService.Progress(ctx.Request.Context(), student.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}

// ListSessions retrieves every session the caller has recorded
func (c *GuidanceController) ListSessions(ctx *gin.Context) {
	student, err := currentStudent(ctx, c.matchingService)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	sessions, err := c.guidanceService.ListSessions(ctx.Request.Context(), student.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(sessions, ""))
}

// pathID parses a positive integer path parameter
func pathID(ctx *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewInvalidInputError("invalid %s path parameter", name)
	}
	return id, nil
}
