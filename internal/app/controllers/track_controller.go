package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rafly/siprojek/internal/app/models/dto"
	"github.com/rafly/siprojek/internal/app/services"
	"github.com/rafly/siprojek/internal/middleware"
	"github.com/rafly/siprojek/internal/pkg/apperrors"
)

// TrackController handles track selection endpoints
type TrackController struct {
	matchingService services.MatchingService
}

// NewTrackController creates a new TrackController
func NewTrackController(matchingService services.MatchingService) *TrackController {
	return &TrackController{matchingService: matchingService}
}

// SelectTrack records the caller's track choice and reports whether a mutual
// partner match formed a kelompok
func (c *TrackController) SelectTrack(ctx *gin.Context) {
	var req dto.SelectTrackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	student, err := currentStudent(ctx, c.matchingService)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp, err := c.matchingService.SelectTrack(ctx.Request.Context(), student.ID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	message := "Track selection recorded"
	if resp.Matched {
		message = "Track selection recorded, kelompok formed"
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, message))
}

// currentStudent resolves the student row behind the authenticated account
func currentStudent(ctx *gin.Context, matching services.MatchingService) (*studentIdentity, error) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		return nil, apperrors.ErrTokenInvalid
	}
	student, err := matching.GetStudentByUserID(ctx.Request.Context(), userID)
	if err != nil {
		return nil, err
	}
	return &studentIdentity{ID: student.ID, NPM: student.NPM}, nil
}

type studentIdentity struct {
	ID  int64
	NPM string
}
