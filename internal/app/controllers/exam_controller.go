package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rafly/siprojek/internal/app/models/dto"
	"github.com/rafly/siprojek/internal/app/services"
	"github.com/rafly/siprojek/internal/middleware"
	"github.com/rafly/siprojek/internal/pkg/apperrors"
)

// ExamController handles final report and exam scheduling endpoints
type ExamController struct {
	examService     services.ExamService
	matchingService services.MatchingService
}

// NewExamController creates a new ExamController
func NewExamController(examService services.ExamService, matchingService services.MatchingService) *ExamController {
	return &ExamController{
		examService:     examService,
		matchingService: matchingService,
	}
}

// SubmitReport files the final report for the caller's whole kelompok
func (c *ExamController) SubmitReport(ctx *gin.Context) {
	var req dto.SubmitReportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	student, err := currentStudent(ctx, c.matchingService)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp, err := c.examService.SubmitReport(ctx.Request.Context(), student.ID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp, "Final report submitted"))
}

// SetReportStatus applies the calling instructor's decision to a report and
// its owner's whole kelompok
func (c *ExamController) SetReportStatus(ctx *gin.Context) {
	reportID, err := pathID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.SetReportStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	approverID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return
	}

	if err := c.examService.SetReportStatus(ctx.Request.Context(), reportID, approverID, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{
		"reportId": reportID,
		"status":   req.Status,
	}, "Report status updated"))
}

// GetMyReport retrieves the caller's current report
func (c *ExamController) GetMyReport(ctx *gin.Context) {
	student, err := currentStudent(ctx, c.matchingService)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	report, err := c.examService.GetReport(ctx.Request.Context(), student.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(report, ""))
}

// ScheduleExam books a sitting for a student
func (c *ExamController) ScheduleExam(ctx *gin.Context) {
	var req dto.ScheduleExamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.examService.ScheduleExam(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp, "Exam scheduled"))
}
