package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rafly/siprojek/internal/app/models/dto"
	"github.com/rafly/siprojek/internal/app/services"
	"github.com/rafly/siprojek/internal/middleware"
)

// PeriodController handles scheduling window endpoints
type PeriodController struct {
	periodService services.PeriodService
}

// NewPeriodController creates a new PeriodController
func NewPeriodController(periodService services.PeriodService) *PeriodController {
	return &PeriodController{periodService: periodService}
}

// Create opens a scheduling window
func (c *PeriodController) Create(ctx *gin.Context) {
	var req dto.CreatePeriodRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.periodService.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp, "Period opened"))
}

// Complete closes a window and resets the cohort
func (c *PeriodController) Complete(ctx *gin.Context) {
	periodID, err := pathID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.periodService.Complete(ctx.Request.Context(), periodID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"periodId": periodID}, "Period completed, cohort reset"))
}

// Get retrieves one scheduling window
func (c *PeriodController) Get(ctx *gin.Context) {
	periodID, err := pathID(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp, err := c.periodService.Get(ctx.Request.Context(), periodID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}
