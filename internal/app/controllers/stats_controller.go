package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rafly/siprojek/internal/app/models/dto"
	"github.com/rafly/siprojek/internal/app/services"
)

// StatsController handles the read-only cohort statistics endpoint
type StatsController struct {
	statsService services.StatsService
}

// NewStatsController creates a new StatsController
func NewStatsController(statsService services.StatsService) *StatsController {
	return &StatsController{statsService: statsService}
}

// CohortStats reports cohort progress counters. The endpoint never fails;
// counters degrade to zero values when their collaborators are down.
func (c *StatsController) CohortStats(ctx *gin.Context) {
	stats := c.statsService.CohortStats(ctx.Request.Context())
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(stats, ""))
}
