// Package routes wires controllers onto the gin router
package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rafly/siprojek/internal/app/controllers"
	"github.com/rafly/siprojek/internal/app/models"
	"github.com/rafly/siprojek/internal/middleware"
)

// Controllers bundles every controller the router mounts
type Controllers struct {
	Auth     *controllers.AuthController
	Track    *controllers.TrackController
	Proposal *controllers.ProposalController
	Guidance *controllers.GuidanceController
	Exam     *controllers.ExamController
	Period   *controllers.PeriodController
	Role     *controllers.RoleController
	Stats    *controllers.StatsController
}

// SetupRoutes mounts every endpoint under /api/v1. Write operations carry
// role gates: students drive their own lifecycle, instructors review, the
// koordinator decides proposals and schedules exams, the kaprodi manages
// periods and roles.
func SetupRoutes(router *gin.Engine, c *Controllers, authMW *middleware.AuthMiddleware) {
	router.GET("/api/v1/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.Auth.Register)
		auth.POST("/login", c.Auth.Login)
	}

	authed := v1.Group("")
	authed.Use(authMW.JWTAuth())

	student := authed.Group("")
	student.Use(authMW.RoleRequired(models.RoleMahasiswa))
	{
		student.POST("/tracks/select", c.Track.SelectTrack)
		student.POST("/proposals", c.Proposal.Submit)
		student.POST("/guidance", c.Guidance.CreateSession)
		student.GET("/guidance", c.Guidance.ListSessions)
		student.GET("/guidance/progress", c.Guidance.Progress)
		student.POST("/reports", c.Exam.SubmitReport)
		student.GET("/reports/mine", c.Exam.GetMyReport)
	}

	instructor := authed.Group("")
	instructor.Use(authMW.RoleRequired(models.RoleDosen))
	{
		instructor.PUT("/guidance/:id/status", c.Guidance.SetStatus)
		instructor.PUT("/reports/:id/status", c.Exam.SetReportStatus)
		instructor.GET("/roles/mine", c.Role.MyRoles)

		koordinator := instructor.Group("")
		koordinator.Use(authMW.AdminRoleRequired(models.AdminKoordinator))
		{
			koordinator.PUT("/proposals/status", c.Proposal.SetStatus)
			koordinator.POST("/exams/schedule", c.Exam.ScheduleExam)
		}

		kaprodi := instructor.Group("")
		kaprodi.Use(authMW.AdminRoleRequired(models.AdminKaprodi))
		{
			kaprodi.POST("/periods", c.Period.Create)
			kaprodi.GET("/periods/:id", c.Period.Get)
			kaprodi.PUT("/periods/:id/complete", c.Period.Complete)
			kaprodi.POST("/roles", c.Role.AssignRole)
			kaprodi.POST("/roles/coordinator", c.Role.AssignCoordinator)
		}
	}

	authed.GET("/stats/cohort", c.Stats.CohortStats)
}
