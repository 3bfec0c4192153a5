package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rafly/siprojek/internal/app/models/dto"
	"github.com/rafly/siprojek/internal/app/services"
	"github.com/rafly/siprojek/internal/middleware"
)

// ProposalController handles proposal submission and review endpoints
type ProposalController struct {
	proposalService services.ProposalService
	matchingService services.MatchingService
}

// NewProposalController creates a new ProposalController
func NewProposalController(proposalService services.ProposalService, matchingService services.MatchingService) *ProposalController {
	return &ProposalController{
		proposalService: proposalService,
		matchingService: matchingService,
	}
}

// Submit files a proposal for the caller's whole kelompok
func (c *ProposalController) Submit(ctx *gin.Context) {
	var req dto.SubmitProposalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	student, err := currentStudent(ctx, c.matchingService)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp, err := c.proposalService.Submit(ctx.Request.Context(), student.ID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp, "Proposal submitted"))
}

// SetStatus applies a coordinator decision. With wholeGroup set the decision
// is applied to every member of the target student's kelompok, one row at a
// time; otherwise only the named student row changes.
func (c *ProposalController) SetStatus(ctx *gin.Context) {
	var req dto.SetProposalStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	targets := []int64{req.StudentID}
	if req.WholeGroup {
		members, err := c.proposalService.MembersOf(ctx.Request.Context(), req.StudentID)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		targets = targets[:0]
		for _, m := range members {
			targets = append(targets, m.ID)
		}
	}

	for _, id := range targets {
		if err := c.proposalService.SetStatus(ctx.Request.Context(), id, req.Status); err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{
		"studentIds": targets,
		"status":     req.Status,
	}, "Proposal status updated"))
}
