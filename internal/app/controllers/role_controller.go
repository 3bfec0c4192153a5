package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rafly/siprojek/internal/app/models/dto"
	"github.com/rafly/siprojek/internal/app/services"
	"github.com/rafly/siprojek/internal/middleware"
	"github.com/rafly/siprojek/internal/pkg/apperrors"
)

// RoleController handles the administrative role ledger endpoints
type RoleController struct {
	roleService services.RoleService
}

// NewRoleController creates a new RoleController
func NewRoleController(roleService services.RoleService) *RoleController {
	return &RoleController{roleService: roleService}
}

// AssignRole grants an administrative role to an instructor
func (c *RoleController) AssignRole(ctx *gin.Context) {
	var req dto.AssignRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.roleService.AssignRole(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp, "Role assigned"))
}

// AssignCoordinator grants the koordinator role for one semester
func (c *RoleController) AssignCoordinator(ctx *gin.Context) {
	var req dto.AssignRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}
	if req.Semester == nil {
		middleware.HandleAPIError(ctx, apperrors.NewInvalidInputError("the koordinator role requires a semester"))
		return
	}

	resp, err := c.roleService.AssignCoordinator(ctx.Request.Context(), req.InstructorID, *req.Semester)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp, "Coordinator assigned"))
}

// MyRoles lists the roles the calling instructor holds
func (c *RoleController) MyRoles(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return
	}

	roles, err := c.roleService.ListRoles(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(roles, ""))
}
