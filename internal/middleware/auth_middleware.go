package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rafly/siprojek/internal/app/models"
	"github.com/rafly/siprojek/internal/app/models/dto"
	"github.com/rafly/siprojek/internal/app/services"
	"github.com/rafly/siprojek/internal/pkg/auth"
)

// Context keys set by JWTAuth for downstream handlers
const (
	ContextUserID   = "userID"
	ContextEmail    = "email"
	ContextRoleType = "roleType"
)

// AuthMiddleware guards routes with JWT validation and role checks
type AuthMiddleware struct {
	jwtService  *auth.JWTService
	roleService services.RoleService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService, roleService services.RoleService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:  jwtService,
		roleService: roleService,
	}
}

// JWTAuth validates the bearer token and stores the caller's identity on the
// request context
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Authorization header missing")
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Invalid token format")
			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			code := dto.ErrorCodeInvalidToken
			detail := "Invalid token"
			if errors.Is(err, auth.ErrExpiredToken) {
				code = dto.ErrorCodeExpiredToken
				detail = "Token has expired"
			}
			abortUnauthorized(c, code, detail)
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextRoleType, claims.Role)

		c.Next()
	}
}

// RoleRequired allows only callers whose account role matches
func (m *AuthMiddleware) RoleRequired(requiredRole models.RoleType) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextRoleType)
		if !exists {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "User role not found")
			return
		}

		roleStr, ok := role.(string)
		if !ok || roleStr != string(requiredRole) {
			abortForbidden(c, "This operation is restricted to "+string(requiredRole)+" accounts")
			return
		}

		c.Next()
	}
}

// AdminRoleRequired allows only instructors holding the given administrative
// role in the assignment ledger. Kaprodi implicitly passes koordinator gates.
func (m *AuthMiddleware) AdminRoleRequired(required models.AdminRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := CurrentUserID(c)
		if !ok {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Authentication required")
			return
		}

		held, err := m.roleService.HasRole(c.Request.Context(), userID, required)
		if err != nil {
			HandleAPIError(c, err)
			c.Abort()
			return
		}
		if !held && required == models.AdminKoordinator {
			held, err = m.roleService.HasRole(c.Request.Context(), userID, models.AdminKaprodi)
			if err != nil {
				HandleAPIError(c, err)
				c.Abort()
				return
			}
		}
		if !held {
			abortForbidden(c, "This operation requires the "+string(required)+" role")
			return
		}

		c.Next()
	}
}

// CurrentUserID reads the authenticated account id set by JWTAuth
func CurrentUserID(c *gin.Context) (int64, bool) {
	value, exists := c.Get(ContextUserID)
	if !exists {
		return 0, false
	}
	id, ok := value.(int64)
	return id, ok
}

func abortUnauthorized(c *gin.Context, code dto.ErrorCode, details string) {
	detail := dto.NewErrorDetail(code, "Authentication required").WithDetails("%s", details)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(detail))
}

func abortForbidden(c *gin.Context, details string) {
	detail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied").WithDetails("%s", details)
	c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(detail))
}
