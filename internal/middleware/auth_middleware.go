package middleware

import (
	"strconv"
	"strings"

	"rentease/internal/database"
	"rentease/internal/models"
	"rentease/internal/services"
	"rentease/pkg/jwt"
	"rentease/pkg/response"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware 权限中间件
type AuthMiddleware struct {
	userService *services.UserService
	jwtManager  *jwt.JWTManager
}

func NewAuthMiddleware() *AuthMiddleware {
	return &AuthMiddleware{
		userService: services.NewUserService(database.GetDB()),
		jwtManager:  jwt.GetJWTManager(), // 使用全局JWT管理器
	}
}

// RequireLogin 要求已登录
func (m *AuthMiddleware) RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 从Authorization头获取JWT token
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "请先登录")
			c.Abort()
			return
		}

		// 检查Bearer格式
		if !strings.HasPrefix(authHeader, "Bearer ") {
			response.Unauthorized(c, "认证头格式错误")
			c.Abort()
			return
		}

		// 提取token
		tokenString := authHeader[7:] // 去掉 "Bearer "

		// 验证token
		claims, err := m.jwtManager.VerifyToken(tokenString)
		if err != nil {
			response.Unauthorized(c, "Token无效或已过期")
			c.Abort()
			return
		}

		// 获取用户信息
		user, err := m.userService.GetByID(claims.UserID)
		if err != nil {
			response.Unauthorized(c, "用户不存在")
			c.Abort()
			return
		}

		// 检查用户状态
		if !m.userService.IsActive(user) {
			response.Unauthorized(c, "用户已被禁用")
			c.Abort()
			return
		}

		// 将用户信息保存到上下文
		c.Set("user", user)
		c.Set("user_id", claims.UserID)
		c.Set("role", user.Role)
		c.Set("claims", claims)

		c.Next()
	}
}

// RequireRole 要求指定角色之一，admin始终放行
func (m *AuthMiddleware) RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := c.Get("user")
		if !exists {
			response.Unauthorized(c, "请先登录")
			c.Abort()
			return
		}

		userObj := user.(*models.User)

		// 管理员拥有所有角色的权限
		if userObj.Role == models.RoleAdmin {
			c.Next()
			return
		}

		for _, role := range roles {
			if userObj.Role == role {
				c.Next()
				return
			}
		}

		response.Forbidden(c, "权限不足：需要 "+strings.Join(roles, "/")+" 角色")
		c.Abort()
	}
}

// RequireAdmin 要求管理员
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := c.Get("user")
		if !exists {
			response.Unauthorized(c, "请先登录")
			c.Abort()
			return
		}

		if user.(*models.User).Role != models.RoleAdmin {
			response.Forbidden(c, "需要管理员权限")
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireOwnerOrAdmin 要求是资源所有者或管理员（针对 /users/:id 一类路由）
func (m *AuthMiddleware) RequireOwnerOrAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := c.Get("user")
		if !exists {
			response.Unauthorized(c, "请先登录")
			c.Abort()
			return
		}

		userObj := user.(*models.User)

		// 管理员可以访问所有资源
		if userObj.Role == models.RoleAdmin {
			c.Next()
			return
		}

		// 检查是否是资源所有者
		resourceUserIDStr := c.Param("id")
		if resourceUserIDStr != "" {
			resourceUserID, err := strconv.ParseUint(resourceUserIDStr, 10, 32)
			if err != nil {
				response.BadRequest(c, "用户ID格式错误")
				c.Abort()
				return
			}

			if userObj.ID == uint(resourceUserID) {
				c.Next()
				return
			}
		}

		response.Forbidden(c, "只能操作自己的资源")
		c.Abort()
	}
}
