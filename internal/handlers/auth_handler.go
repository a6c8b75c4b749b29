package handlers

import (
	"errors"
	"strings"
	"time"

	"rentease/internal/database"
	"rentease/internal/services"
	"rentease/pkg/jwt"
	"rentease/pkg/logger"
	"rentease/pkg/response"
	"rentease/pkg/session"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuthHandler struct {
	userService  *services.UserService
	sessionStore *session.Store
	jwtManager   *jwt.JWTManager
}

func NewAuthHandler(userService *services.UserService) *AuthHandler {
	return &AuthHandler{
		userService:  userService,
		sessionStore: database.GetSessionStore(),
		jwtManager:   jwt.GetJWTManager(), // 使用全局JWT管理器
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Email    string  `json:"email" binding:"required"`
	Password string  `json:"password" binding:"required"`
	Name     string  `json:"name" binding:"required"`
	Phone    *string `json:"phone"`
	Role     string  `json:"role"` // 默认tenant，显式传landlord时生效
}

type ResetPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

type LoginResponse struct {
	Token     string   `json:"token"`
	ExpiresAt int64    `json:"expires_at"`
	User      UserInfo `json:"user"`
}

type UserInfo struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// Login 用户登录
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	// 根据邮箱获取用户（不区分大小写）
	user, err := h.userService.GetByEmail(req.Email)
	if err != nil {
		response.Unauthorized(c, "邮箱或密码错误")
		return
	}

	// 检查用户状态
	if !h.userService.IsActive(user) {
		response.Unauthorized(c, "用户未激活或已被停用")
		return
	}

	// 验证密码
	if !user.CheckPassword(req.Password) {
		response.Unauthorized(c, "邮箱或密码错误")
		return
	}

	// 生成Token
	token, err := h.jwtManager.GenerateToken(user.ID, user.Email, user.Name, user.Role)
	if err != nil {
		response.ServerError(c, "生成Token失败")
		return
	}

	expiresAt := time.Now().Add(h.jwtManager.GetTokenDuration()).Unix()

	// 持久化会话记录，随Token同时过期
	record := &session.Record{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		Token:     token,
		LoginAt:   time.Now().Unix(),
		ExpiresAt: expiresAt,
		ClientIP:  c.ClientIP(),
	}
	// 会话写入失败不阻断登录，记录即可
	if err := h.sessionStore.Save(record, h.jwtManager.GetTokenDuration()); err != nil {
		logger.GetLogger().WithError(err).Warn("保存会话记录失败")
	}

	// 更新最后登录时间，失败不影响登录流程
	if err := h.userService.UpdateLastLogin(user.ID); err != nil {
		logger.GetLogger().WithError(err).Warn("更新最后登录时间失败")
	}

	resp := LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User: UserInfo{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
			Role:  user.Role,
		},
	}

	response.Success(c, resp)
}

// Register 用户注册
// 注册即激活，不自动登录，由前端决定是否跳转登录页
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	user, err := h.userService.Register(req.Email, req.Password, req.Name, req.Phone, req.Role)
	if err != nil {
		errMsg := err.Error()

		if strings.Contains(errMsg, "邮箱格式") ||
			strings.Contains(errMsg, "密码长度") ||
			strings.Contains(errMsg, "姓名长度") ||
			errMsg == "邮箱已存在" {
			response.BadRequest(c, errMsg)
			return
		}

		response.ServerError(c, "注册失败")
		return
	}

	response.Success(c, user)
}

// Logout 用户登出，清除会话记录，始终成功
func (h *AuthHandler) Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		// 没有有效token也算登出成功
		response.SuccessWithMessage(c, "登出成功", nil)
		return
	}

	tokenString := authHeader[7:] // 去掉 "Bearer "

	claims, err := h.jwtManager.VerifyToken(tokenString)
	if err != nil {
		// token无效也算登出成功
		response.SuccessWithMessage(c, "登出成功", nil)
		return
	}

	// 清除失败不暴露给调用方，Token到期后会话自动失效
	if err := h.sessionStore.Delete(claims.UserID); err != nil {
		logger.GetLogger().WithError(err).Warn("清除会话记录失败")
	}

	response.SuccessWithMessage(c, "登出成功", gin.H{
		"user_id":     claims.UserID,
		"logout_time": time.Now(),
	})
}

// ResetPassword 申请重置密码
// 无论邮箱是否存在都返回成功，避免暴露注册信息；当前不执行实际改密
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	if _, err := h.userService.GetByEmail(req.Email); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			response.ServerError(c, "操作失败")
			return
		}
	}

	response.SuccessWithMessage(c, "如果该邮箱已注册，重置邮件将会发出", nil)
}

// Me 获取当前登录用户的完整信息
func (h *AuthHandler) Me(c *gin.Context) {
	claims, exists := c.Get("claims")
	if !exists {
		response.Unauthorized(c, "未登录")
		return
	}
	userClaims := claims.(*jwt.JWTClaims)

	user, err := h.userService.GetByID(userClaims.UserID)
	if err != nil {
		response.NotFound(c, "用户不存在")
		return
	}

	responseData := gin.H{
		"user": gin.H{
			"id":            user.ID,
			"email":         user.Email,
			"name":          user.Name,
			"phone":         user.Phone,
			"avatar":        user.Avatar,
			"role":          user.Role,
			"status":        user.Status,
			"created_at":    user.CreatedAt,
			"last_login_at": user.LastLoginAt,
		},
	}

	// 带上会话记录（可能已过期被清除）
	if record, err := h.sessionStore.Get(user.ID); err == nil {
		responseData["session"] = record
	}

	response.Success(c, responseData)
}
