package handlers

import (
	"errors"
	"strconv"

	"rentease/internal/database"
	"rentease/internal/services"
	"rentease/pkg/logger"
	"rentease/pkg/pagination"
	"rentease/pkg/response"
	"rentease/pkg/session"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type MessageHandler struct {
	messageService *services.MessageService
	sessionStore   *session.Store
}

func NewMessageHandler(messageService *services.MessageService) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
		sessionStore:   database.GetSessionStore(),
	}
}

type SendMessageRequest struct {
	ReceiverID uint   `json:"receiver_id" binding:"required"`
	Subject    string `json:"subject"`
	Content    string `json:"content" binding:"required"`
}

// Send 发送站内消息，收件人在线时通过WebSocket实时推送
func (h *MessageHandler) Send(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	senderID := c.GetUint("user_id")

	message, err := h.messageService.Send(senderID, req.ReceiverID, req.Subject, req.Content)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	// 实时推送失败不影响消息投递，收件人打开收件箱仍能看到
	if err := h.sessionStore.PublishNotification(req.ReceiverID, map[string]interface{}{
		"type":       "new_message",
		"message_id": message.ID,
		"sender_id":  senderID,
		"subject":    message.Subject,
	}); err != nil {
		logger.GetLogger().WithError(err).Warn("消息实时推送失败")
	}

	response.Success(c, message)
}

// Inbox 收件箱
func (h *MessageHandler) Inbox(c *gin.Context) {
	params := pagination.ParsePageParams(c)
	userID := c.GetUint("user_id")

	messages, total, err := h.messageService.GetInboxWithPage(userID, params.Page, params.PageSize)
	if err != nil {
		response.ServerError(c, "获取收件箱失败")
		return
	}

	pageInfo := pagination.NewPageInfo(params.Page, params.PageSize, total)
	response.SuccessWithPage(c, messages, pageInfo)
}

// Sent 发件箱
func (h *MessageHandler) Sent(c *gin.Context) {
	params := pagination.ParsePageParams(c)
	userID := c.GetUint("user_id")

	messages, total, err := h.messageService.GetSentWithPage(userID, params.Page, params.PageSize)
	if err != nil {
		response.ServerError(c, "获取发件箱失败")
		return
	}

	pageInfo := pagination.NewPageInfo(params.Page, params.PageSize, total)
	response.SuccessWithPage(c, messages, pageInfo)
}

// GetByID 消息详情
func (h *MessageHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "消息ID格式错误")
		return
	}

	message, err := h.messageService.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "消息不存在")
			return
		}
		response.ServerError(c, "获取消息失败")
		return
	}

	response.Success(c, message)
}

// MarkAsRead 标记已读
func (h *MessageHandler) MarkAsRead(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "消息ID格式错误")
		return
	}

	message, err := h.messageService.MarkAsRead(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "消息不存在")
			return
		}
		response.ServerError(c, "标记已读失败")
		return
	}

	response.Success(c, message)
}

// CountUnread 未读消息数
func (h *MessageHandler) CountUnread(c *gin.Context) {
	userID := c.GetUint("user_id")

	count, err := h.messageService.CountUnread(userID)
	if err != nil {
		response.ServerError(c, "获取未读数失败")
		return
	}

	response.Success(c, gin.H{"unread": count})
}

// Delete 删除消息
func (h *MessageHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "消息ID格式错误")
		return
	}

	if err := h.messageService.Delete(uint(id)); err != nil {
		response.ServerError(c, "删除消息失败")
		return
	}

	response.SuccessWithMessage(c, "删除成功", nil)
}
