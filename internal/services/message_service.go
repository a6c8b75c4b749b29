package services

import (
	"fmt"
	"time"

	"rentease/internal/models"

	"gorm.io/gorm"
)

// MessageService 站内消息服务
type MessageService struct {
	db *gorm.DB
}

func NewMessageService(db *gorm.DB) *MessageService {
	return &MessageService{db: db}
}

// Send 发送消息，新消息默认未读
func (s *MessageService) Send(senderID, receiverID uint, subject, content string) (*models.Message, error) {
	if content == "" {
		return nil, fmt.Errorf("消息内容不能为空")
	}

	// 检查收件人是否存在
	var receiverCount int64
	s.db.Model(&models.User{}).Where("id = ?", receiverID).Count(&receiverCount)
	if receiverCount == 0 {
		return nil, fmt.Errorf("收件人不存在")
	}

	message := &models.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Subject:    subject,
		Content:    content,
		Read:       false,
	}

	err := s.db.Create(message).Error
	return message, err
}

// GetByID 根据ID获取消息
func (s *MessageService) GetByID(id uint) (*models.Message, error) {
	var message models.Message
	err := s.db.Preload("Sender").Preload("Receiver").First(&message, id).Error
	return &message, err
}

// GetInboxWithPage 收件箱（按时间降序）
func (s *MessageService) GetInboxWithPage(receiverID uint, page, pageSize int) ([]*models.Message, int64, error) {
	return s.listWithPage(s.db.Model(&models.Message{}).Where("receiver_id = ?", receiverID), "Sender", page, pageSize)
}

// GetSentWithPage 发件箱（按时间降序）
func (s *MessageService) GetSentWithPage(senderID uint, page, pageSize int) ([]*models.Message, int64, error) {
	return s.listWithPage(s.db.Model(&models.Message{}).Where("sender_id = ?", senderID), "Receiver", page, pageSize)
}

func (s *MessageService) listWithPage(query *gorm.DB, preload string, page, pageSize int) ([]*models.Message, int64, error) {
	var messages []*models.Message
	var total int64

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Preload(preload).
		Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&messages).Error
	if err != nil {
		return nil, 0, err
	}

	return messages, total, nil
}

// MarkAsRead 标记已读，重复标记不改变首次阅读时间
func (s *MessageService) MarkAsRead(id uint) (*models.Message, error) {
	var message models.Message
	err := s.db.First(&message, id).Error
	if err != nil {
		return nil, err
	}

	if !message.Read {
		now := time.Now()
		message.Read = true
		message.ReadAt = &now
		if err := s.db.Save(&message).Error; err != nil {
			return nil, err
		}
	}

	return &message, nil
}

// CountUnread 统计未读消息数
func (s *MessageService) CountUnread(receiverID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Message{}).
		Where("receiver_id = ? AND read = ?", receiverID, false).
		Count(&count).Error
	return count, err
}

// Delete 删除消息，ID不存在时也视为成功
func (s *MessageService) Delete(id uint) error {
	return s.db.Delete(&models.Message{}, id).Error
}
