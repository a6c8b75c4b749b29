package services

import (
	"encoding/json"

	"rentease/internal/models"
	"rentease/pkg/logger"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ActivityService 审计记录服务，所有业务服务通过它写操作流水
type ActivityService struct {
	db *gorm.DB
}

func NewActivityService(db *gorm.DB) *ActivityService {
	return &ActivityService{db: db}
}

// Log 追加一条审计记录
// 审计失败只记日志不向上返回错误，不能因为流水写不进去拖垮业务操作
func (s *ActivityService) Log(activityType string, userID uint, description string, metadata map[string]interface{}) {
	activity := &models.Activity{
		Type:        activityType,
		UserID:      userID,
		Description: description,
	}

	if metadata != nil {
		data, err := json.Marshal(metadata)
		if err == nil {
			activity.Metadata = datatypes.JSON(data)
		}
	}

	if err := s.db.Create(activity).Error; err != nil {
		logger.GetLogger().WithError(err).Warnf("写入审计记录失败: %s", activityType)
	}
}

// GetRecentWithPage 最近操作流水（按创建时间降序）
func (s *ActivityService) GetRecentWithPage(page, pageSize int) ([]*models.Activity, int64, error) {
	var activities []*models.Activity
	var total int64

	if err := s.db.Model(&models.Activity{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := s.db.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&activities).Error
	if err != nil {
		return nil, 0, err
	}

	return activities, total, nil
}

// GetByUserWithPage 指定用户的操作流水
func (s *ActivityService) GetByUserWithPage(userID uint, page, pageSize int) ([]*models.Activity, int64, error) {
	var activities []*models.Activity
	var total int64

	query := s.db.Model(&models.Activity{}).Where("user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&activities).Error
	if err != nil {
		return nil, 0, err
	}

	return activities, total, nil
}
