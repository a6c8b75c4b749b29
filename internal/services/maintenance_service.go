package services

import (
	"fmt"
	"time"

	"rentease/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MaintenanceService 维修工单服务
type MaintenanceService struct {
	db         *gorm.DB
	activities *ActivityService
}

func NewMaintenanceService(db *gorm.DB) *MaintenanceService {
	return &MaintenanceService{
		db:         db,
		activities: NewActivityService(db),
	}
}

// ========== 基础CRUD方法 ==========

// Create 提交维修工单，初始状态open
func (s *MaintenanceService) Create(tenantID, unitID uint, title, description, priority string, photos datatypes.JSON) (*models.MaintenanceRequest, error) {
	if title == "" {
		return nil, fmt.Errorf("工单标题不能为空")
	}
	if priority == "" {
		priority = models.MaintenancePriorityMedium
	}
	if !s.IsValidPriority(priority) {
		return nil, fmt.Errorf("优先级只能是low、medium、high或urgent")
	}

	// 检查单元是否存在
	var unitCount int64
	s.db.Model(&models.Unit{}).Where("id = ?", unitID).Count(&unitCount)
	if unitCount == 0 {
		return nil, fmt.Errorf("房源单元不存在")
	}

	request := &models.MaintenanceRequest{
		TenantID:    tenantID,
		UnitID:      unitID,
		Title:       title,
		Description: description,
		Status:      models.MaintenanceStatusOpen,
		Priority:    priority,
		Photos:      photos,
	}

	if err := s.db.Create(request).Error; err != nil {
		return nil, err
	}

	s.activities.Log(models.ActivityTypeMaintenanceCreated, tenantID,
		fmt.Sprintf("提交了维修工单：%s", title),
		map[string]interface{}{"request_id": request.ID, "unit_id": unitID, "priority": priority})

	return request, nil
}

// GetByID 根据ID获取工单（含留言）
func (s *MaintenanceService) GetByID(id uint) (*models.MaintenanceRequest, error) {
	var request models.MaintenanceRequest
	err := s.db.Preload("Tenant").Preload("Unit").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Comments.User").
		First(&request, id).Error
	return &request, err
}

// GetByTenant 获取租客的工单列表
func (s *MaintenanceService) GetByTenant(tenantID uint) ([]*models.MaintenanceRequest, error) {
	var requests []*models.MaintenanceRequest
	err := s.db.Preload("Unit").Where("tenant_id = ?", tenantID).
		Order("created_at DESC").Find(&requests).Error
	return requests, err
}

// GetByUnit 获取单元的工单列表
func (s *MaintenanceService) GetByUnit(unitID uint) ([]*models.MaintenanceRequest, error) {
	var requests []*models.MaintenanceRequest
	err := s.db.Preload("Tenant").Where("unit_id = ?", unitID).
		Order("created_at DESC").Find(&requests).Error
	return requests, err
}

// GetWithFiltersAndPage 组合查询（分页版本）
func (s *MaintenanceService) GetWithFiltersAndPage(tenantID, unitID *uint, status, priority string, page, pageSize int) ([]*models.MaintenanceRequest, int64, error) {
	var requests []*models.MaintenanceRequest
	var total int64

	query := s.db.Model(&models.MaintenanceRequest{})

	if tenantID != nil {
		query = query.Where("tenant_id = ?", *tenantID)
	}
	if unitID != nil {
		query = query.Where("unit_id = ?", *unitID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if priority != "" {
		query = query.Where("priority = ?", priority)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Preload("Tenant").Preload("Unit").
		Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&requests).Error
	if err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

// Update 更新工单的标题、描述和优先级
func (s *MaintenanceService) Update(id uint, title, description, priority string) (*models.MaintenanceRequest, error) {
	if !s.IsValidPriority(priority) {
		return nil, fmt.Errorf("优先级只能是low、medium、high或urgent")
	}

	var request models.MaintenanceRequest
	err := s.db.First(&request, id).Error
	if err != nil {
		return nil, err
	}

	request.Title = title
	request.Description = description
	request.Priority = priority

	err = s.db.Save(&request).Error
	return &request, err
}

// ========== 状态流转方法 ==========

// UpdateStatus 更新工单状态
// completed_at只在首次进入completed时写入，重复置为completed不重复记审计
func (s *MaintenanceService) UpdateStatus(id uint, status string) (*models.MaintenanceRequest, error) {
	if !s.IsValidStatus(status) {
		return nil, fmt.Errorf("状态只能是open、in_progress、completed或cancelled")
	}

	var request models.MaintenanceRequest
	err := s.db.First(&request, id).Error
	if err != nil {
		return nil, err
	}

	justCompleted := status == models.MaintenanceStatusCompleted &&
		request.Status != models.MaintenanceStatusCompleted

	request.Status = status
	if justCompleted {
		now := time.Now()
		request.CompletedAt = &now
	}

	if err := s.db.Save(&request).Error; err != nil {
		return nil, err
	}

	if justCompleted {
		s.activities.Log(models.ActivityTypeMaintenanceCompleted, request.TenantID,
			fmt.Sprintf("维修工单 #%d 已完成", request.ID),
			map[string]interface{}{"request_id": request.ID})
	}

	return &request, nil
}

// Cancel 取消工单
func (s *MaintenanceService) Cancel(id uint) (*models.MaintenanceRequest, error) {
	return s.UpdateStatus(id, models.MaintenanceStatusCancelled)
}

// AddComment 在工单下留言
func (s *MaintenanceService) AddComment(requestID, userID uint, content string) (*models.MaintenanceComment, error) {
	if content == "" {
		return nil, fmt.Errorf("留言内容不能为空")
	}

	var request models.MaintenanceRequest
	if err := s.db.First(&request, requestID).Error; err != nil {
		return nil, err
	}

	comment := &models.MaintenanceComment{
		RequestID: requestID,
		UserID:    userID,
		Content:   content,
	}

	err := s.db.Create(comment).Error
	return comment, err
}

// ========== 验证相关方法 ==========

// IsValidStatus 检查工单状态是否有效
func (s *MaintenanceService) IsValidStatus(status string) bool {
	switch status {
	case models.MaintenanceStatusOpen, models.MaintenanceStatusInProgress,
		models.MaintenanceStatusCompleted, models.MaintenanceStatusCancelled:
		return true
	default:
		return false
	}
}

// IsValidPriority 检查优先级是否有效
func (s *MaintenanceService) IsValidPriority(priority string) bool {
	switch priority {
	case models.MaintenancePriorityLow, models.MaintenancePriorityMedium,
		models.MaintenancePriorityHigh, models.MaintenancePriorityUrgent:
		return true
	default:
		return false
	}
}
