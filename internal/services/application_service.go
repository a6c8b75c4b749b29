package services

import (
	"fmt"
	"time"

	"rentease/internal/models"

	"gorm.io/gorm"
)

// ApplicationService 租房申请服务
type ApplicationService struct {
	db         *gorm.DB
	activities *ActivityService
}

func NewApplicationService(db *gorm.DB) *ApplicationService {
	return &ApplicationService{
		db:         db,
		activities: NewActivityService(db),
	}
}

// ========== 基础CRUD方法 ==========

// Create 提交租房申请
// 状态和房东推荐一律重置为pending，不接受调用方传入的值；
// 不校验单元当前是否可租，审批时再判断
func (s *ApplicationService) Create(tenantID, unitID uint, moveInDate *time.Time, message string) (*models.Application, error) {
	// 检查单元是否存在
	var unitCount int64
	s.db.Model(&models.Unit{}).Where("id = ?", unitID).Count(&unitCount)
	if unitCount == 0 {
		return nil, fmt.Errorf("房源单元不存在")
	}

	application := &models.Application{
		TenantID:               tenantID,
		UnitID:                 unitID,
		Status:                 models.ApplicationStatusPending,
		LandlordRecommendation: models.RecommendationPending,
		MoveInDate:             moveInDate,
		Message:                message,
	}

	if err := s.db.Create(application).Error; err != nil {
		return nil, err
	}

	s.activities.Log(models.ActivityTypeApplicationSubmitted, tenantID,
		fmt.Sprintf("提交了单元 #%d 的租房申请", unitID),
		map[string]interface{}{"application_id": application.ID, "unit_id": unitID})

	return application, nil
}

// GetByID 根据ID获取申请
func (s *ApplicationService) GetByID(id uint) (*models.Application, error) {
	var application models.Application
	err := s.db.Preload("Tenant").Preload("Unit").First(&application, id).Error
	return &application, err
}

// GetByTenant 获取租客的申请列表
func (s *ApplicationService) GetByTenant(tenantID uint) ([]*models.Application, error) {
	var applications []*models.Application
	err := s.db.Preload("Unit").Where("tenant_id = ?", tenantID).
		Order("created_at DESC").Find(&applications).Error
	return applications, err
}

// GetByUnit 获取单元收到的申请列表
func (s *ApplicationService) GetByUnit(unitID uint) ([]*models.Application, error) {
	var applications []*models.Application
	err := s.db.Preload("Tenant").Where("unit_id = ?", unitID).
		Order("created_at DESC").Find(&applications).Error
	return applications, err
}

// GetWithFiltersAndPage 组合查询（分页版本）
func (s *ApplicationService) GetWithFiltersAndPage(tenantID, unitID *uint, status string, page, pageSize int) ([]*models.Application, int64, error) {
	var applications []*models.Application
	var total int64

	query := s.db.Model(&models.Application{})

	if tenantID != nil {
		query = query.Where("tenant_id = ?", *tenantID)
	}
	if unitID != nil {
		query = query.Where("unit_id = ?", *unitID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Preload("Tenant").Preload("Unit").
		Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&applications).Error
	if err != nil {
		return nil, 0, err
	}

	return applications, total, nil
}

// ========== 状态流转方法 ==========

// UpdateStatus 审批申请
// 只改status和admin_notes两个字段，房东推荐保持原值
func (s *ApplicationService) UpdateStatus(id uint, status, adminNotes string) (*models.Application, error) {
	if !s.IsValidStatus(status) {
		return nil, fmt.Errorf("状态只能是pending、approved、rejected或withdrawn")
	}

	var application models.Application
	err := s.db.First(&application, id).Error
	if err != nil {
		return nil, err
	}

	application.Status = status
	application.AdminNotes = adminNotes

	err = s.db.Save(&application).Error
	return &application, err
}

// Recommend 房东填写推荐意见
func (s *ApplicationService) Recommend(id uint, recommendation string) (*models.Application, error) {
	if !s.IsValidRecommendation(recommendation) {
		return nil, fmt.Errorf("推荐意见只能是pending、recommended或not_recommended")
	}

	var application models.Application
	err := s.db.First(&application, id).Error
	if err != nil {
		return nil, err
	}

	application.LandlordRecommendation = recommendation

	err = s.db.Save(&application).Error
	return &application, err
}

// Withdraw 租客撤回申请，只允许撤回待审批的申请
func (s *ApplicationService) Withdraw(id, tenantID uint) (*models.Application, error) {
	var application models.Application
	err := s.db.First(&application, id).Error
	if err != nil {
		return nil, err
	}

	if application.TenantID != tenantID {
		return nil, fmt.Errorf("只能撤回自己的申请")
	}
	if application.Status != models.ApplicationStatusPending {
		return nil, fmt.Errorf("只能撤回待审批的申请")
	}

	application.Status = models.ApplicationStatusWithdrawn

	err = s.db.Save(&application).Error
	return &application, err
}

// ========== 验证相关方法 ==========

// IsValidStatus 检查申请状态是否有效
func (s *ApplicationService) IsValidStatus(status string) bool {
	switch status {
	case models.ApplicationStatusPending, models.ApplicationStatusApproved,
		models.ApplicationStatusRejected, models.ApplicationStatusWithdrawn:
		return true
	default:
		return false
	}
}

// IsValidRecommendation 检查房东推荐值是否有效
func (s *ApplicationService) IsValidRecommendation(recommendation string) bool {
	switch recommendation {
	case models.RecommendationPending, models.RecommendationRecommended,
		models.RecommendationNotRecommended:
		return true
	default:
		return false
	}
}
