package services

import (
	"fmt"

	"rentease/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PropertyService 房产服务
type PropertyService struct {
	db *gorm.DB
}

func NewPropertyService(db *gorm.DB) *PropertyService {
	return &PropertyService{db: db}
}

// ========== 基础CRUD方法 ==========

// Create 创建房产
func (s *PropertyService) Create(landlordID uint, name, address, city, description string, amenities datatypes.JSON) (*models.Property, error) {
	if name == "" || address == "" {
		return nil, fmt.Errorf("房产名称和地址不能为空")
	}

	// 检查房东是否存在
	var landlordCount int64
	s.db.Model(&models.User{}).Where("id = ?", landlordID).Count(&landlordCount)
	if landlordCount == 0 {
		return nil, fmt.Errorf("房东不存在")
	}

	property := &models.Property{
		LandlordID:  landlordID,
		Name:        name,
		Address:     address,
		City:        city,
		Description: description,
		Status:      models.PropertyStatusActive,
		Amenities:   amenities,
	}

	err := s.db.Create(property).Error
	return property, err
}

// GetByID 根据ID获取房产（含单元列表）
func (s *PropertyService) GetByID(id uint) (*models.Property, error) {
	var property models.Property
	err := s.db.Preload("Units").First(&property, id).Error
	return &property, err
}

// GetByLandlord 获取房东名下的房产
func (s *PropertyService) GetByLandlord(landlordID uint) ([]*models.Property, error) {
	var properties []*models.Property
	err := s.db.Where("landlord_id = ?", landlordID).Find(&properties).Error
	return properties, err
}

// GetWithFiltersAndPage 组合查询（分页版本）
func (s *PropertyService) GetWithFiltersAndPage(landlordID *uint, status, keyword string, page, pageSize int) ([]*models.Property, int64, error) {
	var properties []*models.Property
	var total int64

	query := s.db.Model(&models.Property{})

	if landlordID != nil {
		query = query.Where("landlord_id = ?", *landlordID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if keyword != "" {
		searchPattern := fmt.Sprintf("%%%s%%", keyword)
		query = query.Where("name LIKE ? OR address LIKE ? OR city LIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).Find(&properties).Error
	if err != nil {
		return nil, 0, err
	}

	return properties, total, nil
}

// Update 更新房产
func (s *PropertyService) Update(id uint, name, address, city, description, status string, amenities datatypes.JSON) (*models.Property, error) {
	if !s.IsValidStatus(status) {
		return nil, fmt.Errorf("状态只能是active、inactive或maintenance")
	}

	var property models.Property
	err := s.db.First(&property, id).Error
	if err != nil {
		return nil, err
	}

	property.Name = name
	property.Address = address
	property.City = city
	property.Description = description
	property.Status = status
	if amenities != nil {
		property.Amenities = amenities
	}

	err = s.db.Save(&property).Error
	return &property, err
}

// Delete 删除房产，ID不存在时也视为成功
// 不级联删除单元，历史数据的引用保持原样
func (s *PropertyService) Delete(id uint) error {
	return s.db.Delete(&models.Property{}, id).Error
}

// ========== 业务逻辑方法 ==========

// RefreshUnitCounts 按单元实际状态重算房产的总数和已租数
func (s *PropertyService) RefreshUnitCounts(tx *gorm.DB, propertyID uint) error {
	var total, occupied int64

	if err := tx.Model(&models.Unit{}).Where("property_id = ?", propertyID).Count(&total).Error; err != nil {
		return err
	}
	if err := tx.Model(&models.Unit{}).
		Where("property_id = ? AND status = ?", propertyID, models.UnitStatusOccupied).
		Count(&occupied).Error; err != nil {
		return err
	}

	return tx.Model(&models.Property{}).Where("id = ?", propertyID).
		Updates(map[string]interface{}{
			"total_units":    total,
			"occupied_units": occupied,
		}).Error
}

// IsValidStatus 检查房产状态是否有效
func (s *PropertyService) IsValidStatus(status string) bool {
	switch status {
	case models.PropertyStatusActive, models.PropertyStatusInactive, models.PropertyStatusMaintenance:
		return true
	default:
		return false
	}
}
