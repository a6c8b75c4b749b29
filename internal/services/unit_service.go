package services

import (
	"fmt"

	"rentease/internal/models"

	"gorm.io/gorm"
)

// UnitService 房源单元服务
type UnitService struct {
	db         *gorm.DB
	properties *PropertyService
}

func NewUnitService(db *gorm.DB) *UnitService {
	return &UnitService{
		db:         db,
		properties: NewPropertyService(db),
	}
}

// ========== 基础CRUD方法 ==========

// Create 创建单元并刷新所属房产的单元计数
func (s *UnitService) Create(propertyID uint, unitNumber string, bedrooms, bathrooms int, areaSqm, rentAmount, depositAmount float64) (*models.Unit, error) {
	if unitNumber == "" {
		return nil, fmt.Errorf("单元编号不能为空")
	}
	if rentAmount <= 0 {
		return nil, fmt.Errorf("租金必须大于0")
	}

	// 检查房产是否存在
	var propertyCount int64
	s.db.Model(&models.Property{}).Where("id = ?", propertyID).Count(&propertyCount)
	if propertyCount == 0 {
		return nil, fmt.Errorf("房产不存在")
	}

	unit := &models.Unit{
		PropertyID:    propertyID,
		UnitNumber:    unitNumber,
		Bedrooms:      bedrooms,
		Bathrooms:     bathrooms,
		AreaSqm:       areaSqm,
		Status:        models.UnitStatusAvailable,
		RentAmount:    rentAmount,
		DepositAmount: depositAmount,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(unit).Error; err != nil {
			return err
		}
		return s.properties.RefreshUnitCounts(tx, propertyID)
	})
	if err != nil {
		return nil, err
	}

	return unit, nil
}

// GetByID 根据ID获取单元
func (s *UnitService) GetByID(id uint) (*models.Unit, error) {
	var unit models.Unit
	err := s.db.Preload("Property").First(&unit, id).Error
	return &unit, err
}

// GetByProperty 获取房产下的所有单元
func (s *UnitService) GetByProperty(propertyID uint) ([]*models.Unit, error) {
	var units []*models.Unit
	err := s.db.Where("property_id = ?", propertyID).Find(&units).Error
	return units, err
}

// GetWithFiltersAndPage 组合查询（分页版本）
func (s *UnitService) GetWithFiltersAndPage(propertyID *uint, status string, page, pageSize int) ([]*models.Unit, int64, error) {
	var units []*models.Unit
	var total int64

	query := s.db.Model(&models.Unit{})

	if propertyID != nil {
		query = query.Where("property_id = ?", *propertyID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).Find(&units).Error
	if err != nil {
		return nil, 0, err
	}

	return units, total, nil
}

// Update 更新单元
func (s *UnitService) Update(id uint, unitNumber string, bedrooms, bathrooms int, areaSqm, rentAmount, depositAmount float64) (*models.Unit, error) {
	var unit models.Unit
	err := s.db.First(&unit, id).Error
	if err != nil {
		return nil, err
	}

	unit.UnitNumber = unitNumber
	unit.Bedrooms = bedrooms
	unit.Bathrooms = bathrooms
	unit.AreaSqm = areaSqm
	unit.RentAmount = rentAmount
	unit.DepositAmount = depositAmount

	err = s.db.Save(&unit).Error
	return &unit, err
}

// UpdateStatus 更新单元状态
// 只校验状态值本身，任意合法状态之间都允许切换
func (s *UnitService) UpdateStatus(id uint, status string) (*models.Unit, error) {
	if !s.IsValidStatus(status) {
		return nil, fmt.Errorf("状态只能是available、occupied、reserved或maintenance")
	}

	var unit models.Unit
	err := s.db.First(&unit, id).Error
	if err != nil {
		return nil, err
	}

	unit.Status = status

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&unit).Error; err != nil {
			return err
		}
		return s.properties.RefreshUnitCounts(tx, unit.PropertyID)
	})
	if err != nil {
		return nil, err
	}

	return &unit, nil
}

// Delete 删除单元并刷新所属房产的单元计数，ID不存在时也视为成功
func (s *UnitService) Delete(id uint) error {
	var unit models.Unit
	if err := s.db.First(&unit, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Unit{}, id).Error; err != nil {
			return err
		}
		return s.properties.RefreshUnitCounts(tx, unit.PropertyID)
	})
}

// IsValidStatus 检查单元状态是否有效
func (s *UnitService) IsValidStatus(status string) bool {
	switch status {
	case models.UnitStatusAvailable, models.UnitStatusOccupied,
		models.UnitStatusReserved, models.UnitStatusMaintenance:
		return true
	default:
		return false
	}
}
