package services

import (
	"fmt"
	"time"

	"rentease/internal/models"

	"gorm.io/gorm"
)

// LeaseService 租约服务
// 租约的创建和结束会联动单元状态与房产的已租计数，所有联动都在同一事务内完成
type LeaseService struct {
	db         *gorm.DB
	activities *ActivityService
	properties *PropertyService
}

func NewLeaseService(db *gorm.DB) *LeaseService {
	return &LeaseService{
		db:         db,
		activities: NewActivityService(db),
		properties: NewPropertyService(db),
	}
}

// ========== 基础CRUD方法 ==========

// Create 签订租约
// 前置条件：单元必须存在且当前状态为available；
// 成功后单元状态置为occupied并写审计记录
func (s *LeaseService) Create(tenantID, unitID uint, rentAmount, depositAmount float64, startDate, endDate time.Time) (*models.Lease, error) {
	if rentAmount <= 0 {
		return nil, fmt.Errorf("租金必须大于0")
	}
	if !endDate.After(startDate) {
		return nil, fmt.Errorf("结束日期必须晚于开始日期")
	}

	lease := &models.Lease{
		TenantID:      tenantID,
		UnitID:        unitID,
		Status:        models.LeaseStatusActive,
		RentAmount:    rentAmount,
		DepositAmount: depositAmount,
		StartDate:     startDate,
		EndDate:       endDate,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var unit models.Unit
		if err := tx.First(&unit, unitID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("房源单元不存在")
			}
			return err
		}

		if unit.Status != models.UnitStatusAvailable {
			return fmt.Errorf("房源单元当前不可出租")
		}

		if err := tx.Create(lease).Error; err != nil {
			return err
		}

		unit.Status = models.UnitStatusOccupied
		if err := tx.Save(&unit).Error; err != nil {
			return err
		}

		return s.properties.RefreshUnitCounts(tx, unit.PropertyID)
	})
	if err != nil {
		return nil, err
	}

	s.activities.Log(models.ActivityTypeLeaseCreated, tenantID,
		fmt.Sprintf("签订了单元 #%d 的租约", unitID),
		map[string]interface{}{"lease_id": lease.ID, "unit_id": unitID, "rent_amount": rentAmount})

	return lease, nil
}

// GetByID 根据ID获取租约
func (s *LeaseService) GetByID(id uint) (*models.Lease, error) {
	var lease models.Lease
	err := s.db.Preload("Tenant").Preload("Unit").First(&lease, id).Error
	return &lease, err
}

// GetByTenant 获取租客的租约列表
func (s *LeaseService) GetByTenant(tenantID uint) ([]*models.Lease, error) {
	var leases []*models.Lease
	err := s.db.Preload("Unit").Where("tenant_id = ?", tenantID).
		Order("created_at DESC").Find(&leases).Error
	return leases, err
}

// GetByUnit 获取单元的租约列表
func (s *LeaseService) GetByUnit(unitID uint) ([]*models.Lease, error) {
	var leases []*models.Lease
	err := s.db.Preload("Tenant").Where("unit_id = ?", unitID).
		Order("created_at DESC").Find(&leases).Error
	return leases, err
}

// GetActiveByTenant 获取租客当前的活动租约（按插入顺序取第一条）
func (s *LeaseService) GetActiveByTenant(tenantID uint) (*models.Lease, error) {
	var lease models.Lease
	err := s.db.Preload("Unit").
		Where("tenant_id = ? AND status = ?", tenantID, models.LeaseStatusActive).
		First(&lease).Error
	if err != nil {
		return nil, err
	}
	return &lease, nil
}

// GetWithFiltersAndPage 组合查询（分页版本）
func (s *LeaseService) GetWithFiltersAndPage(tenantID, unitID *uint, status string, page, pageSize int) ([]*models.Lease, int64, error) {
	var leases []*models.Lease
	var total int64

	query := s.db.Model(&models.Lease{})

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
		Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&leases).Error
	if err != nil {
		return nil, 0, err
	}

	return leases, total, nil
}

// Update 更新租约的金额与起止日期
func (s *LeaseService) Update(id uint, rentAmount, depositAmount float64, startDate, endDate time.Time) (*models.Lease, error) {
	if rentAmount <= 0 {
		return nil, fmt.Errorf("租金必须大于0")
	}
	if !endDate.After(startDate) {
		return nil, fmt.Errorf("结束日期必须晚于开始日期")
	}

	var lease models.Lease
	err := s.db.First(&lease, id).Error
	if err != nil {
		return nil, err
	}

	lease.RentAmount = rentAmount
	lease.DepositAmount = depositAmount
	lease.StartDate = startDate
	lease.EndDate = endDate

	err = s.db.Save(&lease).Error
	return &lease, err
}

// ========== 状态流转方法 ==========

// End 到期结束租约，单元释放回available
func (s *LeaseService) End(id uint) (*models.Lease, error) {
	return s.close(id, models.LeaseStatusEnded)
}

// Terminate 提前终止租约，单元释放回available
func (s *LeaseService) Terminate(id uint) (*models.Lease, error) {
	return s.close(id, models.LeaseStatusTerminated)
}

func (s *LeaseService) close(id uint, status string) (*models.Lease, error) {
	var lease models.Lease

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&lease, id).Error; err != nil {
			return err
		}

		if lease.Status != models.LeaseStatusActive && lease.Status != models.LeaseStatusPending {
			return fmt.Errorf("租约已结束")
		}

		lease.Status = status
		if err := tx.Save(&lease).Error; err != nil {
			return err
		}

		var unit models.Unit
		if err := tx.First(&unit, lease.UnitID).Error; err != nil {
			// 单元可能已被删除，租约状态照常更新
			if err == gorm.ErrRecordNotFound {
				return nil
			}
			return err
		}

		unit.Status = models.UnitStatusAvailable
		if err := tx.Save(&unit).Error; err != nil {
			return err
		}

		return s.properties.RefreshUnitCounts(tx, unit.PropertyID)
	})
	if err != nil {
		return nil, err
	}

	s.activities.Log(models.ActivityTypeLeaseEnded, lease.TenantID,
		fmt.Sprintf("单元 #%d 的租约已结束", lease.UnitID),
		map[string]interface{}{"lease_id": lease.ID, "status": status})

	return &lease, nil
}
