package services

import (
	"fmt"
	"time"

	"rentease/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentService 租金账单服务
type PaymentService struct {
	db         *gorm.DB
	activities *ActivityService
}

func NewPaymentService(db *gorm.DB) *PaymentService {
	return &PaymentService{
		db:         db,
		activities: NewActivityService(db),
	}
}

// ========== 基础CRUD方法 ==========

// Create 创建账单，初始状态pending
func (s *PaymentService) Create(tenantID, leaseID uint, amount float64, dueDate time.Time, notes string) (*models.Payment, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("金额必须大于0")
	}

	// 检查租约是否存在
	var leaseCount int64
	s.db.Model(&models.Lease{}).Where("id = ?", leaseID).Count(&leaseCount)
	if leaseCount == 0 {
		return nil, fmt.Errorf("租约不存在")
	}

	payment := &models.Payment{
		TenantID: tenantID,
		LeaseID:  leaseID,
		Amount:   amount,
		Status:   models.PaymentStatusPending,
		DueDate:  dueDate,
		Notes:    notes,
	}

	err := s.db.Create(payment).Error
	return payment, err
}

// GetByID 根据ID获取账单
func (s *PaymentService) GetByID(id uint) (*models.Payment, error) {
	var payment models.Payment
	err := s.db.Preload("Tenant").Preload("Lease").First(&payment, id).Error
	return &payment, err
}

// GetByTenant 获取租客的账单列表（按到期日降序）
func (s *PaymentService) GetByTenant(tenantID uint) ([]*models.Payment, error) {
	var payments []*models.Payment
	err := s.db.Where("tenant_id = ?", tenantID).
		Order("due_date DESC").Find(&payments).Error
	return payments, err
}

// GetByLease 获取租约下的账单列表
func (s *PaymentService) GetByLease(leaseID uint) ([]*models.Payment, error) {
	var payments []*models.Payment
	err := s.db.Where("lease_id = ?", leaseID).
		Order("due_date DESC").Find(&payments).Error
	return payments, err
}

// GetWithFiltersAndPage 组合查询（分页版本）
func (s *PaymentService) GetWithFiltersAndPage(tenantID, leaseID *uint, status string, page, pageSize int) ([]*models.Payment, int64, error) {
	var payments []*models.Payment
	var total int64

	query := s.db.Model(&models.Payment{})

	if tenantID != nil {
		query = query.Where("tenant_id = ?", *tenantID)
	}
	if leaseID != nil {
		query = query.Where("lease_id = ?", *leaseID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("due_date DESC").Offset(offset).Limit(pageSize).Find(&payments).Error
	if err != nil {
		return nil, 0, err
	}

	return payments, total, nil
}

// Delete 删除账单，ID不存在时也视为成功
func (s *PaymentService) Delete(id uint) error {
	return s.db.Delete(&models.Payment{}, id).Error
}

// ========== 状态流转方法 ==========

// Record 登记收款
// 无条件置为paid并写入收款时间，不校验之前的状态，重复登记不回退已有字段；
// 未提供凭证号时生成一个
func (s *PaymentService) Record(id uint, method, reference string) (*models.Payment, error) {
	var payment models.Payment
	err := s.db.First(&payment, id).Error
	if err != nil {
		return nil, err
	}

	now := time.Now()
	payment.Status = models.PaymentStatusPaid
	if payment.PaidDate == nil {
		payment.PaidDate = &now
	}
	if method != "" {
		payment.Method = method
	}
	if reference != "" {
		payment.Reference = reference
	} else if payment.Reference == "" {
		payment.Reference = uuid.New().String()
	}

	if err := s.db.Save(&payment).Error; err != nil {
		return nil, err
	}

	s.activities.Log(models.ActivityTypePaymentRecorded, payment.TenantID,
		fmt.Sprintf("登记了账单 #%d 的收款", payment.ID),
		map[string]interface{}{"payment_id": payment.ID, "amount": payment.Amount, "method": payment.Method})

	return &payment, nil
}

// MarkOverdueDue 把到期未付的pending账单批量置为overdue，返回处理数量
// 由定时任务每日调用
func (s *PaymentService) MarkOverdueDue(now time.Time) (int, error) {
	var payments []*models.Payment
	err := s.db.Where("status = ? AND due_date < ?", models.PaymentStatusPending, now).
		Find(&payments).Error
	if err != nil {
		return 0, err
	}

	for _, payment := range payments {
		payment.Status = models.PaymentStatusOverdue
		if err := s.db.Save(payment).Error; err != nil {
			return 0, err
		}

		s.activities.Log(models.ActivityTypePaymentOverdue, payment.TenantID,
			fmt.Sprintf("账单 #%d 已逾期", payment.ID),
			map[string]interface{}{"payment_id": payment.ID, "due_date": payment.DueDate})
	}

	return len(payments), nil
}

// GetUpcomingByTenant 获取租客最近一笔待付或逾期的账单（按到期日升序取第一条）
func (s *PaymentService) GetUpcomingByTenant(tenantID uint) (*models.Payment, error) {
	var payment models.Payment
	err := s.db.Where("tenant_id = ? AND status IN ?", tenantID,
		[]string{models.PaymentStatusPending, models.PaymentStatusOverdue}).
		Order("due_date ASC").First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}
