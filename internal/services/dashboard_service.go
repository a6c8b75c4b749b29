package services

import (
	"rentease/internal/models"

	"gorm.io/gorm"
)

// DashboardService 仪表盘统计服务
// 每次调用都实时扫描各集合，不做缓存
type DashboardService struct {
	db       *gorm.DB
	leases   *LeaseService
	payments *PaymentService
	messages *MessageService
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{
		db:       db,
		leases:   NewLeaseService(db),
		payments: NewPaymentService(db),
		messages: NewMessageService(db),
	}
}

// OverviewStats 管理员/房东视角的运营统计
type OverviewStats struct {
	TotalProperties     int64   `json:"total_properties"`
	TotalUnits          int64   `json:"total_units"`
	OccupiedUnits       int64   `json:"occupied_units"`
	OccupancyRate       float64 `json:"occupancy_rate"` // 百分比，无单元时为0
	TotalRevenue        float64 `json:"total_revenue"`  // 已收款账单的金额合计
	PendingApplications int64   `json:"pending_applications"`
	OpenMaintenance     int64   `json:"open_maintenance"` // open + in_progress
	OverduePayments     int64   `json:"overdue_payments"`
	ActiveLeases        int64   `json:"active_leases"`
}

// TenantStats 租客视角的统计
type TenantStats struct {
	ActiveLease     *models.Lease   `json:"active_lease"`
	NextPayment     *models.Payment `json:"next_payment"` // 最近一笔待付或逾期账单
	OpenMaintenance int64           `json:"open_maintenance"`
	UnreadMessages  int64           `json:"unread_messages"`
}

// GetAdminStats 平台全量统计
func (s *DashboardService) GetAdminStats() (*OverviewStats, error) {
	stats := &OverviewStats{}

	s.db.Model(&models.Property{}).Count(&stats.TotalProperties)
	s.db.Model(&models.Unit{}).Count(&stats.TotalUnits)
	s.db.Model(&models.Unit{}).Where("status = ?", models.UnitStatusOccupied).Count(&stats.OccupiedUnits)

	if err := s.db.Model(&models.Payment{}).
		Where("status = ?", models.PaymentStatusPaid).
		Select("COALESCE(SUM(amount), 0)").Scan(&stats.TotalRevenue).Error; err != nil {
		return nil, err
	}

	s.db.Model(&models.Application{}).Where("status = ?", models.ApplicationStatusPending).Count(&stats.PendingApplications)
	s.db.Model(&models.MaintenanceRequest{}).
		Where("status IN ?", []string{models.MaintenanceStatusOpen, models.MaintenanceStatusInProgress}).
		Count(&stats.OpenMaintenance)
	s.db.Model(&models.Payment{}).Where("status = ?", models.PaymentStatusOverdue).Count(&stats.OverduePayments)
	s.db.Model(&models.Lease{}).Where("status = ?", models.LeaseStatusActive).Count(&stats.ActiveLeases)

	stats.OccupancyRate = occupancyRate(stats.OccupiedUnits, stats.TotalUnits)
	return stats, nil
}

// GetLandlordStats 房东名下资产的统计，口径与管理员一致
func (s *DashboardService) GetLandlordStats(landlordID uint) (*OverviewStats, error) {
	stats := &OverviewStats{}

	propertyIDs := s.db.Model(&models.Property{}).Select("id").Where("landlord_id = ?", landlordID)
	unitIDs := s.db.Model(&models.Unit{}).Select("id").Where("property_id IN (?)", propertyIDs)
	leaseIDs := s.db.Model(&models.Lease{}).Select("id").Where("unit_id IN (?)", unitIDs)

	s.db.Model(&models.Property{}).Where("landlord_id = ?", landlordID).Count(&stats.TotalProperties)
	s.db.Model(&models.Unit{}).Where("property_id IN (?)", propertyIDs).Count(&stats.TotalUnits)
	s.db.Model(&models.Unit{}).
		Where("property_id IN (?) AND status = ?", propertyIDs, models.UnitStatusOccupied).
		Count(&stats.OccupiedUnits)

	if err := s.db.Model(&models.Payment{}).
		Where("lease_id IN (?) AND status = ?", leaseIDs, models.PaymentStatusPaid).
		Select("COALESCE(SUM(amount), 0)").Scan(&stats.TotalRevenue).Error; err != nil {
		return nil, err
	}

	s.db.Model(&models.Application{}).
		Where("unit_id IN (?) AND status = ?", unitIDs, models.ApplicationStatusPending).
		Count(&stats.PendingApplications)
	s.db.Model(&models.MaintenanceRequest{}).
		Where("unit_id IN (?) AND status IN ?", unitIDs,
			[]string{models.MaintenanceStatusOpen, models.MaintenanceStatusInProgress}).
		Count(&stats.OpenMaintenance)
	s.db.Model(&models.Payment{}).
		Where("lease_id IN (?) AND status = ?", leaseIDs, models.PaymentStatusOverdue).
		Count(&stats.OverduePayments)
	s.db.Model(&models.Lease{}).
		Where("unit_id IN (?) AND status = ?", unitIDs, models.LeaseStatusActive).
		Count(&stats.ActiveLeases)

	stats.OccupancyRate = occupancyRate(stats.OccupiedUnits, stats.TotalUnits)
	return stats, nil
}

// GetTenantStats 租客个人视角的统计
func (s *DashboardService) GetTenantStats(tenantID uint) (*TenantStats, error) {
	stats := &TenantStats{}

	lease, err := s.leases.GetActiveByTenant(tenantID)
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, err
	}
	stats.ActiveLease = lease

	payment, err := s.payments.GetUpcomingByTenant(tenantID)
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, err
	}
	stats.NextPayment = payment

	if err := s.db.Model(&models.MaintenanceRequest{}).
		Where("tenant_id = ? AND status IN ?", tenantID,
			[]string{models.MaintenanceStatusOpen, models.MaintenanceStatusInProgress}).
		Count(&stats.OpenMaintenance).Error; err != nil {
		return nil, err
	}

	unread, err := s.messages.CountUnread(tenantID)
	if err != nil {
		return nil, err
	}
	stats.UnreadMessages = unread

	return stats, nil
}

// occupancyRate 计算入住率百分比，无单元时为0
func occupancyRate(occupied, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(occupied) / float64(total) * 100
}
