package services_test

import (
	"testing"
	"time"

	"rentease/internal/models"
	"rentease/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestDashboardService_AdminStats_Empty(t *testing.T) {
	db := setupTestDB(t)

	svc := services.NewDashboardService(db)
	stats, err := svc.GetAdminStats()
	assert.NoError(t, err)
	assert.Equal(t, int64(0), stats.TotalUnits)
	// 无单元时入住率为0，不能除零
	assert.Equal(t, float64(0), stats.OccupancyRate)
	assert.Equal(t, float64(0), stats.TotalRevenue)
}

func TestDashboardService_AdminStats(t *testing.T) {
	db := setupTestDB(t)
	landlord := createTestLandlord(t, db)
	tenant := createTestTenant(t, db)
	property := createTestProperty(t, db, landlord.ID)

	unitSvc := services.NewUnitService(db)
	var units []*models.Unit
	for _, number := range []string{"101", "102", "103", "104"} {
		unit, err := unitSvc.Create(property.ID, number, 1, 1, 50, 4000, 8000)
		assert.NoError(t, err)
		units = append(units, unit)
	}

	leaseSvc := services.NewLeaseService(db)
	for _, unit := range units[:3] {
		_, err := leaseSvc.Create(tenant.ID, unit.ID, 4000, 8000,
			time.Now(), time.Now().AddDate(1, 0, 0))
		assert.NoError(t, err)
	}

	paymentSvc := services.NewPaymentService(db)
	var lease models.Lease
	assert.NoError(t, db.First(&lease).Error)
	payment, err := paymentSvc.Create(tenant.ID, lease.ID, 4000, time.Now(), "")
	assert.NoError(t, err)
	_, err = paymentSvc.Record(payment.ID, "cash", "")
	assert.NoError(t, err)

	svc := services.NewDashboardService(db)
	stats, err := svc.GetAdminStats()
	assert.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalProperties)
	assert.Equal(t, int64(4), stats.TotalUnits)
	assert.Equal(t, int64(3), stats.OccupiedUnits)
	assert.Equal(t, float64(75), stats.OccupancyRate)
	assert.Equal(t, float64(4000), stats.TotalRevenue)
	assert.Equal(t, int64(3), stats.ActiveLeases)
}

func TestDashboardService_LandlordStats_ScopedToOwnAssets(t *testing.T) {
	db := setupTestDB(t)
	landlord := createTestLandlord(t, db)
	tenant := createTestTenant(t, db)
	property := createTestProperty(t, db, landlord.ID)
	unit := createTestUnit(t, db, property.ID)
	createTestLease(t, db, tenant.ID, unit.ID)

	other, err := services.NewUserService(db).Create(
		"other@test.local", "password123", "另一位房东", nil, models.RoleLandlord)
	assert.NoError(t, err)

	svc := services.NewDashboardService(db)

	stats, err := svc.GetLandlordStats(landlord.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalProperties)
	assert.Equal(t, int64(1), stats.OccupiedUnits)
	assert.Equal(t, float64(100), stats.OccupancyRate)

	// 别人的资产不计入
	stats, err = svc.GetLandlordStats(other.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), stats.TotalProperties)
	assert.Equal(t, float64(0), stats.OccupancyRate)
}

func TestDashboardService_TenantStats(t *testing.T) {
	db := setupTestDB(t)
	landlord := createTestLandlord(t, db)
	tenant := createTestTenant(t, db)
	property := createTestProperty(t, db, landlord.ID)
	unit := createTestUnit(t, db, property.ID)
	lease := createTestLease(t, db, tenant.ID, unit.ID)

	paymentSvc := services.NewPaymentService(db)
	payment, err := paymentSvc.Create(tenant.ID, lease.ID, 5000, time.Now().AddDate(0, 0, 7), "")
	assert.NoError(t, err)

	maintenanceSvc := services.NewMaintenanceService(db)
	_, err = maintenanceSvc.Create(tenant.ID, unit.ID, "灯泡坏了", "", "", nil)
	assert.NoError(t, err)

	messageSvc := services.NewMessageService(db)
	_, err = messageSvc.Send(landlord.ID, tenant.ID, "", "欢迎入住")
	assert.NoError(t, err)

	svc := services.NewDashboardService(db)
	stats, err := svc.GetTenantStats(tenant.ID)
	assert.NoError(t, err)
	assert.NotNil(t, stats.ActiveLease)
	assert.Equal(t, lease.ID, stats.ActiveLease.ID)
	assert.NotNil(t, stats.NextPayment)
	assert.Equal(t, payment.ID, stats.NextPayment.ID)
	assert.Equal(t, int64(1), stats.OpenMaintenance)
	assert.Equal(t, int64(1), stats.UnreadMessages)
}

func TestDashboardService_TenantStats_ToleratesMissingData(t *testing.T) {
	db := setupTestDB(t)
	tenant := createTestTenant(t, db)

	// 没有租约和账单时不报错，对应字段为空
	svc := services.NewDashboardService(db)
	stats, err := svc.GetTenantStats(tenant.ID)
	assert.NoError(t, err)
	assert.Nil(t, stats.ActiveLease)
	assert.Nil(t, stats.NextPayment)
	assert.Equal(t, int64(0), stats.OpenMaintenance)
	assert.Equal(t, int64(0), stats.UnreadMessages)
}
