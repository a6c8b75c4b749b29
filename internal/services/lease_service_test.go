package services_test

import (
	"testing"
	"time"

	"rentease/internal/models"
	"rentease/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestLeaseService_Create_OccupiesUnit(t *testing.T) {
	db := setupTestDB(t)
	landlord := createTestLandlord(t, db)
	tenant := createTestTenant(t, db)
	property := createTestProperty(t, db, landlord.ID)
	unit := createTestUnit(t, db, property.ID)

	svc := services.NewLeaseService(db)
	lease, err := svc.Create(tenant.ID, unit.ID, 5000, 10000,
		time.Now(), time.Now().AddDate(1, 0, 0))
	assert.NoError(t, err)
	assert.Equal(t, models.LeaseStatusActive, lease.Status)

	// 单元转为occupied
	var updatedUnit models.Unit
	assert.NoError(t, db.First(&updatedUnit, unit.ID).Error)
	assert.Equal(t, models.UnitStatusOccupied, updatedUnit.Status)

	// 房产计数联动
	var updatedProperty models.Property
	assert.NoError(t, db.First(&updatedProperty, property.ID).Error)
	assert.Equal(t, 1, updatedProperty.TotalUnits)
	assert.Equal(t, 1, updatedProperty.OccupiedUnits)

	// 审计记录
	var activity models.Activity
	err = db.Where("type = ?", models.ActivityTypeLeaseCreated).First(&activity).Error
	assert.NoError(t, err)
}

func TestLeaseService_Create_RejectsUnavailableUnit(t *testing.T) {
	db := setupTestDB(t)
	landlord := createTestLandlord(t, db)
	tenant := createTestTenant(t, db)
	property := createTestProperty(t, db, landlord.ID)
	unit := createTestUnit(t, db, property.ID)

	svc := services.NewLeaseService(db)
	_, err := svc.Create(tenant.ID, unit.ID, 5000, 10000,
		time.Now(), time.Now().AddDate(1, 0, 0))
	assert.NoError(t, err)

	// 已出租的单元不能再签约
	_, err = svc.Create(tenant.ID, unit.ID, 5000, 10000,
		time.Now(), time.Now().AddDate(1, 0, 0))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "不可出租")

	// 失败的签约不能留下脏数据
	var count int64
	db.Model(&models.Lease{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestLeaseService_Create_Validation(t *testing.T) {
	db := setupTestDB(t)
	landlord := createTestLandlord(t, db)
	tenant := createTestTenant(t, db)
	property := createTestProperty(t, db, landlord.ID)
	unit := createTestUnit(t, db, property.ID)

	svc := services.NewLeaseService(db)

	_, err := svc.Create(tenant.ID, unit.ID, 0, 0,
		time.Now(), time.Now().AddDate(1, 0, 0))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "租金")

	start := time.Now()
	_, err = svc.Create(tenant.ID, unit.ID, 5000, 10000, start, start)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "结束日期")

	_, err = svc.Create(tenant.ID, 99999, 5000, 10000,
		time.Now(), time.Now().AddDate(1, 0, 0))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "不存在")
}

func TestLeaseService_End_ReleasesUnit(t *testing.T) {
	db := setupTestDB(t)
	landlord := createTestLandlord(t, db)
	tenant := createTestTenant(t, db)
	property := createTestProperty(t, db, landlord.ID)
	unit := createTestUnit(t, db, property.ID)
	lease := createTestLease(t, db, tenant.ID, unit.ID)

	svc := services.NewLeaseService(db)
	ended, err := svc.End(lease.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.LeaseStatusEnded, ended.Status)

	var updatedUnit models.Unit
	assert.NoError(t, db.First(&updatedUnit, unit.ID).Error)
	assert.Equal(t, models.UnitStatusAvailable, updatedUnit.Status)

	var updatedProperty models.Property
	assert.NoError(t, db.First(&updatedProperty, property.ID).Error)
	assert.Equal(t, 0, updatedProperty.OccupiedUnits)
}

func TestLeaseService_Terminate(t *testing.T) {
	db := setupTestDB(t)
	landlord := createTestLandlord(t, db)
	tenant := createTestTenant(t, db)
	property := createTestProperty(t, db, landlord.ID)
	unit := createTestUnit(t, db, property.ID)
	lease := createTestLease(t, db, tenant.ID, unit.ID)

	svc := services.NewLeaseService(db)
	terminated, err := svc.Terminate(lease.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.LeaseStatusTerminated, terminated.Status)

	// 已结束的租约不能再次关闭
	_, err = svc.End(lease.ID)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "租约已结束")
}

func TestLeaseService_GetActiveByTenant(t *testing.T) {
	db := setupTestDB(t)
	landlord := createTestLandlord(t, db)
	tenant := createTestTenant(t, db)
	property := createTestProperty(t, db, landlord.ID)
	unit := createTestUnit(t, db, property.ID)
	lease := createTestLease(t, db, tenant.ID, unit.ID)

	svc := services.NewLeaseService(db)
	active, err := svc.GetActiveByTenant(tenant.ID)
	assert.NoError(t, err)
	assert.Equal(t, lease.ID, active.ID)

	_, err = svc.End(lease.ID)
	assert.NoError(t, err)

	_, err = svc.GetActiveByTenant(tenant.ID)
	assert.Error(t, err)
}

func TestLeaseService_ReleaseAfterEnd_AllowsNewLease(t *testing.T) {
	db := setupTestDB(t)
	landlord := createTestLandlord(t, db)
	tenant := createTestTenant(t, db)
	property := createTestProperty(t, db, landlord.ID)
	unit := createTestUnit(t, db, property.ID)
	lease := createTestLease(t, db, tenant.ID, unit.ID)

	svc := services.NewLeaseService(db)
	_, err := svc.End(lease.ID)
	assert.NoError(t, err)

	// 释放后的单元可以重新出租
	_, err = svc.Create(tenant.ID, unit.ID, 5500, 11000,
		time.Now(), time.Now().AddDate(1, 0, 0))
	assert.NoError(t, err)
}
