package services_test

import (
	"testing"
	"time"

	"rentease/internal/models"
	"rentease/internal/services"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.Unit{},
		&models.Application{},
		&models.Lease{},
		&models.Payment{},
		&models.MaintenanceRequest{},
		&models.MaintenanceComment{},
		&models.Message{},
		&models.Activity{},
	)
	assert.NoError(t, err)

	return db
}

func createTestLandlord(t *testing.T, db *gorm.DB) *models.User {
	user, err := services.NewUserService(db).Create(
		"landlord@test.local", "password123", "测试房东", nil, models.RoleLandlord)
	assert.NoError(t, err)
	return user
}

func createTestTenant(t *testing.T, db *gorm.DB) *models.User {
	user, err := services.NewUserService(db).Create(
		"tenant@test.local", "password123", "测试租客", nil, models.RoleTenant)
	assert.NoError(t, err)
	return user
}

func createTestProperty(t *testing.T, db *gorm.DB, landlordID uint) *models.Property {
	property, err := services.NewPropertyService(db).Create(
		landlordID, "测试房产", "测试路1号", "上海", "", nil)
	assert.NoError(t, err)
	return property
}

func createTestUnit(t *testing.T, db *gorm.DB, propertyID uint) *models.Unit {
	unit, err := services.NewUnitService(db).Create(
		propertyID, "101", 2, 1, 80, 5000, 10000)
	assert.NoError(t, err)
	return unit
}

func createTestLease(t *testing.T, db *gorm.DB, tenantID, unitID uint) *models.Lease {
	lease, err := services.NewLeaseService(db).Create(
		tenantID, unitID, 5000, 10000,
		time.Now(), time.Now().AddDate(1, 0, 0))
	assert.NoError(t, err)
	return lease
}
