package services_test

import (
	"testing"

	"rentease/internal/models"
	"rentease/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestUnitService_Create_RefreshesCounts(t *testing.T) {
	db := setupTestDB(t)
	landlord := createTestLandlord(t, db)
	property := createTestProperty(t, db, landlord.ID)

	svc := services.NewUnitService(db)
	unit, err := svc.Create(property.ID, "201", 3, 2, 120, 8000, 16000)
	assert.NoError(t, err)
	assert.Equal(t, models.UnitStatusAvailable, unit.Status)

	var reloaded models.Property
	assert.NoError(t, db.First(&reloaded, property.ID).Error)
	assert.Equal(t, 1, reloaded.TotalUnits)
	assert.Equal(t, 0, reloaded.OccupiedUnits)
}

func TestUnitService_Create_Validation(t *testing.T) {
	db := setupTestDB(t)
	landlord := createTestLandlord(t, db)
	property := createTestProperty(t, db, landlord.ID)

	svc := services.NewUnitService(db)

	_, err := svc.Create(property.ID, "", 1, 1, 50, 3000, 6000)
	assert.Error(t, err)

	_, err = svc.Create(property.ID, "301", 1, 1, 50, 0, 0)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "租金")

	_, err = svc.Create(99999, "301", 1, 1, 50, 3000, 6000)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "房产不存在")
}

func TestUnitService_UpdateStatus_RefreshesCounts(t *testing.T) {
	db := setupTestDB(t)
	landlord := createTestLandlord(t, db)
	property := createTestProperty(t, db, landlord.ID)
	unit := createTestUnit(t, db, property.ID)

	svc := services.NewUnitService(db)
	updated, err := svc.UpdateStatus(unit.ID, models.UnitStatusOccupied)
	assert.NoError(t, err)
	assert.Equal(t, models.UnitStatusOccupied, updated.Status)

	var reloaded models.Property
	assert.NoError(t, db.First(&reloaded, property.ID).Error)
	assert.Equal(t, 1, reloaded.OccupiedUnits)

	// 任意合法状态之间都允许切换
	_, err = svc.UpdateStatus(unit.ID, models.UnitStatusMaintenance)
	assert.NoError(t, err)

	_, err = svc.UpdateStatus(unit.ID, "bogus")
	assert.Error(t, err)
}

func TestUnitService_Delete_RefreshesCounts(t *testing.T) {
	db := setupTestDB(t)
	landlord := createTestLandlord(t, db)
	property := createTestProperty(t, db, landlord.ID)
	unit := createTestUnit(t, db, property.ID)

	svc := services.NewUnitService(db)
	assert.NoError(t, svc.Delete(unit.ID))

	var reloaded models.Property
	assert.NoError(t, db.First(&reloaded, property.ID).Error)
	assert.Equal(t, 0, reloaded.TotalUnits)

	// 不存在的ID也视为成功
	assert.NoError(t, svc.Delete(99999))
}

func TestPropertyService_Create_LandlordMustExist(t *testing.T) {
	db := setupTestDB(t)

	svc := services.NewPropertyService(db)
	_, err := svc.Create(99999, "房产", "地址", "城市", "", nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "房东不存在")

	_, err = svc.Create(1, "", "", "", "", nil)
	assert.Error(t, err)
}

func TestPropertyService_Update(t *testing.T) {
	db := setupTestDB(t)
	landlord := createTestLandlord(t, db)
	property := createTestProperty(t, db, landlord.ID)

	svc := services.NewPropertyService(db)
	updated, err := svc.Update(property.ID, "新名字", "新地址", "北京", "翻新过",
		models.PropertyStatusMaintenance, nil)
	assert.NoError(t, err)
	assert.Equal(t, "新名字", updated.Name)
	assert.Equal(t, models.PropertyStatusMaintenance, updated.Status)

	_, err = svc.Update(property.ID, "名字", "地址", "城市", "", "bogus", nil)
	assert.Error(t, err)
}

func TestPropertyService_GetByLandlord(t *testing.T) {
	db := setupTestDB(t)
	landlord := createTestLandlord(t, db)
	createTestProperty(t, db, landlord.ID)

	other, err := services.NewUserService(db).Create(
		"other@test.local", "password123", "另一位房东", nil, models.RoleLandlord)
	assert.NoError(t, err)

	svc := services.NewPropertyService(db)
	properties, err := svc.GetByLandlord(landlord.ID)
	assert.NoError(t, err)
	assert.Len(t, properties, 1)

	properties, err = svc.GetByLandlord(other.ID)
	assert.NoError(t, err)
	assert.Len(t, properties, 0)
}
