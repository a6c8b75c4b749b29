package services_test

import (
	"testing"
	"time"

	"rentease/internal/models"
	"rentease/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestApplicationService_Create_ForcesPendingStatus(t *testing.T) {
	db := setupTestDB(t)
	landlord := createTestLandlord(t, db)
	tenant := createTestTenant(t, db)
	property := createTestProperty(t, db, landlord.ID)
	unit := createTestUnit(t, db, property.ID)

	svc := services.NewApplicationService(db)
	moveIn := time.Now().AddDate(0, 1, 0)
	application, err := svc.Create(tenant.ID, unit.ID, &moveIn, "希望尽快入住")
	assert.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusPending, application.Status)
	assert.Equal(t, models.RecommendationPending, application.LandlordRecommendation)

	var activity models.Activity
	err = db.Where("type = ?", models.ActivityTypeApplicationSubmitted).First(&activity).Error
	assert.NoError(t, err)
}

func TestApplicationService_Create_UnitMustExist(t *testing.T) {
	db := setupTestDB(t)
	tenant := createTestTenant(t, db)

	svc := services.NewApplicationService(db)
	_, err := svc.Create(tenant.ID, 99999, nil, "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "不存在")
}

func TestApplicationService_Create_AllowsOccupiedUnit(t *testing.T) {
	db := setupTestDB(t)
	landlord := createTestLandlord(t, db)
	tenant := createTestTenant(t, db)
	property := createTestProperty(t, db, landlord.ID)
	unit := createTestUnit(t, db, property.ID)
	createTestLease(t, db, tenant.ID, unit.ID)

	// 已出租的单元也能提交申请，审批时再把关
	svc := services.NewApplicationService(db)
	_, err := svc.Create(tenant.ID, unit.ID, nil, "")
	assert.NoError(t, err)
}

func TestApplicationService_UpdateStatus_TouchesOnlyStatusAndNotes(t *testing.T) {
	db := setupTestDB(t)
	landlord := createTestLandlord(t, db)
	tenant := createTestTenant(t, db)
	property := createTestProperty(t, db, landlord.ID)
	unit := createTestUnit(t, db, property.ID)

	svc := services.NewApplicationService(db)
	application, err := svc.Create(tenant.ID, unit.ID, nil, "")
	assert.NoError(t, err)

	_, err = svc.Recommend(application.ID, models.RecommendationRecommended)
	assert.NoError(t, err)

	approved, err := svc.UpdateStatus(application.ID, models.ApplicationStatusApproved, "资质良好")
	assert.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusApproved, approved.Status)
	assert.Equal(t, "资质良好", approved.AdminNotes)
	// 房东推荐保持原值
	assert.Equal(t, models.RecommendationRecommended, approved.LandlordRecommendation)

	_, err = svc.UpdateStatus(application.ID, "bogus", "")
	assert.Error(t, err)
}

func TestApplicationService_Withdraw(t *testing.T) {
	db := setupTestDB(t)
	landlord := createTestLandlord(t, db)
	tenant := createTestTenant(t, db)
	property := createTestProperty(t, db, landlord.ID)
	unit := createTestUnit(t, db, property.ID)

	svc := services.NewApplicationService(db)
	application, err := svc.Create(tenant.ID, unit.ID, nil, "")
	assert.NoError(t, err)

	// 别人不能撤回
	_, err = svc.Withdraw(application.ID, landlord.ID)
	assert.Error(t, err)

	withdrawn, err := svc.Withdraw(application.ID, tenant.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusWithdrawn, withdrawn.Status)

	// 非pending状态不能撤回
	_, err = svc.Withdraw(application.ID, tenant.ID)
	assert.Error(t, err)
}

func TestApplicationService_GetByTenant(t *testing.T) {
	db := setupTestDB(t)
	landlord := createTestLandlord(t, db)
	tenant := createTestTenant(t, db)
	property := createTestProperty(t, db, landlord.ID)
	unit := createTestUnit(t, db, property.ID)

	svc := services.NewApplicationService(db)
	_, err := svc.Create(tenant.ID, unit.ID, nil, "第一次")
	assert.NoError(t, err)
	_, err = svc.Create(tenant.ID, unit.ID, nil, "第二次")
	assert.NoError(t, err)

	applications, err := svc.GetByTenant(tenant.ID)
	assert.NoError(t, err)
	assert.Len(t, applications, 2)
}
