package services_test

import (
	"testing"

	"rentease/internal/models"
	"rentease/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestMaintenanceService_Create(t *testing.T) {
	db := setupTestDB(t)
	landlord := createTestLandlord(t, db)
	tenant := createTestTenant(t, db)
	property := createTestProperty(t, db, landlord.ID)
	unit := createTestUnit(t, db, property.ID)

	svc := services.NewMaintenanceService(db)
	request, err := svc.Create(tenant.ID, unit.ID, "水管漏水", "厨房水管接口渗水", "", nil)
	assert.NoError(t, err)
	assert.Equal(t, models.MaintenanceStatusOpen, request.Status)
	// 未指定优先级时默认medium
	assert.Equal(t, models.MaintenancePriorityMedium, request.Priority)
	assert.Nil(t, request.CompletedAt)

	_, err = svc.Create(tenant.ID, unit.ID, "", "", "", nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "标题")

	_, err = svc.Create(tenant.ID, unit.ID, "标题", "", "extreme", nil)
	assert.Error(t, err)

	_, err = svc.Create(tenant.ID, 99999, "标题", "", "", nil)
	assert.Error(t, err)
}

func TestMaintenanceService_Complete_StampsOnce(t *testing.T) {
	db := setupTestDB(t)
	landlord := createTestLandlord(t, db)
	tenant := createTestTenant(t, db)
	property := createTestProperty(t, db, landlord.ID)
	unit := createTestUnit(t, db, property.ID)

	svc := services.NewMaintenanceService(db)
	request, err := svc.Create(tenant.ID, unit.ID, "门锁故障", "", models.MaintenancePriorityHigh, nil)
	assert.NoError(t, err)

	completed, err := svc.UpdateStatus(request.ID, models.MaintenanceStatusCompleted)
	assert.NoError(t, err)
	assert.NotNil(t, completed.CompletedAt)
	firstCompletedAt := *completed.CompletedAt

	var activityCount int64
	db.Model(&models.Activity{}).Where("type = ?", models.ActivityTypeMaintenanceCompleted).Count(&activityCount)
	assert.Equal(t, int64(1), activityCount)

	// 重复置为completed不重写时间戳、不重复记审计
	again, err := svc.UpdateStatus(request.ID, models.MaintenanceStatusCompleted)
	assert.NoError(t, err)
	assert.Equal(t, firstCompletedAt.Unix(), again.CompletedAt.Unix())

	db.Model(&models.Activity{}).Where("type = ?", models.ActivityTypeMaintenanceCompleted).Count(&activityCount)
	assert.Equal(t, int64(1), activityCount)
}

func TestMaintenanceService_StatusTransitions(t *testing.T) {
	db := setupTestDB(t)
	landlord := createTestLandlord(t, db)
	tenant := createTestTenant(t, db)
	property := createTestProperty(t, db, landlord.ID)
	unit := createTestUnit(t, db, property.ID)

	svc := services.NewMaintenanceService(db)
	request, err := svc.Create(tenant.ID, unit.ID, "空调不制冷", "", "", nil)
	assert.NoError(t, err)

	inProgress, err := svc.UpdateStatus(request.ID, models.MaintenanceStatusInProgress)
	assert.NoError(t, err)
	assert.Equal(t, models.MaintenanceStatusInProgress, inProgress.Status)
	assert.Nil(t, inProgress.CompletedAt)

	cancelled, err := svc.Cancel(request.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.MaintenanceStatusCancelled, cancelled.Status)

	_, err = svc.UpdateStatus(request.ID, "unknown")
	assert.Error(t, err)
}

func TestMaintenanceService_AddComment(t *testing.T) {
	db := setupTestDB(t)
	landlord := createTestLandlord(t, db)
	tenant := createTestTenant(t, db)
	property := createTestProperty(t, db, landlord.ID)
	unit := createTestUnit(t, db, property.ID)

	svc := services.NewMaintenanceService(db)
	request, err := svc.Create(tenant.ID, unit.ID, "窗户关不严", "", "", nil)
	assert.NoError(t, err)

	comment, err := svc.AddComment(request.ID, landlord.ID, "明天上午安排师傅上门")
	assert.NoError(t, err)
	assert.Equal(t, request.ID, comment.RequestID)

	_, err = svc.AddComment(request.ID, landlord.ID, "")
	assert.Error(t, err)

	_, err = svc.AddComment(99999, landlord.ID, "留言")
	assert.Error(t, err)

	detail, err := svc.GetByID(request.ID)
	assert.NoError(t, err)
	assert.Len(t, detail.Comments, 1)
}
