package services_test

import (
	"testing"

	"rentease/internal/models"
	"rentease/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestActivityService_LogAndQuery(t *testing.T) {
	db := setupTestDB(t)
	tenant := createTestTenant(t, db)

	svc := services.NewActivityService(db)
	svc.Log(models.ActivityTypeUserRegistered, tenant.ID, "测试流水", map[string]interface{}{"key": "value"})
	svc.Log(models.ActivityTypeLeaseCreated, tenant.ID, "第二条流水", nil)

	activities, total, err := svc.GetRecentWithPage(1, 10)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, activities, 2)

	byUser, total, err := svc.GetByUserWithPage(tenant.ID, 1, 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, byUser, 1)
}
