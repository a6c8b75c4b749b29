package services_test

import (
	"testing"

	"rentease/internal/models"
	"rentease/internal/services"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestUserService_Register_DefaultsToTenant(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewUserService(db)

	user, err := svc.Register("alice@test.local", "password123", "Alice Wang", nil, "")
	assert.NoError(t, err)
	assert.Equal(t, models.RoleTenant, user.Role)
	assert.Equal(t, models.UserStatusActive, user.Status)
}

func TestUserService_Register_LandlordAllowed(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewUserService(db)

	user, err := svc.Register("bob@test.local", "password123", "Bob Li", nil, models.RoleLandlord)
	assert.NoError(t, err)
	assert.Equal(t, models.RoleLandlord, user.Role)

	// admin不可自助注册，回落为tenant
	user2, err := svc.Register("carol@test.local", "password123", "Carol Wu", nil, models.RoleAdmin)
	assert.NoError(t, err)
	assert.Equal(t, models.RoleTenant, user2.Role)
}

func TestUserService_Register_LogsActivity(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewUserService(db)

	user, err := svc.Register("dave@test.local", "password123", "Dave Liu", nil, "")
	assert.NoError(t, err)

	var activity models.Activity
	err = db.Where("type = ? AND user_id = ?", models.ActivityTypeUserRegistered, user.ID).
		First(&activity).Error
	assert.NoError(t, err)
}

func TestUserService_EmailUniqueness_CaseInsensitive(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewUserService(db)

	_, err := svc.Register("Alice@Test.Local", "password123", "Alice Wang", nil, "")
	assert.NoError(t, err)

	_, err = svc.Register("alice@test.local", "password123", "Another Alice", nil, "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "邮箱已存在")
}

func TestUserService_GetByEmail_CaseInsensitive(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewUserService(db)

	created, err := svc.Register("eve@test.local", "password123", "Eve Chen", nil, "")
	assert.NoError(t, err)

	found, err := svc.GetByEmail("EVE@TEST.LOCAL")
	assert.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
}

func TestUserService_Create_Validation(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewUserService(db)

	_, err := svc.Create("bad-email", "password123", "Some Name", nil, models.RoleTenant)
	assert.Error(t, err)

	_, err = svc.Create("ok@test.local", "123", "Some Name", nil, models.RoleTenant)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "密码长度")

	_, err = svc.Create("ok@test.local", "password123", "X", nil, models.RoleTenant)
	assert.Error(t, err)

	_, err = svc.Create("ok@test.local", "password123", "Some Name", nil, "superuser")
	assert.Error(t, err)
}

func TestUserService_PasswordHashing(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewUserService(db)

	user, err := svc.Register("frank@test.local", "password123", "Frank Zhao", nil, "")
	assert.NoError(t, err)

	assert.NotEqual(t, "password123", user.PasswordHash)
	assert.True(t, user.CheckPassword("password123"))
	assert.False(t, user.CheckPassword("wrong-password"))
}

func TestUserService_Update_EmailConflict(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewUserService(db)

	_, err := svc.Register("first@test.local", "password123", "First User", nil, "")
	assert.NoError(t, err)
	second, err := svc.Register("second@test.local", "password123", "Second User", nil, "")
	assert.NoError(t, err)

	_, err = svc.Update(second.ID, "Second User", "first@test.local", nil, models.UserStatusActive)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "邮箱已存在")

	// 改成自己原来的邮箱不算冲突
	updated, err := svc.Update(second.ID, "Second Renamed", "second@test.local", nil, models.UserStatusActive)
	assert.NoError(t, err)
	assert.Equal(t, "Second Renamed", updated.Name)
}

func TestUserService_ActivateSuspend(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewUserService(db)

	user, err := svc.Register("grace@test.local", "password123", "Grace Sun", nil, "")
	assert.NoError(t, err)
	assert.True(t, svc.IsActive(user))

	suspended, err := svc.Suspend(user.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.UserStatusSuspended, suspended.Status)
	assert.False(t, svc.IsActive(suspended))

	activated, err := svc.Activate(user.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.UserStatusActive, activated.Status)
}

func TestUserService_Delete_NotFoundIsNoop(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewUserService(db)

	err := svc.Delete(99999)
	assert.NoError(t, err)
}

func TestUserService_GetByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewUserService(db)

	_, err := svc.GetByID(99999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserService_GetStats(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewUserService(db)

	_, err := svc.Create("a@test.local", "password123", "Admin User", nil, models.RoleAdmin)
	assert.NoError(t, err)
	_, err = svc.Create("l@test.local", "password123", "Landlord User", nil, models.RoleLandlord)
	assert.NoError(t, err)
	_, err = svc.Create("t@test.local", "password123", "Tenant User", nil, models.RoleTenant)
	assert.NoError(t, err)

	stats, err := svc.GetStats()
	assert.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(3), stats.Active)
	assert.Equal(t, int64(1), stats.Admins)
	assert.Equal(t, int64(1), stats.Landlords)
	assert.Equal(t, int64(1), stats.Tenants)
}
