package services_test

import (
	"testing"
	"time"

	"rentease/internal/models"
	"rentease/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestPaymentService_Create(t *testing.T) {
	db := setupTestDB(t)
	landlord := createTestLandlord(t, db)
	tenant := createTestTenant(t, db)
	property := createTestProperty(t, db, landlord.ID)
	unit := createTestUnit(t, db, property.ID)
	lease := createTestLease(t, db, tenant.ID, unit.ID)

	svc := services.NewPaymentService(db)
	payment, err := svc.Create(tenant.ID, lease.ID, 5000, time.Now().AddDate(0, 1, 0), "首月租金")
	assert.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPending, payment.Status)
	assert.Nil(t, payment.PaidDate)

	_, err = svc.Create(tenant.ID, lease.ID, 0, time.Now(), "")
	assert.Error(t, err)

	_, err = svc.Create(tenant.ID, 99999, 5000, time.Now(), "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "租约不存在")
}

func TestPaymentService_Record_SetsPaid(t *testing.T) {
	db := setupTestDB(t)
	landlord := createTestLandlord(t, db)
	tenant := createTestTenant(t, db)
	property := createTestProperty(t, db, landlord.ID)
	unit := createTestUnit(t, db, property.ID)
	lease := createTestLease(t, db, tenant.ID, unit.ID)

	svc := services.NewPaymentService(db)
	payment, err := svc.Create(tenant.ID, lease.ID, 5000, time.Now(), "")
	assert.NoError(t, err)

	recorded, err := svc.Record(payment.ID, "bank_transfer", "TX-1001")
	assert.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, recorded.Status)
	assert.NotNil(t, recorded.PaidDate)
	assert.Equal(t, "bank_transfer", recorded.Method)
	assert.Equal(t, "TX-1001", recorded.Reference)

	var activity models.Activity
	err = db.Where("type = ?", models.ActivityTypePaymentRecorded).First(&activity).Error
	assert.NoError(t, err)
}

func TestPaymentService_Record_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	landlord := createTestLandlord(t, db)
	tenant := createTestTenant(t, db)
	property := createTestProperty(t, db, landlord.ID)
	unit := createTestUnit(t, db, property.ID)
	lease := createTestLease(t, db, tenant.ID, unit.ID)

	svc := services.NewPaymentService(db)
	payment, err := svc.Create(tenant.ID, lease.ID, 5000, time.Now(), "")
	assert.NoError(t, err)

	first, err := svc.Record(payment.ID, "cash", "")
	assert.NoError(t, err)
	firstPaidDate := *first.PaidDate

	// 重复登记不回退收款时间和凭证号
	second, err := svc.Record(payment.ID, "", "")
	assert.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, second.Status)
	assert.Equal(t, firstPaidDate.Unix(), second.PaidDate.Unix())
	assert.Equal(t, first.Reference, second.Reference)
}

func TestPaymentService_Record_GeneratesReference(t *testing.T) {
	db := setupTestDB(t)
	landlord := createTestLandlord(t, db)
	tenant := createTestTenant(t, db)
	property := createTestProperty(t, db, landlord.ID)
	unit := createTestUnit(t, db, property.ID)
	lease := createTestLease(t, db, tenant.ID, unit.ID)

	svc := services.NewPaymentService(db)
	payment, err := svc.Create(tenant.ID, lease.ID, 5000, time.Now(), "")
	assert.NoError(t, err)

	recorded, err := svc.Record(payment.ID, "cash", "")
	assert.NoError(t, err)
	assert.NotEmpty(t, recorded.Reference)
}

func TestPaymentService_MarkOverdueDue(t *testing.T) {
	db := setupTestDB(t)
	landlord := createTestLandlord(t, db)
	tenant := createTestTenant(t, db)
	property := createTestProperty(t, db, landlord.ID)
	unit := createTestUnit(t, db, property.ID)
	lease := createTestLease(t, db, tenant.ID, unit.ID)

	svc := services.NewPaymentService(db)

	overdue, err := svc.Create(tenant.ID, lease.ID, 5000, time.Now().AddDate(0, 0, -10), "")
	assert.NoError(t, err)
	future, err := svc.Create(tenant.ID, lease.ID, 5000, time.Now().AddDate(0, 1, 0), "")
	assert.NoError(t, err)
	paid, err := svc.Create(tenant.ID, lease.ID, 5000, time.Now().AddDate(0, 0, -5), "")
	assert.NoError(t, err)
	_, err = svc.Record(paid.ID, "cash", "")
	assert.NoError(t, err)

	count, err := svc.MarkOverdueDue(time.Now())
	assert.NoError(t, err)
	assert.Equal(t, 1, count)

	var reloaded models.Payment
	assert.NoError(t, db.First(&reloaded, overdue.ID).Error)
	assert.Equal(t, models.PaymentStatusOverdue, reloaded.Status)

	// 未到期和已付的不受影响
	reloaded = models.Payment{}
	assert.NoError(t, db.First(&reloaded, future.ID).Error)
	assert.Equal(t, models.PaymentStatusPending, reloaded.Status)
	reloaded = models.Payment{}
	assert.NoError(t, db.First(&reloaded, paid.ID).Error)
	assert.Equal(t, models.PaymentStatusPaid, reloaded.Status)

	// 重复扫描无新增
	count, err = svc.MarkOverdueDue(time.Now())
	assert.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestPaymentService_GetUpcomingByTenant(t *testing.T) {
	db := setupTestDB(t)
	landlord := createTestLandlord(t, db)
	tenant := createTestTenant(t, db)
	property := createTestProperty(t, db, landlord.ID)
	unit := createTestUnit(t, db, property.ID)
	lease := createTestLease(t, db, tenant.ID, unit.ID)

	svc := services.NewPaymentService(db)

	_, err := svc.Create(tenant.ID, lease.ID, 5000, time.Now().AddDate(0, 2, 0), "")
	assert.NoError(t, err)
	nearest, err := svc.Create(tenant.ID, lease.ID, 5000, time.Now().AddDate(0, 0, 7), "")
	assert.NoError(t, err)

	upcoming, err := svc.GetUpcomingByTenant(tenant.ID)
	assert.NoError(t, err)
	assert.Equal(t, nearest.ID, upcoming.ID)
}
