package services_test

import (
	"testing"

	"rentease/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestMessageService_Send(t *testing.T) {
	db := setupTestDB(t)
	landlord := createTestLandlord(t, db)
	tenant := createTestTenant(t, db)

	svc := services.NewMessageService(db)
	message, err := svc.Send(landlord.ID, tenant.ID, "看房时间", "周六上午十点可以吗")
	assert.NoError(t, err)
	assert.False(t, message.Read)
	assert.Nil(t, message.ReadAt)

	_, err = svc.Send(landlord.ID, tenant.ID, "标题", "")
	assert.Error(t, err)

	_, err = svc.Send(landlord.ID, 99999, "标题", "内容")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "收件人不存在")
}

func TestMessageService_MarkAsRead_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	landlord := createTestLandlord(t, db)
	tenant := createTestTenant(t, db)

	svc := services.NewMessageService(db)
	message, err := svc.Send(landlord.ID, tenant.ID, "", "租金已到账")
	assert.NoError(t, err)

	read, err := svc.MarkAsRead(message.ID)
	assert.NoError(t, err)
	assert.True(t, read.Read)
	assert.NotNil(t, read.ReadAt)
	firstReadAt := *read.ReadAt

	// 重复标记不改变首次阅读时间
	again, err := svc.MarkAsRead(message.ID)
	assert.NoError(t, err)
	assert.Equal(t, firstReadAt.Unix(), again.ReadAt.Unix())
}

func TestMessageService_CountUnread(t *testing.T) {
	db := setupTestDB(t)
	landlord := createTestLandlord(t, db)
	tenant := createTestTenant(t, db)

	svc := services.NewMessageService(db)
	first, err := svc.Send(landlord.ID, tenant.ID, "", "消息一")
	assert.NoError(t, err)
	_, err = svc.Send(landlord.ID, tenant.ID, "", "消息二")
	assert.NoError(t, err)

	count, err := svc.CountUnread(tenant.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)

	_, err = svc.MarkAsRead(first.ID)
	assert.NoError(t, err)

	count, err = svc.CountUnread(tenant.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// 发件人没有未读
	count, err = svc.CountUnread(landlord.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestMessageService_InboxAndSent(t *testing.T) {
	db := setupTestDB(t)
	landlord := createTestLandlord(t, db)
	tenant := createTestTenant(t, db)

	svc := services.NewMessageService(db)
	_, err := svc.Send(landlord.ID, tenant.ID, "", "来自房东")
	assert.NoError(t, err)
	_, err = svc.Send(tenant.ID, landlord.ID, "", "来自租客")
	assert.NoError(t, err)

	inbox, total, err := svc.GetInboxWithPage(tenant.ID, 1, 10)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "来自房东", inbox[0].Content)

	sent, total, err := svc.GetSentWithPage(tenant.ID, 1, 10)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "来自租客", sent[0].Content)
}

func TestMessageService_Delete_NotFoundIsNoop(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewMessageService(db)

	err := svc.Delete(99999)
	assert.NoError(t, err)
}
