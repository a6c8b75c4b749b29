package models

import (
	"gorm.io/datatypes"
)

// Activity 操作审计记录，只追加不修改
type Activity struct {
	BaseModel
	Type        string         `json:"type" gorm:"not null;size:50;index"`
	UserID      uint           `json:"user_id" gorm:"index"`
	Description string         `json:"description" gorm:"not null;size:255"`
	Metadata    datatypes.JSON `gorm:"type:json" json:"metadata"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (Activity) TableName() string {
	return "activities"
}

// 审计事件类型常量
const (
	ActivityTypeUserRegistered       = "user_registered"
	ActivityTypeApplicationSubmitted = "application_submitted"
	ActivityTypeLeaseCreated         = "lease_created"
	ActivityTypeLeaseEnded           = "lease_ended"
	ActivityTypePaymentRecorded      = "payment_recorded"
	ActivityTypePaymentOverdue       = "payment_overdue"
	ActivityTypeMaintenanceCreated   = "maintenance_created"
	ActivityTypeMaintenanceCompleted = "maintenance_completed"
)
