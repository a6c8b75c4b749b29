package models

import (
	"time"

	"gorm.io/datatypes"
)

// MaintenanceRequest 维修工单模型
type MaintenanceRequest struct {
	BaseModel
	TenantID    uint           `json:"tenant_id" gorm:"not null;index"`
	UnitID      uint           `json:"unit_id" gorm:"not null;index"`
	Title       string         `json:"title" gorm:"not null;size:100"`
	Description string         `json:"description" gorm:"type:text"`
	Status      string         `json:"status" gorm:"default:'open';size:20;index"`
	Priority    string         `json:"priority" gorm:"default:'medium';size:20;index"`
	CompletedAt *time.Time     `json:"completed_at"`
	Photos      datatypes.JSON `gorm:"type:json" json:"photos"`

	// 关联
	Tenant   *User                `gorm:"foreignKey:TenantID" json:"tenant,omitempty"`
	Unit     *Unit                `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
	Comments []MaintenanceComment `gorm:"foreignKey:RequestID" json:"comments,omitempty"`
}

// TableName 指定表名
func (MaintenanceRequest) TableName() string {
	return "maintenance_requests"
}

// MaintenanceComment 工单留言
type MaintenanceComment struct {
	BaseModel
	RequestID uint   `json:"request_id" gorm:"not null;index"`
	UserID    uint   `json:"user_id" gorm:"not null"`
	Content   string `json:"content" gorm:"not null;type:text"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (MaintenanceComment) TableName() string {
	return "maintenance_comments"
}

// 工单状态常量
const (
	MaintenanceStatusOpen       = "open"
	MaintenanceStatusInProgress = "in_progress"
	MaintenanceStatusCompleted  = "completed"
	MaintenanceStatusCancelled  = "cancelled"
)

// 工单优先级常量
const (
	MaintenancePriorityLow    = "low"
	MaintenancePriorityMedium = "medium"
	MaintenancePriorityHigh   = "high"
	MaintenancePriorityUrgent = "urgent"
)
