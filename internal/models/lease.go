package models

import "time"

// Lease 租约模型
type Lease struct {
	BaseModel
	TenantID      uint      `json:"tenant_id" gorm:"not null;index"`
	UnitID        uint      `json:"unit_id" gorm:"not null;index"`
	Status        string    `json:"status" gorm:"default:'pending';size:20;index"`
	RentAmount    float64   `json:"rent_amount" gorm:"not null"`
	DepositAmount float64   `json:"deposit_amount"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`

	// 关联
	Tenant *User `gorm:"foreignKey:TenantID" json:"tenant,omitempty"`
	Unit   *Unit `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
}

// TableName 指定表名
func (Lease) TableName() string {
	return "leases"
}

// 租约状态常量
const (
	LeaseStatusPending    = "pending"
	LeaseStatusActive     = "active"
	LeaseStatusEnded      = "ended"
	LeaseStatusTerminated = "terminated"
)
