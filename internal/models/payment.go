package models

import "time"

// Payment 租金账单模型
type Payment struct {
	BaseModel
	TenantID  uint       `json:"tenant_id" gorm:"not null;index"`
	LeaseID   uint       `json:"lease_id" gorm:"not null;index"`
	Amount    float64    `json:"amount" gorm:"not null"`
	Status    string     `json:"status" gorm:"default:'pending';size:20;index"`
	DueDate   time.Time  `json:"due_date" gorm:"index"`
	PaidDate  *time.Time `json:"paid_date"`
	Method    string     `json:"method" gorm:"size:30"`    // 支付方式，如 bank_transfer / cash
	Reference string     `json:"reference" gorm:"size:64"` // 支付凭证号，登记时未提供则自动生成
	Notes     string     `json:"notes" gorm:"type:text"`

	// 关联
	Tenant *User  `gorm:"foreignKey:TenantID" json:"tenant,omitempty"`
	Lease  *Lease `gorm:"foreignKey:LeaseID" json:"lease,omitempty"`
}

// TableName 指定表名
func (Payment) TableName() string {
	return "payments"
}

// 账单状态常量
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusOverdue = "overdue"
	PaymentStatusPartial = "partial"
)
