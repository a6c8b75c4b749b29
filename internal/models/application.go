package models

import "time"

// Application 租房申请模型
type Application struct {
	BaseModel
	TenantID               uint       `json:"tenant_id" gorm:"not null;index"`
	UnitID                 uint       `json:"unit_id" gorm:"not null;index"`
	Status                 string     `json:"status" gorm:"default:'pending';size:20;index"`
	LandlordRecommendation string     `json:"landlord_recommendation" gorm:"default:'pending';size:20"`
	MoveInDate             *time.Time `json:"move_in_date"`
	Message                string     `json:"message" gorm:"type:text"`
	AdminNotes             string     `json:"admin_notes" gorm:"type:text"`

	// 关联
	Tenant *User `gorm:"foreignKey:TenantID" json:"tenant,omitempty"`
	Unit   *Unit `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
}

// TableName 指定表名
func (Application) TableName() string {
	return "applications"
}

// 申请状态常量
const (
	ApplicationStatusPending   = "pending"
	ApplicationStatusApproved  = "approved"
	ApplicationStatusRejected  = "rejected"
	ApplicationStatusWithdrawn = "withdrawn"
)

// 房东推荐状态常量
const (
	RecommendationPending        = "pending"
	RecommendationRecommended    = "recommended"
	RecommendationNotRecommended = "not_recommended"
)
