package models

import (
	"gorm.io/datatypes"
)

// Property 房产模型
type Property struct {
	BaseModel
	LandlordID    uint           `json:"landlord_id" gorm:"not null;index"`
	Name          string         `json:"name" gorm:"not null;size:100"`
	Address       string         `json:"address" gorm:"not null;size:255"`
	City          string         `json:"city" gorm:"size:50;index"`
	Description   string         `json:"description" gorm:"type:text"`
	Status        string         `json:"status" gorm:"default:'active';size:20;index"`
	TotalUnits    int            `json:"total_units" gorm:"default:0"`
	OccupiedUnits int            `json:"occupied_units" gorm:"default:0"`
	Amenities     datatypes.JSON `gorm:"type:json" json:"amenities"`

	// 关联
	Landlord *User  `gorm:"foreignKey:LandlordID" json:"landlord,omitempty"`
	Units    []Unit `gorm:"foreignKey:PropertyID" json:"units,omitempty"`
}

// TableName 指定表名
func (Property) TableName() string {
	return "properties"
}

// 房产状态常量
const (
	PropertyStatusActive      = "active"
	PropertyStatusInactive    = "inactive"
	PropertyStatusMaintenance = "maintenance"
)
