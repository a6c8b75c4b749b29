package models

// Unit 房源单元模型
type Unit struct {
	BaseModel
	PropertyID    uint    `json:"property_id" gorm:"not null;index"`
	UnitNumber    string  `json:"unit_number" gorm:"not null;size:20"`
	Bedrooms      int     `json:"bedrooms" gorm:"default:1"`
	Bathrooms     int     `json:"bathrooms" gorm:"default:1"`
	AreaSqm       float64 `json:"area_sqm"`
	Status        string  `json:"status" gorm:"default:'available';size:20;index"`
	RentAmount    float64 `json:"rent_amount" gorm:"not null"`
	DepositAmount float64 `json:"deposit_amount"`

	// 关联
	Property *Property `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
}

// TableName 指定表名
func (Unit) TableName() string {
	return "units"
}

// 单元状态常量
const (
	UnitStatusAvailable   = "available"
	UnitStatusOccupied    = "occupied"
	UnitStatusReserved    = "reserved"
	UnitStatusMaintenance = "maintenance"
)
