package models

import "time"

// Message 站内消息模型，无会话分组，每条消息独立存在
type Message struct {
	BaseModel
	SenderID   uint       `json:"sender_id" gorm:"not null;index"`
	ReceiverID uint       `json:"receiver_id" gorm:"not null;index"`
	Subject    string     `json:"subject" gorm:"size:200"`
	Content    string     `json:"content" gorm:"not null;type:text"`
	Read       bool       `json:"read" gorm:"default:false;index"`
	ReadAt     *time.Time `json:"read_at"`

	// 关联
	Sender   *User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Receiver *User `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
}

// TableName 指定表名
func (Message) TableName() string {
	return "messages"
}
