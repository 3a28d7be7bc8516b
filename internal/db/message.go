package db

import "gorm.io/gorm"

// Message 状态枚举
const (
	MessageStatusUnread  = "UNREAD"
	MessageStatusRead    = "READ"
	MessageStatusReplied = "REPLIED"
)

// Message 保存联系表单的一次提交。
// Archived 为软删除标记，默认列表不展示已归档条目。
type Message struct {
	gorm.Model
	Name     string `gorm:"size:120;not null"`
	Email    string `gorm:"size:160;not null"`
	Subject  string `gorm:"size:200"`
	Body     string `gorm:"type:text;not null"`
	Status   string `gorm:"size:16;default:UNREAD"`
	Archived bool   `gorm:"default:false"`
}
