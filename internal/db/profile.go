package db

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProfileKeyDefault 是 Profile 单行记录使用的固定键。
// 通过唯一索引保证库里最多只有一条生效档案，而不是依赖"取第一行"的约定。
const ProfileKeyDefault = "default"

// Profile 保存站点主人的个人档案，整站只有一条记录。
// AvatarKey 为对象存储内部路径，公开接口不会返回。
type Profile struct {
	gorm.Model
	ProfileKey string `gorm:"size:32;uniqueIndex;not null;default:default"`
	FullName   string `gorm:"size:120"`
	Title      string `gorm:"size:160"`
	Bio        string `gorm:"type:text"`
	AvatarURL  string `gorm:"size:512"`
	AvatarKey  string `gorm:"size:512"`
	Email      string `gorm:"size:160"`
	Phone      string `gorm:"size:40"`
	Location   string `gorm:"size:120"`
	Website    string `gorm:"size:255"`
	// Socials 为平台名到链接的映射，例如 {"github": "https://..."}
	Socials datatypes.JSONMap
	Visible bool
}

// TableName 返回自定义表名
func (Profile) TableName() string {
	return "profiles"
}
