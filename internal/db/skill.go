package db

import "gorm.io/gorm"

// Skill 表示一项技能条目
// Level 取值范围 0-100，由 service 层校验
// ImageUrl 与 Icon 二选一展示，前者优先
// SortOrder 值越小越靠前，Category 相同的技能会在前台归为一组
type Skill struct {
	gorm.Model
	Name        string `gorm:"size:120;not null"`
	Category    string `gorm:"size:80"`
	Level       int    `gorm:"default:0"`
	Icon        string `gorm:"size:80"`
	ImageURL    string `gorm:"size:512"`
	ImageKey    string `gorm:"size:512"`
	Description string `gorm:"type:text"`
	SortOrder   int    `gorm:"default:0"`
	// 不带列默认值：带 default 标签时 gorm 会丢弃零值 false，导致隐藏条目落库为可见
	Visible bool
}
