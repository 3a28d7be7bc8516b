package db

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Project 表示作品集中的一个项目。
// EndDate 使用指针表示"进行中"（显式置空）与"未填写"的区别。
type Project struct {
	gorm.Model
	Title       string `gorm:"size:200;not null"`
	Description string `gorm:"type:text;not null"`
	ShortDesc   string `gorm:"size:500"`
	// TechStack 为有序的技术栈标签列表
	TechStack datatypes.JSONSlice[string]
	Category  string  `gorm:"size:80;not null"`
	Status    string  `gorm:"size:40"`
	Featured  bool    `gorm:"default:false"`
	GithubURL string  `gorm:"size:512"`
	LiveURL   string  `gorm:"size:512"`
	CoverURL  string  `gorm:"size:512"`
	CoverKey  string  `gorm:"size:512"`
	StartDate string  `gorm:"size:10"`
	EndDate   *string `gorm:"size:10"`
	SortOrder int     `gorm:"default:0"`
	Visible   bool
}
