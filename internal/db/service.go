package db

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Service 表示对外提供的服务项（如 Web 开发、技术咨询）。
type Service struct {
	gorm.Model
	Title       string `gorm:"size:200;not null"`
	Description string `gorm:"type:text;not null"`
	// Features 为有序的亮点列表
	Features  datatypes.JSONSlice[string]
	Category  string `gorm:"size:80"`
	Featured  bool   `gorm:"default:false"`
	Icon      string `gorm:"size:80"`
	ImageURL  string `gorm:"size:512"`
	ImageKey  string `gorm:"size:512"`
	SortOrder int `gorm:"default:0"`
	Visible   bool
}
