package db

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Page 表示一个由若干区块组成的前台页面（如 home）。
// 删除页面时级联删除其全部区块。
type Page struct {
	gorm.Model
	Slug     string        `gorm:"size:80;uniqueIndex;not null"`
	Title    string        `gorm:"size:160"`
	Sections []PageSection `gorm:"constraint:OnDelete:CASCADE"`
}

// PageSection 是页面内可排序的命名区块。
// 区块身份由 (PageID, Name) 唯一确定，写入按该键幂等 upsert。
// Content 的结构由 Type 决定，详见 section_content.go。
type PageSection struct {
	gorm.Model
	PageID    uint   `gorm:"uniqueIndex:idx_page_sections_page_name;not null"`
	Name      string `gorm:"size:80;uniqueIndex:idx_page_sections_page_name;not null"`
	Type      string `gorm:"size:40;not null"`
	Title     string `gorm:"size:200"`
	Subtitle  string `gorm:"size:300"`
	Content   datatypes.JSON
	SortOrder int `gorm:"default:0"`
	Visible   bool
}

// TableName 返回自定义表名
func (PageSection) TableName() string {
	return "page_sections"
}
