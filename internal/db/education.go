package db

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Education 表示一段教育经历。
// Current 为真时表示仍在就读，EndDate 可显式置空。
type Education struct {
	gorm.Model
	Institution  string  `gorm:"size:200;not null"`
	Degree       string  `gorm:"size:160;not null"`
	Field        string  `gorm:"size:160"`
	StartDate    string  `gorm:"size:10"`
	EndDate      *string `gorm:"size:10"`
	Current      bool    `gorm:"default:false"`
	Achievements datatypes.JSONSlice[string]
	SortOrder    int `gorm:"default:0"`
	Visible      bool
}
