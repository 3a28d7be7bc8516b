package db

import "gorm.io/gorm"

// SiteSetting 存储后台可配置的站点级键值对，值为 JSON 文本。
type SiteSetting struct {
	gorm.Model
	Key   string `gorm:"size:100;uniqueIndex;not null"`
	Value string `gorm:"type:text"`
}

// TableName 自定义表名以保持命名一致。
func (SiteSetting) TableName() string {
	return "site_settings"
}

const (
	// SettingKeyColors 表示主题配色。
	SettingKeyColors = "colors"
	// SettingKeyFonts 表示字体配置。
	SettingKeyFonts = "fonts"
	// SettingKeySocial 表示社交链接。
	SettingKeySocial = "social"
	// SettingKeyContact 表示联系方式。
	SettingKeyContact = "contact"
	// SettingKeyAnalytics 表示统计分析配置，仅后台可见。
	SettingKeyAnalytics = "analytics"
)
