package service

import (
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/devfolio/internal/db"
)

// SiteSettings 描述后台可配置的站点信息，每个分组是一个开放的 JSON 对象。
type SiteSettings struct {
	Colors    map[string]any `json:"colors"`
	Fonts     map[string]any `json:"fonts"`
	Social    map[string]any `json:"social"`
	Contact   map[string]any `json:"contact"`
	Analytics map[string]any `json:"analytics"`
}

// SiteSettingsInput 用于更新站点设置，nil 分组保持原值。
type SiteSettingsInput struct {
	Colors    map[string]any
	Fonts     map[string]any
	Social    map[string]any
	Contact   map[string]any
	Analytics map[string]any
}

// SiteSettingService 提供站点设置的读取与更新能力。
type SiteSettingService struct {
	db *gorm.DB
}

// NewSiteSettingService 构造 SiteSettingService。
func NewSiteSettingService(gdb *gorm.DB) *SiteSettingService {
	return &SiteSettingService{db: gdb}
}

var settingKeys = []string{
	db.SettingKeyColors,
	db.SettingKeyFonts,
	db.SettingKeySocial,
	db.SettingKeyContact,
	db.SettingKeyAnalytics,
}

// GetSettings 读取站点设置，未设置的分组返回空对象。
func (s *SiteSettingService) GetSettings() (SiteSettings, error) {
	result := SiteSettings{
		Colors:    map[string]any{},
		Fonts:     map[string]any{},
		Social:    map[string]any{},
		Contact:   map[string]any{},
		Analytics: map[string]any{},
	}

	var records []db.SiteSetting
	if err := s.db.Where("key IN ?", settingKeys).Find(&records).Error; err != nil {
		return result, fmt.Errorf("load site settings: %w", err)
	}

	for _, record := range records {
		var blob map[string]any
		if err := json.Unmarshal([]byte(record.Value), &blob); err != nil {
			continue // 脏数据跳过，保持空对象
		}
		switch record.Key {
		case db.SettingKeyColors:
			result.Colors = blob
		case db.SettingKeyFonts:
			result.Fonts = blob
		case db.SettingKeySocial:
			result.Social = blob
		case db.SettingKeyContact:
			result.Contact = blob
		case db.SettingKeyAnalytics:
			result.Analytics = blob
		}
	}

	return result, nil
}

// UpdateSettings 保存站点设置，只覆盖请求中出现的分组。
func (s *SiteSettingService) UpdateSettings(input SiteSettingsInput) (SiteSettings, error) {
	groups := map[string]map[string]any{
		db.SettingKeyColors:    input.Colors,
		db.SettingKeyFonts:     input.Fonts,
		db.SettingKeySocial:    input.Social,
		db.SettingKeyContact:   input.Contact,
		db.SettingKeyAnalytics: input.Analytics,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, key := range settingKeys {
			blob := groups[key]
			if blob == nil {
				continue
			}
			raw, err := json.Marshal(blob)
			if err != nil {
				return fmt.Errorf("marshal setting %s: %w", key, err)
			}
			if err := upsertSetting(tx, key, string(raw)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return SiteSettings{}, fmt.Errorf("update site settings: %w", err)
	}

	return s.GetSettings()
}

func upsertSetting(tx *gorm.DB, key, value string) error {
	setting := db.SiteSetting{Key: key, Value: value}
	if err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value":      value,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(&setting).Error; err != nil {
		return fmt.Errorf("upsert setting %s: %w", key, err)
	}
	return nil
}
