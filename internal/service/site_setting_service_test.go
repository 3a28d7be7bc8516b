package service

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/devfolio/internal/db"
)

func setupSiteSettingServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:setting-service-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return gdb
}

func TestSiteSettingServiceDefaultsToEmptyGroups(t *testing.T) {
	gdb := setupSiteSettingServiceTestDB(t)
	svc := NewSiteSettingService(gdb)

	settings, err := svc.GetSettings()
	if err != nil {
		t.Fatalf("get settings: %v", err)
	}
	if settings.Colors == nil || len(settings.Colors) != 0 {
		t.Fatalf("expected empty colors group, got %v", settings.Colors)
	}
	if settings.Analytics == nil || len(settings.Analytics) != 0 {
		t.Fatalf("expected empty analytics group, got %v", settings.Analytics)
	}
}

func TestSiteSettingServiceUpdateOnlyTouchesPresentGroups(t *testing.T) {
	gdb := setupSiteSettingServiceTestDB(t)
	svc := NewSiteSettingService(gdb)

	if _, err := svc.UpdateSettings(SiteSettingsInput{
		Colors: map[string]any{"primary": "#0f172a"},
		Social: map[string]any{"github": "https://github.com/zhangsan"},
	}); err != nil {
		t.Fatalf("initial update: %v", err)
	}

	// 只提交 social，colors 保持原值
	settings, err := svc.UpdateSettings(SiteSettingsInput{
		Social: map[string]any{"github": "https://github.com/lisi"},
	})
	if err != nil {
		t.Fatalf("partial update: %v", err)
	}

	if settings.Colors["primary"] != "#0f172a" {
		t.Fatalf("untouched group changed: %v", settings.Colors)
	}
	if settings.Social["github"] != "https://github.com/lisi" {
		t.Fatalf("submitted group not updated: %v", settings.Social)
	}
}

func TestSiteSettingServiceUpsertKeepsSingleRowPerKey(t *testing.T) {
	gdb := setupSiteSettingServiceTestDB(t)
	svc := NewSiteSettingService(gdb)

	for i := 0; i < 3; i++ {
		if _, err := svc.UpdateSettings(SiteSettingsInput{
			Fonts: map[string]any{"heading": fmt.Sprintf("font-%d", i)},
		}); err != nil {
			t.Fatalf("update %d: %v", i, err)
		}
	}

	var count int64
	if err := gdb.Model(&db.SiteSetting{}).Where("key = ?", db.SettingKeyFonts).Count(&count).Error; err != nil {
		t.Fatalf("count setting rows: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected single row for fonts key, got %d", count)
	}

	settings, err := svc.GetSettings()
	if err != nil {
		t.Fatalf("get settings: %v", err)
	}
	if settings.Fonts["heading"] != "font-2" {
		t.Fatalf("last write should win, got %v", settings.Fonts)
	}
}
