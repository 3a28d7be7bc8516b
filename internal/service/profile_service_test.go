package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/devfolio/internal/db"
)

func setupProfileServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:profile-service-%d?mode=memory&cache=shared", time.Now().UnixNano())
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

func TestProfileServiceSaveCreatesLazily(t *testing.T) {
	gdb := setupProfileServiceTestDB(t)
	svc := NewProfileService(gdb)

	if _, err := svc.Get(); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound on empty table, got %v", err)
	}

	saved, err := svc.Save(ProfileInput{FullName: strPtr("张三"), Title: strPtr("后端工程师")})
	if err != nil {
		t.Fatalf("save profile: %v", err)
	}
	if saved.FullName != "张三" || !saved.Visible {
		t.Fatalf("unexpected created profile: %+v", saved)
	}

	// 单行约束：重复保存仍只有一行
	if _, err := svc.Save(ProfileInput{Bio: strPtr("写 Go 的")}); err != nil {
		t.Fatalf("second save: %v", err)
	}
	var count int64
	if err := gdb.Model(&db.Profile{}).Count(&count).Error; err != nil {
		t.Fatalf("count profiles: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected single profile row, got %d", count)
	}
}

func TestProfileServiceSaveMergesFields(t *testing.T) {
	gdb := setupProfileServiceTestDB(t)
	svc := NewProfileService(gdb)

	if _, err := svc.Save(ProfileInput{
		FullName: strPtr("张三"),
		Email:    strPtr("me@example.com"),
		Socials:  map[string]any{"github": "https://github.com/zhangsan"},
	}); err != nil {
		t.Fatalf("initial save: %v", err)
	}

	updated, err := svc.Save(ProfileInput{Title: strPtr("全栈工程师")})
	if err != nil {
		t.Fatalf("merge save: %v", err)
	}

	if updated.Title != "全栈工程师" {
		t.Fatalf("expected updated title, got %s", updated.Title)
	}
	if updated.FullName != "张三" || updated.Email != "me@example.com" {
		t.Fatalf("omitted fields should be retained: %+v", updated)
	}
	if updated.Socials["github"] != "https://github.com/zhangsan" {
		t.Fatalf("socials lost on merge: %v", updated.Socials)
	}
}

func TestProfileServiceGetPublicMissingDoesNotRetry(t *testing.T) {
	gdb := setupProfileServiceTestDB(t)
	svc := NewProfileService(gdb)

	var sleeps []time.Duration
	svc.SetSleep(func(d time.Duration) { sleeps = append(sleeps, d) })

	if _, err := svc.GetPublic(); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
	// 记录确实不存在时重试没有意义
	if len(sleeps) != 0 {
		t.Fatalf("expected no retry sleeps, got %v", sleeps)
	}
}

func TestProfileServiceGetPublicRetriesWithBackoff(t *testing.T) {
	gdb := setupProfileServiceTestDB(t)
	svc := NewProfileService(gdb)

	// 关闭底层连接模拟存储故障
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("unwrap sql db: %v", err)
	}
	sqlDB.Close()

	var sleeps []time.Duration
	svc.SetSleep(func(d time.Duration) { sleeps = append(sleeps, d) })

	if _, err := svc.GetPublic(); err == nil {
		t.Fatal("expected error after exhausted retries")
	}

	want := []time.Duration{50 * time.Millisecond, 100 * time.Millisecond}
	if len(sleeps) != len(want) {
		t.Fatalf("expected %d retry waits, got %v", len(want), sleeps)
	}
	for i, d := range want {
		if sleeps[i] != d {
			t.Fatalf("wait %d: expected %v, got %v", i, d, sleeps[i])
		}
	}
}

func TestProfileServiceGetPublicUsesCache(t *testing.T) {
	gdb := setupProfileServiceTestDB(t)

	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	svc := NewProfileServiceWithClock(gdb, func() time.Time { return now })
	svc.SetSleep(func(time.Duration) {})

	if _, err := svc.Save(ProfileInput{FullName: strPtr("张三")}); err != nil {
		t.Fatalf("save profile: %v", err)
	}
	if _, err := svc.GetPublic(); err != nil {
		t.Fatalf("warm cache: %v", err)
	}

	// 断开存储后缓存仍可用
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("unwrap sql db: %v", err)
	}
	sqlDB.Close()

	cached, err := svc.GetPublic()
	if err != nil {
		t.Fatalf("expected cache hit after db failure, got %v", err)
	}
	if cached.FullName != "张三" {
		t.Fatalf("unexpected cached profile: %+v", cached)
	}

	// TTL 过期后缓存失效，故障开始可见
	now = now.Add(2 * time.Minute)
	if _, err := svc.GetPublic(); err == nil {
		t.Fatal("expected error after cache expiry with db down")
	}
}

func TestProfileServiceSaveInvalidatesCache(t *testing.T) {
	gdb := setupProfileServiceTestDB(t)

	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	svc := NewProfileServiceWithClock(gdb, func() time.Time { return now })

	if _, err := svc.Save(ProfileInput{FullName: strPtr("旧名字")}); err != nil {
		t.Fatalf("save profile: %v", err)
	}
	if _, err := svc.GetPublic(); err != nil {
		t.Fatalf("warm cache: %v", err)
	}

	if _, err := svc.Save(ProfileInput{FullName: strPtr("新名字")}); err != nil {
		t.Fatalf("update profile: %v", err)
	}

	profile, err := svc.GetPublic()
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if profile.FullName != "新名字" {
		t.Fatalf("stale cache served after save: %s", profile.FullName)
	}
}
