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

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func boolPtr(b bool) *bool    { return &b }

func setupSkillServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:skill-service-%d?mode=memory&cache=shared", time.Now().UnixNano())
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

func TestSkillServiceCreateRequiresName(t *testing.T) {
	gdb := setupSkillServiceTestDB(t)
	svc := NewSkillService(gdb)

	if _, err := svc.Create(SkillInput{Category: strPtr("Backend")}); !errors.Is(err, ErrSkillInvalidInput) {
		t.Fatalf("expected ErrSkillInvalidInput, got %v", err)
	}
	if _, err := svc.Create(SkillInput{Name: strPtr("   ")}); !errors.Is(err, ErrSkillInvalidInput) {
		t.Fatalf("expected ErrSkillInvalidInput for blank name, got %v", err)
	}
}

func TestSkillServiceCreateRejectsOutOfRangeLevel(t *testing.T) {
	gdb := setupSkillServiceTestDB(t)
	svc := NewSkillService(gdb)

	if _, err := svc.Create(SkillInput{Name: strPtr("Go"), Level: intPtr(150)}); !errors.Is(err, ErrSkillInvalidInput) {
		t.Fatalf("expected ErrSkillInvalidInput, got %v", err)
	}

	// 校验失败不应落库
	var count int64
	if err := gdb.Model(&db.Skill{}).Count(&count).Error; err != nil {
		t.Fatalf("count skills: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no persisted skill, got %d", count)
	}
}

func TestSkillServiceCreateHiddenStaysHidden(t *testing.T) {
	gdb := setupSkillServiceTestDB(t)
	svc := NewSkillService(gdb)

	created, err := svc.Create(SkillInput{Name: strPtr("Secret"), Visible: boolPtr(false)})
	if err != nil {
		t.Fatalf("create skill: %v", err)
	}

	// false 必须原样落库，不能被列默认值吃掉
	var persisted db.Skill
	if err := gdb.First(&persisted, created.ID).Error; err != nil {
		t.Fatalf("reload skill: %v", err)
	}
	if persisted.Visible {
		t.Fatal("skill created hidden was persisted as visible")
	}

	public, err := svc.List(false, SkillFilter{})
	if err != nil {
		t.Fatalf("list skills: %v", err)
	}
	if len(public) != 0 {
		t.Fatalf("hidden skill appeared in public list: %d rows", len(public))
	}
}

func TestSkillServiceListOrderingAndVisibility(t *testing.T) {
	gdb := setupSkillServiceTestDB(t)
	svc := NewSkillService(gdb)

	seed := []db.Skill{
		{Name: "Rust", Category: "Backend", Level: 60, SortOrder: 1, Visible: true},
		{Name: "Go", Category: "Backend", Level: 90, SortOrder: 0, Visible: true},
		{Name: "Postgres", Category: "Backend", Level: 90, SortOrder: 0, Visible: true},
		{Name: "React", Category: "Frontend", Level: 80, SortOrder: 0, Visible: true},
		{Name: "Figma", Category: "Design", Level: 50, SortOrder: 0, Visible: false},
	}
	for i := range seed {
		if err := gdb.Create(&seed[i]).Error; err != nil {
			t.Fatalf("seed skill: %v", err)
		}
	}

	skills, err := svc.List(false, SkillFilter{})
	if err != nil {
		t.Fatalf("list skills: %v", err)
	}

	want := []string{"Go", "Postgres", "Rust", "React"}
	if len(skills) != len(want) {
		t.Fatalf("expected %d skills, got %d", len(want), len(skills))
	}
	for i, name := range want {
		if skills[i].Name != name {
			t.Fatalf("position %d: expected %s, got %s", i, name, skills[i].Name)
		}
	}

	all, err := svc.List(true, SkillFilter{})
	if err != nil {
		t.Fatalf("list all skills: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("expected 5 skills with hidden included, got %d", len(all))
	}
}

func TestSkillServiceListFilters(t *testing.T) {
	gdb := setupSkillServiceTestDB(t)
	svc := NewSkillService(gdb)

	for _, skill := range []db.Skill{
		{Name: "Go", Category: "Backend", Visible: true},
		{Name: "Rust", Category: "Backend", Visible: true},
		{Name: "React", Category: "Frontend", Visible: true},
	} {
		if err := gdb.Create(&skill).Error; err != nil {
			t.Fatalf("seed skill: %v", err)
		}
	}

	backend, err := svc.List(false, SkillFilter{Category: "Backend"})
	if err != nil {
		t.Fatalf("list backend skills: %v", err)
	}
	if len(backend) != 2 {
		t.Fatalf("expected 2 backend skills, got %d", len(backend))
	}

	limited, err := svc.List(false, SkillFilter{Limit: 1})
	if err != nil {
		t.Fatalf("list limited skills: %v", err)
	}
	if len(limited) != 1 {
		t.Fatalf("expected 1 skill with limit, got %d", len(limited))
	}
}

func TestSkillServiceUpdateMergesFields(t *testing.T) {
	gdb := setupSkillServiceTestDB(t)
	svc := NewSkillService(gdb)

	created, err := svc.Create(SkillInput{
		Name:     strPtr("Go"),
		Category: strPtr("Backend"),
		Level:    intPtr(80),
	})
	if err != nil {
		t.Fatalf("create skill: %v", err)
	}

	updated, err := svc.Update(created.ID, SkillInput{Level: intPtr(95)})
	if err != nil {
		t.Fatalf("update skill: %v", err)
	}

	if updated.Level != 95 {
		t.Fatalf("expected level 95, got %d", updated.Level)
	}
	if updated.Name != "Go" || updated.Category != "Backend" {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
}

func TestSkillServiceDeleteMissing(t *testing.T) {
	gdb := setupSkillServiceTestDB(t)
	svc := NewSkillService(gdb)

	if err := svc.Delete(42); !errors.Is(err, ErrSkillNotFound) {
		t.Fatalf("expected ErrSkillNotFound, got %v", err)
	}
}

func TestGroupByCategory(t *testing.T) {
	skills := []db.Skill{
		{Name: "Go", Category: "Backend", Level: 90},
		{Name: "Rust", Category: "Backend", Level: 90},
		{Name: "React", Category: "Frontend", Level: 80},
		{Name: "Scratch", Category: "", Level: 10},
	}

	groups := GroupByCategory(skills)

	wantCategories := []string{"Backend", "Frontend", "Other"}
	if len(groups) != len(wantCategories) {
		t.Fatalf("expected %d groups, got %d", len(wantCategories), len(groups))
	}
	for i, category := range wantCategories {
		if groups[i].Category != category {
			t.Fatalf("group %d: expected %s, got %s", i, category, groups[i].Category)
		}
	}

	// 同级别按名称升序
	backend := groups[0].Skills
	if backend[0].Name != "Go" || backend[1].Name != "Rust" {
		t.Fatalf("unexpected backend order: %s, %s", backend[0].Name, backend[1].Name)
	}

	// 幂等：重复分组结果一致
	again := GroupByCategory(skills)
	if len(again) != len(groups) {
		t.Fatalf("grouping not idempotent: %d vs %d groups", len(again), len(groups))
	}
	for i := range groups {
		if again[i].Category != groups[i].Category || len(again[i].Skills) != len(groups[i].Skills) {
			t.Fatalf("grouping not idempotent at group %d", i)
		}
	}
}
