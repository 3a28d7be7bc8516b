package service

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"gorm.io/gorm"

	"github.com/devfolio/internal/db"
)

var (
	// ErrSkillNotFound 在指定技能不存在时返回
	ErrSkillNotFound = errors.New("skill not found")
	// ErrSkillInvalidInput 在输入数据不完整或超出范围时返回
	ErrSkillInvalidInput = errors.New("invalid skill input")
)

// DefaultSkillCategory 是分组时空分类的兜底桶。
const DefaultSkillCategory = "Other"

// SkillService 负责技能条目的增删改查与前台分组派生。
type SkillService struct {
	db *gorm.DB
}

// NewSkillService 构造 SkillService。
func NewSkillService(gdb *gorm.DB) *SkillService {
	return &SkillService{db: gdb}
}

// SkillInput 描述创建或更新技能时可设置的字段。
// 指针为 nil 表示保持原值（创建时使用默认值）。
type SkillInput struct {
	Name        *string
	Category    *string
	Level       *int
	Icon        *string
	ImageURL    *string
	ImageKey    *string
	Description *string
	SortOrder   *int
	Visible     *bool
}

// SkillFilter 描述公开列表的可选过滤条件。
type SkillFilter struct {
	Category string
	Limit    int
}

// SkillGroup 是按分类分组后的前台视图结构。
type SkillGroup struct {
	Category string
	Skills   []db.Skill
}

// List 返回技能集合，排序为 category ASC, sort_order ASC, level DESC, name ASC。
// includeHidden 为 false 时过滤掉不可见条目。
func (s *SkillService) List(includeHidden bool, filter SkillFilter) ([]db.Skill, error) {
	query := s.db.Model(&db.Skill{})
	if !includeHidden {
		query = query.Where("visible = ?", true)
	}
	if strings.TrimSpace(filter.Category) != "" {
		query = query.Where("category = ?", strings.TrimSpace(filter.Category))
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var items []db.Skill
	if err := query.Order("category ASC, sort_order ASC, level DESC, name ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}
	return items, nil
}

// Get 根据主键获取技能。
func (s *SkillService) Get(id uint) (*db.Skill, error) {
	var item db.Skill
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSkillNotFound
		}
		return nil, fmt.Errorf("get skill: %w", err)
	}
	return &item, nil
}

// Create 新建技能，Name 为必填，Level 必须落在 [0,100]。
func (s *SkillService) Create(input SkillInput) (*db.Skill, error) {
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrSkillInvalidInput)
	}

	skill := db.Skill{Name: strings.TrimSpace(*input.Name), Visible: true}
	if err := applySkillInput(&skill, input); err != nil {
		return nil, err
	}

	if err := s.db.Create(&skill).Error; err != nil {
		return nil, fmt.Errorf("create skill: %w", err)
	}
	return &skill, nil
}

// Update 部分更新技能，未出现的字段保持原值。
func (s *SkillService) Update(id uint, input SkillInput) (*db.Skill, error) {
	var skill db.Skill
	if err := s.db.First(&skill, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSkillNotFound
		}
		return nil, fmt.Errorf("find skill: %w", err)
	}

	if input.Name != nil {
		trimmed := strings.TrimSpace(*input.Name)
		if trimmed == "" {
			return nil, fmt.Errorf("%w: name is required", ErrSkillInvalidInput)
		}
		skill.Name = trimmed
	}
	if err := applySkillInput(&skill, input); err != nil {
		return nil, err
	}

	if err := s.db.Save(&skill).Error; err != nil {
		return nil, fmt.Errorf("update skill: %w", err)
	}
	return &skill, nil
}

// Delete 删除指定技能，不存在时返回 ErrSkillNotFound。
func (s *SkillService) Delete(id uint) error {
	result := s.db.Delete(&db.Skill{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete skill: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrSkillNotFound
	}
	return nil
}

// GroupByCategory 将有序技能列表按分类分组。
// 空分类归入 Other 桶；分组按分类名字典序排列，
// 组内重新按 level DESC, name ASC 排序。纯函数，幂等。
func GroupByCategory(skills []db.Skill) []SkillGroup {
	buckets := make(map[string][]db.Skill)
	for _, skill := range skills {
		category := strings.TrimSpace(skill.Category)
		if category == "" {
			category = DefaultSkillCategory
		}
		buckets[category] = append(buckets[category], skill)
	}

	groups := make([]SkillGroup, 0, len(buckets))
	for category, items := range buckets {
		sorted := append([]db.Skill(nil), items...)
		slices.SortFunc(sorted, func(a, b db.Skill) int {
			if diff := cmp.Compare(b.Level, a.Level); diff != 0 {
				return diff
			}
			return cmp.Compare(a.Name, b.Name)
		})
		groups = append(groups, SkillGroup{Category: category, Skills: sorted})
	}

	slices.SortFunc(groups, func(a, b SkillGroup) int {
		return cmp.Compare(a.Category, b.Category)
	})

	return groups
}

func applySkillInput(skill *db.Skill, input SkillInput) error {
	if input.Level != nil {
		if *input.Level < 0 || *input.Level > 100 {
			return fmt.Errorf("%w: level must be between 0 and 100", ErrSkillInvalidInput)
		}
		skill.Level = *input.Level
	}
	if input.Category != nil {
		skill.Category = strings.TrimSpace(*input.Category)
	}
	if input.Icon != nil {
		skill.Icon = strings.TrimSpace(*input.Icon)
	}
	if input.ImageURL != nil {
		skill.ImageURL = strings.TrimSpace(*input.ImageURL)
	}
	if input.ImageKey != nil {
		skill.ImageKey = strings.TrimSpace(*input.ImageKey)
	}
	if input.Description != nil {
		skill.Description = *input.Description
	}
	if input.SortOrder != nil {
		skill.SortOrder = *input.SortOrder
	}
	if input.Visible != nil {
		skill.Visible = *input.Visible
	}
	return nil
}
