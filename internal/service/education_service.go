package service

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/devfolio/internal/db"
)

var (
	// ErrEducationNotFound 在指定教育经历不存在时返回
	ErrEducationNotFound = errors.New("education not found")
	// ErrEducationInvalidInput 在必填字段缺失时返回
	ErrEducationInvalidInput = errors.New("invalid education input")
)

// EducationService 负责教育经历的增删改查。
type EducationService struct {
	db *gorm.DB
}

// NewEducationService 构造 EducationService。
func NewEducationService(gdb *gorm.DB) *EducationService {
	return &EducationService{db: gdb}
}

// EducationInput 描述创建或更新教育经历时可设置的字段。
type EducationInput struct {
	Institution  *string
	Degree       *string
	Field        *string
	StartDate    *string
	EndDate      OptionalString
	Current      *bool
	Achievements []string
	SortOrder    *int
	Visible      *bool
}

// List 返回教育经历集合，排序为 sort_order ASC, start_date DESC, id ASC。
func (s *EducationService) List(includeHidden bool) ([]db.Education, error) {
	query := s.db.Model(&db.Education{})
	if !includeHidden {
		query = query.Where("visible = ?", true)
	}

	var items []db.Education
	if err := query.Order("sort_order ASC, start_date DESC, id ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list education: %w", err)
	}
	return items, nil
}

// Get 根据主键获取教育经历。
func (s *EducationService) Get(id uint) (*db.Education, error) {
	var item db.Education
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEducationNotFound
		}
		return nil, fmt.Errorf("get education: %w", err)
	}
	return &item, nil
}

// Create 新建教育经历，Institution 与 Degree 为必填。
func (s *EducationService) Create(input EducationInput) (*db.Education, error) {
	missing := missingFields(
		requiredField{"institution", input.Institution},
		requiredField{"degree", input.Degree},
	)
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", ErrEducationInvalidInput, strings.Join(missing, ", "))
	}

	item := db.Education{
		Institution: strings.TrimSpace(*input.Institution),
		Degree:      strings.TrimSpace(*input.Degree),
		Visible:     true,
	}
	applyEducationInput(&item, input)

	if err := s.db.Create(&item).Error; err != nil {
		return nil, fmt.Errorf("create education: %w", err)
	}
	return &item, nil
}

// Update 部分更新教育经历，未出现的字段保持原值。
func (s *EducationService) Update(id uint, input EducationInput) (*db.Education, error) {
	var item db.Education
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEducationNotFound
		}
		return nil, fmt.Errorf("find education: %w", err)
	}

	if input.Institution != nil {
		trimmed := strings.TrimSpace(*input.Institution)
		if trimmed == "" {
			return nil, fmt.Errorf("%w: missing institution", ErrEducationInvalidInput)
		}
		item.Institution = trimmed
	}
	if input.Degree != nil {
		trimmed := strings.TrimSpace(*input.Degree)
		if trimmed == "" {
			return nil, fmt.Errorf("%w: missing degree", ErrEducationInvalidInput)
		}
		item.Degree = trimmed
	}
	applyEducationInput(&item, input)

	if err := s.db.Save(&item).Error; err != nil {
		return nil, fmt.Errorf("update education: %w", err)
	}
	return &item, nil
}

// Delete 删除指定教育经历，不存在时返回 ErrEducationNotFound。
func (s *EducationService) Delete(id uint) error {
	result := s.db.Delete(&db.Education{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete education: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrEducationNotFound
	}
	return nil
}

func applyEducationInput(item *db.Education, input EducationInput) {
	if input.Field != nil {
		item.Field = strings.TrimSpace(*input.Field)
	}
	if input.StartDate != nil {
		item.StartDate = strings.TrimSpace(*input.StartDate)
	}
	if input.EndDate.Set {
		item.EndDate = input.EndDate.Value
	}
	if input.Current != nil {
		item.Current = *input.Current
	}
	if input.Achievements != nil {
		item.Achievements = datatypes.NewJSONSlice(input.Achievements)
	}
	if input.SortOrder != nil {
		item.SortOrder = *input.SortOrder
	}
	if input.Visible != nil {
		item.Visible = *input.Visible
	}
}
