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
	// ErrProjectNotFound 在指定项目不存在时返回
	ErrProjectNotFound = errors.New("project not found")
	// ErrProjectInvalidInput 在必填字段缺失时返回，包含缺失字段清单
	ErrProjectInvalidInput = errors.New("invalid project input")
)

// ProjectService 负责作品项目的增删改查与公开列表过滤。
type ProjectService struct {
	db *gorm.DB
}

// NewProjectService 构造 ProjectService。
func NewProjectService(gdb *gorm.DB) *ProjectService {
	return &ProjectService{db: gdb}
}

// ProjectInput 描述创建或更新项目时可设置的字段。
// EndDate 使用 OptionalString 以区分"未传"与"显式置空"。
type ProjectInput struct {
	Title       *string
	Description *string
	ShortDesc   *string
	TechStack   []string
	Category    *string
	Status      *string
	Featured    *bool
	GithubURL   *string
	LiveURL     *string
	CoverURL    *string
	CoverKey    *string
	StartDate   *string
	EndDate     OptionalString
	SortOrder   *int
	Visible     *bool
}

// ProjectFilter 描述公开列表的可选过滤条件，三者独立且按 AND 组合。
type ProjectFilter struct {
	Featured *bool
	Category string
	Limit    int
}

// List 返回项目集合，排序为 featured DESC, sort_order ASC, created_at DESC。
// 该顺序驱动前台的精选展示，必须保持稳定。
func (s *ProjectService) List(includeHidden bool, filter ProjectFilter) ([]db.Project, error) {
	query := s.db.Model(&db.Project{})
	if !includeHidden {
		query = query.Where("visible = ?", true)
	}
	if filter.Featured != nil {
		query = query.Where("featured = ?", *filter.Featured)
	}
	if strings.TrimSpace(filter.Category) != "" {
		query = query.Where("category = ?", strings.TrimSpace(filter.Category))
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var items []db.Project
	if err := query.Order("featured DESC, sort_order ASC, created_at DESC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return items, nil
}

// Get 根据主键获取项目。
func (s *ProjectService) Get(id uint) (*db.Project, error) {
	var item db.Project
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return &item, nil
}

// Create 新建项目，Title、Description、Category 为必填。
func (s *ProjectService) Create(input ProjectInput) (*db.Project, error) {
	missing := missingFields(
		requiredField{"title", input.Title},
		requiredField{"description", input.Description},
		requiredField{"category", input.Category},
	)
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", ErrProjectInvalidInput, strings.Join(missing, ", "))
	}

	project := db.Project{
		Title:       strings.TrimSpace(*input.Title),
		Description: *input.Description,
		Category:    strings.TrimSpace(*input.Category),
		Visible:     true,
	}
	applyProjectInput(&project, input)

	if err := s.db.Create(&project).Error; err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return &project, nil
}

// Update 部分更新项目，未出现的字段保持原值；EndDate 显式传 null 时清空。
func (s *ProjectService) Update(id uint, input ProjectInput) (*db.Project, error) {
	var project db.Project
	if err := s.db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("find project: %w", err)
	}

	if input.Title != nil {
		trimmed := strings.TrimSpace(*input.Title)
		if trimmed == "" {
			return nil, fmt.Errorf("%w: missing title", ErrProjectInvalidInput)
		}
		project.Title = trimmed
	}
	if input.Description != nil {
		project.Description = *input.Description
	}
	if input.Category != nil {
		trimmed := strings.TrimSpace(*input.Category)
		if trimmed == "" {
			return nil, fmt.Errorf("%w: missing category", ErrProjectInvalidInput)
		}
		project.Category = trimmed
	}
	applyProjectInput(&project, input)

	if err := s.db.Save(&project).Error; err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	return &project, nil
}

// Delete 删除指定项目，不存在时返回 ErrProjectNotFound。
func (s *ProjectService) Delete(id uint) error {
	result := s.db.Delete(&db.Project{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete project: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrProjectNotFound
	}
	return nil
}

func applyProjectInput(project *db.Project, input ProjectInput) {
	if input.ShortDesc != nil {
		project.ShortDesc = *input.ShortDesc
	}
	if input.TechStack != nil {
		project.TechStack = datatypes.NewJSONSlice(input.TechStack)
	}
	if input.Status != nil {
		project.Status = strings.TrimSpace(*input.Status)
	}
	if input.Featured != nil {
		project.Featured = *input.Featured
	}
	if input.GithubURL != nil {
		project.GithubURL = strings.TrimSpace(*input.GithubURL)
	}
	if input.LiveURL != nil {
		project.LiveURL = strings.TrimSpace(*input.LiveURL)
	}
	if input.CoverURL != nil {
		project.CoverURL = strings.TrimSpace(*input.CoverURL)
	}
	if input.CoverKey != nil {
		project.CoverKey = strings.TrimSpace(*input.CoverKey)
	}
	if input.StartDate != nil {
		project.StartDate = strings.TrimSpace(*input.StartDate)
	}
	if input.EndDate.Set {
		project.EndDate = input.EndDate.Value
	}
	if input.SortOrder != nil {
		project.SortOrder = *input.SortOrder
	}
	if input.Visible != nil {
		project.Visible = *input.Visible
	}
}
