package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/devfolio/internal/db"
)

var (
	// ErrPageNotFound 在指定页面不存在时返回
	ErrPageNotFound = errors.New("page not found")
	// ErrPageInvalidInput 在输入数据不完整时返回
	ErrPageInvalidInput = errors.New("invalid page input")
)

// PageService 负责页面与页面区块的维护。
// 区块写入按 (PageID, Name) 幂等 upsert，同名区块会被更新而不是重复创建。
type PageService struct {
	db *gorm.DB
}

// NewPageService 构造 PageService。
func NewPageService(gdb *gorm.DB) *PageService {
	return &PageService{db: gdb}
}

// SectionInput 描述一次区块 upsert 的全部字段。
type SectionInput struct {
	Name      string
	Type      string
	Title     string
	Subtitle  string
	Content   map[string]any
	SortOrder *int
	Visible   *bool
}

// ListPages 返回全部页面（不含区块），按 slug 升序。
func (s *PageService) ListPages() ([]db.Page, error) {
	var pages []db.Page
	if err := s.db.Order("slug ASC").Find(&pages).Error; err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	return pages, nil
}

// GetBySlug 返回页面及其有序区块。
// includeHidden 为 false 时过滤不可见区块。
func (s *PageService) GetBySlug(slug string, includeHidden bool) (*db.Page, error) {
	var page db.Page
	query := s.db.Where("slug = ?", strings.TrimSpace(slug))
	if includeHidden {
		query = query.Preload("Sections", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("sort_order ASC, id ASC")
		})
	} else {
		query = query.Preload("Sections", func(tx *gorm.DB) *gorm.DB {
			return tx.Where("visible = ?", true).Order("sort_order ASC, id ASC")
		})
	}

	if err := query.First(&page).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, fmt.Errorf("get page %q: %w", slug, err)
	}
	return &page, nil
}

// CreatePage 新建页面，slug 为必填且唯一。
func (s *PageService) CreatePage(slug, title string) (*db.Page, error) {
	trimmed := strings.TrimSpace(slug)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: slug is required", ErrPageInvalidInput)
	}

	page := db.Page{Slug: trimmed, Title: strings.TrimSpace(title)}
	if err := s.db.Create(&page).Error; err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}
	return &page, nil
}

// DeletePage 删除页面并级联删除其全部区块。
// slug 与 (page_id, name) 都有唯一索引，必须物理删除，
// 软删除会把索引占住，导致同名页面再也建不回来。
func (s *PageService) DeletePage(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var page db.Page
		if err := tx.First(&page, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPageNotFound
			}
			return fmt.Errorf("find page: %w", err)
		}

		if err := tx.Unscoped().Where("page_id = ?", page.ID).Delete(&db.PageSection{}).Error; err != nil {
			return fmt.Errorf("delete page sections: %w", err)
		}
		if err := tx.Unscoped().Delete(&page).Error; err != nil {
			return fmt.Errorf("delete page: %w", err)
		}
		return nil
	})
}

// UpsertSections 将一批区块写入指定页面，按 (PageID, Name) 幂等。
// 页面不存在时自动建页。重复提交同一批区块不会产生重复行，
// 后一次提交的字段值覆盖前一次。
func (s *PageService) UpsertSections(slug string, inputs []SectionInput) (*db.Page, error) {
	trimmedSlug := strings.TrimSpace(slug)
	if trimmedSlug == "" {
		return nil, fmt.Errorf("%w: slug is required", ErrPageInvalidInput)
	}
	for _, input := range inputs {
		if strings.TrimSpace(input.Name) == "" {
			return nil, fmt.Errorf("%w: section name is required", ErrPageInvalidInput)
		}
		if strings.TrimSpace(input.Type) == "" {
			return nil, fmt.Errorf("%w: section type is required", ErrPageInvalidInput)
		}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var page db.Page
		if err := tx.Where("slug = ?", trimmedSlug).First(&page).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("find page: %w", err)
			}
			page = db.Page{Slug: trimmedSlug}
			if err := tx.Create(&page).Error; err != nil {
				return fmt.Errorf("create page: %w", err)
			}
		}

		for _, input := range inputs {
			if err := upsertSection(tx, page.ID, input); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetBySlug(trimmedSlug, true)
}

func upsertSection(tx *gorm.DB, pageID uint, input SectionInput) error {
	content := datatypes.JSON("{}")
	if input.Content != nil {
		raw, err := json.Marshal(input.Content)
		if err != nil {
			return fmt.Errorf("%w: section %s content: %v", ErrPageInvalidInput, input.Name, err)
		}
		content = datatypes.JSON(raw)
	}

	sortOrder := 0
	if input.SortOrder != nil {
		sortOrder = *input.SortOrder
	}
	visible := true
	if input.Visible != nil {
		visible = *input.Visible
	}

	section := db.PageSection{
		PageID:    pageID,
		Name:      strings.TrimSpace(input.Name),
		Type:      strings.TrimSpace(input.Type),
		Title:     strings.TrimSpace(input.Title),
		Subtitle:  strings.TrimSpace(input.Subtitle),
		Content:   content,
		SortOrder: sortOrder,
		Visible:   visible,
	}

	if err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "page_id"}, {Name: "name"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"type":       section.Type,
			"title":      section.Title,
			"subtitle":   section.Subtitle,
			"content":    section.Content,
			"sort_order": section.SortOrder,
			"visible":    section.Visible,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(&section).Error; err != nil {
		return fmt.Errorf("upsert section %s: %w", section.Name, err)
	}
	return nil
}
