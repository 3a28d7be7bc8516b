package service

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/devfolio/internal/db"
)

// EntityCount 是单个内容类型的总量与可见量。
// 两个计数取自同一事务快照，恒有 Visible <= Total。
type EntityCount struct {
	Total   int64 `json:"total"`
	Visible int64 `json:"visible"`
}

// DashboardStats 汇总后台首页展示的各类计数。
type DashboardStats struct {
	Skills         EntityCount `json:"skills"`
	Projects       EntityCount `json:"projects"`
	Services       EntityCount `json:"services"`
	Certificates   EntityCount `json:"certificates"`
	Education      EntityCount `json:"education"`
	Messages       int64       `json:"messages"`
	UnreadMessages int64       `json:"unreadMessages"`
}

// DashboardService 为后台面板提供聚合统计。
type DashboardService struct {
	db *gorm.DB
}

// NewDashboardService 构造 DashboardService。
func NewDashboardService(gdb *gorm.DB) *DashboardService {
	return &DashboardService{db: gdb}
}

// Stats 在单个事务内完成全部计数，保证各计数来自同一时间点的一致快照。
func (s *DashboardService) Stats() (DashboardStats, error) {
	var stats DashboardStats

	err := s.db.Transaction(func(tx *gorm.DB) error {
		counts := []struct {
			model any
			dst   *EntityCount
		}{
			{&db.Skill{}, &stats.Skills},
			{&db.Project{}, &stats.Projects},
			{&db.Service{}, &stats.Services},
			{&db.Certificate{}, &stats.Certificates},
			{&db.Education{}, &stats.Education},
		}

		for _, c := range counts {
			if err := tx.Model(c.model).Count(&c.dst.Total).Error; err != nil {
				return err
			}
			if err := tx.Model(c.model).Where("visible = ?", true).Count(&c.dst.Visible).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&db.Message{}).Where("archived = ?", false).Count(&stats.Messages).Error; err != nil {
			return err
		}
		return tx.Model(&db.Message{}).
			Where("archived = ? AND status = ?", false, db.MessageStatusUnread).
			Count(&stats.UnreadMessages).Error
	})
	if err != nil {
		return DashboardStats{}, fmt.Errorf("dashboard stats: %w", err)
	}

	return stats, nil
}
