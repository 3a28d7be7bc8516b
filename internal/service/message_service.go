package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"gorm.io/gorm"

	"github.com/devfolio/internal/db"
	"github.com/devfolio/internal/mailer"
)

var (
	// ErrMessageNotFound 在指定留言不存在时返回
	ErrMessageNotFound = errors.New("message not found")
	// ErrMessageInvalidInput 在必填字段缺失时返回
	ErrMessageInvalidInput = errors.New("invalid message input")
	// ErrMessageInvalidStatus 在状态值不在枚举内时返回
	ErrMessageInvalidStatus = errors.New("invalid message status")
)

var messageStatuses = []string{
	db.MessageStatusUnread,
	db.MessageStatusRead,
	db.MessageStatusReplied,
}

// MessageService 负责联系表单留言的落库与后台管理。
// 通知邮件为尽力而为：投递失败只记日志，留言照常落库。
type MessageService struct {
	db       *gorm.DB
	notifier mailer.Notifier
}

// NewMessageService 构造 MessageService，notifier 可为 nil。
func NewMessageService(gdb *gorm.DB, notifier mailer.Notifier) *MessageService {
	return &MessageService{db: gdb, notifier: notifier}
}

// MessageInput 描述一次联系表单提交。
type MessageInput struct {
	Name    string
	Email   string
	Subject string
	Body    string
}

// MessageFilter 描述后台留言列表的过滤条件。
type MessageFilter struct {
	Status          string
	IncludeArchived bool
}

// Create 落库一条留言并尝试发送通知邮件。
func (s *MessageService) Create(input MessageInput) (*db.Message, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	body := strings.TrimSpace(input.Body)

	var missing []string
	if name == "" {
		missing = append(missing, "name")
	}
	if email == "" {
		missing = append(missing, "email")
	}
	if body == "" {
		missing = append(missing, "body")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", ErrMessageInvalidInput, strings.Join(missing, ", "))
	}

	message := db.Message{
		Name:    name,
		Email:   email,
		Subject: strings.TrimSpace(input.Subject),
		Body:    body,
		Status:  db.MessageStatusUnread,
	}

	if err := s.db.Create(&message).Error; err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyContact(message.Name, message.Email, message.Subject, message.Body); err != nil {
			slog.Error("contact notification failed", slog.Uint64("message_id", uint64(message.ID)), slog.Any("error", err))
		}
	}

	return &message, nil
}

// List 返回留言集合，按创建时间倒序。
// 默认排除已归档条目，可按状态过滤。
func (s *MessageService) List(filter MessageFilter) ([]db.Message, error) {
	query := s.db.Model(&db.Message{})
	if !filter.IncludeArchived {
		query = query.Where("archived = ?", false)
	}
	if strings.TrimSpace(filter.Status) != "" {
		status := strings.ToUpper(strings.TrimSpace(filter.Status))
		if !validMessageStatus(status) {
			return nil, fmt.Errorf("%w: %s", ErrMessageInvalidStatus, filter.Status)
		}
		query = query.Where("status = ?", status)
	}

	var items []db.Message
	if err := query.Order("created_at DESC, id DESC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return items, nil
}

// UpdateStatus 修改留言状态。
func (s *MessageService) UpdateStatus(id uint, status string) (*db.Message, error) {
	normalized := strings.ToUpper(strings.TrimSpace(status))
	if !validMessageStatus(normalized) {
		return nil, fmt.Errorf("%w: %s", ErrMessageInvalidStatus, status)
	}

	var message db.Message
	if err := s.db.First(&message, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, fmt.Errorf("find message: %w", err)
	}

	message.Status = normalized
	if err := s.db.Save(&message).Error; err != nil {
		return nil, fmt.Errorf("update message status: %w", err)
	}
	return &message, nil
}

// SetArchived 设置或取消归档标记。
func (s *MessageService) SetArchived(id uint, archived bool) (*db.Message, error) {
	var message db.Message
	if err := s.db.First(&message, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, fmt.Errorf("find message: %w", err)
	}

	message.Archived = archived
	if err := s.db.Save(&message).Error; err != nil {
		return nil, fmt.Errorf("archive message: %w", err)
	}
	return &message, nil
}

// Delete 删除指定留言，不存在时返回 ErrMessageNotFound。
func (s *MessageService) Delete(id uint) error {
	result := s.db.Delete(&db.Message{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete message: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrMessageNotFound
	}
	return nil
}

func validMessageStatus(status string) bool {
	for _, candidate := range messageStatuses {
		if status == candidate {
			return true
		}
	}
	return false
}
