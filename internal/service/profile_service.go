package service

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/devfolio/internal/cache"
	"github.com/devfolio/internal/db"
)

// ErrProfileNotFound 在档案尚未创建时返回，仅后台读取路径使用。
var ErrProfileNotFound = errors.New("profile not found")

const (
	profileCacheTTL      = time.Minute
	profileReadAttempts  = 3
	profileRetryBaseWait = 50 * time.Millisecond
)

// ProfileService 维护站点主人的单条档案记录。
// 公开读取带重试与短 TTL 缓存，读不到时由 handler 回退到内置档案。
type ProfileService struct {
	db    *gorm.DB
	memo  *cache.TTLCache[db.Profile]
	sleep func(time.Duration)
}

// NewProfileService 构造 ProfileService。
func NewProfileService(gdb *gorm.DB) *ProfileService {
	return NewProfileServiceWithClock(gdb, nil)
}

// NewProfileServiceWithClock 允许注入时钟，测试中用来控制缓存过期。
func NewProfileServiceWithClock(gdb *gorm.DB, clock cache.Clock) *ProfileService {
	return &ProfileService{
		db:    gdb,
		memo:  cache.NewTTLCache[db.Profile](profileCacheTTL, clock),
		sleep: time.Sleep,
	}
}

// ProfileInput 描述创建或更新档案时可设置的字段。
// 指针为 nil 表示保持原值。
type ProfileInput struct {
	FullName  *string
	Title     *string
	Bio       *string
	AvatarURL *string
	AvatarKey *string
	Email     *string
	Phone     *string
	Location  *string
	Website   *string
	Socials   map[string]any
	Visible   *bool
}

// Get 返回档案记录，不存在时返回 ErrProfileNotFound。
func (s *ProfileService) Get() (*db.Profile, error) {
	var profile db.Profile
	if err := s.db.Where("profile_key = ?", db.ProfileKeyDefault).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &profile, nil
}

// GetPublic 为公开读取路径返回档案。
// 命中缓存直接返回；否则带指数退避重试读取，吸收瞬时连接抖动。
// 记录不存在不重试，直接返回 ErrProfileNotFound。
func (s *ProfileService) GetPublic() (*db.Profile, error) {
	if cached, ok := s.memo.Get(); ok {
		return &cached, nil
	}

	var lastErr error
	wait := profileRetryBaseWait
	for attempt := 0; attempt < profileReadAttempts; attempt++ {
		if attempt > 0 {
			s.sleep(wait)
			wait *= 2
		}

		profile, err := s.Get()
		if err == nil {
			s.memo.Set(*profile)
			return profile, nil
		}
		if errors.Is(err, ErrProfileNotFound) {
			return nil, err
		}
		lastErr = err
	}

	return nil, lastErr
}

// Save 创建或更新档案，首次写入时惰性建行。
// 合并语义：未出现的字段保持原值。
func (s *ProfileService) Save(input ProfileInput) (*db.Profile, error) {
	var profile db.Profile
	err := s.db.Where("profile_key = ?", db.ProfileKeyDefault).First(&profile).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("find profile: %w", err)
		}
		profile = db.Profile{ProfileKey: db.ProfileKeyDefault, Visible: true}
	}

	applyString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	applyString(&profile.FullName, input.FullName)
	applyString(&profile.Title, input.Title)
	applyString(&profile.Bio, input.Bio)
	applyString(&profile.AvatarURL, input.AvatarURL)
	applyString(&profile.AvatarKey, input.AvatarKey)
	applyString(&profile.Email, input.Email)
	applyString(&profile.Phone, input.Phone)
	applyString(&profile.Location, input.Location)
	applyString(&profile.Website, input.Website)

	if input.Socials != nil {
		profile.Socials = datatypes.JSONMap(input.Socials)
	}
	if input.Visible != nil {
		profile.Visible = *input.Visible
	}

	if err := s.db.Save(&profile).Error; err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}

	s.memo.Invalidate()
	return &profile, nil
}

// SetSleep 替换重试等待函数，测试中避免真实睡眠。
func (s *ProfileService) SetSleep(fn func(time.Duration)) {
	if fn == nil {
		s.sleep = time.Sleep
		return
	}
	s.sleep = fn
}
