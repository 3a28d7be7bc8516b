package db

import "encoding/json"

// 区块类型常量。Content 字段按 Type 解释，未知类型原样透传给前端。
const (
	SectionTypeHero  = "hero"
	SectionTypeCTA   = "cta"
	SectionTypeText  = "text"
	SectionTypeStats = "stats"
)

// HeroContent 为 hero 区块的内容结构。
type HeroContent struct {
	Headline    string `json:"headline"`
	Subheadline string `json:"subheadline"`
	ImageURL    string `json:"imageUrl"`
}

// CTAContent 为行动号召区块的内容结构。
type CTAContent struct {
	PrimaryButton   string `json:"primaryButton"`
	SecondaryButton string `json:"secondaryButton"`
	TargetURL       string `json:"targetUrl"`
}

// TextContent 为纯文本区块的内容结构。
type TextContent struct {
	Body string `json:"body"`
}

// StatsContent 为数字展示区块的内容结构。
type StatsContent struct {
	Items []StatItem `json:"items"`
}

// StatItem 是单个统计数字。
type StatItem struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// DecodeContent 按 Type 将区块内容解码为对应的结构体。
// 未知类型返回 (nil, false)，调用方应原样保留 Content。
// 缺失的子字段保持零值，不视为错误。
func (s PageSection) DecodeContent() (any, bool) {
	raw := []byte(s.Content)
	if len(raw) == 0 {
		raw = []byte("{}")
	}

	switch s.Type {
	case SectionTypeHero:
		var c HeroContent
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, false
		}
		return c, true
	case SectionTypeCTA:
		var c CTAContent
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, false
		}
		return c, true
	case SectionTypeText:
		var c TextContent
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, false
		}
		return c, true
	case SectionTypeStats:
		var c StatsContent
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, false
		}
		return c, true
	}

	return nil, false
}
