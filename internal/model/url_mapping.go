package model

import (
	"time"

	"urlmap-go/pkg/utils"
)

// URLMapping 短码与原始 URL 的映射记录
// short_code 创建后不可变，click_count 只能通过访问记录操作加一
type URLMapping struct {
	ID             uint       `gorm:"primarykey" json:"-"`
	ShortCode      string     `gorm:"uniqueIndex;size:10;not null" json:"shortCode"`
	OriginalURL    string     `gorm:"size:2048;not null;index:idx_original_url,length:255" json:"originalUrl"`
	CreatedAt      time.Time  `json:"createdAt"`
	ExpiresAt      *time.Time `json:"expiresAt,omitempty"`
	ClickCount     int64      `gorm:"default:0" json:"clickCount"`
	LastAccessedAt *time.Time `json:"lastAccessedAt,omitempty"`
}

// NewURLMapping 构建新的映射，入参在此统一校验并去除首尾空白
// expiresAt 为 nil 表示永不过期
func NewURLMapping(shortCode, originalURL string, expiresAt *time.Time) (*URLMapping, error) {
	code, err := utils.ValidateShortCode(shortCode)
	if err != nil {
		return nil, err
	}

	target, err := utils.ValidateOriginalURL(originalURL)
	if err != nil {
		return nil, err
	}

	return &URLMapping{
		ShortCode:   code,
		OriginalURL: target,
		CreatedAt:   time.Now(),
		ExpiresAt:   expiresAt,
		ClickCount:  0,
	}, nil
}

// IsExpired 是否已过期（过期时间存在且不晚于当前时间）
// 过期是随时间推导出来的状态，不落库
func (m *URLMapping) IsExpired() bool {
	return m.ExpiresAt != nil && !m.ExpiresAt.After(time.Now())
}

// IsActive 是否有效
func (m *URLMapping) IsActive() bool {
	return !m.IsExpired()
}

// Same 两条映射是否为同一实体，仅按短码判断
func (m *URLMapping) Same(other *URLMapping) bool {
	if other == nil {
		return false
	}
	return m.ShortCode == other.ShortCode
}
