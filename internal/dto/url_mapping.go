package dto

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"urlmap-go/pkg/utils"
)

// ShortenURLRequest 用于创建短链映射的请求参数
type ShortenURLRequest struct {
	OriginalURL string `json:"originalUrl" binding:"required" msg:"originalUrl is required"`
	// 长度限制在 Validate 里按去除空白后的值校验，binding 不做预检
	CustomShortCode string `json:"customShortCode"`
	ExpirationDays  *int   `json:"expirationDays"`
}

// Validate 自定义验证逻辑，补充 binding 标签无法表达的领域规则
func (r *ShortenURLRequest) Validate() error {
	// 1. 原始 URL 前缀校验
	if _, err := utils.ValidateOriginalURL(r.OriginalURL); err != nil {
		return gin.Error{
			Err:  err,
			Type: gin.ErrorTypeBind,
		}
	}

	// 2. 自定义短码为空白时视为未提供，不校验
	if strings.TrimSpace(r.CustomShortCode) == "" {
		return nil
	}
	if _, err := utils.ValidateShortCode(r.CustomShortCode); err != nil {
		return gin.Error{
			Err:  err,
			Type: gin.ErrorTypeBind,
		}
	}

	return nil
}

// ShortenURLResponse 创建（或复用）短链映射的响应
type ShortenURLResponse struct {
	ShortCode   string     `json:"shortCode"`
	OriginalURL string     `json:"originalUrl"`
	ShortURL    string     `json:"shortUrl"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
}

// URLAnalyticsResponse 单条短链的统计信息
type URLAnalyticsResponse struct {
	ShortCode      string     `json:"shortCode"`
	OriginalURL    string     `json:"originalUrl"`
	ClickCount     int64      `json:"clickCount"`
	CreatedAt      time.Time  `json:"createdAt"`
	LastAccessedAt *time.Time `json:"lastAccessedAt,omitempty"`
	IsActive       bool       `json:"isActive"`
	ExpiresAt      *time.Time `json:"expiresAt,omitempty"`
}

// SystemAnalyticsResponse 系统级汇总统计
type SystemAnalyticsResponse struct {
	TotalUrls   int64                  `json:"totalUrls"`
	TotalClicks int64                  `json:"totalClicks"`
	ActiveUrls  int64                  `json:"activeUrls"`
	ExpiredUrls int64                  `json:"expiredUrls"`
	TopUrls     []URLAnalyticsResponse `json:"topUrls"`
}
