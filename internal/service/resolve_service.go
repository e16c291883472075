package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"urlmap-go/internal/apperrors"
	"urlmap-go/internal/store"
)

// ResolveStatus 解析结果的三种状态
type ResolveStatus int

const (
	ResolveSuccess ResolveStatus = iota
	ResolveNotFound
	ResolveExpired
)

// ResolveOutcome 短码解析结果
// 用三态结构而非 bool 加空值组合，强制调用方区分"不存在"与"已过期"
type ResolveOutcome struct {
	Status      ResolveStatus
	OriginalURL string
}

// ResolveURL 解析短码并记录一次访问
// 仅对有效映射计数：click_count 加一与 last_accessed_at 更新
// 由存储层的单次原子操作完成，并发解析不会丢计数；
// 不存在或已过期的短码不触碰任何计数器
func ResolveURL(ctx context.Context, st store.Store, shortCode string) (ResolveOutcome, error) {
	mapping, err := st.FindByShortCode(ctx, shortCode)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ResolveOutcome{Status: ResolveNotFound}, nil
		}
		zap.L().Error("查询短码失败", zap.String("short_code", shortCode), zap.Error(err))
		return ResolveOutcome{}, apperrors.StoreError(err)
	}

	if mapping.IsExpired() {
		return ResolveOutcome{Status: ResolveExpired}, nil
	}

	if err := st.IncrementClickAndTimestamp(ctx, shortCode, time.Now()); err != nil {
		zap.L().Error("记录访问失败", zap.String("short_code", shortCode), zap.Error(err))
		return ResolveOutcome{}, apperrors.StoreError(err)
	}

	return ResolveOutcome{
		Status:      ResolveSuccess,
		OriginalURL: mapping.OriginalURL,
	}, nil
}
