package service

import (
	"context"
	"errors"
	"sort"

	"go.uber.org/zap"

	"urlmap-go/internal/apperrors"
	"urlmap-go/internal/dto"
	"urlmap-go/internal/model"
	"urlmap-go/internal/store"
)

// topURLCount 系统统计中按点击量取前几名
const topURLCount = 10

// URLAnalytics 查询单条短链的统计信息，只读，不记录访问
func URLAnalytics(ctx context.Context, st store.Store, shortCode string) (*dto.URLAnalyticsResponse, error) {
	mapping, err := st.FindByShortCode(ctx, shortCode)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFoundError()
		}
		zap.L().Error("查询短码统计失败", zap.String("short_code", shortCode), zap.Error(err))
		return nil, apperrors.StoreError(err)
	}

	resp := toAnalyticsResponse(mapping)
	return &resp, nil
}

// SystemAnalytics 全量扫描计算系统级汇总统计
// topUrls 按点击量降序取前 10，稳定排序保证同点击量时保持扫描顺序
func SystemAnalytics(ctx context.Context, st store.Store) (*dto.SystemAnalyticsResponse, error) {
	mappings, err := st.FindAll(ctx)
	if err != nil {
		zap.L().Error("获取短链列表失败", zap.Error(err))
		return nil, apperrors.StoreError(err)
	}

	var totalClicks, activeUrls int64
	for i := range mappings {
		totalClicks += mappings[i].ClickCount
		if mappings[i].IsActive() {
			activeUrls++
		}
	}
	totalUrls := int64(len(mappings))

	sorted := make([]model.URLMapping, len(mappings))
	copy(sorted, mappings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ClickCount > sorted[j].ClickCount
	})

	top := len(sorted)
	if top > topURLCount {
		top = topURLCount
	}
	topUrls := make([]dto.URLAnalyticsResponse, 0, top)
	for i := 0; i < top; i++ {
		topUrls = append(topUrls, toAnalyticsResponse(&sorted[i]))
	}

	return &dto.SystemAnalyticsResponse{
		TotalUrls:   totalUrls,
		TotalClicks: totalClicks,
		ActiveUrls:  activeUrls,
		ExpiredUrls: totalUrls - activeUrls,
		TopUrls:     topUrls,
	}, nil
}

func toAnalyticsResponse(mapping *model.URLMapping) dto.URLAnalyticsResponse {
	return dto.URLAnalyticsResponse{
		ShortCode:      mapping.ShortCode,
		OriginalURL:    mapping.OriginalURL,
		ClickCount:     mapping.ClickCount,
		CreatedAt:      mapping.CreatedAt,
		LastAccessedAt: mapping.LastAccessedAt,
		IsActive:       mapping.IsActive(),
		ExpiresAt:      mapping.ExpiresAt,
	}
}
