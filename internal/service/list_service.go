package service

import (
	"context"

	"urlmap-go/internal/apperrors"
	"urlmap-go/internal/model"
	"urlmap-go/internal/store"
	"urlmap-go/response"
)

// ListURLMappings 支持分页查询短链列表
func ListURLMappings(ctx context.Context, st store.Store, page, size int) (*response.PageResponse[model.URLMapping], error) {
	// 参数校验
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 10 // 默认每页10条，最大100条
	}

	// 分页下推到存储层，避免全量加载
	mappings, total, err := st.FindPage(ctx, page, size)
	if err != nil {
		return nil, apperrors.StoreError(err)
	}
	if mappings == nil {
		mappings = []model.URLMapping{}
	}

	totalPage := (int(total) + size - 1) / size

	return &response.PageResponse[model.URLMapping]{
		Page:      page,
		Size:      size,
		Total:     int(total),
		TotalPage: totalPage,
		List:      mappings,
	}, nil
}
