package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"urlmap-go/constant"
	"urlmap-go/internal/apperrors"
	"urlmap-go/internal/dto"
	"urlmap-go/internal/generator"
	"urlmap-go/internal/model"
	"urlmap-go/internal/store"
	"urlmap-go/pkg/utils"
)

// ShortenURL 创建短链映射
// 同一原始 URL 已有有效映射时直接复用（幂等，不产生新记录），
// 此时新传入的自定义短码与过期天数会被忽略，与存量行为保持一致
func ShortenURL(ctx context.Context, st store.Store, gen generator.Generator, req dto.ShortenURLRequest) (*model.URLMapping, error) {
	// 1. 校验原始 URL
	originalURL, err := utils.ValidateOriginalURL(req.OriginalURL)
	if err != nil {
		return nil, apperrors.InvalidRequestError(err.Error())
	}

	// 2. 按原始 URL 精确匹配查找存量映射
	existing, err := st.FindByOriginalURL(ctx, originalURL)
	if err == nil {
		if existing.IsActive() {
			return existing, nil
		}
		// 已过期，继续分配新映射
	} else if !errors.Is(err, store.ErrNotFound) {
		zap.L().Error("查询原始 URL 失败", zap.Error(err))
		return nil, apperrors.StoreError(err)
	}

	// 3. 计算过期时间：仅正数天数生效，零/负数/缺省视为永不过期
	var expiresAt *time.Time
	if req.ExpirationDays != nil && *req.ExpirationDays > 0 {
		t := time.Now().AddDate(0, 0, *req.ExpirationDays)
		expiresAt = &t
	}

	// 4. 自定义短码路径
	if strings.TrimSpace(req.CustomShortCode) != "" {
		return shortenWithCustomCode(ctx, st, req.CustomShortCode, originalURL, expiresAt)
	}

	// 5. 自动生成路径，有限次重试
	for attempt := 0; attempt < constant.MaxGenerateAttempts; attempt++ {
		code, err := gen.Generate()
		if err != nil {
			zap.L().Error("生成短码失败", zap.Error(err))
			return nil, apperrors.SystemErrorDefault()
		}

		taken, err := st.ExistsByShortCode(ctx, code)
		if err != nil {
			return nil, apperrors.StoreError(err)
		}
		if taken {
			continue
		}

		mapping, err := model.NewURLMapping(code, originalURL, expiresAt)
		if err != nil {
			return nil, apperrors.InvalidRequestError(err.Error())
		}

		err = st.Save(ctx, mapping)
		if err == nil {
			return mapping, nil
		}
		if errors.Is(err, store.ErrCodeTaken) {
			// 并发下先检查后插入的竞争：换新候选重试
			continue
		}
		zap.L().Error("保存短链映射失败", zap.String("short_code", code), zap.Error(err))
		return nil, apperrors.StoreError(err)
	}

	zap.L().Error("短码空间耗尽", zap.Int("attempts", constant.MaxGenerateAttempts))
	return nil, apperrors.CodeSpaceExhaustedError()
}

func shortenWithCustomCode(ctx context.Context, st store.Store, customCode, originalURL string, expiresAt *time.Time) (*model.URLMapping, error) {
	mapping, err := model.NewURLMapping(customCode, originalURL, expiresAt)
	if err != nil {
		return nil, apperrors.InvalidRequestError(err.Error())
	}

	taken, err := st.ExistsByShortCode(ctx, mapping.ShortCode)
	if err != nil {
		return nil, apperrors.StoreError(err)
	}
	if taken {
		return nil, apperrors.CodeInUseError()
	}

	if err := st.Save(ctx, mapping); err != nil {
		if errors.Is(err, store.ErrCodeTaken) {
			// 检查与插入之间被并发请求抢占
			return nil, apperrors.CodeInUseError()
		}
		zap.L().Error("保存短链映射失败", zap.String("short_code", mapping.ShortCode), zap.Error(err))
		return nil, apperrors.StoreError(err)
	}
	return mapping, nil
}
