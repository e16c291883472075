package handler

import (
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"urlmap-go/internal/apperrors"
	"urlmap-go/internal/dto"
	"urlmap-go/internal/generator"
	"urlmap-go/internal/service"
	"urlmap-go/internal/store"
	"urlmap-go/response"
)

// URLHandler 短链相关的 HTTP 入口
type URLHandler struct {
	store   store.Store
	gen     generator.Generator
	baseURL string
}

func NewURLHandler(st store.Store, gen generator.Generator, baseURL string) *URLHandler {
	return &URLHandler{
		store:   st,
		gen:     gen,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// ShortenURL 创建或复用短链映射（POST /api/v1/shorten）
func (h *URLHandler) ShortenURL(c *gin.Context) {
	var req dto.ShortenURLRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		// 检查错误是否为 ValidationErrors 类型
		if validationErrs, ok := err.(validator.ValidationErrors); ok {
			for _, e := range validationErrs {
				// 通过反射获取字段的 msg 标签值
				field, ok := reflect.TypeOf(req).FieldByName(e.Field())
				if !ok {
					_ = c.Error(apperrors.InvalidRequestErrorDefault())
					return
				}

				customMsg := field.Tag.Get("msg")
				if customMsg != "" {
					_ = c.Error(apperrors.InvalidRequestError(customMsg))
					return
				}
			}
		}
		zap.L().Warn("Request body binding failed",
			zap.Error(err),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		)
		_ = c.Error(apperrors.InvalidRequestErrorDefault())
		return
	}

	if err := req.Validate(); err != nil {
		_ = c.Error(apperrors.InvalidRequestError(err.Error()))
		return
	}

	mapping, err := service.ShortenURL(c.Request.Context(), h.store, h.gen, req)
	if err != nil {
		zap.L().Warn("Short url creation failed",
			zap.Error(err),
			zap.String("custom_short_code", req.CustomShortCode),
		)
		_ = c.Error(err)
		return
	}

	resp := dto.ShortenURLResponse{
		ShortCode:   mapping.ShortCode,
		OriginalURL: mapping.OriginalURL,
		ShortURL:    h.baseURL + "/" + mapping.ShortCode,
		ExpiresAt:   mapping.ExpiresAt,
	}
	c.JSON(http.StatusOK, response.OK(resp, "success"))
}

// Redirect 短码跳转（经由 NoRoute 兜底注册，非 /api 前缀的 GET 都落到这里）
func (h *URLHandler) Redirect(c *gin.Context) {
	if c.Request.Method != http.MethodGet {
		c.Status(http.StatusNotFound)
		return
	}

	shortCode := strings.TrimPrefix(c.Request.URL.Path, "/")
	if shortCode == "" {
		c.Status(http.StatusNotFound)
		return
	}

	outcome, err := service.ResolveURL(c.Request.Context(), h.store, shortCode)
	if err != nil {
		_ = c.Error(err)
		return
	}

	switch outcome.Status {
	case service.ResolveExpired:
		_ = c.Error(apperrors.ExpiredError())
	case service.ResolveNotFound:
		_ = c.Error(apperrors.NotFoundError())
	case service.ResolveSuccess:
		c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
		c.Redirect(http.StatusMovedPermanently, outcome.OriginalURL)
	}
}

// URLAnalytics 单条短链统计（GET /api/v1/analytics/:shortCode）
func (h *URLHandler) URLAnalytics(c *gin.Context) {
	shortCode := strings.TrimSpace(c.Param("shortCode"))
	if shortCode == "" {
		_ = c.Error(apperrors.NotFoundError())
		return
	}

	analytics, err := service.URLAnalytics(c.Request.Context(), h.store, shortCode)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response.OK(analytics, "success"))
}

// SystemAnalytics 系统级统计（GET /api/v1/analytics）
func (h *URLHandler) SystemAnalytics(c *gin.Context) {
	analytics, err := service.SystemAnalytics(c.Request.Context(), h.store)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response.OK(analytics, "success"))
}

// ListURLMappings 分页查询短链列表（GET /api/v1/urls）
func (h *URLHandler) ListURLMappings(c *gin.Context) {
	pageStr := c.DefaultQuery("page", "1")
	sizeStr := c.DefaultQuery("size", "10")

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		_ = c.Error(apperrors.InvalidRequestError("error.page_invalid"))
		return
	}

	size, err := strconv.Atoi(sizeStr)
	if err != nil || size < 1 || size > 100 {
		_ = c.Error(apperrors.InvalidRequestError("error.size_invalid"))
		return
	}

	pageResp, err := service.ListURLMappings(c.Request.Context(), h.store, page, size)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response.OK(pageResp, "success"))
}
