package store

import (
	"context"
	"errors"
	"time"

	"urlmap-go/internal/model"
)

var (
	// ErrNotFound 指定短码不存在
	ErrNotFound = errors.New("url mapping not found")
	// ErrCodeTaken 短码唯一约束冲突
	ErrCodeTaken = errors.New("short code already taken")
)

// Store 映射存储接口
// 并发控制下沉到存储层：Save 依赖主键冲突保证短码唯一，
// IncrementClickAndTimestamp 必须是单次原子更新，不能读改写
type Store interface {
	// Save 插入一条新映射，短码冲突时返回 ErrCodeTaken
	Save(ctx context.Context, mapping *model.URLMapping) error

	// FindByShortCode 按短码点查，不存在时返回 ErrNotFound
	FindByShortCode(ctx context.Context, shortCode string) (*model.URLMapping, error)

	// FindByOriginalURL 按原始 URL 精确匹配点查，不存在时返回 ErrNotFound
	FindByOriginalURL(ctx context.Context, originalURL string) (*model.URLMapping, error)

	// ExistsByShortCode 短码是否已存在
	ExistsByShortCode(ctx context.Context, shortCode string) (bool, error)

	// FindAll 返回全部映射
	FindAll(ctx context.Context) ([]model.URLMapping, error)

	// FindPage 按创建时间倒序分页查询，page 从 1 开始，同时返回总条数
	FindPage(ctx context.Context, page, size int) ([]model.URLMapping, int64, error)

	// DeleteByShortCode 按短码删除
	DeleteByShortCode(ctx context.Context, shortCode string) error

	// IncrementClickAndTimestamp 原子地将 click_count 加一并更新最近访问时间
	IncrementClickAndTimestamp(ctx context.Context, shortCode string, accessedAt time.Time) error
}
