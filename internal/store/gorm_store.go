package store

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"urlmap-go/internal/model"
	"urlmap-go/pkg/logging"
)

// GormStore 基于 gorm/MySQL 的映射存储
type GormStore struct {
	db *gorm.DB
}

// InitMySQL 从配置初始化 MySQL 连接并自动建表
// TranslateError 开启后，唯一索引冲突可统一识别为 gorm.ErrDuplicatedKey
func InitMySQL(logger *zap.Logger, atomicLogLevel zap.AtomicLevel) *GormStore {
	dsn := viper.GetString("db.dsn")
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         logging.NewGormLogger(logger, logging.ToGormLogLevel(atomicLogLevel.Level())),
		TranslateError: true,
	})
	if err != nil {
		logging.Logger.Fatal("Failed to connect database", zap.Error(err))
	}

	if err := db.AutoMigrate(&model.URLMapping{}); err != nil {
		logging.Logger.Fatal("Failed to migrate database", zap.Error(err))
	}

	return &GormStore{db: db}
}

func (s *GormStore) Save(ctx context.Context, mapping *model.URLMapping) error {
	if err := s.db.WithContext(ctx).Create(mapping).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrCodeTaken
		}
		return err
	}
	return nil
}

func (s *GormStore) FindByShortCode(ctx context.Context, shortCode string) (*model.URLMapping, error) {
	var mapping model.URLMapping
	if err := s.db.WithContext(ctx).Where("short_code = ?", shortCode).First(&mapping).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &mapping, nil
}

// FindByOriginalURL 优先返回未过期的匹配记录，
// 避免历史过期记录遮蔽后来分配的有效映射
func (s *GormStore) FindByOriginalURL(ctx context.Context, originalURL string) (*model.URLMapping, error) {
	var mapping model.URLMapping
	err := s.db.WithContext(ctx).
		Where("original_url = ? AND (expires_at IS NULL OR expires_at > ?)", originalURL, time.Now()).
		First(&mapping).Error
	if err == nil {
		return &mapping, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// 没有有效记录时退回任意匹配（可能已过期），由调用方判定状态
	if err := s.db.WithContext(ctx).Where("original_url = ?", originalURL).First(&mapping).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &mapping, nil
}

func (s *GormStore) ExistsByShortCode(ctx context.Context, shortCode string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.URLMapping{}).
		Where("short_code = ?", shortCode).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *GormStore) FindAll(ctx context.Context) ([]model.URLMapping, error) {
	var mappings []model.URLMapping
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&mappings).Error; err != nil {
		return nil, err
	}
	return mappings, nil
}

// FindPage 分页下推到数据库，避免全表加载后在内存切片
func (s *GormStore) FindPage(ctx context.Context, page, size int) ([]model.URLMapping, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&model.URLMapping{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var mappings []model.URLMapping
	if err := s.db.WithContext(ctx).
		Order("id DESC").
		Limit(size).
		Offset((page - 1) * size).
		Find(&mappings).Error; err != nil {
		return nil, 0, err
	}
	return mappings, total, nil
}

func (s *GormStore) DeleteByShortCode(ctx context.Context, shortCode string) error {
	return s.db.WithContext(ctx).Where("short_code = ?", shortCode).Delete(&model.URLMapping{}).Error
}

// IncrementClickAndTimestamp 单条 UPDATE 完成加一与时间戳更新，
// 并发解析同一短码时不会丢失计数
func (s *GormStore) IncrementClickAndTimestamp(ctx context.Context, shortCode string, accessedAt time.Time) error {
	result := s.db.WithContext(ctx).Model(&model.URLMapping{}).
		Where("short_code = ?", shortCode).
		Updates(map[string]interface{}{
			"click_count":      gorm.Expr("click_count + ?", 1),
			"last_accessed_at": accessedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Store = (*GormStore)(nil)
