package store

import (
	"context"
	"sync"
	"time"

	"urlmap-go/internal/model"
)

// MemoryStore 进程内映射存储，供本地运行与测试使用
// 语义与 GormStore 对齐；codes 保留插入顺序，FindAll 按创建先后返回
type MemoryStore struct {
	mu       sync.Mutex
	mappings map[string]*model.URLMapping
	codes    []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		mappings: make(map[string]*model.URLMapping),
	}
}

func (s *MemoryStore) Save(ctx context.Context, mapping *model.URLMapping) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.mappings[mapping.ShortCode]; ok {
		return ErrCodeTaken
	}

	stored := *mapping
	s.mappings[mapping.ShortCode] = &stored
	s.codes = append(s.codes, mapping.ShortCode)
	return nil
}

func (s *MemoryStore) FindByShortCode(ctx context.Context, shortCode string) (*model.URLMapping, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mapping, ok := s.mappings[shortCode]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *mapping
	return &copied, nil
}

// FindByOriginalURL 精确字符串匹配，按插入顺序扫描；
// 优先返回未过期的记录，避免历史过期记录遮蔽有效映射
func (s *MemoryStore) FindByOriginalURL(ctx context.Context, originalURL string) (*model.URLMapping, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var expired *model.URLMapping
	for _, code := range s.codes {
		if mapping, ok := s.mappings[code]; ok && mapping.OriginalURL == originalURL {
			if mapping.IsActive() {
				copied := *mapping
				return &copied, nil
			}
			if expired == nil {
				expired = mapping
			}
		}
	}
	if expired != nil {
		copied := *expired
		return &copied, nil
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) ExistsByShortCode(ctx context.Context, shortCode string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.mappings[shortCode]
	return ok, nil
}

func (s *MemoryStore) FindAll(ctx context.Context) ([]model.URLMapping, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mappings := make([]model.URLMapping, 0, len(s.codes))
	for _, code := range s.codes {
		if mapping, ok := s.mappings[code]; ok {
			mappings = append(mappings, *mapping)
		}
	}
	return mappings, nil
}

// FindPage 从尾部反向取一页，等价于按创建时间倒序分页
func (s *MemoryStore) FindPage(ctx context.Context, page, size int) ([]model.URLMapping, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := int64(len(s.codes))
	start := len(s.codes) - (page-1)*size
	if start <= 0 {
		return []model.URLMapping{}, total, nil
	}

	mappings := make([]model.URLMapping, 0, size)
	for i := start - 1; i >= 0 && len(mappings) < size; i-- {
		if mapping, ok := s.mappings[s.codes[i]]; ok {
			mappings = append(mappings, *mapping)
		}
	}
	return mappings, total, nil
}

func (s *MemoryStore) DeleteByShortCode(ctx context.Context, shortCode string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.mappings[shortCode]; !ok {
		return nil
	}
	delete(s.mappings, shortCode)
	for i, code := range s.codes {
		if code == shortCode {
			s.codes = append(s.codes[:i], s.codes[i+1:]...)
			break
		}
	}
	return nil
}

func (s *MemoryStore) IncrementClickAndTimestamp(ctx context.Context, shortCode string, accessedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	mapping, ok := s.mappings[shortCode]
	if !ok {
		return ErrNotFound
	}
	mapping.ClickCount++
	ts := accessedAt
	mapping.LastAccessedAt = &ts
	return nil
}

var _ Store = (*MemoryStore)(nil)
