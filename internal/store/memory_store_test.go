package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"urlmap-go/internal/model"
)

func seed(t *testing.T, s Store, code, url string) {
	t.Helper()
	mapping := &model.URLMapping{ShortCode: code, OriginalURL: url, CreatedAt: time.Now()}
	if err := s.Save(context.Background(), mapping); err != nil {
		t.Fatalf("save %q failed: %v", code, err)
	}
}

func TestMemoryStoreSaveDuplicate(t *testing.T) {
	s := NewMemoryStore()
	seed(t, s, "abc1234", "https://a.example.com")

	dup := &model.URLMapping{ShortCode: "abc1234", OriginalURL: "https://b.example.com", CreatedAt: time.Now()}
	if err := s.Save(context.Background(), dup); !errors.Is(err, ErrCodeTaken) {
		t.Errorf("duplicate save should return ErrCodeTaken, got %v", err)
	}
}

func TestMemoryStoreLookups(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	seed(t, s, "abc1234", "https://a.example.com")

	if _, err := s.FindByShortCode(ctx, "abc1234"); err != nil {
		t.Errorf("FindByShortCode failed: %v", err)
	}
	if _, err := s.FindByShortCode(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	if _, err := s.FindByOriginalURL(ctx, "https://a.example.com"); err != nil {
		t.Errorf("FindByOriginalURL failed: %v", err)
	}
	// 精确匹配，不做归一化
	if _, err := s.FindByOriginalURL(ctx, "https://a.example.com/"); !errors.Is(err, ErrNotFound) {
		t.Errorf("trailing slash must not match, got %v", err)
	}

	exists, err := s.ExistsByShortCode(ctx, "abc1234")
	if err != nil || !exists {
		t.Errorf("ExistsByShortCode = %v, %v", exists, err)
	}
	exists, err = s.ExistsByShortCode(ctx, "missing")
	if err != nil || exists {
		t.Errorf("missing code should not exist, got %v, %v", exists, err)
	}
}

func TestMemoryStoreFindByOriginalURLPrefersActive(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	past := time.Now().Add(-time.Hour)
	old := &model.URLMapping{ShortCode: "oldcode", OriginalURL: "https://a.example.com", CreatedAt: time.Now().Add(-2 * time.Hour), ExpiresAt: &past}
	if err := s.Save(ctx, old); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	// 仅有过期记录时仍可返回它
	found, err := s.FindByOriginalURL(ctx, "https://a.example.com")
	if err != nil {
		t.Fatalf("FindByOriginalURL failed: %v", err)
	}
	if found.ShortCode != "oldcode" {
		t.Errorf("expected the only match, got %q", found.ShortCode)
	}

	// 有效记录加入后优先于更早插入的过期记录
	seed(t, s, "newcode", "https://a.example.com")
	found, err = s.FindByOriginalURL(ctx, "https://a.example.com")
	if err != nil {
		t.Fatalf("FindByOriginalURL failed: %v", err)
	}
	if found.ShortCode != "newcode" {
		t.Errorf("active mapping should win over expired history, got %q", found.ShortCode)
	}
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	seed(t, s, "abc1234", "https://a.example.com")

	found, _ := s.FindByShortCode(ctx, "abc1234")
	found.ClickCount = 99

	again, _ := s.FindByShortCode(ctx, "abc1234")
	if again.ClickCount != 0 {
		t.Error("mutating a returned mapping must not affect stored state")
	}
}

func TestMemoryStoreFindAllOrder(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	seed(t, s, "first01", "https://1.example.com")
	seed(t, s, "second1", "https://2.example.com")
	seed(t, s, "third01", "https://3.example.com")

	all, err := s.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 mappings, got %d", len(all))
	}
	for i, want := range []string{"first01", "second1", "third01"} {
		if all[i].ShortCode != want {
			t.Errorf("position %d = %q, want %q", i, all[i].ShortCode, want)
		}
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	seed(t, s, "abc1234", "https://a.example.com")

	if err := s.DeleteByShortCode(ctx, "abc1234"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := s.FindByShortCode(ctx, "abc1234"); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted mapping should be gone, got %v", err)
	}

	// 删除不存在的短码不报错
	if err := s.DeleteByShortCode(ctx, "missing"); err != nil {
		t.Errorf("deleting a missing code should be a no-op, got %v", err)
	}
}

func TestMemoryStoreIncrement(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	seed(t, s, "abc1234", "https://a.example.com")

	ts := time.Now()
	if err := s.IncrementClickAndTimestamp(ctx, "abc1234", ts); err != nil {
		t.Fatalf("increment failed: %v", err)
	}

	found, _ := s.FindByShortCode(ctx, "abc1234")
	if found.ClickCount != 1 {
		t.Errorf("click count = %d, want 1", found.ClickCount)
	}
	if found.LastAccessedAt == nil || !found.LastAccessedAt.Equal(ts) {
		t.Errorf("last accessed = %v, want %v", found.LastAccessedAt, ts)
	}

	if err := s.IncrementClickAndTimestamp(ctx, "missing", ts); !errors.Is(err, ErrNotFound) {
		t.Errorf("incrementing a missing code should return ErrNotFound, got %v", err)
	}
}

func TestMemoryStoreConcurrentIncrement(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	seed(t, s, "abc1234", "https://a.example.com")

	const workers = 50
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_ = s.IncrementClickAndTimestamp(ctx, "abc1234", time.Now())
		}()
	}
	wg.Wait()

	found, _ := s.FindByShortCode(ctx, "abc1234")
	if found.ClickCount != workers {
		t.Errorf("concurrent increments lost updates: %d, want %d", found.ClickCount, workers)
	}
}

func TestMemoryStoreFindPage(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	codes := []string{"code001", "code002", "code003", "code004", "code005"}
	for _, code := range codes {
		seed(t, s, code, "https://example.com/"+code)
	}

	// 第一页按创建时间倒序
	mappings, total, err := s.FindPage(ctx, 1, 2)
	if err != nil {
		t.Fatalf("FindPage failed: %v", err)
	}
	if total != 5 {
		t.Errorf("total = %d, want 5", total)
	}
	if len(mappings) != 2 || mappings[0].ShortCode != "code005" || mappings[1].ShortCode != "code004" {
		t.Errorf("page 1 = %+v", mappings)
	}

	// 末页不足一整页
	mappings, _, err = s.FindPage(ctx, 3, 2)
	if err != nil {
		t.Fatalf("FindPage failed: %v", err)
	}
	if len(mappings) != 1 || mappings[0].ShortCode != "code001" {
		t.Errorf("last page = %+v", mappings)
	}

	// 越界页返回空列表但总数不变
	mappings, total, err = s.FindPage(ctx, 4, 2)
	if err != nil {
		t.Fatalf("FindPage failed: %v", err)
	}
	if len(mappings) != 0 || total != 5 {
		t.Errorf("out of range page = %+v, total = %d", mappings, total)
	}
}
