package service

import (
	"context"
	"fmt"
	"testing"

	"urlmap-go/internal/store"
)

func TestListURLMappingsPagination(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := context.Background()
	for i := 1; i <= 5; i++ {
		seedMapping(t, st, fmt.Sprintf("code%03d", i), 0, nil)
	}

	page, err := ListURLMappings(ctx, st, 1, 2)
	if err != nil {
		t.Fatalf("ListURLMappings failed: %v", err)
	}
	if page.Total != 5 || page.TotalPage != 3 {
		t.Errorf("total = %d, totalPage = %d", page.Total, page.TotalPage)
	}
	// 最新创建的排在最前
	if len(page.List) != 2 || page.List[0].ShortCode != "code005" || page.List[1].ShortCode != "code004" {
		t.Errorf("page 1 = %+v", page.List)
	}

	last, err := ListURLMappings(ctx, st, 3, 2)
	if err != nil {
		t.Fatalf("ListURLMappings failed: %v", err)
	}
	if len(last.List) != 1 || last.List[0].ShortCode != "code001" {
		t.Errorf("last page = %+v", last.List)
	}
}

func TestListURLMappingsDefaultsAndEmpty(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := context.Background()

	// 非法参数回落到默认值
	page, err := ListURLMappings(ctx, st, 0, -3)
	if err != nil {
		t.Fatalf("ListURLMappings failed: %v", err)
	}
	if page.Page != 1 || page.Size != 10 {
		t.Errorf("page = %d, size = %d", page.Page, page.Size)
	}
	if page.Total != 0 || page.TotalPage != 0 {
		t.Errorf("empty store total = %d, totalPage = %d", page.Total, page.TotalPage)
	}
	if page.List == nil || len(page.List) != 0 {
		t.Errorf("empty store list = %+v", page.List)
	}
}
