package service

import (
	"context"
	"testing"
	"time"

	"urlmap-go/internal/dto"
	"urlmap-go/internal/model"
)

func TestResolveURLSuccess(t *testing.T) {
	st, gen := newTestEnv()
	ctx := context.Background()

	mapping, err := ShortenURL(ctx, st, gen, dto.ShortenURLRequest{OriginalURL: "https://example.com"})
	if err != nil {
		t.Fatalf("shorten failed: %v", err)
	}

	outcome, err := ResolveURL(ctx, st, mapping.ShortCode)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if outcome.Status != ResolveSuccess {
		t.Fatalf("expected success, got status %v", outcome.Status)
	}
	if outcome.OriginalURL != "https://example.com" {
		t.Errorf("unexpected original url: %q", outcome.OriginalURL)
	}

	stored, _ := st.FindByShortCode(ctx, mapping.ShortCode)
	if stored.ClickCount != 1 {
		t.Errorf("click count after one resolve = %d, want 1", stored.ClickCount)
	}
	if stored.LastAccessedAt == nil {
		t.Error("last accessed should be set after a successful resolve")
	}
}

func TestResolveURLClickAccounting(t *testing.T) {
	st, gen := newTestEnv()
	ctx := context.Background()

	mapping, err := ShortenURL(ctx, st, gen, dto.ShortenURLRequest{OriginalURL: "https://example.com"})
	if err != nil {
		t.Fatalf("shorten failed: %v", err)
	}

	const n = 5
	for i := 0; i < n; i++ {
		outcome, err := ResolveURL(ctx, st, mapping.ShortCode)
		if err != nil || outcome.Status != ResolveSuccess {
			t.Fatalf("resolve %d failed: %v (status %v)", i, err, outcome.Status)
		}
	}

	stored, _ := st.FindByShortCode(ctx, mapping.ShortCode)
	if stored.ClickCount != n {
		t.Errorf("click count = %d, want %d", stored.ClickCount, n)
	}
}

func TestResolveURLNotFound(t *testing.T) {
	st, _ := newTestEnv()

	outcome, err := ResolveURL(context.Background(), st, "missing1")
	if err != nil {
		t.Fatalf("not-found must not be an error: %v", err)
	}
	if outcome.Status != ResolveNotFound {
		t.Errorf("expected not-found, got status %v", outcome.Status)
	}
}

func TestResolveURLExpired(t *testing.T) {
	st, _ := newTestEnv()
	ctx := context.Background()

	past := time.Now().Add(-time.Minute)
	mapping := &model.URLMapping{
		ShortCode:   "expired1",
		OriginalURL: "https://example.com",
		CreatedAt:   time.Now().Add(-time.Hour),
		ExpiresAt:   &past,
	}
	if err := st.Save(ctx, mapping); err != nil {
		t.Fatalf("seed save failed: %v", err)
	}

	// 多次解析均为过期，且不触碰任何计数器
	for i := 0; i < 3; i++ {
		outcome, err := ResolveURL(ctx, st, "expired1")
		if err != nil {
			t.Fatalf("resolve failed: %v", err)
		}
		if outcome.Status != ResolveExpired {
			t.Fatalf("expected expired, got status %v", outcome.Status)
		}
	}

	stored, _ := st.FindByShortCode(ctx, "expired1")
	if stored.ClickCount != 0 {
		t.Errorf("expired resolve must not touch counters, click count = %d", stored.ClickCount)
	}
	if stored.LastAccessedAt != nil {
		t.Error("expired resolve must not set last accessed")
	}
}

func TestResolveURLFutureExpiryStillActive(t *testing.T) {
	st, _ := newTestEnv()
	ctx := context.Background()

	future := time.Now().Add(time.Hour)
	mapping := &model.URLMapping{
		ShortCode:   "alive123",
		OriginalURL: "https://example.com",
		CreatedAt:   time.Now(),
		ExpiresAt:   &future,
	}
	if err := st.Save(ctx, mapping); err != nil {
		t.Fatalf("seed save failed: %v", err)
	}

	outcome, err := ResolveURL(ctx, st, "alive123")
	if err != nil || outcome.Status != ResolveSuccess {
		t.Fatalf("future-expiry mapping should resolve, got %v (status %v)", err, outcome.Status)
	}
}
