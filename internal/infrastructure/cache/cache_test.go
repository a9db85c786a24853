package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sangkips/reservation-invoicing/internal/domain/entity"
	"golang.org/x/oauth2"
)

type countingDirectory struct {
	calls int
	err   error
}

func (d *countingDirectory) LocationOf(ctx context.Context, cred oauth2.TokenSource, hotelID int64) (string, error) {
	d.calls++
	if d.err != nil {
		return "", d.err
	}
	return "Sousse, Tunisia", nil
}

func TestLocationCacheHitsAndExpiry(t *testing.T) {
	dir := &countingDirectory{}
	c := NewLocationCache(dir, time.Minute)
	now := time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		loc, err := c.LocationOf(context.Background(), nil, 7)
		if err != nil || loc != "Sousse, Tunisia" {
			t.Fatalf("LocationOf() = %q, %v", loc, err)
		}
	}
	if dir.calls != 1 {
		t.Errorf("calls = %d, want 1", dir.calls)
	}

	now = now.Add(2 * time.Minute)
	if _, err := c.LocationOf(context.Background(), nil, 7); err != nil {
		t.Fatal(err)
	}
	if dir.calls != 2 {
		t.Errorf("calls after expiry = %d, want 2", dir.calls)
	}

	now = now.Add(2 * time.Minute)
	c.Purge()
	if c.Len() != 0 {
		t.Errorf("Len() after purge = %d, want 0", c.Len())
	}
}

func TestLocationCacheSkipsErrors(t *testing.T) {
	dir := &countingDirectory{err: errors.New("backend down")}
	c := NewLocationCache(dir, time.Minute)

	for i := 0; i < 2; i++ {
		if _, err := c.LocationOf(context.Background(), nil, 7); err == nil {
			t.Fatal("expected error")
		}
	}
	if dir.calls != 2 || c.Len() != 0 {
		t.Errorf("calls = %d, len = %d; want 2, 0", dir.calls, c.Len())
	}
}

func TestLocationCacheDisabled(t *testing.T) {
	dir := &countingDirectory{}
	c := NewLocationCache(dir, 0)
	_, _ = c.LocationOf(context.Background(), nil, 7)
	_, _ = c.LocationOf(context.Background(), nil, 7)
	if dir.calls != 2 {
		t.Errorf("calls = %d, want 2", dir.calls)
	}
}

func TestIdempotencyStore(t *testing.T) {
	s := NewIdempotencyStore()
	ctx := context.Background()
	now := time.Now()

	if got, err := s.GetByKey(ctx, "k1", "17"); got != nil || err != nil {
		t.Fatalf("GetByKey() on empty store = %v, %v", got, err)
	}

	live := &entity.IdempotencyKey{Key: "k1", Subject: "17", ResponseCode: 200, ResponseBody: []byte(`{}`), ExpiresAt: now.Add(time.Hour)}
	old := &entity.IdempotencyKey{Key: "k2", Subject: "17", ResponseCode: 200, ExpiresAt: now.Add(-time.Hour)}
	for _, k := range []*entity.IdempotencyKey{live, old} {
		if err := s.Create(ctx, k); err != nil {
			t.Fatalf("Create(%s) error = %v", k.Key, err)
		}
	}
	if err := s.Create(ctx, live); !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("duplicate Create() error = %v", err)
	}

	if got, _ := s.GetByKey(ctx, "k1", "18"); got != nil {
		t.Error("keys must be scoped to the subject")
	}

	_ = s.DeleteExpired(ctx, now)
	if got, _ := s.GetByKey(ctx, "k2", "17"); got != nil {
		t.Error("expired key survived DeleteExpired")
	}
	if got, _ := s.GetByKey(ctx, "k1", "17"); got == nil || got.ResponseCode != 200 {
		t.Errorf("live key = %+v", got)
	}
}
