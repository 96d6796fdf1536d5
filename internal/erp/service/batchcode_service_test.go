package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestBatchCodeCheckShortCode(t *testing.T) {
	// short codes never reach the repository, so a nil repo is fine here
	svc := NewBatchCodeService(nil, nil, zap.NewNop())

	for _, code := range []string{"", "B", "  ", " B "} {
		check, err := svc.Check(context.Background(), code)
		if err != nil {
			t.Fatalf("Check(%q) returned error: %v", code, err)
		}
		if check.Exists {
			t.Errorf("Check(%q).Exists = true, want false", code)
		}
		if check.Count != 0 {
			t.Errorf("Check(%q).Count = %d, want 0", code, check.Count)
		}
	}
}

func TestBatchCodeCheckTrimsBeforeLengthCheck(t *testing.T) {
	svc := NewBatchCodeService(nil, nil, zap.NewNop())

	// "  A  " trims to one rune, below the minimum
	check, err := svc.Check(context.Background(), "  A  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if check.Code != "A" {
		t.Errorf("code = %q, want trimmed %q", check.Code, "A")
	}
}

func TestCheckDebouncedCancelled(t *testing.T) {
	svc := NewBatchCodeService(nil, nil, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.CheckDebounced(ctx, "B20240101-00001", 50*time.Millisecond)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestCheckDebouncedSupersededByTimeout(t *testing.T) {
	svc := NewBatchCodeService(nil, nil, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := svc.CheckDebounced(ctx, "B20240101-00001", 500*time.Millisecond)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want context.DeadlineExceeded", err)
	}
	if elapsed := time.Since(start); elapsed > 200*time.Millisecond {
		t.Errorf("cancellation took %v, should not wait out the debounce", elapsed)
	}
}

func TestCheckDebouncedZeroWaitShortCode(t *testing.T) {
	svc := NewBatchCodeService(nil, nil, zap.NewNop())

	check, err := svc.CheckDebounced(context.Background(), "X", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if check.Exists {
		t.Error("short code reported as existing")
	}
}
