package handlers

import (
	"testing"
	"time"
)

func TestSimpleRateLimiter(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	limiter := newSimpleRateLimiter(2, time.Minute, func() time.Time { return now })

	if !limiter.Allow("10.0.0.1") || !limiter.Allow("10.0.0.1") {
		t.Fatal("first two requests within the window should pass")
	}
	if limiter.Allow("10.0.0.1") {
		t.Fatal("third request within the window should be rejected")
	}
	if !limiter.Allow("10.0.0.2") {
		t.Fatal("other keys are counted independently")
	}

	now = now.Add(time.Minute + time.Second)
	if !limiter.Allow("10.0.0.1") {
		t.Fatal("window rollover should reset the count")
	}
}

func TestSimpleRateLimiterBlankKey(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	limiter := newSimpleRateLimiter(1, time.Minute, func() time.Time { return now })

	if !limiter.Allow("") {
		t.Fatal("first anonymous request should pass")
	}
	if limiter.Allow("  ") {
		t.Fatal("blank keys share the anonymous bucket")
	}
}

func TestSimpleRateLimiterDisabled(t *testing.T) {
	if limiter := newSimpleRateLimiter(0, time.Minute, nil); limiter != nil {
		t.Fatal("non-positive limit should disable throttling")
	}
	if limiter := newSimpleRateLimiter(5, 0, nil); limiter != nil {
		t.Fatal("non-positive window should disable throttling")
	}
}
