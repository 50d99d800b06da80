package middleware

import (
	"testing"
	"time"
)

func TestRateLimiterAllow(t *testing.T) {
	limiter := NewRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !limiter.Allow() {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if limiter.Allow() {
		t.Fatal("request over capacity should be rejected")
	}
}

func TestRateLimiterRefills(t *testing.T) {
	// 高速率讓補充在測試內發生
	limiter := NewRateLimiter(100, time.Second)
	for i := 0; i < 100; i++ {
		limiter.Allow()
	}
	if limiter.Allow() {
		t.Fatal("bucket should be empty")
	}

	time.Sleep(50 * time.Millisecond)
	if !limiter.Allow() {
		t.Fatal("bucket should have refilled")
	}
}
