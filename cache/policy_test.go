package cache

import (
	"testing"
	"time"
)

func TestDefaultPolicy_Values(t *testing.T) {
	policy := DefaultPolicy()

	if policy.DefaultTTL != 5*time.Second {
		t.Errorf("DefaultTTL = %v, want 5s", policy.DefaultTTL)
	}
	if policy.MaxTTL != time.Minute {
		t.Errorf("MaxTTL = %v, want 1m", policy.MaxTTL)
	}
	if !policy.ShouldCache() {
		t.Error("default policy should enable caching")
	}
}

func TestNoCachePolicy_DisablesCaching(t *testing.T) {
	policy := NoCachePolicy()

	if policy.ShouldCache() {
		t.Error("no-cache policy should disable caching")
	}
	if got := policy.EffectiveTTL(0); got != 0 {
		t.Errorf("EffectiveTTL(0) = %v, want 0", got)
	}
}

func TestPolicy_EffectiveTTL(t *testing.T) {
	policy := Policy{
		DefaultTTL: 5 * time.Second,
		MaxTTL:     time.Minute,
	}

	tests := []struct {
		name     string
		override time.Duration
		want     time.Duration
	}{
		{"zero uses default", 0, 5 * time.Second},
		{"negative uses default", -time.Second, 5 * time.Second},
		{"reasonable override", 10 * time.Second, 10 * time.Second},
		{"excessive override clamped", time.Hour, time.Minute},
		{"max exactly", time.Minute, time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := policy.EffectiveTTL(tt.override); got != tt.want {
				t.Errorf("EffectiveTTL(%v) = %v, want %v", tt.override, got, tt.want)
			}
		})
	}
}

func TestPolicy_EffectiveTTL_NoMax(t *testing.T) {
	policy := Policy{DefaultTTL: 5 * time.Second}

	if got := policy.EffectiveTTL(time.Hour); got != time.Hour {
		t.Errorf("EffectiveTTL(1h) with no max = %v, want 1h", got)
	}
}
