package main

import "testing"

func TestResolveSeed(t *testing.T) {
	// Explicit flag wins over the manifest seed.
	if got := resolveSeed(7, true, 42); got != 7 {
		t.Errorf("resolveSeed(7, set, 42) = %d, want 7", got)
	}
	// Without the flag, the manifest seed applies.
	if got := resolveSeed(0, false, 42); got != 42 {
		t.Errorf("resolveSeed(0, unset, 42) = %d, want 42", got)
	}
}

func TestResolveSeedClockFallback(t *testing.T) {
	// No flag, no manifest seed: seeded from the clock.
	if got := resolveSeed(0, false, 0); got == 0 {
		t.Error("resolveSeed(0, unset, 0) = 0, want a clock seed")
	}
	// An explicit -seed 0 requests clock seeding even when the manifest
	// pins a seed.
	if got := resolveSeed(0, true, 42); got == 0 || got == 42 {
		t.Errorf("resolveSeed(0, set, 42) = %d, want a clock seed", got)
	}
}
