package core

import "testing"

func TestRuntimeConfigWithDefaults(t *testing.T) {
	got := RuntimeConfig{TickRate: -1, Seed: 9}.WithDefaults()
	want := RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 9}
	if got != want {
		t.Errorf("WithDefaults() = %+v, want %+v", got, want)
	}

	sized := RuntimeConfig{ScreenW: 120, ScreenH: 40, TickRate: 30}
	if sized.WithDefaults() != sized {
		t.Errorf("WithDefaults() changed a complete config: %+v", sized.WithDefaults())
	}
}
