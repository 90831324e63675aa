package tui

import (
	"strings"
	"testing"
)

func TestRenderShimmerLogo(t *testing.T) {
	out := renderShimmerLogo(0)
	for _, letter := range []string{"P", "A", "R", "L", "E", "Y"} {
		if !strings.Contains(out, letter) {
			t.Errorf("logo missing letter %q:\n%s", letter, out)
		}
	}
	// Later frames must still render without panicking.
	if renderShimmerLogo(1000) == "" {
		t.Error("expected non-empty logo at high frame counts")
	}
}

func TestClampByte(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{-10, 0},
		{0, 0},
		{127.4, 127},
		{255, 255},
		{300, 255},
	}
	for _, tt := range tests {
		if got := clampByte(tt.in); got != tt.want {
			t.Errorf("clampByte(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestHelpEntry(t *testing.T) {
	out := helpEntry("q", "quit")
	if !strings.Contains(out, "q") || !strings.Contains(out, "quit") {
		t.Errorf("helpEntry = %q, want key and label present", out)
	}
}
