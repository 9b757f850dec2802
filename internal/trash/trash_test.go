package trash

import (
	"testing"

	"github.com/waymark/annotate/internal/config"
	"github.com/waymark/annotate/pkg/core"
)

func TestRectZone(t *testing.T) {
	z := RectZone{X: 10, Y: 10, Width: 100, Height: 50}

	cases := []struct {
		name string
		p    core.ScreenPoint
		want bool
	}{
		{"inside", core.ScreenPoint{X: 50, Y: 30}, true},
		{"on edge", core.ScreenPoint{X: 10, Y: 10}, true},
		{"far corner", core.ScreenPoint{X: 110, Y: 60}, true},
		{"left of", core.ScreenPoint{X: 9, Y: 30}, false},
		{"below", core.ScreenPoint{X: 50, Y: 61}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := z.Contains(tc.p); got != tc.want {
				t.Errorf("Contains(%v) = %v, want %v", tc.p, got, tc.want)
			}
		})
	}
}

func TestCircleZone(t *testing.T) {
	z := CircleZone{CenterX: 0, CenterY: 0, Radius: 10}

	cases := []struct {
		name string
		p    core.ScreenPoint
		want bool
	}{
		{"center", core.ScreenPoint{X: 0, Y: 0}, true},
		{"on rim", core.ScreenPoint{X: 10, Y: 0}, true},
		{"diagonal inside", core.ScreenPoint{X: 7, Y: 7}, true},
		{"just outside", core.ScreenPoint{X: 8, Y: 8}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := z.Contains(tc.p); got != tc.want {
				t.Errorf("Contains(%v) = %v, want %v", tc.p, got, tc.want)
			}
		})
	}
}

func TestFromConfig(t *testing.T) {
	config.SetDefaults()

	z, err := FromConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := z.(RectZone); !ok {
		t.Errorf("expected default RectZone, got %T", z)
	}
}
