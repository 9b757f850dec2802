// Package trash decides whether a drag released over the deletion
// target. The zone lives in screen coordinates because the deletion
// affordance is drawn in screen space, not map space.
package trash

import (
	"fmt"

	"github.com/waymark/annotate/internal/config"
	"github.com/waymark/annotate/pkg/core"
)

// Zone is a screen-space hit region.
type Zone interface {
	Contains(p core.ScreenPoint) bool
}

// RectZone is an axis-aligned rectangular zone.
type RectZone struct {
	X, Y, Width, Height float64
}

// Contains reports whether p lies inside the rectangle.
func (r RectZone) Contains(p core.ScreenPoint) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// CircleZone is a circular zone.
type CircleZone struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether p lies inside or on the circle.
func (c CircleZone) Contains(p core.ScreenPoint) bool {
	dx := p.X - c.CenterX
	dy := p.Y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// FromConfig builds the configured zone. trash.shape selects the
// geometry; the remaining trash.* keys parameterize it.
func FromConfig() (Zone, error) {
	shape := config.GetString("trash.shape")
	switch shape {
	case "rect":
		return RectZone{
			X:      config.GetFloat("trash.x"),
			Y:      config.GetFloat("trash.y"),
			Width:  config.GetFloat("trash.width"),
			Height: config.GetFloat("trash.height"),
		}, nil
	case "circle":
		return CircleZone{
			CenterX: config.GetFloat("trash.centerX"),
			CenterY: config.GetFloat("trash.centerY"),
			Radius:  config.GetFloat("trash.radius"),
		}, nil
	default:
		return nil, fmt.Errorf("unknown trash zone shape %q", shape)
	}
}
