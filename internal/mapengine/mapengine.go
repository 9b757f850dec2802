// Package mapengine abstracts the rendering engine that draws markers.
// The interaction layer only ever talks to this interface; the real
// engine lives on the host UI side and a simulated engine backs tests
// and the CLI harness.
package mapengine

import (
	"context"

	"github.com/waymark/annotate/pkg/core"
)

// Engine is the marker surface of the rendering engine. All calls are
// fallible: the engine can reject geometry it cannot project and every
// handle-keyed call can miss when the marker was already destroyed.
type Engine interface {
	// AddMarker creates a marker and returns its handle. Handle ids are
	// engine-assigned and never reused within a session.
	AddMarker(ctx context.Context, at core.Coordinate, icon []byte, label string) (core.MapHandle, error)

	// RemoveMarker destroys the marker with the given handle id.
	RemoveMarker(ctx context.Context, handleID uint64) error

	// UpdateVisualPosition moves a marker's rendered position without
	// touching anything else about it.
	UpdateVisualPosition(ctx context.Context, handleID uint64, at core.Coordinate) error

	// FindNearestMarker returns the marker closest to a screen point
	// within radius pixels, or found=false when none is in range.
	FindNearestMarker(ctx context.Context, p core.ScreenPoint, radius float64) (handle core.MapHandle, found bool, err error)

	// PixelForCoordinate projects a geographic coordinate to screen space.
	PixelForCoordinate(ctx context.Context, at core.Coordinate) (core.ScreenPoint, error)

	// CoordinateForPixel unprojects a screen point to a geographic
	// coordinate. Fails when the point falls outside the projectable
	// viewport.
	CoordinateForPixel(ctx context.Context, p core.ScreenPoint) (core.Coordinate, error)
}
