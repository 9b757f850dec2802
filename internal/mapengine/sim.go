package mapengine

import (
	"context"
	"fmt"
	"sync"

	"github.com/waymark/annotate/internal/geo"
	"github.com/waymark/annotate/pkg/core"
)

// Viewport describes the simulated screen: its pixel dimensions, the
// coordinate rendered at its center and the linear zoom factor.
type Viewport struct {
	Width, Height   float64
	Center          core.Coordinate
	PixelsPerDegree float64
}

type simMarker struct {
	handle core.MapHandle
	at     core.Coordinate
}

// Sim is an in-memory Engine with a flat equirectangular projection.
// Good enough for tests and the CLI harness; nobody pans it across a
// pole.
type Sim struct {
	viewport Viewport

	mu      sync.Mutex
	markers map[uint64]*simMarker
	nextID  uint64
}

// NewSim creates a simulated engine for the given viewport.
func NewSim(v Viewport) *Sim {
	if v.PixelsPerDegree == 0 {
		v.PixelsPerDegree = 100
	}
	return &Sim{
		viewport: v,
		markers:  make(map[uint64]*simMarker),
	}
}

// AddMarker creates a marker. Handle ids increase monotonically and
// are never reused.
func (s *Sim) AddMarker(ctx context.Context, at core.Coordinate, icon []byte, label string) (core.MapHandle, error) {
	if !geo.Valid(at) {
		return core.MapHandle{}, fmt.Errorf("%w: %v", geo.ErrInvalidCoordinates, at)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	h := core.MapHandle{ID: s.nextID, Geometry: at, Icon: icon, Label: label}
	s.markers[h.ID] = &simMarker{handle: h, at: at}
	return h, nil
}

// RemoveMarker destroys a marker.
func (s *Sim) RemoveMarker(ctx context.Context, handleID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.markers[handleID]; !ok {
		return fmt.Errorf("no marker with handle %d", handleID)
	}
	delete(s.markers, handleID)
	return nil
}

// UpdateVisualPosition moves a marker.
func (s *Sim) UpdateVisualPosition(ctx context.Context, handleID uint64, at core.Coordinate) error {
	if !geo.Valid(at) {
		return fmt.Errorf("%w: %v", geo.ErrInvalidCoordinates, at)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.markers[handleID]
	if !ok {
		return fmt.Errorf("no marker with handle %d", handleID)
	}
	m.at = at
	m.handle.Geometry = at
	return nil
}

// FindNearestMarker returns the closest marker within radius pixels.
func (s *Sim) FindNearestMarker(ctx context.Context, p core.ScreenPoint, radius float64) (core.MapHandle, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		best     *simMarker
		bestDist float64
	)
	for _, m := range s.markers {
		mp := s.project(m.at)
		dx := mp.X - p.X
		dy := mp.Y - p.Y
		dist := dx*dx + dy*dy
		if dist > radius*radius {
			continue
		}
		if best == nil || dist < bestDist {
			best = m
			bestDist = dist
		}
	}

	if best == nil {
		return core.MapHandle{}, false, nil
	}
	return best.handle, true, nil
}

// PixelForCoordinate projects a coordinate to screen space.
func (s *Sim) PixelForCoordinate(ctx context.Context, at core.Coordinate) (core.ScreenPoint, error) {
	if !geo.Valid(at) {
		return core.ScreenPoint{}, fmt.Errorf("%w: %v", geo.ErrInvalidCoordinates, at)
	}
	return s.project(at), nil
}

// CoordinateForPixel unprojects a screen point. Points outside the
// viewport are rejected.
func (s *Sim) CoordinateForPixel(ctx context.Context, p core.ScreenPoint) (core.Coordinate, error) {
	if p.X < 0 || p.X > s.viewport.Width || p.Y < 0 || p.Y > s.viewport.Height {
		return core.Coordinate{}, fmt.Errorf("%w: point (%v, %v) outside viewport", core.ErrCoordinateConversion, p.X, p.Y)
	}

	c := core.Coordinate{
		Lat: s.viewport.Center.Lat - (p.Y-s.viewport.Height/2)/s.viewport.PixelsPerDegree,
		Lng: s.viewport.Center.Lng + (p.X-s.viewport.Width/2)/s.viewport.PixelsPerDegree,
	}
	if !geo.Valid(c) {
		return core.Coordinate{}, fmt.Errorf("%w: unprojected to %v", core.ErrCoordinateConversion, c)
	}
	return c, nil
}

// project maps a coordinate to screen space. Screen y grows downward.
func (s *Sim) project(at core.Coordinate) core.ScreenPoint {
	return core.ScreenPoint{
		X: s.viewport.Width/2 + (at.Lng-s.viewport.Center.Lng)*s.viewport.PixelsPerDegree,
		Y: s.viewport.Height/2 - (at.Lat-s.viewport.Center.Lat)*s.viewport.PixelsPerDegree,
	}
}

// MarkerCount returns the number of live markers. Test helper.
func (s *Sim) MarkerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.markers)
}

// Marker returns a snapshot of the marker with the given handle id.
// Test helper.
func (s *Sim) Marker(handleID uint64) (core.MapHandle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.markers[handleID]
	if !ok {
		return core.MapHandle{}, false
	}
	return m.handle, true
}
