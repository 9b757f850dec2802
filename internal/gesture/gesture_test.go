package gesture

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/waymark/annotate/pkg/core"
)

// manualTimer lets a test decide when (and whether) the delay elapses.
type manualTimer struct {
	fn       func()
	canceled bool
}

func (m *manualTimer) Schedule(d time.Duration, fn func()) func() {
	m.fn = fn
	m.canceled = false
	return func() { m.canceled = true }
}

// Fire simulates the delay elapsing. A canceled timer never fires.
func (m *manualTimer) Fire() {
	if m.fn != nil && !m.canceled {
		m.fn()
	}
}

type fakeQuerier struct {
	handle   core.MapHandle
	found    bool
	hitErr   error
	coord    core.Coordinate
	coordErr error
}

func (f *fakeQuerier) FindNearestMarker(ctx context.Context, p core.ScreenPoint, radius float64) (core.MapHandle, bool, error) {
	return f.handle, f.found, f.hitErr
}

func (f *fakeQuerier) CoordinateForPixel(ctx context.Context, p core.ScreenPoint) (core.Coordinate, error) {
	return f.coord, f.coordErr
}

func TestPressOnMarker_SelectsImmediately(t *testing.T) {
	q := &fakeQuerier{handle: core.MapHandle{ID: 7}, found: true}
	timer := &manualTimer{}

	var selected []core.MapHandle
	var placed []core.Coordinate
	d := New(q, Callbacks{
		OnSelect: func(h core.MapHandle) { selected = append(selected, h) },
		OnPlace:  func(c core.Coordinate) { placed = append(placed, c) },
	}, 400*time.Millisecond, 24, timer, nil)

	d.OnLongPressStart(context.Background(), core.ScreenPoint{X: 10, Y: 10})

	if len(selected) != 1 || selected[0].ID != 7 {
		t.Fatalf("expected immediate selection of handle 7, got %v", selected)
	}
	if len(placed) != 0 {
		t.Errorf("placement callback must not fire on selection, got %v", placed)
	}
	if d.Pending() {
		t.Error("no timer should be armed after a selection")
	}
}

func TestPressOnEmptyMap_PlacesAfterDelay(t *testing.T) {
	q := &fakeQuerier{coord: core.Coordinate{Lat: 10, Lng: 20}}
	timer := &manualTimer{}

	var placed []core.Coordinate
	d := New(q, Callbacks{
		OnPlace: func(c core.Coordinate) { placed = append(placed, c) },
	}, 400*time.Millisecond, 24, timer, nil)

	d.OnLongPressStart(context.Background(), core.ScreenPoint{X: 100, Y: 100})

	if len(placed) != 0 {
		t.Fatal("placement must wait for the delay")
	}
	if !d.Pending() {
		t.Fatal("expected an armed timer")
	}

	timer.Fire()

	if len(placed) != 1 {
		t.Fatalf("expected one placement, got %d", len(placed))
	}
	if placed[0].Lat != 10 || placed[0].Lng != 20 {
		t.Errorf("expected snapshotted coordinate (10, 20), got %v", placed[0])
	}
}

func TestCancelBeforeDelay_NoPlacement(t *testing.T) {
	q := &fakeQuerier{coord: core.Coordinate{Lat: 1, Lng: 2}}
	timer := &manualTimer{}

	var placed []core.Coordinate
	d := New(q, Callbacks{
		OnPlace: func(c core.Coordinate) { placed = append(placed, c) },
	}, 400*time.Millisecond, 24, timer, nil)

	d.OnLongPressStart(context.Background(), core.ScreenPoint{X: 100, Y: 100})
	d.Cancel()
	timer.Fire()

	if len(placed) != 0 {
		t.Errorf("canceled press must not place, got %v", placed)
	}
	if d.Pending() {
		t.Error("cancel should disarm the timer")
	}
}

func TestStaleTimerFire_IsIgnored(t *testing.T) {
	q := &fakeQuerier{coord: core.Coordinate{Lat: 1, Lng: 2}}
	timer := &manualTimer{}

	var placed []core.Coordinate
	d := New(q, Callbacks{
		OnPlace: func(c core.Coordinate) { placed = append(placed, c) },
	}, 400*time.Millisecond, 24, timer, nil)

	d.OnLongPressStart(context.Background(), core.ScreenPoint{X: 100, Y: 100})
	stale := timer.fn

	// A second press supersedes the first before its timer fires.
	q.coord = core.Coordinate{Lat: 30, Lng: 40}
	d.OnLongPressStart(context.Background(), core.ScreenPoint{X: 200, Y: 200})

	stale()
	timer.Fire()

	if len(placed) != 1 {
		t.Fatalf("expected exactly one placement, got %d", len(placed))
	}
	if placed[0].Lat != 30 || placed[0].Lng != 40 {
		t.Errorf("expected the second press's coordinate, got %v", placed[0])
	}
}

func TestConversionFailure_IgnoresPress(t *testing.T) {
	q := &fakeQuerier{coordErr: errors.New("projection out of range")}
	timer := &manualTimer{}

	var placed []core.Coordinate
	d := New(q, Callbacks{
		OnPlace: func(c core.Coordinate) { placed = append(placed, c) },
	}, 400*time.Millisecond, 24, timer, nil)

	d.OnLongPressStart(context.Background(), core.ScreenPoint{X: 100, Y: 100})

	if d.Pending() {
		t.Error("no timer should be armed when conversion fails")
	}
	timer.Fire()
	if len(placed) != 0 {
		t.Errorf("expected no placement, got %v", placed)
	}
}

func TestHitTestFailure_IgnoresPress(t *testing.T) {
	q := &fakeQuerier{hitErr: errors.New("engine unavailable")}
	timer := &manualTimer{}

	var selected []core.MapHandle
	d := New(q, Callbacks{
		OnSelect: func(h core.MapHandle) { selected = append(selected, h) },
	}, 400*time.Millisecond, 24, timer, nil)

	d.OnLongPressStart(context.Background(), core.ScreenPoint{X: 100, Y: 100})

	if len(selected) != 0 || d.Pending() {
		t.Error("a failed hit test must not select or arm a timer")
	}
}

func TestAfterFuncTimer(t *testing.T) {
	done := make(chan struct{})
	cancel := AfterFuncTimer{}.Schedule(time.Millisecond, func() { close(done) })
	defer cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timer never fired")
	}
}
