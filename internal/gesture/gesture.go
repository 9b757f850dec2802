// Package gesture turns raw long-press input into one of two outcomes:
// selecting an existing marker or placing a new one. The two are
// disambiguated by a hold timer so that a press which immediately turns
// into a drag never opens the placement dialog.
package gesture

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/waymark/annotate/pkg/core"
)

// Timer schedules a callback after a delay and hands back a cancel
// function. Tests substitute a manual implementation so nothing sleeps.
type Timer interface {
	Schedule(d time.Duration, fn func()) (cancel func())
}

// AfterFuncTimer schedules on the runtime timer wheel.
type AfterFuncTimer struct{}

func (AfterFuncTimer) Schedule(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// MapQuerier is the slice of the map engine the disambiguator needs.
type MapQuerier interface {
	FindNearestMarker(ctx context.Context, p core.ScreenPoint, radius float64) (core.MapHandle, bool, error)
	CoordinateForPixel(ctx context.Context, p core.ScreenPoint) (core.Coordinate, error)
}

// Callbacks receive the disambiguated outcome. OnSelect fires
// synchronously from the press when a marker is under the finger;
// OnPlace fires from the timer goroutine after the hold delay elapses
// without a cancel.
type Callbacks struct {
	OnSelect func(handle core.MapHandle)
	OnPlace  func(at core.Coordinate)
}

// Disambiguator owns the pending-placement timer. At most one press is
// tracked at a time; a new press replaces any pending one.
type Disambiguator struct {
	engine    MapQuerier
	callbacks Callbacks
	timer     Timer
	delay     time.Duration
	hitRadius float64
	log       *slog.Logger

	mu         sync.Mutex
	generation uint64
	cancel     func()
	pending    core.Coordinate
}

// New creates a disambiguator. A nil timer falls back to AfterFuncTimer.
func New(engine MapQuerier, cb Callbacks, delay time.Duration, hitRadius float64, timer Timer, log *slog.Logger) *Disambiguator {
	if timer == nil {
		timer = AfterFuncTimer{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Disambiguator{
		engine:    engine,
		callbacks: cb,
		timer:     timer,
		delay:     delay,
		hitRadius: hitRadius,
		log:       log,
	}
}

// OnLongPressStart handles the start of a long press at a screen point.
// A press over an existing marker resolves immediately to selection.
// A press over empty map arms the placement timer; the coordinate is
// snapshotted now so later pans do not move the eventual placement.
func (d *Disambiguator) OnLongPressStart(ctx context.Context, p core.ScreenPoint) {
	handle, found, err := d.engine.FindNearestMarker(ctx, p, d.hitRadius)
	if err != nil {
		d.log.Error("marker hit test failed", "error", err, "x", p.X, "y", p.Y)
		return
	}

	if found {
		d.Cancel()
		if d.callbacks.OnSelect != nil {
			d.callbacks.OnSelect(handle)
		}
		return
	}

	coord, err := d.engine.CoordinateForPixel(ctx, p)
	if err != nil {
		// Without a geographic anchor there is nothing to place.
		d.log.Warn("pixel to coordinate conversion failed, ignoring press",
			"error", err, "x", p.X, "y", p.Y)
		return
	}

	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.generation++
	gen := d.generation
	d.pending = coord
	d.cancel = d.timer.Schedule(d.delay, func() { d.fire(gen) })
	d.mu.Unlock()
}

// fire delivers the placement callback unless the press was canceled or
// superseded in the meantime.
func (d *Disambiguator) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.generation {
		d.mu.Unlock()
		return
	}
	coord := d.pending
	d.cancel = nil
	d.mu.Unlock()

	if d.callbacks.OnPlace != nil {
		d.callbacks.OnPlace(coord)
	}
}

// Cancel discards any pending placement. Called when the press turns
// into a drag or lifts before the delay elapses. Safe to call when
// nothing is pending.
func (d *Disambiguator) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.generation++
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}

// Pending reports whether a placement timer is armed. Test helper.
func (d *Disambiguator) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cancel != nil
}
