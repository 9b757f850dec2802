package interaction

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/waymark/annotate/internal/dispatcher"
	"github.com/waymark/annotate/internal/gesture"
	"github.com/waymark/annotate/internal/mapengine"
	"github.com/waymark/annotate/internal/queue"
	"github.com/waymark/annotate/internal/storage"
	"github.com/waymark/annotate/pkg/core"
)

// Facade is the single entry point the host UI layer calls. It wires
// the gesture disambiguator to the controller and buffers presentation
// events for the UI's poll loop.
type Facade struct {
	controller *Controller
	gestures   *gesture.Disambiguator
	engine     mapengine.Engine
	repo       storage.Repository
	icons      IconSource
	events     *queue.Queue[core.Event]
	hitRadius  float64
	log        *slog.Logger
}

// FacadeOptions configures NewFacade. Controller collaborators come
// from Options; Delay and HitRadius parameterize the disambiguator.
type FacadeOptions struct {
	Options
	Delay     time.Duration
	HitRadius float64
	Timer     gesture.Timer
}

// NewFacade builds the controller, disambiguator and event queue.
func NewFacade(opts FacadeOptions) *Facade {
	events := queue.New[core.Event]()

	userEmit := opts.Emit
	opts.Emit = func(e core.Event) {
		events.Push(e)
		if userEmit != nil {
			userEmit(e)
		}
	}

	c := NewController(opts.Options)

	f := &Facade{
		controller: c,
		engine:     opts.Engine,
		repo:       opts.Repo,
		icons:      opts.Icons,
		events:     events,
		hitRadius:  opts.HitRadius,
		log:        c.log,
	}

	f.gestures = gesture.New(opts.Engine, gesture.Callbacks{
		OnSelect: c.SelectMarker,
		OnPlace: func(at core.Coordinate) {
			// The timer fired for the snapshotted coordinate; run the
			// whole create workflow now.
			c.CompletePlacement(context.Background())
		},
	}, opts.Delay, opts.HitRadius, opts.Timer, c.log)

	return f
}

// Controller exposes the mode state machine, mostly for tests and the
// CLI harness status display.
func (f *Facade) Controller() *Controller {
	return f.controller
}

// LongPressStart feeds a long-press start into the disambiguator. Only
// Idle accepts a new press: while any workflow or dialog is active the
// press is a no-op and never re-arms the timer. For a press on empty
// map the controller enters PendingPlacement before the timer is armed
// so a drag can cancel both together.
func (f *Facade) LongPressStart(ctx context.Context, p core.ScreenPoint) {
	if f.controller.Mode() != KindIdle {
		f.log.Debug("long press ignored in current mode", "mode", f.controller.ModeName())
		return
	}
	if _, found, err := f.engine.FindNearestMarker(ctx, p, f.hitRadius); err == nil && !found {
		if at, err := f.engine.CoordinateForPixel(ctx, p); err == nil {
			f.controller.StartPendingPlacement(at)
		}
	}
	f.gestures.OnLongPressStart(ctx, p)
}

// Drag feeds a drag update. A drag arriving while a placement is
// pending cancels the placement instead: the press was a pan, not a
// hold.
func (f *Facade) Drag(ctx context.Context, p core.ScreenPoint) {
	if f.controller.Mode() == KindPendingPlacement {
		f.gestures.Cancel()
		f.controller.CancelPendingPlacement()
		return
	}
	f.controller.DragUpdate(ctx, p)
}

// DragEnd feeds the end of a drag.
func (f *Facade) DragEnd(ctx context.Context, p core.ScreenPoint) {
	if f.controller.Mode() == KindPendingPlacement {
		f.gestures.Cancel()
		f.controller.CancelPendingPlacement()
		return
	}
	f.controller.DragEnded(ctx, p)
}

// MarkerTapped routes a plain tap on a marker. In Connect mode it
// completes the connection; in any other mode it is ignored.
func (f *Facade) MarkerTapped(ctx context.Context, h core.MapHandle) {
	if f.controller.Mode() != KindConnect {
		f.log.Debug("marker tap outside connect mode ignored", "handleId", h.ID)
		return
	}
	f.controller.FinishConnect(ctx, h)
}

// MovePressed handles the menu's move button.
func (f *Facade) MovePressed() {
	f.controller.BeginMove()
}

// EditPressed handles the menu's edit button.
func (f *Facade) EditPressed(ctx context.Context) {
	f.controller.BeginEdit(ctx)
}

// ConnectPressed handles the menu's connect button.
func (f *Facade) ConnectPressed() {
	f.controller.StartConnect()
}

// LockPressed commits an in-progress move.
func (f *Facade) LockPressed(ctx context.Context) {
	f.controller.FinishMove(ctx)
}

// CancelPressed is the contextual cancel button: it unwinds whatever
// mode is active.
func (f *Facade) CancelPressed(ctx context.Context) {
	switch f.controller.Mode() {
	case KindPendingPlacement:
		f.gestures.Cancel()
		f.controller.CancelPendingPlacement()
	case KindSelectionMenu:
		f.controller.CancelMenu()
	case KindMove:
		f.controller.CancelMove(ctx)
	case KindConnect:
		f.controller.CancelConnect()
	default:
		f.log.Debug("cancel pressed with nothing to cancel")
	}
}

// Events drains the buffered presentation events in order.
func (f *Facade) Events() []core.Event {
	return f.events.Drain()
}

// Restore rehydrates markers and identity links from storage, used at
// session start. Records whose icon or marker cannot be created are
// skipped with a logged error rather than failing the whole restore.
func (f *Facade) Restore(ctx context.Context) error {
	records, err := f.repo.GetAll(ctx)
	if err != nil {
		return err
	}

	for _, rec := range records {
		icon, err := f.icons.Icon(rec.IconName)
		if err != nil {
			f.log.Error("restore: icon load failed, skipping record",
				"error", err, "storageId", rec.StorageID, "icon", rec.IconName)
			continue
		}
		handle, err := f.engine.AddMarker(ctx, rec.Coordinate(), icon, rec.Title)
		if err != nil {
			f.log.Error("restore: marker creation failed, skipping record",
				"error", err, "storageId", rec.StorageID)
			continue
		}
		f.controller.Links().Register(handle.ID, rec.StorageID)
	}

	f.log.Info("session restored", "records", len(records))
	return nil
}

// RegisterHandlers wires the facade's operations into the input
// dispatcher. Pointer streams go through small buffers so a burst of
// drag updates never blocks the input thread; stale updates are
// dropped, which is safe because only the latest position matters.
func (f *Facade) RegisterHandlers(d *dispatcher.Dispatcher) {
	ctx := context.Background()

	point := func(e dispatcher.Event) (core.ScreenPoint, bool) {
		if len(e.Args) < 2 {
			f.log.Warn("pointer command missing coordinates", "command", e.Command)
			return core.ScreenPoint{}, false
		}
		x, errX := strconv.ParseFloat(e.Args[0], 64)
		y, errY := strconv.ParseFloat(e.Args[1], 64)
		if errX != nil || errY != nil {
			f.log.Warn("pointer command has malformed coordinates",
				"command", e.Command, "args", e.Args)
			return core.ScreenPoint{}, false
		}
		return core.ScreenPoint{X: x, Y: y}, true
	}

	d.Register(":PRESS:", func(e dispatcher.Event) (any, error) {
		if p, ok := point(e); ok {
			f.LongPressStart(ctx, p)
		}
		return nil, nil
	}, dispatcher.Logged())

	d.Register(":DRAG:", func(e dispatcher.Event) (any, error) {
		if p, ok := point(e); ok {
			f.Drag(ctx, p)
		}
		return nil, nil
	}, dispatcher.Buffered(64))

	d.Register(":RELEASE:", func(e dispatcher.Event) (any, error) {
		if p, ok := point(e); ok {
			f.DragEnd(ctx, p)
		}
		return nil, nil
	}, dispatcher.Logged())

	d.Register(":TAP:", func(e dispatcher.Event) (any, error) {
		if len(e.Args) < 1 {
			return nil, nil
		}
		id, err := strconv.ParseUint(e.Args[0], 10, 64)
		if err != nil {
			f.log.Warn("tap command has malformed handle id", "args", e.Args)
			return nil, nil
		}
		f.MarkerTapped(ctx, core.MapHandle{ID: id})
		return nil, nil
	}, dispatcher.Logged())

	d.Register(":MOVE:", func(e dispatcher.Event) (any, error) {
		f.MovePressed()
		return nil, nil
	}, dispatcher.Logged())

	d.Register(":EDIT:", func(e dispatcher.Event) (any, error) {
		f.EditPressed(ctx)
		return nil, nil
	}, dispatcher.Logged())

	d.Register(":CONNECT:", func(e dispatcher.Event) (any, error) {
		f.ConnectPressed()
		return nil, nil
	}, dispatcher.Logged())

	d.Register(":LOCK:", func(e dispatcher.Event) (any, error) {
		f.LockPressed(ctx)
		return nil, nil
	}, dispatcher.Logged())

	d.Register(":CANCEL:", func(e dispatcher.Event) (any, error) {
		f.CancelPressed(ctx)
		return nil, nil
	}, dispatcher.Logged())
}
