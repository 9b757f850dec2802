package interaction

import (
	"context"
	"testing"

	"github.com/waymark/annotate/internal/dialog"
	"github.com/waymark/annotate/internal/identity"
	"github.com/waymark/annotate/internal/mapengine"
	"github.com/waymark/annotate/internal/storage/memory"
	"github.com/waymark/annotate/pkg/core"
)

func newTestController() (*Controller, *mapengine.Sim) {
	engine := mapengine.NewSim(mapengine.Viewport{
		Width:           1280,
		Height:          720,
		Center:          core.Coordinate{Lat: 10, Lng: 20},
		PixelsPerDegree: 100,
	})
	c := NewController(Options{
		Engine:  engine,
		Repo:    memory.New(),
		Dialogs: dialog.NewScripted(),
		Icons:   &stubIcons{},
		Links:   identity.NewLinker(),
		Zone:    testZone,
	})
	return c, engine
}

func TestModeExclusivity_RejectedTransitions(t *testing.T) {
	c, _ := newTestController()
	ctx := context.Background()

	// None of these are legal from Idle.
	c.BeginMove()
	c.StartConnect()
	c.BeginEdit(ctx)
	c.FinishMove(ctx)
	c.CancelMove(ctx)
	c.CancelMenu()
	c.CancelConnect()
	c.FinishConnect(ctx, core.MapHandle{ID: 1})
	c.CompletePlacement(ctx)

	if got := c.Mode(); got != KindIdle {
		t.Errorf("expected Idle after rejected events, got %v", got)
	}
}

func TestSelectMarker_RequiresIdle(t *testing.T) {
	c, engine := newTestController()
	ctx := context.Background()

	h, err := engine.AddMarker(ctx, core.Coordinate{Lat: 10, Lng: 20}, nil, "m")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c.SelectMarker(h)
	if got := c.Mode(); got != KindSelectionMenu {
		t.Fatalf("expected SelectionMenu, got %v", got)
	}

	// A second long press while the menu is open must not restack.
	c.SelectMarker(h)
	if got := c.Mode(); got != KindSelectionMenu {
		t.Errorf("expected SelectionMenu to remain, got %v", got)
	}

	c.CancelMenu()
	if got := c.Mode(); got != KindIdle {
		t.Errorf("expected Idle after menu cancel, got %v", got)
	}
}

func TestStartPendingPlacement_RequiresIdle(t *testing.T) {
	c, engine := newTestController()
	ctx := context.Background()

	h, _ := engine.AddMarker(ctx, core.Coordinate{Lat: 10, Lng: 20}, nil, "m")
	c.SelectMarker(h)

	c.StartPendingPlacement(core.Coordinate{Lat: 11, Lng: 21})
	if got := c.Mode(); got != KindSelectionMenu {
		t.Errorf("pending placement must not preempt the menu, got %v", got)
	}
}

func TestDragUpdate_IgnoredOutsideMove(t *testing.T) {
	c, engine := newTestController()
	ctx := context.Background()

	h, _ := engine.AddMarker(ctx, core.Coordinate{Lat: 10, Lng: 20}, nil, "m")

	c.DragUpdate(ctx, core.ScreenPoint{X: 700, Y: 400})

	got, _ := engine.Marker(h.ID)
	if got.Geometry != (core.Coordinate{Lat: 10, Lng: 20}) {
		t.Errorf("drag outside Move mode must not move markers, got %v", got.Geometry)
	}
}

func TestModeNameForLogging(t *testing.T) {
	c, _ := newTestController()

	if got := c.ModeName(); got != "idle" {
		t.Errorf("expected 'idle', got %q", got)
	}
}

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		KindIdle:             "idle",
		KindPendingPlacement: "pendingPlacement",
		KindSelectionMenu:    "selectionMenu",
		KindMove:             "move",
		KindConnect:          "connect",
		KindDragToDelete:     "dragToDelete",
		Kind(99):             "unknown",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}
