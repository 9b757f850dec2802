package interaction

import "github.com/waymark/annotate/pkg/core"

// Kind enumerates the mutually exclusive interaction modes. Exactly one
// is active at any time.
type Kind int

const (
	// KindIdle means no workflow is in progress.
	KindIdle Kind = iota
	// KindPendingPlacement is the window between a long press on empty
	// map and the placement dialog resolving.
	KindPendingPlacement
	// KindSelectionMenu means the marker menu is showing.
	KindSelectionMenu
	// KindMove means a drag-to-reposition is in progress.
	KindMove
	// KindConnect means the first marker of a connection is chosen and
	// a second tap is awaited.
	KindConnect
	// KindDragToDelete means a drag released over the trash zone and
	// the confirmation dialog is pending.
	KindDragToDelete
)

func (k Kind) String() string {
	switch k {
	case KindIdle:
		return "idle"
	case KindPendingPlacement:
		return "pendingPlacement"
	case KindSelectionMenu:
		return "selectionMenu"
	case KindMove:
		return "move"
	case KindConnect:
		return "connect"
	case KindDragToDelete:
		return "dragToDelete"
	default:
		return "unknown"
	}
}

// mode is the controller's single state value. Only the fields relevant
// to the active kind are meaningful; transitions overwrite the whole
// struct so no stale field survives a mode change.
type mode struct {
	kind Kind

	// Marker the menu/move/connect/delete workflows operate on.
	selected core.MapHandle

	// Geometry snapshot taken when the marker was selected; the revert
	// target for canceled moves and declined deletions.
	originalGeometry core.Coordinate

	// Last drag position, checked against the trash zone at drag end.
	lastScreenPoint core.ScreenPoint

	// Coordinate snapshotted for a pending placement.
	pendingPoint core.Coordinate

	// True once at least one drag update changed the marker's position
	// in the current move.
	moved bool

	// True while a workflow has the mode suspended on a modal dialog.
	// Further events are rejected until the owning workflow resolves.
	busy bool
}

func idleMode() mode {
	return mode{kind: KindIdle}
}
