// Package interaction implements the annotation interaction controller:
// the mode state machine, the gesture-to-workflow orchestration and the
// facade the host UI layer calls into. It owns no rendering and no
// persistence; both are collaborators reached through narrow interfaces.
package interaction

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/waymark/annotate/internal/identity"
	"github.com/waymark/annotate/internal/mapengine"
	"github.com/waymark/annotate/internal/storage"
	"github.com/waymark/annotate/internal/trash"
	"github.com/waymark/annotate/pkg/core"
)

// IconSource resolves icon names to image bytes.
type IconSource interface {
	Icon(name string) ([]byte, error)
}

// DialogService is the modal-dialog surface the workflows block on.
type DialogService interface {
	PresentPlacementForm(ctx context.Context, at core.Coordinate) (core.FormResult, bool, error)
	PresentEditForm(ctx context.Context, existing core.AnnotationRecord) (core.FormResult, bool, error)
	ConfirmDeletion(ctx context.Context, title string) (bool, error)
}

// Metrics receives interaction telemetry. The influx manager satisfies
// this; a nil Metrics disables recording.
type Metrics interface {
	RecordTransition(ctx context.Context, from, to, trigger string) error
	RecordWorkflow(ctx context.Context, workflow, outcome string, elapsed time.Duration) error
}

// Controller is the interaction-mode state machine. All mode mutations
// go through transition so every change is logged and re-validatable.
//
// Collaborator calls suspend the workflow; after any such call the
// controller re-checks its epoch before committing, since a cancel or a
// new gesture may have arrived while the call was pending.
type Controller struct {
	engine  mapengine.Engine
	repo    storage.Repository
	dialogs DialogService
	icons   IconSource
	links   *identity.Linker
	zone    trash.Zone
	log     *slog.Logger
	metrics Metrics
	emit    func(core.Event)

	mu    sync.Mutex
	mode  mode
	epoch uint64

	// Reentrancy guard for drag updates: overlapping updates are
	// dropped, not queued, because only the latest position matters.
	dragBusy atomic.Bool
}

// Options carries the controller's collaborators. Engine, Repo, Dialogs
// and Links are required; the rest may be nil.
type Options struct {
	Engine  mapengine.Engine
	Repo    storage.Repository
	Dialogs DialogService
	Icons   IconSource
	Links   *identity.Linker
	Zone    trash.Zone
	Log     *slog.Logger
	Metrics Metrics
	Emit    func(core.Event)
}

// NewController creates a controller in Idle mode.
func NewController(opts Options) *Controller {
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}
	return &Controller{
		engine:  opts.Engine,
		repo:    opts.Repo,
		dialogs: opts.Dialogs,
		icons:   opts.Icons,
		links:   opts.Links,
		zone:    opts.Zone,
		log:     log,
		metrics: opts.Metrics,
		emit:    opts.Emit,
		mode:    idleMode(),
	}
}

// Mode returns the active mode kind.
func (c *Controller) Mode() Kind {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode.kind
}

// ModeName returns the active mode kind as a string. Satisfies the
// logging context provider so every log line carries the current mode.
func (c *Controller) ModeName() string {
	return c.Mode().String()
}

// Links exposes the identity table for rehydration and tests.
func (c *Controller) Links() *identity.Linker {
	return c.links
}

// transition replaces the mode under the lock and bumps the epoch so
// in-flight workflows notice they are stale. Caller holds c.mu.
func (c *Controller) transition(to mode, trigger string) {
	from := c.mode.kind
	c.mode = to
	c.epoch++
	c.log.Debug("mode transition", "from", from.String(), "to", to.kind.String(), "trigger", trigger)
	if c.metrics != nil {
		if err := c.metrics.RecordTransition(context.Background(), from.String(), to.kind.String(), trigger); err != nil {
			c.log.Debug("transition metric dropped", "error", err)
		}
	}
}

// snapshot returns the current mode and epoch for later re-validation.
func (c *Controller) snapshot() (mode, uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode, c.epoch
}

// stale reports whether the epoch moved since the snapshot.
func (c *Controller) stale(epoch uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.epoch != epoch
}

func (c *Controller) send(e core.Event) {
	if c.emit != nil {
		c.emit(e)
	}
}

func (c *Controller) workflow(workflow, outcome string, start time.Time) {
	if c.metrics != nil {
		if err := c.metrics.RecordWorkflow(context.Background(), workflow, outcome, time.Since(start)); err != nil {
			c.log.Debug("workflow metric dropped", "error", err)
		}
	}
}

// rejectUnless logs and reports a no-op event arriving in the wrong
// mode, or in any mode that is suspended on a dialog. Caller holds c.mu.
func (c *Controller) rejectUnless(event string, allowed ...Kind) bool {
	if c.mode.busy {
		c.log.Warn("event ignored while a dialog is pending", "event", event, "mode", c.mode.kind.String())
		return false
	}
	for _, k := range allowed {
		if c.mode.kind == k {
			return true
		}
	}
	c.log.Warn("event ignored in current mode", "event", event, "mode", c.mode.kind.String())
	return false
}

// claim suspends the current mode before a workflow blocks on a dialog:
// rejectUnless turns away further events for this mode, and the epoch
// moves so any older in-flight workflow aborts at its next check. The
// claim releases when the owning workflow transitions out. Caller holds
// c.mu.
func (c *Controller) claim() uint64 {
	c.mode.busy = true
	c.epoch++
	return c.epoch
}

// StartPendingPlacement enters PendingPlacement for a long press on
// empty map. The coordinate is snapshotted; the disambiguation timer
// runs outside the controller.
func (c *Controller) StartPendingPlacement(at core.Coordinate) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.rejectUnless("startPendingPlacement", KindIdle) {
		return
	}
	c.transition(mode{kind: KindPendingPlacement, pendingPoint: at}, "longPressEmptyMap")
}

// CancelPendingPlacement returns to Idle, discarding the pending point.
// Called when the press resolves into something other than placement.
func (c *Controller) CancelPendingPlacement() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mode.kind != KindPendingPlacement {
		return
	}
	c.transition(idleMode(), "placementCanceled")
}

// CompletePlacement runs the create workflow after the disambiguation
// timer fired: present the placement form, then create the record and
// its marker together. Any failure leaves storage and map unchanged.
func (c *Controller) CompletePlacement(ctx context.Context) {
	start := time.Now()

	c.mu.Lock()
	if !c.rejectUnless("completePlacement", KindPendingPlacement) {
		c.mu.Unlock()
		return
	}
	at := c.mode.pendingPoint
	epoch := c.claim()
	c.mu.Unlock()

	result, ok, err := c.dialogs.PresentPlacementForm(ctx, at)
	if err != nil {
		c.log.Error("placement form failed", "error", err, "lat", at.Lat, "lng", at.Lng)
		c.toIdle(epoch, "placementFormError")
		c.workflow("create", "aborted", start)
		return
	}
	if !ok {
		c.toIdle(epoch, "placementDismissed")
		c.workflow("create", "canceled", start)
		return
	}
	if c.stale(epoch) {
		c.log.Warn("placement superseded while form was open", "lat", at.Lat, "lng", at.Lng)
		return
	}

	rec := core.AnnotationRecord{
		Title:     result.Title,
		IconName:  result.Icon,
		Note:      result.Note,
		ImagePath: result.ImagePath,
		StartDate: result.Date,
		EndDate:   result.EndDate,
		Latitude:  at.Lat,
		Longitude: at.Lng,
	}

	if !result.QuickSave {
		// The quick form asked for the full one; reopen pre-filled and
		// let the user flesh the record out before anything is stored.
		full, submitted, err := c.dialogs.PresentEditForm(ctx, rec)
		if err != nil {
			c.log.Error("full placement form failed", "error", err, "lat", at.Lat, "lng", at.Lng)
			c.toIdle(epoch, "placementFormError")
			c.workflow("create", "aborted", start)
			return
		}
		if !submitted {
			c.toIdle(epoch, "placementDismissed")
			c.workflow("create", "canceled", start)
			return
		}
		if c.stale(epoch) {
			c.log.Warn("placement superseded while full form was open", "lat", at.Lat, "lng", at.Lng)
			return
		}
		rec = mergeForm(rec, full)
	}

	icon, err := c.icons.Icon(rec.IconName)
	if err != nil {
		c.log.Error("icon load failed, annotation not created", "error", err, "icon", rec.IconName)
		c.toIdle(epoch, "placementIconError")
		c.workflow("create", "aborted", start)
		return
	}

	if err := c.repo.Add(ctx, &rec); err != nil {
		c.log.Error("storing annotation failed", "error", err, "title", rec.Title)
		c.toIdle(epoch, "placementStorageError")
		c.workflow("create", "aborted", start)
		return
	}

	handle, err := c.engine.AddMarker(ctx, at, icon, rec.Title)
	if err != nil {
		// Roll the record back so storage and map stay in step.
		c.log.Error("marker creation failed, rolling back record", "error", err, "storageId", rec.StorageID)
		if delErr := c.repo.Delete(ctx, rec.StorageID); delErr != nil {
			c.log.Error("rollback delete failed", "error", delErr, "storageId", rec.StorageID)
		}
		c.toIdle(epoch, "placementMarkerError")
		c.workflow("create", "aborted", start)
		return
	}

	c.links.Register(handle.ID, rec.StorageID)
	c.log.Info("annotation created",
		"storageId", rec.StorageID, "handleId", handle.ID, "title", rec.Title)
	c.toIdle(epoch, "placementComplete")
	c.workflow("create", "completed", start)
}

// toIdle transitions to Idle unless the workflow went stale.
func (c *Controller) toIdle(epoch uint64, trigger string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.epoch != epoch {
		return
	}
	c.transition(idleMode(), trigger)
}

// SelectMarker enters SelectionMenu for a long press on an existing
// marker, snapshotting its geometry for later reverts.
func (c *Controller) SelectMarker(h core.MapHandle) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.rejectUnless("selectMarker", KindIdle) {
		return
	}
	c.transition(mode{
		kind:             KindSelectionMenu,
		selected:         h,
		originalGeometry: h.Geometry,
	}, "longPressMarker")
	c.send(core.Event{Type: core.EventMarkerLongPressed, Handle: h, Geometry: h.Geometry})
}

// CancelMenu dismisses the selection menu with no side effects.
func (c *Controller) CancelMenu() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.rejectUnless("cancelMenu", KindSelectionMenu) {
		return
	}
	c.transition(idleMode(), "menuCanceled")
}

// BeginMove starts drag-to-reposition for the selected marker.
func (c *Controller) BeginMove() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.rejectUnless("beginMove", KindSelectionMenu) {
		return
	}
	c.transition(mode{
		kind:             KindMove,
		selected:         c.mode.selected,
		originalGeometry: c.mode.originalGeometry,
	}, "movePressed")
}

// DragUpdate applies one drag position to the marker's visual position.
// No storage write happens here. Updates arriving while a previous one
// is still in flight are dropped.
func (c *Controller) DragUpdate(ctx context.Context, p core.ScreenPoint) {
	if !c.dragBusy.CompareAndSwap(false, true) {
		return
	}
	defer c.dragBusy.Store(false)

	c.mu.Lock()
	if c.mode.kind != KindMove {
		c.mu.Unlock()
		return
	}
	h := c.mode.selected
	epoch := c.epoch
	c.mu.Unlock()

	at, err := c.engine.CoordinateForPixel(ctx, p)
	if err != nil {
		c.log.Warn("drag point not projectable, dropped", "error", err, "x", p.X, "y", p.Y)
		return
	}
	if err := c.engine.UpdateVisualPosition(ctx, h.ID, at); err != nil {
		c.log.Warn("visual move failed", "error", err, "handleId", h.ID)
		return
	}

	c.mu.Lock()
	applied := c.epoch == epoch && c.mode.kind == KindMove
	if applied {
		c.mode.selected.Geometry = at
		c.mode.lastScreenPoint = p
		c.mode.moved = true
	}
	c.mu.Unlock()

	// The mode moved on while the engine call was in flight: the update
	// was discarded, so the presentation layer must not hear about it.
	if !applied {
		return
	}
	c.send(core.Event{Type: core.EventMarkerDragged, Handle: h, Geometry: at})
}

// FinishMove commits the move: the dragged position is written to
// storage and the identity link stays untouched since the marker was
// never recreated. Locking a marker that never moved writes nothing.
func (c *Controller) FinishMove(ctx context.Context) {
	start := time.Now()

	c.mu.Lock()
	if !c.rejectUnless("finishMove", KindMove) {
		c.mu.Unlock()
		return
	}
	m := c.mode
	epoch := c.epoch
	c.mu.Unlock()

	if !m.moved {
		c.log.Info("move locked without displacement, skipping write", "handleId", m.selected.ID)
		c.toIdle(epoch, "moveLockedNoop")
		c.workflow("move", "noop", start)
		return
	}

	storageID, ok := c.links.StorageID(m.selected.ID)
	if !ok {
		c.log.Warn("move target has no identity link, aborting",
			"error", core.ErrLinkNotFound, "handleId", m.selected.ID)
		c.revertVisual(ctx, m)
		c.toIdle(epoch, "moveLinkMissing")
		c.workflow("move", "aborted", start)
		return
	}

	rec, err := c.repo.Get(ctx, storageID)
	if err != nil {
		c.log.Error("loading record for move failed", "error", err, "storageId", storageID)
		c.revertVisual(ctx, m)
		c.toIdle(epoch, "moveLoadError")
		c.workflow("move", "aborted", start)
		return
	}
	if c.stale(epoch) {
		c.log.Warn("move superseded before commit", "handleId", m.selected.ID)
		return
	}

	rec.Latitude = m.selected.Geometry.Lat
	rec.Longitude = m.selected.Geometry.Lng
	if err := c.repo.Update(ctx, rec); err != nil {
		c.log.Error("persisting move failed, reverting marker", "error", err, "storageId", storageID)
		c.revertVisual(ctx, m)
		c.toIdle(epoch, "moveStorageError")
		c.workflow("move", "aborted", start)
		return
	}

	c.log.Info("move committed", "storageId", storageID, "handleId", m.selected.ID,
		"lat", rec.Latitude, "lng", rec.Longitude)
	c.toIdle(epoch, "moveLocked")
	c.workflow("move", "completed", start)
}

// CancelMove reverts the marker to the geometry captured at selection.
// Visual-only: nothing was written during the drag.
func (c *Controller) CancelMove(ctx context.Context) {
	c.mu.Lock()
	if !c.rejectUnless("cancelMove", KindMove) {
		c.mu.Unlock()
		return
	}
	m := c.mode
	epoch := c.epoch
	c.mu.Unlock()

	if m.moved {
		c.revertVisual(ctx, m)
	}
	c.toIdle(epoch, "moveCanceled")
}

func (c *Controller) revertVisual(ctx context.Context, m mode) {
	if err := c.engine.UpdateVisualPosition(ctx, m.selected.ID, m.originalGeometry); err != nil {
		c.log.Error("revert to original geometry failed", "error", err, "handleId", m.selected.ID)
	}
}

// DragEnded handles the end of a drag. A release over the trash zone
// opens the delete confirmation; any other release leaves Move mode
// active awaiting lock or cancel.
func (c *Controller) DragEnded(ctx context.Context, p core.ScreenPoint) {
	start := time.Now()

	c.mu.Lock()
	if c.mode.kind != KindMove {
		c.mu.Unlock()
		return
	}
	inZone := c.zone != nil && c.zone.Contains(p)
	if !inZone {
		c.mu.Unlock()
		c.send(core.Event{Type: core.EventDragEnded})
		return
	}

	m := c.mode
	m.kind = KindDragToDelete
	m.lastScreenPoint = p
	m.busy = true
	c.transition(m, "dragEndedOverTrash")
	epoch := c.epoch
	c.mu.Unlock()

	c.send(core.Event{Type: core.EventDragEnded})

	confirmed, err := c.dialogs.ConfirmDeletion(ctx, m.selected.Label)
	if err != nil {
		c.log.Error("delete confirmation failed", "error", err, "handleId", m.selected.ID)
		c.revertVisual(ctx, m)
		c.toIdle(epoch, "deleteConfirmError")
		c.workflow("delete", "aborted", start)
		return
	}
	if c.stale(epoch) {
		c.log.Warn("delete superseded while confirmation was open", "handleId", m.selected.ID)
		return
	}

	if !confirmed {
		c.revertVisual(ctx, m)
		c.toIdle(epoch, "deleteDeclined")
		c.workflow("delete", "canceled", start)
		return
	}

	storageID, ok := c.links.StorageID(m.selected.ID)
	if !ok {
		c.log.Warn("deleted marker has no identity link",
			"error", core.ErrLinkNotFound, "handleId", m.selected.ID)
	} else if err := c.repo.Delete(ctx, storageID); err != nil {
		c.log.Error("deleting record failed, reverting marker", "error", err, "storageId", storageID)
		c.revertVisual(ctx, m)
		c.toIdle(epoch, "deleteStorageError")
		c.workflow("delete", "aborted", start)
		return
	}

	if err := c.engine.RemoveMarker(ctx, m.selected.ID); err != nil {
		c.log.Error("removing marker failed", "error", err, "handleId", m.selected.ID)
	}
	c.links.Remove(m.selected.ID)
	c.send(core.Event{Type: core.EventMarkerRemoved, Handle: m.selected})
	if ok {
		c.log.Info("annotation deleted", "storageId", storageID, "handleId", m.selected.ID)
	} else {
		c.log.Info("unlinked marker removed, no record deleted", "handleId", m.selected.ID)
	}
	c.toIdle(epoch, "deleteConfirmed")
	c.workflow("delete", "completed", start)
}

// BeginEdit runs the edit workflow for the selected marker: load the
// record, present the pre-filled form, then write the update and
// recreate the marker so storage and map change together or not at all.
func (c *Controller) BeginEdit(ctx context.Context) {
	start := time.Now()

	c.mu.Lock()
	if !c.rejectUnless("beginEdit", KindSelectionMenu) {
		c.mu.Unlock()
		return
	}
	old := c.mode.selected
	epoch := c.claim()
	c.mu.Unlock()

	storageID, ok := c.links.StorageID(old.ID)
	if !ok {
		c.log.Warn("edit target has no identity link, aborting",
			"error", core.ErrLinkNotFound, "handleId", old.ID)
		c.toIdle(epoch, "editLinkMissing")
		c.workflow("edit", "aborted", start)
		return
	}

	rec, err := c.repo.Get(ctx, storageID)
	if err != nil {
		if errors.Is(err, core.ErrRecordNotFound) {
			c.log.Warn("edit target record missing, possible data drift",
				"storageId", storageID, "handleId", old.ID)
		} else {
			c.log.Error("loading record for edit failed", "error", err, "storageId", storageID)
		}
		c.toIdle(epoch, "editLoadError")
		c.workflow("edit", "aborted", start)
		return
	}

	result, submitted, err := c.dialogs.PresentEditForm(ctx, rec)
	if err != nil {
		c.log.Error("edit form failed", "error", err, "storageId", storageID)
		c.toIdle(epoch, "editFormError")
		c.workflow("edit", "aborted", start)
		return
	}
	if !submitted {
		c.toIdle(epoch, "editDismissed")
		c.workflow("edit", "canceled", start)
		return
	}
	if c.stale(epoch) {
		c.log.Warn("edit superseded while form was open", "storageId", storageID)
		return
	}

	updated := mergeForm(rec, result)

	icon, err := c.icons.Icon(updated.IconName)
	if err != nil {
		c.log.Error("icon load failed, edit aborted", "error", err, "icon", updated.IconName)
		c.toIdle(epoch, "editIconError")
		c.workflow("edit", "aborted", start)
		return
	}

	if err := c.repo.Update(ctx, updated); err != nil {
		c.log.Error("persisting edit failed", "error", err, "storageId", storageID)
		c.toIdle(epoch, "editStorageError")
		c.workflow("edit", "aborted", start)
		return
	}

	if err := c.engine.RemoveMarker(ctx, old.ID); err != nil {
		c.log.Error("removing old marker failed, restoring record", "error", err, "handleId", old.ID)
		if rbErr := c.repo.Update(ctx, rec); rbErr != nil {
			c.log.Error("rollback update failed", "error", rbErr, "storageId", storageID)
		}
		c.toIdle(epoch, "editMarkerRemoveError")
		c.workflow("edit", "aborted", start)
		return
	}

	handle, err := c.engine.AddMarker(ctx, updated.Coordinate(), icon, updated.Title)
	if err != nil {
		c.log.Error("recreating marker failed, restoring record", "error", err, "storageId", storageID)
		if rbErr := c.repo.Update(ctx, rec); rbErr != nil {
			c.log.Error("rollback update failed", "error", rbErr, "storageId", storageID)
		}
		c.links.Remove(old.ID)
		c.toIdle(epoch, "editMarkerAddError")
		c.workflow("edit", "aborted", start)
		return
	}

	// Register replaces the old link so exactly one handle maps to the
	// storage id before and after the edit.
	c.links.Register(handle.ID, storageID)
	c.log.Info("annotation edited", "storageId", storageID,
		"oldHandleId", old.ID, "newHandleId", handle.ID)
	c.toIdle(epoch, "editComplete")
	c.workflow("edit", "completed", start)
}

// mergeForm overlays submitted form fields onto the existing record,
// preserving identity and anything the form left blank.
func mergeForm(rec core.AnnotationRecord, r core.FormResult) core.AnnotationRecord {
	if r.Title != "" {
		rec.Title = r.Title
	}
	if r.Icon != "" {
		rec.IconName = r.Icon
	}
	if r.Note != "" {
		rec.Note = r.Note
	}
	if r.ImagePath != "" {
		rec.ImagePath = r.ImagePath
	}
	if r.Date != nil {
		rec.StartDate = r.Date
	}
	if r.EndDate != nil {
		rec.EndDate = r.EndDate
	}
	return rec
}

// StartConnect enters Connect mode with the selected marker as the
// first endpoint. No side effects until the second tap.
func (c *Controller) StartConnect() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.rejectUnless("startConnect", KindSelectionMenu) {
		return
	}
	c.transition(mode{
		kind:             KindConnect,
		selected:         c.mode.selected,
		originalGeometry: c.mode.originalGeometry,
	}, "connectPressed")
}

// FinishConnect completes a connection with the tapped second marker
// and persists the relationship between the two storage ids.
func (c *Controller) FinishConnect(ctx context.Context, second core.MapHandle) {
	start := time.Now()

	c.mu.Lock()
	if !c.rejectUnless("finishConnect", KindConnect) {
		c.mu.Unlock()
		return
	}
	first := c.mode.selected
	epoch := c.epoch
	c.mu.Unlock()

	if second.ID == first.ID {
		c.log.Warn("connection endpoints are the same marker, ignoring tap", "handleId", first.ID)
		return
	}

	fromID, ok := c.links.StorageID(first.ID)
	if !ok {
		c.log.Warn("connect first endpoint has no identity link",
			"error", core.ErrLinkNotFound, "handleId", first.ID)
		c.exitConnect(epoch, "connectLinkMissing")
		c.workflow("connect", "aborted", start)
		return
	}
	toID, ok := c.links.StorageID(second.ID)
	if !ok {
		c.log.Warn("connect second endpoint has no identity link",
			"error", core.ErrLinkNotFound, "handleId", second.ID)
		c.exitConnect(epoch, "connectLinkMissing")
		c.workflow("connect", "aborted", start)
		return
	}

	conn := core.Connection{FromID: fromID, ToID: toID}
	if err := c.repo.AddConnection(ctx, &conn); err != nil {
		c.log.Error("persisting connection failed", "error", err, "from", fromID, "to", toID)
		c.exitConnect(epoch, "connectStorageError")
		c.workflow("connect", "aborted", start)
		return
	}

	c.log.Info("connection created", "connectionId", conn.ID, "from", fromID, "to", toID)
	c.exitConnect(epoch, "connectComplete")
	c.workflow("connect", "completed", start)
}

// CancelConnect leaves Connect mode with no side effects.
func (c *Controller) CancelConnect() {
	c.mu.Lock()
	if !c.rejectUnless("cancelConnect", KindConnect) {
		c.mu.Unlock()
		return
	}
	epoch := c.epoch
	c.mu.Unlock()

	c.exitConnect(epoch, "connectCanceled")
}

func (c *Controller) exitConnect(epoch uint64, trigger string) {
	c.mu.Lock()
	if c.epoch != epoch {
		c.mu.Unlock()
		return
	}
	c.transition(idleMode(), trigger)
	c.mu.Unlock()

	c.send(core.Event{Type: core.EventConnectModeDisabled})
}
