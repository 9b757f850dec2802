// Package dialog abstracts the modal forms the host UI presents. The
// interaction layer blocks on these calls; cancellation comes back as
// ok=false, not as an error.
package dialog

import (
	"context"

	"github.com/waymark/annotate/pkg/core"
)

// Service is the modal-dialog surface of the host UI.
type Service interface {
	// PresentPlacementForm shows the empty annotation form for a new
	// marker at the given coordinate. ok=false means the user dismissed
	// the form.
	PresentPlacementForm(ctx context.Context, at core.Coordinate) (result core.FormResult, ok bool, err error)

	// PresentEditForm shows the form pre-filled from an existing record.
	PresentEditForm(ctx context.Context, existing core.AnnotationRecord) (result core.FormResult, ok bool, err error)

	// ConfirmDeletion asks the user to confirm deleting the named
	// annotation. ok=true means delete.
	ConfirmDeletion(ctx context.Context, title string) (ok bool, err error)
}
