package dialog

import (
	"context"
	"sync"

	"github.com/waymark/annotate/pkg/core"
)

// FormResponse is one scripted answer to a form presentation.
type FormResponse struct {
	Result core.FormResult
	OK     bool
	Err    error
}

// Scripted is a Service that replays canned responses in order. The
// CLI harness and tests use it; once a response list runs out further
// calls count as dismissals.
type Scripted struct {
	mu sync.Mutex

	placement []FormResponse
	edit      []FormResponse
	confirm   []bool

	// Call counts, readable by tests.
	PlacementCalls int
	EditCalls      int
	ConfirmCalls   int
}

// NewScripted creates an empty scripted service. Every call dismisses
// until responses are queued.
func NewScripted() *Scripted {
	return &Scripted{}
}

// QueuePlacement appends responses for PresentPlacementForm.
func (s *Scripted) QueuePlacement(rs ...FormResponse) *Scripted {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.placement = append(s.placement, rs...)
	return s
}

// QueueEdit appends responses for PresentEditForm.
func (s *Scripted) QueueEdit(rs ...FormResponse) *Scripted {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.edit = append(s.edit, rs...)
	return s
}

// QueueConfirm appends answers for ConfirmDeletion.
func (s *Scripted) QueueConfirm(answers ...bool) *Scripted {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.confirm = append(s.confirm, answers...)
	return s
}

func (s *Scripted) PresentPlacementForm(ctx context.Context, at core.Coordinate) (core.FormResult, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.PlacementCalls++
	if len(s.placement) == 0 {
		return core.FormResult{}, false, nil
	}
	r := s.placement[0]
	s.placement = s.placement[1:]
	return r.Result, r.OK, r.Err
}

func (s *Scripted) PresentEditForm(ctx context.Context, existing core.AnnotationRecord) (core.FormResult, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.EditCalls++
	if len(s.edit) == 0 {
		return core.FormResult{}, false, nil
	}
	r := s.edit[0]
	s.edit = s.edit[1:]
	return r.Result, r.OK, r.Err
}

func (s *Scripted) ConfirmDeletion(ctx context.Context, title string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ConfirmCalls++
	if len(s.confirm) == 0 {
		return false, nil
	}
	ok := s.confirm[0]
	s.confirm = s.confirm[1:]
	return ok, nil
}
