package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/waymark/annotate/pkg/core"
)

func TestAdd_AssignsMonotonicIDs(t *testing.T) {
	r := New()
	ctx := context.Background()

	a := core.AnnotationRecord{Title: "first", Latitude: 1, Longitude: 2}
	b := core.AnnotationRecord{Title: "second", Latitude: 3, Longitude: 4}

	if err := r.Add(ctx, &a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.Add(ctx, &b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if a.StorageID == 0 || b.StorageID == 0 {
		t.Fatal("expected assigned storage ids")
	}
	if b.StorageID <= a.StorageID {
		t.Errorf("expected increasing ids, got %d then %d", a.StorageID, b.StorageID)
	}
}

func TestIDsNeverReused(t *testing.T) {
	r := New()
	ctx := context.Background()

	a := core.AnnotationRecord{Title: "first"}
	if err := r.Add(ctx, &a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.Delete(ctx, a.StorageID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b := core.AnnotationRecord{Title: "second"}
	if err := r.Add(ctx, &b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.StorageID == a.StorageID {
		t.Errorf("storage id %d was reused", a.StorageID)
	}
}

func TestGet_NotFound(t *testing.T) {
	r := New()
	_, err := r.Get(context.Background(), 42)
	if !errors.Is(err, core.ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestUpdate(t *testing.T) {
	r := New()
	ctx := context.Background()

	a := core.AnnotationRecord{Title: "before", Latitude: 1, Longitude: 2}
	if err := r.Add(ctx, &a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a.Note = "updated"
	if err := r.Update(ctx, a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := r.Get(ctx, a.StorageID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Note != "updated" {
		t.Errorf("expected updated note, got %q", got.Note)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	r := New()
	err := r.Update(context.Background(), core.AnnotationRecord{StorageID: 9})
	if !errors.Is(err, core.ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	r := New()
	ctx := context.Background()

	a := core.AnnotationRecord{Title: "doomed"}
	if err := r.Add(ctx, &a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.Delete(ctx, a.StorageID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Len() != 0 {
		t.Errorf("expected empty repository, got %d records", r.Len())
	}
	if err := r.Delete(ctx, a.StorageID); !errors.Is(err, core.ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound on double delete, got %v", err)
	}
}

func TestConnections(t *testing.T) {
	r := New()
	ctx := context.Background()

	a := core.AnnotationRecord{Title: "a"}
	b := core.AnnotationRecord{Title: "b"}
	if err := r.Add(ctx, &a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.Add(ctx, &b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c := core.Connection{FromID: a.StorageID, ToID: b.StorageID}
	if err := r.AddConnection(ctx, &c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.ID == 0 {
		t.Fatal("expected assigned connection id")
	}

	for _, id := range []uint{a.StorageID, b.StorageID} {
		conns, err := r.ConnectionsFor(ctx, id)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(conns) != 1 {
			t.Errorf("expected 1 connection for %d, got %d", id, len(conns))
		}
	}
}

func TestDelete_RemovesConnections(t *testing.T) {
	r := New()
	ctx := context.Background()

	a := core.AnnotationRecord{Title: "a"}
	b := core.AnnotationRecord{Title: "b"}
	c := core.AnnotationRecord{Title: "c"}
	for _, rec := range []*core.AnnotationRecord{&a, &b, &c} {
		if err := r.Add(ctx, rec); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	ab := core.Connection{FromID: a.StorageID, ToID: b.StorageID}
	bc := core.Connection{FromID: b.StorageID, ToID: c.StorageID}
	for _, conn := range []*core.Connection{&ab, &bc} {
		if err := r.AddConnection(ctx, conn); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if err := r.Delete(ctx, a.StorageID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// a-b died with a; b-c is untouched.
	conns, err := r.ConnectionsFor(ctx, b.StorageID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(conns) != 1 || conns[0].ID != bc.ID {
		t.Errorf("expected only the b-c connection to survive, got %+v", conns)
	}
}

func TestAddConnection_MissingEndpoint(t *testing.T) {
	r := New()
	ctx := context.Background()

	a := core.AnnotationRecord{Title: "a"}
	if err := r.Add(ctx, &a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c := core.Connection{FromID: a.StorageID, ToID: 99}
	if err := r.AddConnection(ctx, &c); !errors.Is(err, core.ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestGetAll(t *testing.T) {
	r := New()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		rec := core.AnnotationRecord{Title: "n"}
		if err := r.Add(ctx, &rec); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	all, err := r.GetAll(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 records, got %d", len(all))
	}
}
