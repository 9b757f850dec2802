package session

import "testing"

func TestDefaultProfile(t *testing.T) {
	c := NewContext()
	if got := c.Profile(); got != "unnamed" {
		t.Errorf("expected default profile, got %q", got)
	}
}

func TestSetProfile(t *testing.T) {
	c := NewContext()
	c.SetProfile("surveyor-1")

	if got := c.Profile(); got != "surveyor-1" {
		t.Errorf("expected surveyor-1, got %q", got)
	}

	// An empty name keeps the current one.
	c.SetProfile("")
	if got := c.Profile(); got != "surveyor-1" {
		t.Errorf("empty profile must be ignored, got %q", got)
	}
}

func TestAttrs(t *testing.T) {
	c := NewContext()
	c.SetProfile("surveyor-1")

	attrs := c.Attrs()
	if len(attrs) != 2 {
		t.Fatalf("expected 2 attrs, got %d", len(attrs))
	}
	if attrs[0].Key != "profile" || attrs[0].Value.String() != "surveyor-1" {
		t.Errorf("unexpected profile attr: %v", attrs[0])
	}
	if attrs[1].Key != "session" {
		t.Errorf("unexpected session attr key: %q", attrs[1].Key)
	}
}
