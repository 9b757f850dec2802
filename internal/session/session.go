// Package session tracks the identity of the current annotation
// session: who is annotating and when the session started. Every log
// record is stamped with it so multi-session log archives stay
// attributable.
package session

import (
	"log/slog"
	"sync"
	"time"
)

// Context holds the active session state.
type Context struct {
	mu      sync.RWMutex
	profile string
	started time.Time
}

// NewContext creates a session starting now with an unnamed profile.
func NewContext() *Context {
	return &Context{
		profile: "unnamed",
		started: time.Now(),
	}
}

// SetProfile names the session's user profile.
func (c *Context) SetProfile(profile string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if profile != "" {
		c.profile = profile
	}
}

// Profile returns the session's profile name.
func (c *Context) Profile() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.profile
}

// Started returns the session start time.
func (c *Context) Started() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.started
}

// Attrs returns the log attributes identifying this session.
func (c *Context) Attrs() []slog.Attr {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return []slog.Attr{
		slog.String("profile", c.profile),
		slog.String("session", c.started.UTC().Format("20060102_150405")),
	}
}
