// Package identity maintains the bidirectional table between ephemeral
// map handle ids and durable storage ids. Handle ids die every time the
// rendering engine recreates a marker; storage ids live as long as the
// record. Every gesture resolution goes through a lookup, so both
// directions are plain O(1) map reads.
package identity

import "sync"

// Linker is the bidirectional handle-id/storage-id table. Lookups never
// fail hard: a miss returns ok=false and the caller decides whether that
// aborts its workflow.
type Linker struct {
	m       sync.Mutex
	forward map[uint64]uint // mapHandleID -> storageID
	inverse map[uint]uint64 // storageID -> mapHandleID
}

// NewLinker creates an empty linker.
func NewLinker() *Linker {
	return &Linker{
		forward: make(map[uint64]uint),
		inverse: make(map[uint]uint64),
	}
}

// Register adds or overwrites the mapping for handleID. If the storage
// id already had a live handle, that stale forward entry is dropped so
// at most one handle maps to a storage id at any time.
func (l *Linker) Register(handleID uint64, storageID uint) {
	l.m.Lock()
	defer l.m.Unlock()

	if old, ok := l.inverse[storageID]; ok && old != handleID {
		delete(l.forward, old)
	}
	if oldStorage, ok := l.forward[handleID]; ok && oldStorage != storageID {
		delete(l.inverse, oldStorage)
	}
	l.forward[handleID] = storageID
	l.inverse[storageID] = handleID
}

// StorageID resolves a map handle id to its storage id.
func (l *Linker) StorageID(handleID uint64) (uint, bool) {
	l.m.Lock()
	defer l.m.Unlock()
	id, ok := l.forward[handleID]
	return id, ok
}

// HandleID resolves a storage id to its current map handle id.
func (l *Linker) HandleID(storageID uint) (uint64, bool) {
	l.m.Lock()
	defer l.m.Unlock()
	id, ok := l.inverse[storageID]
	return id, ok
}

// Remove drops the mapping for handleID and its inverse entry.
// Removing an unknown handle is a no-op.
func (l *Linker) Remove(handleID uint64) {
	l.m.Lock()
	defer l.m.Unlock()

	storageID, ok := l.forward[handleID]
	if !ok {
		return
	}
	delete(l.forward, handleID)
	if l.inverse[storageID] == handleID {
		delete(l.inverse, storageID)
	}
}

// Reset drops all mappings.
func (l *Linker) Reset() {
	l.m.Lock()
	defer l.m.Unlock()
	l.forward = make(map[uint64]uint)
	l.inverse = make(map[uint]uint64)
}

// Len returns the number of live links.
func (l *Linker) Len() int {
	l.m.Lock()
	defer l.m.Unlock()
	return len(l.forward)
}
