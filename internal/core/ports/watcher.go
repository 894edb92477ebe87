package ports

import (
	"context"
	"iter"
)

// WatchOp is the kind of change reported for a path.
type WatchOp uint8

// Change kinds. Permission-only changes are never reported.
const (
	OpCreate WatchOp = iota
	OpWrite
	OpRemove
	OpRename
)

// WatchEvent is a single change below one of the watched roots.
type WatchEvent struct {
	Path      string
	Operation WatchOp
}

// Watcher reports changes below a set of directory trees.
//
//go:generate mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type Watcher interface {
	// Start watches each root and every directory created below it later on.
	// Watching stops when ctx is done.
	Start(ctx context.Context, roots ...string) error
	// Stop releases the watcher. The Events sequence ends afterwards.
	Stop() error
	// Events yields changes in arrival order until the watcher stops.
	Events() iter.Seq[WatchEvent]
}
