// Package query is the incremental, cancellation-aware database: a set of
// input facts (file text, source roots, packages) plus a memoized set of
// derived computations (parse, item tree, body HIR, diagnostics) over them.
//
// Concurrency shape follows internal/lsp.SnapshotStore's pattern
// (RWMutex-guarded map, monotonic version counter) scaled from "one open
// document" to "many memoized queries over many files": a single
// sync.RWMutex guards the input facts, a monotonic Revision counter orders
// writes, and a shared atomic.Bool lets a writer signal outstanding readers
// to fail fast.
package query

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/emberlang/ember/internal/ids"
)

// Revision identifies a database state. Revision 0 is the empty database.
type Revision uint64

// ErrCanceled is returned by a derived query when its snapshot's revision
// is no longer the database's current revision, or when a writer has
// requested cancellation directly. It is a control-flow signal, not a
// user-visible error: recovering it is left to the Analysis façade
// boundary.
var ErrCanceled = errors.New("query: canceled")

// Database owns every input fact and the memo cache derived queries read
// and write through. The zero value is not ready to use; build one with
// NewDatabase.
type Database struct {
	mu       sync.RWMutex
	revision Revision
	cancel   atomic.Bool

	fileTexts   map[ids.FileID]string
	sourceRoots map[ids.SourceRootID][]ids.FileID
	packages    []ids.PackageInfo

	cache *memoCache
}

// NewDatabase returns an empty database at revision 0.
func NewDatabase() *Database {
	return &Database{
		fileTexts:   make(map[ids.FileID]string),
		sourceRoots: make(map[ids.SourceRootID][]ids.FileID),
		cache:       newMemoCache(),
	}
}

// Change bundles the input edits ApplyChange commits atomically. A zero
// Change is a valid no-op edit: Revision still bumps (a fresh snapshot is
// handed a new, later revision number) but every derived query's observable
// output is identical to the previous revision's, since no input changed.
type Change struct {
	SetFileText   map[ids.FileID]string
	SetSourceRoot map[ids.SourceRootID][]ids.FileID
	// SetPackages replaces the package list wholesale when HasPackages is
	// true; Packages() is otherwise left untouched by this Change.
	SetPackages []ids.PackageInfo
	HasPackages bool
}

// ApplyChange commits c's edits in the order SetFileText, SetSourceRoot,
// SetPackages, inside one write-lock critical section, and returns the new
// revision. It signals cancellation to any in-flight readers before taking
// the lock (so a long-running query unwinds instead of blocking the
// writer), and clears the flag once the edit is committed.
func (db *Database) ApplyChange(c Change) Revision {
	db.cancel.Store(true)
	db.mu.Lock()
	defer db.mu.Unlock()

	for f, text := range c.SetFileText {
		db.fileTexts[f] = text
	}
	for r, files := range c.SetSourceRoot {
		db.sourceRoots[r] = append([]ids.FileID(nil), files...)
	}
	if c.HasPackages {
		db.packages = append([]ids.PackageInfo(nil), c.SetPackages...)
	}

	db.revision++
	// Coarse-grained invalidation: this database does not track which
	// derived query actually observed which input, so any input edit
	// invalidates every memoized result rather than only the affected
	// ones. A later revision's cache entries are keyed by the new
	// revision number anyway, so clearing is for memory, not correctness.
	db.cache.clear()
	db.cancel.Store(false)
	return db.revision
}

// RequestCancellation flips the shared cancellation flag without touching
// any input. It is idempotent and safe to call from any goroutine.
func (db *Database) RequestCancellation() {
	db.cancel.Store(true)
}

// CurrentRevision returns the database's current revision.
func (db *Database) CurrentRevision() Revision {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.revision
}

// Snapshot returns a QueryContext pinned to the database's revision at the
// moment of the call. Every derived query run through it observes that
// revision's inputs; if a later ApplyChange commits before the query
// finishes, the next cancellation check returns ErrCanceled.
func (db *Database) Snapshot() *QueryContext {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return &QueryContext{db: db, revision: db.revision}
}

func (db *Database) fileText(file ids.FileID) (string, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	t, ok := db.fileTexts[file]
	return t, ok
}

// SourceRootFiles returns the set of files belonging to root.
func (db *Database) SourceRootFiles(root ids.SourceRootID) []ids.FileID {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return append([]ids.FileID(nil), db.sourceRoots[root]...)
}

// Packages returns the package list the driver last committed.
func (db *Database) Packages() []ids.PackageInfo {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return append([]ids.PackageInfo(nil), db.packages...)
}

// QueryContext is the per-call execution context a derived query threads
// through its sub-queries: it carries the snapshot's pinned revision and
// gives every query a single place to check cancellation, rather than
// consulting global state.
type QueryContext struct {
	db       *Database
	revision Revision
}

// Revision returns the snapshot's pinned revision.
func (qc *QueryContext) Revision() Revision {
	return qc.revision
}

// SourceRootFiles returns the files belonging to root, as observed at qc's
// pinned revision.
func (qc *QueryContext) SourceRootFiles(root ids.SourceRootID) ([]ids.FileID, error) {
	if err := qc.checkCancel(); err != nil {
		return nil, err
	}
	return qc.db.SourceRootFiles(root), nil
}

// Packages returns the package list, as observed at qc's pinned revision.
func (qc *QueryContext) Packages() ([]ids.PackageInfo, error) {
	if err := qc.checkCancel(); err != nil {
		return nil, err
	}
	return qc.db.Packages(), nil
}

// checkCancel reports ErrCanceled if the writer has requested cancellation
// or if a newer revision has since been committed, making qc's view stale.
func (qc *QueryContext) checkCancel() error {
	if qc.db.cancel.Load() {
		return ErrCanceled
	}
	if qc.db.CurrentRevision() != qc.revision {
		return ErrCanceled
	}
	return nil
}
