// Package analysis is the host-facing façade over internal/query: it owns
// one Database, serializes writes through ApplyChange, and hands out
// read-only, revision-pinned AnalysisSnapshots to any number of concurrent
// callers.
//
// Method names (ApplyChange, Snapshot, RequestCancelation) and the
// snapshot struct's accessor set (Diagnostics, PackageSourceFiles,
// FileLineIndex, FileStructure) mirror a language server's analysis host
// object, with its snapshot-versioning concurrency shape following
// internal/lsp.SnapshotStore (RWMutex-guarded store, one write path).
package analysis

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/emberlang/ember/internal/diag"
	"github.com/emberlang/ember/internal/ids"
	"github.com/emberlang/ember/internal/query"
	"github.com/emberlang/ember/internal/text"
)

// Analysis owns the query database and logs structural events (applied
// changes, requested cancellations) the way internal/lcm's manager logs
// its own lifecycle events, via log/slog.
type Analysis struct {
	db  *query.Database
	log *slog.Logger
}

// New returns an empty Analysis at revision 0. A nil logger falls back to
// slog.Default().
func New(log *slog.Logger) *Analysis {
	if log == nil {
		log = slog.Default()
	}
	return &Analysis{db: query.NewDatabase(), log: log}
}

// AnalysisChange is the input-edit bundle ApplyChange commits atomically:
// SetFileText, then SetSourceRoot, then SetPackages, inside one write-lock
// critical section, reproducing change.rs's edit-bundle shape referenced
// by analysis.rs even though change.rs itself wasn't in the kept slice.
type AnalysisChange struct {
	fileText    map[ids.FileID]string
	sourceRoots map[ids.SourceRootID][]ids.FileID
	packages    []ids.PackageInfo
	hasPackages bool
}

// SetFileText stages a file's full text for the next ApplyChange.
func (c *AnalysisChange) SetFileText(file ids.FileID, src string) {
	if c.fileText == nil {
		c.fileText = make(map[ids.FileID]string)
	}
	c.fileText[file] = src
}

// SetSourceRoot stages a source root's file membership for the next
// ApplyChange.
func (c *AnalysisChange) SetSourceRoot(root ids.SourceRootID, files []ids.FileID) {
	if c.sourceRoots == nil {
		c.sourceRoots = make(map[ids.SourceRootID][]ids.FileID)
	}
	c.sourceRoots[root] = files
}

// SetPackages stages a wholesale replacement of the package list for the
// next ApplyChange.
func (c *AnalysisChange) SetPackages(pkgs []ids.PackageInfo) {
	c.packages = pkgs
	c.hasPackages = true
}

// ApplyChange commits change atomically and bumps the revision, poisoning
// every AnalysisSnapshot taken before this call.
func (a *Analysis) ApplyChange(change AnalysisChange) {
	rev := a.db.ApplyChange(query.Change{
		SetFileText:   change.fileText,
		SetSourceRoot: change.sourceRoots,
		SetPackages:   change.packages,
		HasPackages:   change.hasPackages,
	})
	a.log.Info("analysis: applied change",
		"revision", rev,
		"files_changed", len(change.fileText),
		"source_roots_changed", len(change.sourceRoots),
		"packages_replaced", change.hasPackages)
}

// RequestCancelation idempotently signals every outstanding snapshot to
// fail fast on its next query.
func (a *Analysis) RequestCancelation() {
	a.db.RequestCancellation()
	a.log.Info("analysis: cancellation requested")
}

// Snapshot returns a read-only view pinned to the database's current
// revision.
func (a *Analysis) Snapshot() *AnalysisSnapshot {
	return &AnalysisSnapshot{qc: a.db.Snapshot()}
}

// Cancelable is the result of an AnalysisSnapshot operation: either a value
// or a query.ErrCanceled signal, Go's stand-in for the original's
// Result<T, Canceled>.
type Cancelable[T any] struct {
	Value T
	Err   error
}

// Canceled reports whether the operation observed cancellation
// specifically, as opposed to some other error (an unresolvable
// ids.PackageID, for instance).
func (c Cancelable[T]) Canceled() bool {
	return errors.Is(c.Err, query.ErrCanceled)
}

func cancelable[T any](v T, err error) Cancelable[T] {
	return Cancelable[T]{Value: v, Err: err}
}

// AnalysisSnapshot is a consistent, read-only view of the database at one
// revision. Every operation is fallible with query.ErrCanceled: the
// Live → Canceled → unusable state machine is represented simply by qc
// itself going stale, rather than by a separate flag, since
// query.QueryContext already fails every call once its pinned revision is
// superseded.
type AnalysisSnapshot struct {
	qc *query.QueryContext
}

// Diagnostics returns file's full diagnostic set.
func (s *AnalysisSnapshot) Diagnostics(file ids.FileID) Cancelable[[]diag.Diagnostic] {
	return cancelable(query.Diagnostics(s.qc, file))
}

// FileLineIndex returns file's precomputed line/column table.
func (s *AnalysisSnapshot) FileLineIndex(file ids.FileID) Cancelable[*text.LineIndex] {
	return cancelable(query.LineIndex(s.qc, file))
}

// PackageSourceFiles returns the set of files belonging to pkg's source
// root. It resolves pkg to a SourceRootID through the committed package
// list before delegating to the source-root lookup, since a FileID's
// membership is tracked per source root, not per package.
func (s *AnalysisSnapshot) PackageSourceFiles(pkg ids.PackageID) Cancelable[[]ids.FileID] {
	pkgs, err := s.qc.Packages()
	if err != nil {
		return Cancelable[[]ids.FileID]{Err: err}
	}
	for _, info := range pkgs {
		if info.ID == pkg {
			return cancelable(s.qc.SourceRootFiles(info.SourceRoot))
		}
	}
	return Cancelable[[]ids.FileID]{Err: fmt.Errorf("analysis: unknown package %v", pkg)}
}

// FileStructure returns file's outline: every top-level item as a
// StructureNode, in source order, with a record struct's fields linked in
// as its children. Function parameters are not surfaced.
func (s *AnalysisSnapshot) FileStructure(file ids.FileID) Cancelable[[]StructureNode] {
	return cancelable(fileStructure(s.qc, file))
}
