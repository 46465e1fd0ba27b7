// Package vfs declares the external virtual-file-system contract the
// Analysis façade's driver is expected to sit on top of: file identity to
// path and text lookups. Path-to-URL translation and OS file watching sit
// outside this core, so this package is the contract only — no
// implementation ships here. A host wires a concrete FileSystem (watching
// a directory, backing onto an editor's open-buffer set, an in-memory
// fixture for tests) and feeds file text into Analysis via
// AnalysisChange.SetFileText.
package vfs

import "github.com/emberlang/ember/internal/ids"

// FileSystem resolves a file's identity to its on-disk path and its
// current text. Implementations are expected to be safe for concurrent
// read access; they are never required to observe a revision-consistent
// view of the database, since the query layer's own snapshot isolation is
// what gives a reader consistency, not the VFS.
type FileSystem interface {
	FileText(id ids.FileID) (string, error)
	FilePath(id ids.FileID) (string, error)
}
