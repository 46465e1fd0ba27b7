package query

import (
	"fmt"

	"github.com/emberlang/ember/internal/diag"
	"github.com/emberlang/ember/internal/hir"
	"github.com/emberlang/ember/internal/ids"
	"github.com/emberlang/ember/internal/itemtree"
	"github.com/emberlang/ember/internal/parser"
	"github.com/emberlang/ember/internal/syntax"
	"github.com/emberlang/ember/internal/syntax/ast"
	"github.com/emberlang/ember/internal/text"
)

// Parse is the derived query that lexes and parses a file's current text
// into a lossless Green tree plus its recovered parse errors. ItemTree,
// BodyHIR and Diagnostics build on it; LineIndex reads the text directly.
func Parse(qc *QueryContext, file ids.FileID) (parser.Result, error) {
	if err := qc.checkCancel(); err != nil {
		return parser.Result{}, err
	}
	return getOrCompute(qc.db.cache, cacheKey{"parse", file, qc.revision}, func() (parser.Result, error) {
		src, ok := qc.db.fileText(file)
		if !ok {
			return parser.Result{}, fmt.Errorf("query: file %v has no text set", file)
		}
		return parser.Parse([]byte(src)), nil
	})
}

// LineIndex is the derived query that precomputes a file's byte-offset to
// (line, byte column) table, built once per revision. Columns count bytes;
// UTF-16 columns are not computed.
func LineIndex(qc *QueryContext, file ids.FileID) (*text.LineIndex, error) {
	if err := qc.checkCancel(); err != nil {
		return nil, err
	}
	return getOrCompute(qc.db.cache, cacheKey{"line_index", file, qc.revision}, func() (*text.LineIndex, error) {
		src, ok := qc.db.fileText(file)
		if !ok {
			return nil, fmt.Errorf("query: file %v has no text set", file)
		}
		return text.NewLineIndex([]byte(src)), nil
	})
}

// ItemTree is the derived query collecting a file's flat, deterministic
// top-level declaration summary.
func ItemTree(qc *QueryContext, file ids.FileID) (*itemtree.Tree, error) {
	if err := qc.checkCancel(); err != nil {
		return nil, err
	}
	return getOrCompute(qc.db.cache, cacheKey{"item_tree", file, qc.revision}, func() (*itemtree.Tree, error) {
		res, err := Parse(qc, file)
		if err != nil {
			return nil, err
		}
		root := syntax.NewRoot(res.Green)
		return itemtree.Collect(root), nil
	})
}

// BodyHIR is the derived query lowering one function item's body into HIR.
// It returns (nil, nil) if def names a non-function item or a function
// with no parseable body: that's not a query failure, just an absent
// result the caller (typically a diagnostic rule) skips over.
func BodyHIR(qc *QueryContext, def ids.DefID) (*hir.Body, error) {
	if err := qc.checkCancel(); err != nil {
		return nil, err
	}
	return getOrCompute(qc.db.cache, cacheKey{"body_hir", def, qc.revision}, func() (*hir.Body, error) {
		tree, err := ItemTree(qc, def.File)
		if err != nil {
			return nil, err
		}
		if def.ItemIndex < 0 || def.ItemIndex >= len(tree.Items) {
			return nil, fmt.Errorf("query: def %v has no item at index %d", def, def.ItemIndex)
		}
		if tree.Items[def.ItemIndex].Kind != itemtree.ItemFunction {
			return nil, nil
		}

		res, err := Parse(qc, def.File)
		if err != nil {
			return nil, err
		}
		root := syntax.NewRoot(res.Green)
		sf, ok := (ast.SourceFile{}).Cast(root)
		if !ok {
			return nil, nil
		}
		items := sf.Items()
		if def.ItemIndex >= len(items) {
			return nil, nil
		}
		fn, ok := items[def.ItemIndex].Kind().(ast.FunctionDef)
		if !ok {
			return nil, nil
		}
		body, ok := hir.LowerBody(fn, tree.Interner)
		if !ok {
			return nil, nil
		}
		return body, nil
	})
}

// Diagnostics is the derived query that assembles the full diagnostic set
// for a file: parser diagnostics, item-collection diagnostics, and
// body-lowering/semantic diagnostics, concatenated and stable-sorted by
// diag.Runner.
func Diagnostics(qc *QueryContext, file ids.FileID) ([]diag.Diagnostic, error) {
	if err := qc.checkCancel(); err != nil {
		return nil, err
	}
	return getOrCompute(qc.db.cache, cacheKey{"diagnostics", file, qc.revision}, func() ([]diag.Diagnostic, error) {
		res, err := Parse(qc, file)
		if err != nil {
			return nil, err
		}
		tree, err := ItemTree(qc, file)
		if err != nil {
			return nil, err
		}

		var bodies []diag.Body
		for i, item := range tree.Items {
			if err := qc.checkCancel(); err != nil {
				return nil, err
			}
			if item.Kind != itemtree.ItemFunction {
				continue
			}
			body, err := BodyHIR(qc, ids.DefID{File: file, ItemIndex: i})
			if err != nil {
				return nil, err
			}
			if body == nil {
				continue
			}
			bodies = append(bodies, diag.Body{ItemIndex: i, HIR: body})
		}

		runner := diag.NewDefaultRunner()
		return runner.Run(nil, diag.FileInput{
			File:   file,
			Parse:  res,
			Items:  tree,
			Bodies: bodies,
		})
	})
}
