// Package diag aggregates diagnostics for one file: parse errors, item-tree
// errors, and body-lowering/semantic errors, in that order, stable-sorted
// for deterministic output.
//
// Rule/Runner/SortDiagnostics follow internal/lint's
// {Rule,Runner,SortDiagnostics} shape, generalized from "lint rules over a
// CST" to "diagnostic sources over parse result + item tree + HIR
// bodies."
package diag

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"

	"github.com/emberlang/ember/internal/hir"
	"github.com/emberlang/ember/internal/ids"
	"github.com/emberlang/ember/internal/itemtree"
	"github.com/emberlang/ember/internal/parser"
	"github.com/emberlang/ember/internal/text"
)

// Severity is a diagnostic severity level.
type Severity uint8

const (
	// SeverityError indicates a correctness problem.
	SeverityError Severity = iota + 1
	// SeverityWarning indicates a likely mistake that still lowers.
	SeverityWarning
	// SeverityHint indicates an advisory a host may choose to surface softly.
	SeverityHint
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityHint:
		return "hint"
	default:
		return "unknown"
	}
}

// Code identifies a diagnostic kind.
type Code string

const (
	CodeParseError            Code = "PARSE_ERROR"
	CodeDuplicateItemName     Code = "DUPLICATE_ITEM_NAME"
	CodeBreakOutsideLoop      Code = "BREAK_OUTSIDE_LOOP"
	CodeReturnOutsideFunction Code = "RETURN_OUTSIDE_FUNCTION"
	CodeUninitializedVariable Code = "UNINITIALIZED_VARIABLE_USE"
)

// DiagnosticSource tags every diagnostic this package produces, set by the
// Runner when a rule leaves Source empty.
const DiagnosticSource = "ember.diag"

// Diagnostic is one finding anchored at a byte span within a single file.
type Diagnostic struct {
	File     ids.FileID
	Span     text.Span
	Severity Severity
	Code     Code
	Message  string
	Source   string
}

// Body pairs one function item's index in its file's item tree with its
// lowered HIR, the unit body-lowering/semantic rules walk.
type Body struct {
	ItemIndex int
	HIR       *hir.Body
}

// FileInput bundles everything a diagnostic rule needs for one file: the
// parser's raw result, the collected item tree, and every function body
// that was successfully lowered from it.
type FileInput struct {
	File   ids.FileID
	Parse  parser.Result
	Items  *itemtree.Tree
	Bodies []Body
}

// Rule is one diagnostic source: parse errors, an item-tree check, or a
// body-lowering/semantic check.
type Rule interface {
	ID() string
	Description() string
	Run(ctx context.Context, in FileInput) ([]Diagnostic, error)
}

// Runner executes diagnostic rules in registration order and returns the
// aggregated, sorted result.
type Runner struct {
	rules []Rule
}

// NewRunner builds a runner from an explicit rule set.
func NewRunner(rules ...Rule) *Runner {
	return &Runner{rules: slices.Clone(rules)}
}

// NewDefaultRunner builds the rule set documented in SPEC_FULL.md §4.7:
// parser diagnostics, then item-collection diagnostics, then
// body-lowering/semantic diagnostics, concatenated in that order before the
// final stable sort.
func NewDefaultRunner() *Runner {
	return NewRunner(
		ParseErrorsRule{},
		DuplicateItemNameRule{},
		BreakOutsideLoopRule{},
		ReturnOutsideFunctionRule{},
		UninitializedVariableUseRule{},
	)
}

// Run executes every configured rule against in and returns the
// concatenated, deterministically sorted diagnostic list.
func (r *Runner) Run(ctx context.Context, in FileInput) ([]Diagnostic, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r == nil || len(r.rules) == 0 {
		return []Diagnostic{}, nil
	}

	out := make([]Diagnostic, 0, 8)
	for _, rule := range r.rules {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		diags, err := rule.Run(ctx, in)
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", rule.ID(), err)
		}
		for i := range diags {
			if diags[i].Source == "" {
				diags[i].Source = DiagnosticSource
			}
			if diags[i].File == 0 {
				diags[i].File = in.File
			}
		}
		out = append(out, diags...)
	}

	SortDiagnostics(out)
	return out, nil
}

// SortDiagnostics orders diagnostics deterministically: by span, then
// severity, then code, then message.
func SortDiagnostics(diags []Diagnostic) {
	if len(diags) < 2 {
		return
	}
	sort.SliceStable(diags, func(i, j int) bool {
		a, b := diags[i], diags[j]
		if a.Span.Start != b.Span.Start {
			return a.Span.Start < b.Span.Start
		}
		if a.Span.End != b.Span.End {
			return a.Span.End < b.Span.End
		}
		if a.Severity != b.Severity {
			return a.Severity < b.Severity
		}
		if a.Code != b.Code {
			return a.Code < b.Code
		}
		return a.Message < b.Message
	})
}

var errNilItems = errors.New("diag: FileInput.Items is nil")
