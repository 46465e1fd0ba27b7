package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/emberlang/ember/internal/analysis"
	"github.com/emberlang/ember/internal/ids"
	"github.com/spf13/cobra"
)

type fileDiagnosticsJSON struct {
	Path        string              `json:"path"`
	Diagnostics []diagnosticJSON    `json:"diagnostics"`
	Structure   []structureNodeJSON `json:"structure"`
}

type diagnosticJSON struct {
	Code     string `json:"code"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
}

type structureNodeJSON struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Line     int    `json:"line"`
	Children []int  `json:"children,omitempty"`
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [files...]",
	Short: "Load files into an Analysis database and print their structure and diagnostics",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		return runAnalyze(cmd, args, asJSON)
	},
}

func init() {
	analyzeCmd.Flags().Bool("json", false, "emit machine-readable JSON instead of text")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, paths []string, asJSON bool) error {
	log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
	a := analysis.New(log)

	var change analysis.AnalysisChange
	fileIDs := make([]ids.FileID, len(paths))
	for i, p := range paths {
		src, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("read %s: %w", p, err)
		}
		fid := ids.FileID(i + 1)
		fileIDs[i] = fid
		change.SetFileText(fid, string(src))
	}
	a.ApplyChange(change)

	snap := a.Snapshot()
	reports := make([]fileDiagnosticsJSON, 0, len(paths))
	for i, p := range paths {
		fid := fileIDs[i]

		li := snap.FileLineIndex(fid)
		if li.Err != nil {
			return fmt.Errorf("%s: %w", p, li.Err)
		}

		diagsResult := snap.Diagnostics(fid)
		if diagsResult.Err != nil {
			return fmt.Errorf("%s: %w", p, diagsResult.Err)
		}
		structResult := snap.FileStructure(fid)
		if structResult.Err != nil {
			return fmt.Errorf("%s: %w", p, structResult.Err)
		}

		report := fileDiagnosticsJSON{Path: p}
		for _, d := range diagsResult.Value {
			point, _ := li.Value.OffsetToPoint(d.Span.Start)
			report.Diagnostics = append(report.Diagnostics, diagnosticJSON{
				Code:     string(d.Code),
				Severity: d.Severity.String(),
				Message:  d.Message,
				Line:     point.Line + 1,
				Column:   point.Column + 1,
			})
		}
		for _, n := range structResult.Value {
			point, _ := li.Value.OffsetToPoint(n.Span.Start)
			report.Structure = append(report.Structure, structureNodeJSON{
				Name:     n.Name,
				Kind:     n.Kind.String(),
				Line:     point.Line + 1,
				Children: n.Children,
			})
		}
		reports = append(reports, report)
	}

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	}

	for _, r := range reports {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", r.Path)
		for _, n := range r.Structure {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s %s (line %d)\n", n.Kind, n.Name, n.Line)
		}
		for _, d := range r.Diagnostics {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s:%d:%d: %s [%s]\n", r.Path, d.Line, d.Column, d.Message, d.Code)
		}
	}
	return nil
}
