package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/ChicagoDave/tubenet/internal/record"
	"github.com/ChicagoDave/tubenet/pkg/analytics"
	"github.com/ChicagoDave/tubenet/pkg/validation"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	infoColor    = color.New(color.FgCyan)
	headerColor  = color.New(color.FgBlue, color.Bold)
)

func printValidationReport(w io.Writer, r *validation.Report) {
	if len(r.Errors) > 0 {
		_, _ = errorColor.Fprintf(w, "ERRORS (%d):\n", len(r.Errors))
		for _, e := range r.Errors {
			printResult(w, e)
		}
		fmt.Fprintln(w)
	}

	if len(r.Warnings) > 0 {
		_, _ = warningColor.Fprintf(w, "WARNINGS (%d):\n", len(r.Warnings))
		for _, e := range r.Warnings {
			printResult(w, e)
		}
		fmt.Fprintln(w)
	}

	if len(r.Info) > 0 {
		_, _ = infoColor.Fprintf(w, "INFO (%d):\n", len(r.Info))
		for _, i := range r.Info {
			fmt.Fprintf(w, "  [%s] %s\n", i.Level, i.Message)
		}
		fmt.Fprintln(w)
	}

	if r.Valid {
		_, _ = successColor.Fprintf(w, "Result: VALID (%s)\n", r.Summary)
	} else {
		_, _ = errorColor.Fprintf(w, "Result: INVALID (%s)\n", r.Summary)
	}
}

func printResult(w io.Writer, e validation.Result) {
	fmt.Fprintf(w, "  [%s] %s\n", e.Level, e.Message)
	if e.Path != "" {
		if e.ActualValue != nil {
			fmt.Fprintf(w, "    -> %s = %v\n", e.Path, e.ActualValue)
		} else {
			fmt.Fprintf(w, "    -> %s\n", e.Path)
		}
	}
	if e.Expected != "" {
		fmt.Fprintf(w, "    expected: %s\n", e.Expected)
	}
	for _, s := range e.Suggestions {
		fmt.Fprintf(w, "    * %s\n", s)
	}
}

func printReplayReport(w io.Writer, res *record.ReplayResult, s *analytics.Summary) {
	_, _ = headerColor.Fprintf(w, "Replay %s\n", res.Run)
	fmt.Fprintln(w, "==============================")
	fmt.Fprintf(w, "  Turns replayed:   %d\n", res.Turns)
	fmt.Fprintf(w, "  Final balance:    %d\n", res.Resources)
	if len(res.Mismatches) == 0 {
		_, _ = successColor.Fprintln(w, "  Every turn matched the recording")
	} else {
		_, _ = errorColor.Fprintf(w, "  %d mismatches:\n", len(res.Mismatches))
		for _, m := range res.Mismatches {
			fmt.Fprintf(w, "    turn %d %s: recorded %q, replayed %q\n", m.Turn, m.Field, m.Recorded, m.Replayed)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%-6s %8s %8s %6s %6s %6s %9s\n",
		"City", "Pads", "Hangouts", "Tubes", "Tele", "Pods", "Coverage")
	fmt.Fprintf(w, "%-6s %8s %8s %6s %6s %6s %9s\n",
		"------", "--------", "--------", "------", "------", "------", "---------")
	for _, c := range s.Cities {
		fmt.Fprintf(w, "%-6d %8d %8d %6d %6d %6d %8.0f%%\n",
			c.City, len(c.Sources), len(c.Drains), c.Tubes, c.Teleporters, c.Pods, c.Coverage*100)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Isolated pads:     %d\n", s.IsolatedPads)
	fmt.Fprintf(w, "  Isolated hangouts: %d\n", s.IsolatedHangouts)
	fmt.Fprintf(w, "  Unserved tubes:    %d\n", s.UnservedTubes)
	fmt.Fprintf(w, "  Demand coverage:   %.0f%% of %d\n", s.Coverage*100, s.TotalDemand)
	fmt.Fprintln(w)
}
