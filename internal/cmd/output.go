package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"

	"github.com/njchilds90/answercheck/internal/batch"
	"github.com/njchilds90/answercheck/verify"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printReport writes a one-line verdict followed by the report details.
func printReport(w io.Writer, label string, r verify.Report) {
	green := color.New(color.FgGreen, color.Bold)
	red := color.New(color.FgRed, color.Bold)
	yellow := color.New(color.FgYellow)
	faint := color.New(color.Faint)

	if label != "" {
		label += " "
	}
	if r.OK {
		green.Fprint(w, "✓ ")
		fmt.Fprintf(w, "%s%s\n", label, r.Kind)
	} else {
		red.Fprint(w, "✗ ")
		fmt.Fprintf(w, "%s%s ", label, r.Kind)
		yellow.Fprintf(w, "[%s]", r.ErrorKind)
		fmt.Fprintf(w, " %s\n", r.Reason)
	}
	keys := make([]string, 0, len(r.Details))
	for k := range r.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		faint.Fprintf(w, "    %s: %v\n", k, r.Details[k])
	}
}

func printSummary(w io.Writer, s batch.Summary) {
	cyan := color.New(color.FgCyan, color.Bold)
	cyan.Fprintf(w, "\n%d checked, %d passed, %d failed\n", s.Total, s.Passed, s.Failed)
	for _, k := range s.ErrorKinds() {
		fmt.Fprintf(w, "  %-9s %d\n", k, s.ByErrorKind[k])
	}
}
