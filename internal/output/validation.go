package output

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/inodb/vibe-lint/internal/rule"
	"github.com/inodb/vibe-lint/internal/validator"
)

// WriteSummary writes per-rule finding counts and totals for report.
func WriteSummary(w io.Writer, report *validator.Report) error {
	type key struct {
		code, name string
		level      rule.Level
	}
	counts := make(map[key]int)
	var order []key

	for _, e := range report.Findings() {
		k := key{e.Error.Code, e.Error.Name, e.Error.Level}
		if _, ok := counts[k]; !ok {
			order = append(order, k)
		}
		counts[k]++
	}

	fmt.Fprintf(w, "\nValidation Summary:\n")
	fmt.Fprintf(w, "  Lines:     %d\n", report.Lines)
	fmt.Fprintf(w, "  Errors:    %d\n", report.Count(rule.Error))
	fmt.Fprintf(w, "  Warnings:  %d\n", report.Count(rule.Warning))

	if len(order) == 0 {
		return nil
	}

	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  CODE\tRULE\tLEVEL\tCOUNT")
	for _, k := range order {
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%d\n", k.code, k.name, k.level, counts[k])
	}
	return tw.Flush()
}
