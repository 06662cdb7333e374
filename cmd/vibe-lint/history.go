package main

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/inodb/vibe-lint/internal/duckdb"
)

func newHistoryCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect validation runs recorded with --db",
		Example: `  vibe-lint validate --db runs.duckdb input.vcf
  vibe-lint history --db runs.duckdb
  vibe-lint history show --db runs.duckdb <run-id>
  vibe-lint history rules --db runs.duckdb`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(dbPath, func(s *duckdb.Store) error {
				return listRuns(cmd.OutOrStdout(), s)
			})
		},
	}
	cmd.PersistentFlags().StringVar(&dbPath, "db", "", "DuckDB file written by validate --db")
	_ = cmd.MarkPersistentFlagRequired("db")

	cmd.AddCommand(&cobra.Command{
		Use:   "show <run-id>",
		Short: "Show the findings of one run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(dbPath, func(s *duckdb.Store) error {
				return showRun(cmd.OutOrStdout(), s, args[0])
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rules",
		Short: "Count findings per rule across all runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(dbPath, func(s *duckdb.Store) error {
				return ruleCounts(cmd.OutOrStdout(), s)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove all recorded runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(dbPath, func(s *duckdb.Store) error {
				if err := s.ClearRuns(); err != nil {
					return fmt.Errorf("clear runs: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared runs in %s\n", dbPath)
				return nil
			})
		},
	})

	return cmd
}

func withStore(path string, fn func(*duckdb.Store) error) error {
	s, err := duckdb.Open(path)
	if err != nil {
		return failErr(err)
	}
	defer s.Close()
	return failErrOrNil(fn(s))
}

func listRuns(w io.Writer, s *duckdb.Store) error {
	runs, err := s.Runs()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tSTARTED\tFILE\tLINES\tWARNINGS\tERRORS")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\n",
			r.ID, r.StartedAt.Format(time.RFC3339), r.File.Path, r.Lines, r.Warnings, r.Errors)
	}
	return tw.Flush()
}

func showRun(w io.Writer, s *duckdb.Store, runID string) error {
	rows, err := s.Findings(runID)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Fprintf(w, "No findings for run %s.\n", runID)
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tLINE\tCODE\tRULE\tLEVEL\tMESSAGE")
	for _, f := range rows {
		line := "-"
		if f.Line > 0 {
			line = fmt.Sprint(f.Line)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", f.Category, line, f.Code, f.Name, f.Level, f.Message)
	}
	return tw.Flush()
}

func ruleCounts(w io.Writer, s *duckdb.Store) error {
	counts, err := s.RuleCounts()
	if err != nil {
		return err
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RULE\tCOUNT")
	for _, name := range names {
		fmt.Fprintf(tw, "%s\t%d\n", name, counts[name])
	}
	return tw.Flush()
}
