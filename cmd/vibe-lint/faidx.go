package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/inodb/vibe-lint/internal/faidx"
)

// defaultLockWait bounds how long an index build waits for another
// process holding the lock.
const defaultLockWait = 30 * time.Second

func newFaidxCmd() *cobra.Command {
	var wait time.Duration
	cmd := &cobra.Command{
		Use:   "faidx <fasta>",
		Short: "Build the .fai index of a reference FASTA",
		Example: `  vibe-lint faidx GRCh38.fa
  vibe-lint validate -f GRCh38.fa input.vcf`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return usageErr("faidx requires exactly one FASTA file, got %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(viper.GetBool("verbose"))
			if err != nil {
				return failErr(fmt.Errorf("create logger: %w", err))
			}
			defer logger.Sync() //nolint:errcheck

			ctx, cancel := context.WithTimeout(cmd.Context(), wait)
			defer cancel()

			path := args[0]
			if err := faidx.Build(ctx, path, logger); err != nil {
				if errors.Is(err, faidx.ErrIndexLocked) {
					return failErr(fmt.Errorf("failed to build index: another process is indexing %s", path))
				}
				return failErr(fmt.Errorf("failed to build index: %w", err))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", faidx.IndexPath(path))
			return nil
		},
	}
	cmd.Flags().DurationVar(&wait, "lock-wait", defaultLockWait, "How long to wait for a concurrent index build")
	return cmd
}
