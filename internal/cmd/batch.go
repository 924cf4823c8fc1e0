package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/njchilds90/answercheck/internal/batch"
	"github.com/njchilds90/answercheck/internal/logger"
)

// NewBatchCommand creates and returns the batch subcommand
func NewBatchCommand(flags *globalFlags) *cobra.Command {
	var (
		workers int
		asJSON  bool
	)
	cmd := &cobra.Command{
		Use:   "batch <file|->",
		Short: "Validate a batch of questions concurrently",
		Long: `Validate a JSON array, JSON lines or a YAML list of questions.
Each item is a question with an answer_spec or a bare answer spec and may
carry an "id"; items without one get a generated id.

Exit code: 0 if every claim holds, 1 otherwise`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd, flags)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("workers") {
				a.cfg.Workers = workers
			}
			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("failed to open batch: %w", err)
				}
				defer f.Close()
				r = f
			}
			items, err := batch.Decode(r)
			if err != nil {
				return err
			}
			ctx := logger.ContextWithLogger(cmd.Context(), a.log)
			results, err := batch.Run(ctx, a.engine, items, a.cfg.Workers)
			if err != nil {
				return err
			}
			summary := batch.Summarize(results)
			out := cmd.OutOrStdout()
			if asJSON {
				if err := writeJSON(out, map[string]any{"results": results, "summary": summary}); err != nil {
					return err
				}
			} else {
				for _, res := range results {
					printReport(out, res.ID, res.Report)
				}
				printSummary(out, summary)
			}
			if summary.Failed > 0 {
				return ErrRejected
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "concurrent validations (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print results as JSON")
	return cmd
}
