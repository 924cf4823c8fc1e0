package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/njchilds90/answercheck/normalize"
)

// NewNormalizeCommand creates and returns the normalize subcommand
func NewNormalizeCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "normalize <expr>...",
		Short: "Show how expressions are normalized and parsed",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			red := color.New(color.FgRed)
			failed := false
			for _, raw := range args {
				d := normalize.Describe(raw)
				failed = failed || d.Error != ""
				if asJSON {
					if err := writeJSON(out, d); err != nil {
						return err
					}
					continue
				}
				if d.Error != "" {
					fmt.Fprintf(out, "%s -> %s  ", raw, d.Normalized)
					red.Fprintln(out, d.Error)
					continue
				}
				fmt.Fprintf(out, "%s -> %s  (%s)\n", raw, d.Normalized, d.Parsed)
			}
			if failed {
				return fmt.Errorf("some expressions do not parse")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print descriptions as JSON")
	return cmd
}
