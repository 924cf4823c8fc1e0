package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/njchilds90/answercheck/internal/batch"
	"github.com/njchilds90/answercheck/verify"
)

// NewValidateCommand creates and returns the validate subcommand
func NewValidateCommand(flags *globalFlags) *cobra.Command {
	var (
		spec   string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "validate [question.json]...",
		Short: "Validate one or more questions",
		Long: `Validate questions holding an answer_spec, or bare answer specs.

Input modes:
  - Files:  answercheck validate q1.json q2.json
  - Stdin:  echo '{"kind":"value","expr":"2+2","value":4}' | answercheck validate -
  - Inline: answercheck validate --spec '{"kind":"roots","expr":"x^2-4","solutions":[2,-2]}'

Exit code: 0 if every claim holds, 1 otherwise`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd, flags)
			if err != nil {
				return err
			}
			inputs, err := readInputs(cmd.InOrStdin(), spec, args)
			if err != nil {
				return err
			}
			return validateInputs(cmd, a.engine, inputs, asJSON)
		},
	}
	cmd.Flags().StringVarP(&spec, "spec", "s", "", "answer spec or question as inline JSON")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print reports as JSON")
	return cmd
}

type input struct {
	name string
	data []byte
}

func readInputs(stdin io.Reader, spec string, args []string) ([]input, error) {
	var inputs []input
	if spec != "" {
		inputs = append(inputs, input{name: "--spec", data: []byte(spec)})
	}
	for _, path := range args {
		var (
			data []byte
			err  error
		)
		if path == "-" {
			data, err = io.ReadAll(stdin)
		} else {
			data, err = os.ReadFile(path)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		inputs = append(inputs, input{name: path, data: data})
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("nothing to validate: pass files, - for stdin, or --spec")
	}
	return inputs, nil
}

func validateInputs(cmd *cobra.Command, engine *verify.Engine, inputs []input, asJSON bool) error {
	out := cmd.OutOrStdout()
	rejected := false
	for _, in := range inputs {
		item := batch.NewItem(in.data)
		r := engine.Validate(cmd.Context(), item.Question)
		rejected = rejected || !r.OK
		if asJSON {
			if err := writeJSON(out, r); err != nil {
				return err
			}
			continue
		}
		label := ""
		if len(inputs) > 1 {
			label = in.name
		}
		printReport(out, label, r)
	}
	if rejected {
		return ErrRejected
	}
	return nil
}
