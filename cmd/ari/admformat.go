package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"go.amprs.dev/ari/adm"
)

func newAdmFormatCmd() *cobra.Command {
	var (
		input  string
		output string
		indent int
	)

	cmd := &cobra.Command{
		Use:   "adm-format",
		Short: "Parse and re-emit an ADM JSON document, normalizing its formatting",
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := readInput(input)
			if err != nil {
				return err
			}

			file, err := adm.Decode(data)
			if err != nil {
				return fmt.Errorf("decode ADM document: %w", err)
			}

			out, err := adm.Encode(file, indent)
			if err != nil {
				return fmt.Errorf("encode ADM document: %w", err)
			}
			out = append(out, '\n')

			if output == "-" {
				_, err := cmd.OutOrStdout().Write(out)

				return err
			}

			return os.WriteFile(output, out, 0o644)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&input, "input", "-", "input ADM JSON document, or \"-\" for stdin")
	flags.StringVar(&output, "output", "-", "output file, or \"-\" for stdout")
	flags.IntVar(&indent, "indent", 2, "indent width in spaces, or 0 for compact output")

	return cmd
}
