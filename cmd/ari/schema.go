package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"go.amprs.dev/ari/admschema"
)

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema describing the ADM JSON document format",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := json.MarshalIndent(admschema.Document(), "", "  ")
			if err != nil {
				return fmt.Errorf("marshal schema: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))

			return err
		},
	}
}
