package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"go.amprs.dev/ari/magicschema"
)

func newConfigSchemaCmd() *cobra.Command {
	cfg := magicschema.NewConfig()
	cfg.Registry = magicschema.Registry{}
	cfg.Registry.Add(magicschema.NewBlockAnnotator())

	cmd := &cobra.Command{
		Use:   "configschema [file.yaml ...]",
		Short: "Infer a JSON Schema from one or more ari.yaml settings files",
		Long: `configschema generates a JSON Schema on a best-effort basis from the
structure of the given YAML files, so that editors can validate and
autocomplete a hand-written ari.yaml even though no schema is hand-maintained
for it. Annotate a key with a fenced "# @schema" comment block to override
the inferred type, description, or other constraints.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSchema(cmd, cfg, args)
		},
	}

	cfg.RegisterFlags(cmd.Flags())

	completionErr := cfg.RegisterCompletions(cmd)
	if completionErr != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", completionErr)
	}

	return cmd
}

func runConfigSchema(cmd *cobra.Command, cfg *magicschema.Config, paths []string) error {
	inputs := make([][]byte, 0, len(paths))

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		inputs = append(inputs, data)
	}

	gen, err := cfg.NewGenerator()
	if err != nil {
		return err
	}

	schema, err := gen.Generate(inputs...)
	if err != nil {
		return fmt.Errorf("generate schema: %w", err)
	}

	out, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))

	return err
}
