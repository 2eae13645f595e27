package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"go.amprs.dev/ari/constraint"
)

func newCheckCmd() *cobra.Command {
	var admPaths []string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Load ADM documents and report consistency issues",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := loadCatalog(cmd.Context(), admPaths)
			if err != nil {
				return err
			}

			checker := &constraint.Checker{Catalog: cat}

			issues := checker.Check()
			for _, issue := range issues {
				fmt.Fprintln(cmd.OutOrStdout(), issue.String())
			}

			if hasError(issues) {
				return fmt.Errorf("%d issue(s) found", len(issues))
			}

			return nil
		},
	}

	cmd.Flags().StringArrayVar(&admPaths, "adm-path", nil, "directory of ADM JSON documents (repeatable)")

	return cmd
}

func hasError(issues []constraint.Issue) bool {
	for _, issue := range issues {
		if issue.Severity == constraint.SeverityError {
			return true
		}
	}

	return false
}
