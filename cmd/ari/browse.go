package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"go.amprs.dev/ari/ariui"
)

func newBrowseCmd() *cobra.Command {
	var admPaths []string

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Interactively browse a loaded ADM catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !term.IsTerminal(0) {
				return fmt.Errorf("browse requires an interactive terminal")
			}

			cat, err := loadCatalog(cmd.Context(), admPaths)
			if err != nil {
				return err
			}

			if logPublisher != nil {
				sub := logPublisher.Subscribe()
				defer sub.Close()

				return ariui.RunWithLogs(cat, sub)
			}

			return ariui.Run(cat)
		},
	}

	cmd.Flags().StringArrayVar(&admPaths, "adm-path", nil, "directory of ADM JSON documents (repeatable)")

	return cmd
}
