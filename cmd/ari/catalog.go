package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.amprs.dev/ari/adm"
)

// loadCatalog builds a [adm.Catalog] from the union of the colon-separated
// $ADM_PATH environment variable and --adm-path flag values, loading flag
// values last so they take priority when both name conflicting ADMs (a
// later load replaces an ADM of the same name).
func loadCatalog(ctx context.Context, admPaths []string) (*adm.Catalog, error) {
	var paths []string
	if env := os.Getenv("ADM_PATH"); env != "" {
		paths = strings.Split(env, ":")
	}
	paths = append(paths, admPaths...)

	cat := adm.NewCatalog()
	for _, dir := range paths {
		if dir == "" {
			continue
		}
		if err := cat.LoadDir(ctx, dir); err != nil {
			return nil, fmt.Errorf("load ADM path %s: %w", dir, err)
		}
	}

	return cat, nil
}
