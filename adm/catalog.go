package adm

import (
	"context"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Store is the persistence seam a [Catalog] reads from and writes to. The
// reference implementation backs this with a SQLite cache; this package
// ships no concrete Store, leaving persistence to the caller (see
// go.amprs.dev/ari/cmd/ari, which uses the filesystem directly via
// LoadDir/LoadFile).
type Store interface {
	Load(ctx context.Context) ([]*File, error)
	Save(ctx context.Context, files []*File) error
}

// Catalog is an in-memory index of loaded ADM files, resolved against
// each other so that "uses" dependencies are satisfied and every object
// has a stable nickname. Catalog is not safe for concurrent mutation;
// callers that load from multiple sources concurrently must funnel the
// parsed [File] values through a single goroutine before calling Commit.
type Catalog struct {
	mu        sync.RWMutex
	byName    map[string]*File
	byEnum    map[uint64]*File
	nextPurge []string
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{byName: map[string]*File{}, byEnum: map[uint64]*File{}}
}

// LoadDir parses every *.json file under dir concurrently, then commits
// the results to the catalog in a single serial pass. Concurrent parsing
// is safe because each file is parsed independently; only the final
// dependency-ordered ingestion touches shared catalog state.
func (c *Catalog) LoadDir(ctx context.Context, dir string) error {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == ".json" {
			paths = append(paths, path)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("adm: walk %s: %w", dir, err)
	}

	files := make([]*File, len(paths))

	g, _ := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("adm: read %s: %w", path, err)
			}
			f, err := Decode(data)
			if err != nil {
				return fmt.Errorf("adm: decode %s: %w", path, err)
			}
			f.AbsFilePath = absPath(path)
			files[i] = f

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	return c.Commit(files)
}

// LoadFile parses and commits a single ADM JSON file.
func (c *Catalog) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("adm: read %s: %w", path, err)
	}
	f, err := Decode(data)
	if err != nil {
		return fmt.Errorf("adm: decode %s: %w", path, err)
	}
	f.AbsFilePath = absPath(path)

	return c.Commit([]*File{f})
}

// absPath resolves path to an absolute form for [File.AbsFilePath],
// falling back to path unchanged if it cannot be resolved (e.g. a
// nonexistent working directory), since same-file-name comparison only
// needs the basename.
func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}

	return abs
}

// Commit ingests files into the catalog, resolving "uses" dependencies by
// repeatedly admitting any pending file whose dependencies are already
// present, until no further progress can be made. Files left unresolved
// after the fixed point are reported together as one error, and the
// catalog is then left as it was before the call. A file whose
// normalized name duplicates an already-registered file replaces it
// (del_dupe), so re-loading an updated ADM does not require removing the
// old one first.
func (c *Catalog) Commit(files []*File) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	byName, byEnum := maps.Clone(c.byName), maps.Clone(c.byEnum)

	pending := make(map[string]*File, len(files))
	for _, f := range files {
		pending[f.NormName()] = f
	}

	for len(pending) > 0 {
		progressed := false

		for name, f := range pending {
			if !c.depsSatisfied(f) {
				continue
			}

			c.admit(f)
			delete(pending, name)
			progressed = true
		}

		if !progressed {
			c.byName, c.byEnum = byName, byEnum

			var names []string
			for name := range pending {
				names = append(names, name)
			}
			sort.Strings(names)

			return fmt.Errorf("adm: unresolved dependencies for: %v", names)
		}
	}

	return nil
}

func (c *Catalog) depsSatisfied(f *File) bool {
	for _, use := range f.Uses {
		if _, ok := c.byName[normalizeIdent(use)]; !ok {
			return false
		}
	}

	return true
}

// admit assigns f its nickname (if not already present from a prior
// catalog build) and registers it, replacing any prior file of the same
// name.
func (c *Catalog) admit(f *File) {
	norm := f.NormName()
	if old, ok := c.byName[norm]; ok {
		delete(c.byEnum, old.Enum)
		f.Enum = old.Enum
	} else {
		f.Enum = uint64(len(c.byName))
	}

	c.byName[norm] = f
	c.byEnum[f.Enum] = f
}

// ByName returns the file registered under the normalized name, if any.
func (c *Catalog) ByName(name string) (*File, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, ok := c.byName[normalizeIdent(name)]

	return f, ok
}

// ByEnum returns the file with the given ADM enumeration, if any.
func (c *Catalog) ByEnum(enum uint64) (*File, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, ok := c.byEnum[enum]

	return f, ok
}

// Files returns every registered file, sorted by normalized name.
func (c *Catalog) Files() []*File {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*File, 0, len(c.byName))
	for _, f := range c.byName {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NormName() < out[j].NormName() })

	return out
}

// GetChild looks up a single managed object by (adm name, object kind,
// object name), returning its zero-based position within that section —
// the value used to compute its nickname.
func (c *Catalog) GetChild(admName string, section string, objName string) (uint64, error) {
	f, ok := c.ByName(admName)
	if !ok {
		return 0, fmt.Errorf("%w: ADM %q", ErrNotFound, admName)
	}

	norm := normalizeIdent(objName)

	var names []string
	switch section {
	case "const":
		for _, o := range f.Consts {
			names = append(names, o.Name)
		}
	case "ctrl":
		for _, o := range f.Ctrls {
			names = append(names, o.Name)
		}
	case "edd":
		for _, o := range f.Edds {
			names = append(names, o.Name)
		}
	case "mac":
		for _, o := range f.Macs {
			names = append(names, o.Name)
		}
	case "oper":
		for _, o := range f.Opers {
			names = append(names, o.Name)
		}
	case "rptt":
		for _, o := range f.Rptts {
			names = append(names, o.Name)
		}
	case "tblt":
		for _, o := range f.Tblts {
			names = append(names, o.Name)
		}
	case "var":
		for _, o := range f.Vars {
			names = append(names, o.Name)
		}
	default:
		return 0, fmt.Errorf("%w: unknown section %q", ErrNotFound, section)
	}

	for i, n := range names {
		if normalizeIdent(n) == norm {
			return uint64(i), nil
		}
	}

	return 0, fmt.Errorf("%w: %s.%s in %s", ErrNotFound, section, objName, admName)
}
