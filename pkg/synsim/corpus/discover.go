package corpus

import (
	"context"
	"fmt"
	"io/fs"
	"math/rand/v2"
	"path/filepath"
	"sort"

	"github.com/gobwas/glob"

	"github.com/cognicore/synsim/pkg/synsim/internalerr"
)

// DiscoverOptions selects corpus files below a root directory.
type DiscoverOptions struct {
	// Root is the directory to walk (required).
	Root string

	// Include are glob patterns matched against '/'-separated paths relative
	// to Root. If empty, every file is included.
	Include []string

	// Exclude are glob patterns for files to leave out.
	Exclude []string
}

func compilePatterns(patterns []string) ([]glob.Glob, error) {
	out := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %v: %w", p, err, internalerr.ErrInvalidConfig)
		}
		out = append(out, g)
	}
	return out, nil
}

func matchAny(globs []glob.Glob, path string) bool {
	for _, g := range globs {
		if g.Match(path) {
			return true
		}
	}
	return false
}

// Discover returns the absolute paths of matching regular files, sorted.
func Discover(ctx context.Context, opts DiscoverOptions) ([]string, error) {
	if opts.Root == "" {
		return nil, fmt.Errorf("corpus root is empty: %w", internalerr.ErrInvalidConfig)
	}
	include, err := compilePatterns(opts.Include)
	if err != nil {
		return nil, err
	}
	exclude, err := compilePatterns(opts.Exclude)
	if err != nil {
		return nil, err
	}

	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve corpus root: %w", err)
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if len(include) > 0 && !matchAny(include, rel) {
			return nil
		}
		if matchAny(exclude, rel) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk corpus %s: %w", opts.Root, err)
	}

	sort.Strings(files)
	return files, nil
}

// Sample picks n distinct files in a pseudo-random order determined by seed.
// n <= 0, or n at least len(files), keeps every file in its given order.
func Sample(files []string, n int, seed uint64) []string {
	if n <= 0 || n >= len(files) {
		out := make([]string, len(files))
		copy(out, files)
		return out
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	perm := rng.Perm(len(files))
	out := make([]string, n)
	for i := range out {
		out[i] = files[perm[i]]
	}
	return out
}
