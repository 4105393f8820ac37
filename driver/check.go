package driver

import (
	"context"
	"os"
	"path/filepath"

	"github.com/teranos/enumgen/errors"
	"github.com/teranos/enumgen/logger"
)

// CheckResult holds the result of a staleness check
type CheckResult struct {
	UpToDate bool
	// Stale lists outputs, relative to the gen dir, that are missing, differ
	// from a fresh run, or are left over from a removed schema.
	Stale []string
}

// Check regenerates the module into a temporary directory and compares
// the result with the committed outputs, ignoring the banner lines that
// change on every run.
func Check(ctx context.Context, c Context) (*CheckResult, error) {
	tempDir, err := os.MkdirTemp("", "enumgen-check-*")
	if err != nil {
		return nil, errors.Wrap(err, "failed to create temp directory")
	}
	defer os.RemoveAll(tempDir)

	fresh := c
	fresh.GenDir = tempDir
	if _, err := Generate(ctx, fresh); err != nil {
		return nil, err
	}

	var stale []string
	for _, out := range fresh.Paths().Outputs() {
		rel, err := filepath.Rel(tempDir, out)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to relate %s to %s", out, tempDir)
		}
		different, err := filesAreDifferent(out, filepath.Join(c.GenDir, rel))
		if err != nil || different {
			stale = append(stale, rel)
		}
	}

	// Outputs of a schema that no longer exists are stale too.
	for _, existing := range c.allOutputs() {
		if !fileExists(existing) {
			continue
		}
		rel, err := filepath.Rel(c.GenDir, existing)
		if err != nil {
			continue
		}
		if !fileExists(filepath.Join(tempDir, rel)) {
			stale = append(stale, rel)
		}
	}

	logger.Debugw("Checked generated outputs", logger.FieldModule, c.Module, "stale", stale)
	return &CheckResult{UpToDate: len(stale) == 0, Stale: stale}, nil
}

// filesAreDifferent compares two files, ignoring volatile banner lines.
// A missing committed file counts as different.
func filesAreDifferent(fresh, committed string) (bool, error) {
	a, err := os.ReadFile(fresh)
	if err != nil {
		return false, errors.Wrapf(err, "failed to read %s", fresh)
	}
	b, err := os.ReadFile(committed)
	if os.IsNotExist(err) {
		return true, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, "failed to read %s", committed)
	}
	return StripBanner(a) != StripBanner(b), nil
}

// allOutputs lists every artifact path the module can produce.
func (c Context) allOutputs() []string {
	p := c.Paths()
	return []string{p.Source, p.PublicHeader, p.LocalHeader}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
