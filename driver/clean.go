package driver

import (
	"os"

	"github.com/teranos/enumgen/errors"
	"github.com/teranos/enumgen/logger"
)

// Clean removes the module's generated artifacts and returns the removed
// paths. Missing files are skipped.
func Clean(c Context) ([]string, error) {
	var removed []string
	for _, path := range c.allOutputs() {
		if !fileExists(path) {
			continue
		}
		if err := os.Remove(path); err != nil {
			return removed, errors.Wrapf(err, "failed to remove %s", path)
		}
		logger.Debugw("Removed artifact", logger.FieldFile, path)
		removed = append(removed, path)
	}
	return removed, nil
}

// OutputsMissing reports whether a discovered schema lacks one of its
// artifacts. A module without schemas never misses anything.
func OutputsMissing(c Context) bool {
	for _, path := range c.Paths().Outputs() {
		if !fileExists(path) {
			return true
		}
	}
	return false
}
