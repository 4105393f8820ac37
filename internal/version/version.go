package version

import (
	"fmt"
	"runtime"

	"github.com/Masterminds/semver/v3"

	"github.com/teranos/enumgen/errors"
)

// Build information. These variables are set at build time via ldflags.
var (
	// CommitHash is the git commit hash when the binary was built
	CommitHash = "dev"

	// BuildTime is when the binary was built
	BuildTime = "unknown"

	// Version is the semantic version (if tagged)
	Version = "dev"
)

// Info contains version and build information
type Info struct {
	CommitHash string `json:"commit_hash"`
	BuildTime  string `json:"build_time"`
	Version    string `json:"version"`
	GoVersion  string `json:"go_version"`
	Platform   string `json:"platform"`
}

// Get returns the current version information
func Get() Info {
	return Info{
		CommitHash: CommitHash,
		BuildTime:  BuildTime,
		Version:    Version,
		GoVersion:  runtime.Version(),
		Platform:   fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String returns a human-readable version string
func (i Info) String() string {
	if i.Version != "dev" {
		return fmt.Sprintf("enumgen %s (commit %s, built %s)", i.Version, i.CommitHash, i.BuildTime)
	}
	return fmt.Sprintf("enumgen dev (commit %s, built %s)", i.CommitHash, i.BuildTime)
}

// Satisfies checks a semver constraint such as ">= 1.2, < 2" against the
// running generator version. Dev builds satisfy every constraint.
func Satisfies(constraint string) error {
	return satisfies(Version, constraint)
}

func satisfies(current, constraint string) error {
	if constraint == "" || current == "dev" {
		return nil
	}

	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return errors.Wrapf(errors.ErrInvalidSchema, "invalid version constraint %q: %v", constraint, err)
	}
	v, err := semver.NewVersion(current)
	if err != nil {
		return errors.Wrapf(err, "invalid generator version %q", current)
	}
	if !c.Check(v) {
		return errors.WithHint(
			errors.Wrapf(errors.ErrIncompatibleSchema, "generator %s does not satisfy %q", current, constraint),
			"upgrade enumgen or relax the document's requires constraint")
	}
	return nil
}
