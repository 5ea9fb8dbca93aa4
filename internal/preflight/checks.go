// Package preflight verifies the generation environment before any trial
// synthesis begins, so configuration problems surface as a batch of named
// failures rather than a mid-run abort.
package preflight

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"trialgen/internal/config"
)

// Result reports a single environment check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// CheckStimulusDir verifies that a stimulus directory exists and is
// readable and listable.
func CheckStimulusDir(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("missing: %v", err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s is not a directory", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("not readable: %v", err)}
	}
	return Result{Name: name, Passed: true, Detail: path}
}

// CheckOutputDir verifies the output directory is writable, creating it
// first if absent.
func CheckOutputDir(path string) Result {
	const name = "output directory"
	if err := os.MkdirAll(path, 0o755); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("cannot create: %v", err)}
	}
	if err := unix.Access(path, unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("not writable: %v", err)}
	}
	return Result{Name: name, Passed: true, Detail: path}
}

// Run executes every check for the given configuration.
func Run(cfg *config.Config) []Result {
	return []Result{
		CheckStimulusDir("identity stimulus directory", cfg.Stimuli.IdentityDir),
		CheckStimulusDir("category stimulus directory", cfg.Stimuli.CategoryDir),
		CheckOutputDir(cfg.Output.Dir),
	}
}

// Failures filters results down to the failed checks.
func Failures(results []Result) []Result {
	var failed []Result
	for _, result := range results {
		if !result.Passed {
			failed = append(failed, result)
		}
	}
	return failed
}
