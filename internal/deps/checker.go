// Package deps verifies that the external tools (yt-dlp for extraction,
// ffmpeg for audio post-processing) are reachable on the executable search
// path. The lookup is injectable so tests can simulate an empty path.
package deps

import (
	"fmt"
	"os/exec"

	"github.com/rs/zerolog/log"

	"github.com/ytget/ytfetch/internal/model"
)

// External tool names.
const (
	ToolYTDLP  = "yt-dlp"
	ToolFFmpeg = "ffmpeg"
)

// LookPathFunc resolves a tool name to an executable path, mirroring
// exec.LookPath.
type LookPathFunc func(name string) (string, error)

// Checker probes the process environment for required external tools. The
// probe is read-only and never retried.
type Checker struct {
	lookPath LookPathFunc
}

// NewChecker creates a checker backed by the real executable search path.
func NewChecker() *Checker {
	return &Checker{lookPath: exec.LookPath}
}

// NewCheckerWithLookup creates a checker with a custom lookup, used by
// tests to inject a fake search path.
func NewCheckerWithLookup(lookPath LookPathFunc) *Checker {
	return &Checker{lookPath: lookPath}
}

// Check resolves every known external tool and reports its status.
func (c *Checker) Check() []model.DependencyStatus {
	statuses := make([]model.DependencyStatus, 0, 2)
	for _, tool := range []string{ToolYTDLP, ToolFFmpeg} {
		statuses = append(statuses, c.probe(tool))
	}
	return statuses
}

// Require resolves the tools the given mode needs and returns a
// DEPENDENCY_MISSING error naming the first absent one. The orchestrator
// refuses to start on failure; no network activity happens before this
// check passes.
func (c *Checker) Require(mode model.Mode) (map[string]string, error) {
	tools := []string{ToolYTDLP}
	if mode.NeedsFFmpeg() {
		tools = append(tools, ToolFFmpeg)
	}

	paths := make(map[string]string, len(tools))
	for _, tool := range tools {
		status := c.probe(tool)
		if !status.Found {
			return nil, &model.KindError{
				Kind:    model.ErrDependencyMissing,
				Message: fmt.Sprintf("%s: %s", tool, status.Reason),
			}
		}
		paths[tool] = status.Path
	}
	return paths, nil
}

// ResolveFFmpeg resolves ffmpeg alone, for local extraction.
func (c *Checker) ResolveFFmpeg() (string, error) {
	status := c.probe(ToolFFmpeg)
	if !status.Found {
		return "", &model.KindError{
			Kind:    model.ErrDependencyMissing,
			Message: fmt.Sprintf("%s: %s", ToolFFmpeg, status.Reason),
		}
	}
	return status.Path, nil
}

func (c *Checker) probe(tool string) model.DependencyStatus {
	path, err := c.lookPath(tool)
	if err != nil {
		log.Debug().Str("op", "deps/probe").Str("tool", tool).Err(err).Msg("tool not found")
		return model.DependencyStatus{
			Tool:   tool,
			Found:  false,
			Reason: fmt.Sprintf("not found in PATH: %v", err),
		}
	}
	return model.DependencyStatus{Tool: tool, Found: true, Path: path}
}

// InstallHint returns a short installation instruction for a missing tool.
func InstallHint(tool string) string {
	return fmt.Sprintf("install it with your package manager, e.g. 'brew install %s' or 'apt install %s'", tool, tool)
}
