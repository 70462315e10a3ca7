// Package runner abstracts launching an external process and streaming its
// text output line by line. Both the yt-dlp and ffmpeg invocations go
// through the same Runner, keeping progress parsing independent of
// process-launch mechanics and letting tests substitute a fake.
package runner

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

// Handle tracks one running external process.
type Handle interface {
	// Lines streams the process's combined stdout/stderr output, one
	// trimmed non-empty line at a time, while the process is running.
	// The channel closes when both streams are drained.
	Lines() <-chan string

	// Wait blocks until the process exits and the output streams are
	// drained, then returns the process's exit error, if any.
	Wait() error
}

// Runner launches external tools.
type Runner interface {
	// Start launches name with args and returns a handle streaming its
	// output. The process is killed when ctx is cancelled.
	Start(ctx context.Context, name string, args ...string) (Handle, error)

	// Output runs name with args to completion and returns its stdout.
	// Stderr is folded into the returned error on non-zero exit.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// New returns a Runner backed by os/exec.
func New() Runner {
	return &execRunner{}
}

type execRunner struct{}

type execHandle struct {
	cmd   *exec.Cmd
	lines chan string
	wg    sync.WaitGroup

	waitOnce sync.Once
	waitErr  error
}

func (r *execRunner) Start(ctx context.Context, name string, args ...string) (Handle, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	log.Debug().Str("op", "runner/start").Msgf("executing: %s", cmd.String())

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("creating stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("creating stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting %s: %w", name, err)
	}

	h := &execHandle{
		cmd:   cmd,
		lines: make(chan string, 64),
	}
	h.wg.Add(2)
	go h.scan(stdout)
	go h.scan(stderr)
	go func() {
		h.wg.Wait()
		close(h.lines)
	}()
	return h, nil
}

func (r *execRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	log.Debug().Str("op", "runner/output").Msgf("executing: %s", cmd.String())

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s failed: %w | %s", name, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}

func (h *execHandle) scan(reader io.Reader) {
	defer h.wg.Done()
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			h.lines <- line
		}
	}
}

func (h *execHandle) Lines() <-chan string {
	return h.lines
}

func (h *execHandle) Wait() error {
	h.waitOnce.Do(func() {
		// Readers must be drained before cmd.Wait closes the pipes.
		h.wg.Wait()
		h.waitErr = h.cmd.Wait()
	})
	return h.waitErr
}
