package extract

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ytget/ytfetch/internal/deps"
	"github.com/ytget/ytfetch/internal/model"
	"github.com/ytget/ytfetch/internal/runner"
)

type fakeRunner struct {
	probeOut  string
	probeErr  error
	lines     []string
	waitErr   error
	startArgs []string
}

func (f *fakeRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	if f.probeErr != nil {
		return nil, f.probeErr
	}
	return []byte(f.probeOut), nil
}

func (f *fakeRunner) Start(ctx context.Context, name string, args ...string) (runner.Handle, error) {
	f.startArgs = args
	lines := make(chan string, len(f.lines))
	for _, line := range f.lines {
		lines <- line
	}
	close(lines)
	return &fakeHandle{lines: lines, err: f.waitErr}, nil
}

type fakeHandle struct {
	lines chan string
	err   error
}

func (h *fakeHandle) Lines() <-chan string { return h.lines }
func (h *fakeHandle) Wait() error          { return h.err }

func ffmpegChecker() *deps.Checker {
	return deps.NewCheckerWithLookup(func(name string) (string, error) {
		return "/usr/bin/" + name, nil
	})
}

func writeInput(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "video.mp4")
	if err := os.WriteFile(path, []byte("media"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestBuildFFmpegArgs(t *testing.T) {
	args := BuildFFmpegArgs("/tmp/in.mp4", "/tmp/in.mp3")
	joined := strings.Join(args, " ")

	for _, want := range []string{"-y", "-i /tmp/in.mp4", "-vn", "-acodec libmp3lame", "-q:a 2", "/tmp/in.mp3"} {
		if !strings.Contains(joined, want) {
			t.Errorf("Expected args to contain %q, got %q", want, joined)
		}
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"/downloads/video.mp4", "/downloads/video.mp3"},
		{"/downloads/clip.webm", "/downloads/clip.mp3"},
		{"noext", "noext.mp3"},
	}

	for _, test := range tests {
		if got := OutputPath(test.input); got != test.expected {
			t.Errorf("OutputPath(%q) = %q, expected %q", test.input, got, test.expected)
		}
	}
}

func TestExtract_Success(t *testing.T) {
	input := writeInput(t)
	fake := &fakeRunner{
		probeOut: "120.5\n",
		lines: []string{
			"out_time_us=30125000",
			"out_time_us=120500000",
			"progress=end",
		},
	}

	s := New(ffmpegChecker(), fake)
	var events []model.ProgressEvent
	s.SetProgressCallback(func(e model.ProgressEvent) { events = append(events, e) })

	out, err := s.Extract(context.Background(), input)
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	if want := OutputPath(input); out != want {
		t.Errorf("Expected output %s, got %s", want, out)
	}

	if len(events) < 3 {
		t.Fatalf("Expected progress and terminal events, got %d", len(events))
	}
	if events[0].Stage != model.StageConverting || events[0].Percent != 25 {
		t.Errorf("Expected first event Converting 25%%, got %+v", events[0])
	}
	last := events[len(events)-1]
	if last.Stage != model.StageDone || last.Percent != 100 {
		t.Errorf("Expected terminal Done event, got %+v", last)
	}
}

func TestExtract_MissingInput(t *testing.T) {
	s := New(ffmpegChecker(), &fakeRunner{})

	if _, err := s.Extract(context.Background(), "/nonexistent/video.mp4"); err == nil {
		t.Error("Expected error for missing input file")
	}
}

func TestExtract_MissingFFmpeg(t *testing.T) {
	input := writeInput(t)
	checker := deps.NewCheckerWithLookup(func(name string) (string, error) {
		return "", errors.New("executable file not found in $PATH")
	})

	s := New(checker, &fakeRunner{})
	_, err := s.Extract(context.Background(), input)
	if model.KindOf(err) != model.ErrDependencyMissing {
		t.Errorf("Expected DEPENDENCY_MISSING, got %v", err)
	}
}

func TestExtract_FFmpegFailureRemovesPartialOutput(t *testing.T) {
	input := writeInput(t)
	fake := &fakeRunner{
		probeOut: "60.0",
		lines:    []string{"Error while decoding stream"},
		waitErr:  errors.New("exit status 1"),
	}

	s := New(ffmpegChecker(), fake)

	// Simulate the partial file ffmpeg leaves behind.
	partial := OutputPath(input)
	os.WriteFile(partial, []byte("partial"), 0o644)

	_, err := s.Extract(context.Background(), input)
	if model.KindOf(err) != model.ErrTranscodeFailure {
		t.Fatalf("Expected TRANSCODE_FAILURE, got %v", err)
	}
	if _, statErr := os.Stat(partial); !os.IsNotExist(statErr) {
		t.Error("Expected partial output to be removed on failure")
	}
}

func TestExtract_ProbeFailureStillConverts(t *testing.T) {
	input := writeInput(t)
	fake := &fakeRunner{
		probeErr: errors.New("ffprobe not found"),
		lines:    []string{"out_time_us=1000000", "progress=end"},
	}

	s := New(ffmpegChecker(), fake)
	var events []model.ProgressEvent
	s.SetProgressCallback(func(e model.ProgressEvent) { events = append(events, e) })

	if _, err := s.Extract(context.Background(), input); err != nil {
		t.Fatalf("Expected success without ffprobe, got %v", err)
	}
	// Percent is unknown (0) until completion, but events still flow.
	if events[0].Percent != 0 || events[0].Stage != model.StageConverting {
		t.Errorf("Expected coarse Converting event, got %+v", events[0])
	}
}
