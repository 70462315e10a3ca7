package download

import (
	"context"
	"strings"

	"github.com/ytget/ytfetch/internal/model"
	"github.com/ytget/ytfetch/internal/platform"
)

// Output text patterns used to classify a failed external run. yt-dlp has
// no structured error channel, so this is best-effort matching on its
// diagnostics, checked in order of specificity.
var errorPatterns = []struct {
	kind     model.ErrorKind
	patterns []string
}{
	{model.ErrURLInvalid, []string{
		"is not a valid url",
		"unsupported url",
		"unable to extract",
		"incomplete youtube id",
		"truncated id",
		"video unavailable",
	}},
	{model.ErrPermissionDenied, []string{
		"permission denied",
		"unable to open for writing",
		"read-only file system",
	}},
	{model.ErrTranscodeFailure, []string{
		"audio conversion failed",
		"postprocessing",
		"ffmpeg exited",
		"error running ffmpeg",
	}},
	{model.ErrNetworkFailure, []string{
		"unable to download",
		"connection reset",
		"connection refused",
		"connection timed out",
		"timed out",
		"temporary failure in name resolution",
		"name or service not known",
		"getaddrinfo",
		"urlopen error",
		"network is unreachable",
		"http error 5",
		"incomplete read",
	}},
}

// classify maps a failed run into the error taxonomy using the exit error
// and the tail of the tool's output.
func classify(ctx context.Context, err error, output string) error {
	if ctx.Err() == context.Canceled {
		return &model.KindError{Kind: model.ErrCancelled, Message: "download cancelled"}
	}

	haystack := strings.ToLower(output + " " + err.Error())
	for _, group := range errorPatterns {
		for _, pattern := range group.patterns {
			if strings.Contains(haystack, pattern) {
				return &model.KindError{Kind: group.kind, Message: lastDiagnosticLine(output, err)}
			}
		}
	}
	return &model.KindError{Kind: model.ErrUnknownFailure, Message: lastDiagnosticLine(output, err)}
}

// lastDiagnosticLine picks the most useful single line to surface: the
// last ERROR line of the output, else the last line, else the exit error.
func lastDiagnosticLine(output string, err error) string {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.Contains(lines[i], "ERROR") {
			return strings.TrimSpace(lines[i])
		}
	}
	if last := strings.TrimSpace(lines[len(lines)-1]); last != "" {
		return last
	}
	return err.Error()
}

func sanitizeTitle(title string) string {
	return platform.SanitizeTitle(title)
}

// lineTail keeps the last n output lines for failure diagnostics.
type lineTail struct {
	lines []string
	max   int
}

func newLineTail(max int) *lineTail {
	return &lineTail{max: max}
}

func (t *lineTail) add(line string) {
	t.lines = append(t.lines, line)
	if len(t.lines) > t.max {
		t.lines = t.lines[1:]
	}
}

func (t *lineTail) String() string {
	return strings.Join(t.lines, "\n")
}
