package download

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/ytget/ytfetch/internal/deps"
	"github.com/ytget/ytfetch/internal/model"
	"github.com/ytget/ytfetch/internal/progress"
	"github.com/ytget/ytfetch/internal/runner"
)

// yt-dlp format selectors. The video selector falls back through
// progressively simpler formats; FallbackFormat is a last resort retried
// once when the primary selection fails.
const (
	VideoFormat    = "bestvideo[ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]/best"
	FallbackFormat = "best"

	AudioFormat  = "mp3"
	AudioQuality = "0"

	ExtensionMP4 = ".mp4"
	ExtensionMP3 = ".mp3"
)

// videoInfo is the subset of yt-dlp's --dump-json output we consume.
type videoInfo struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Orchestrator turns a validated DownloadRequest into a DownloadResult by
// driving the external tools. One request is processed at a time;
// concurrent callers queue on the internal mutex.
type Orchestrator struct {
	checker *deps.Checker
	run     runner.Runner

	mu         sync.Mutex
	onProgress func(model.ProgressEvent)
}

// NewOrchestrator creates an orchestrator using the real search path and
// os/exec runner.
func NewOrchestrator() *Orchestrator {
	return New(deps.NewChecker(), runner.New())
}

// New creates an orchestrator with explicit collaborators, used by tests
// to inject a fake tool lookup and runner.
func New(checker *deps.Checker, run runner.Runner) *Orchestrator {
	return &Orchestrator{checker: checker, run: run}
}

// SetProgressCallback sets the callback receiving normalized progress
// events. Events are delivered in emission order from the goroutine
// running the download.
func (o *Orchestrator) SetProgressCallback(callback func(model.ProgressEvent)) {
	o.onProgress = callback
}

// Download executes the request and returns its terminal result. Exactly
// one result is produced per request and nothing is retried automatically;
// the caller may re-submit a fresh request.
func (o *Orchestrator) Download(ctx context.Context, req model.DownloadRequest) model.DownloadResult {
	o.mu.Lock()
	defer o.mu.Unlock()

	log.Info().Str("op", "download").Str("request", req.ID).Str("mode", req.Mode.String()).Msgf("starting download for %s", req.URL)

	if err := req.Validate(); err != nil {
		return o.fail(req, err)
	}

	toolPaths, err := o.checker.Require(req.Mode)
	if err != nil {
		return o.fail(req, err)
	}

	title, err := o.probeTitle(ctx, toolPaths[deps.ToolYTDLP], req.URL)
	if err != nil {
		return o.fail(req, err)
	}
	log.Debug().Str("op", "download").Str("request", req.ID).Msgf("resolved title: %s", title)

	result := model.DownloadResult{RequestID: req.ID}
	legs := []model.Mode{req.Mode}
	if req.Mode == model.ModeBoth {
		// Two independent invocations; either may fail without
		// affecting the other.
		legs = []model.Mode{model.ModeVideoMP4, model.ModeAudioMP3}
		result.Partial = make(map[model.Mode]model.ErrorKind)
	}

	var firstErr error
	for _, leg := range legs {
		outPath, err := o.runLeg(ctx, req, leg, toolPaths, title)
		if err != nil {
			log.Error().Str("op", "download").Str("request", req.ID).Str("mode", leg.String()).Err(err).Msg("invocation failed")
			if result.Partial != nil {
				result.Partial[leg] = model.KindOf(err)
			}
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		result.Outputs = append(result.Outputs, model.Output{Mode: leg, Path: outPath})
	}

	if firstErr != nil {
		result.Success = false
		result.ErrKind = model.KindOf(firstErr)
		result.ErrDetail = firstErr.Error()
		o.notify(model.ProgressEvent{Percent: 0, Stage: model.StageFailed, Message: result.ErrDetail})
		return result
	}

	result.Success = true
	o.notify(model.ProgressEvent{Percent: 100, Stage: model.StageDone, Message: "saved " + strings.Join(result.OutputPaths(), ", ")})
	log.Info().Str("op", "download").Str("request", req.ID).Msgf("completed: %v", result.OutputPaths())
	return result
}

// probeTitle fetches the video metadata and returns the sanitized title
// used to derive output filenames.
func (o *Orchestrator) probeTitle(ctx context.Context, ytdlpPath, url string) (string, error) {
	out, err := o.run.Output(ctx, ytdlpPath, "--dump-json", "--no-warnings", "--no-playlist", url)
	if err != nil {
		return "", classify(ctx, err, err.Error())
	}

	var info videoInfo
	if err := json.Unmarshal(out, &info); err != nil {
		return "", &model.KindError{Kind: model.ErrUnknownFailure, Message: fmt.Sprintf("cannot parse video metadata: %v", err)}
	}
	title := info.Title
	if title == "" {
		title = info.ID
	}
	return sanitizeTitle(title), nil
}

// runLeg performs one yt-dlp invocation for a single output mode.
func (o *Orchestrator) runLeg(ctx context.Context, req model.DownloadRequest, mode model.Mode, toolPaths map[string]string, title string) (string, error) {
	var outPath string
	var args []string

	switch mode {
	case model.ModeAudioMP3:
		outPath = filepath.Join(req.DestDir, title+ExtensionMP3)
		args = audioArgs(outPath, toolPaths[deps.ToolFFmpeg], req.URL)
	default:
		outPath = filepath.Join(req.DestDir, title+ExtensionMP4)
		args = videoArgs(VideoFormat, outPath, req.URL)
	}

	err := o.invoke(ctx, toolPaths[deps.ToolYTDLP], args, outPath)
	if err != nil && mode == model.ModeVideoMP4 && model.KindOf(err) == model.ErrUnknownFailure && ctx.Err() == nil {
		// The strict format selection can be unavailable for some
		// videos; try once more with the simplest selector.
		log.Debug().Str("op", "download").Str("request", req.ID).Msg("retrying with fallback format")
		err = o.invoke(ctx, toolPaths[deps.ToolYTDLP], videoArgs(FallbackFormat, outPath, req.URL), outPath)
	}
	if err != nil {
		return "", err
	}
	return outPath, nil
}

// invoke runs one external process, forwarding each output line as a
// progress event while the process is still running.
func (o *Orchestrator) invoke(ctx context.Context, ytdlpPath string, args []string, outPath string) error {
	handle, err := o.run.Start(ctx, ytdlpPath, args...)
	if err != nil {
		return classify(ctx, err, err.Error())
	}

	reporter := progress.NewReporter()
	tail := newLineTail(40)
	for line := range handle.Lines() {
		tail.add(line)
		o.notify(reporter.OnLine(line))
	}

	if err := handle.Wait(); err != nil {
		// A failed run must not leave a file that looks complete.
		os.Remove(outPath)
		os.Remove(outPath + ".part")
		return classify(ctx, err, tail.String())
	}
	return nil
}

func videoArgs(format, outPath, url string) []string {
	return []string{
		"--progress",
		"--newline",
		"--no-warnings",
		"--no-playlist",
		"--force-overwrites",
		"-f", format,
		"-o", outPath,
		url,
	}
}

func audioArgs(outPath, ffmpegPath, url string) []string {
	return []string{
		"--progress",
		"--newline",
		"--no-warnings",
		"--no-playlist",
		"--force-overwrites",
		"-x",
		"--audio-format", AudioFormat,
		"--audio-quality", AudioQuality,
		"--ffmpeg-location", ffmpegPath,
		"-o", outPath,
		url,
	}
}

func (o *Orchestrator) fail(req model.DownloadRequest, err error) model.DownloadResult {
	log.Error().Str("op", "download").Str("request", req.ID).Err(err).Msg("request failed")
	o.notify(model.ProgressEvent{Percent: 0, Stage: model.StageFailed, Message: err.Error()})
	return model.DownloadResult{
		RequestID: req.ID,
		Success:   false,
		ErrKind:   model.KindOf(err),
		ErrDetail: err.Error(),
	}
}

func (o *Orchestrator) notify(event model.ProgressEvent) {
	if o.onProgress != nil {
		o.onProgress(event)
	}
}
