// Package extract converts an already-downloaded video file into an MP3
// using ffmpeg directly, without touching the network.
package extract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ytget/ytfetch/internal/deps"
	"github.com/ytget/ytfetch/internal/model"
	"github.com/ytget/ytfetch/internal/runner"
)

// FFmpeg settings for audio extraction
const (
	AudioCodec   = "libmp3lame"
	AudioQuality = "2"

	FFprobeCommand      = "ffprobe"
	FFprobeLogLevel     = "error"
	FFprobeShowEntries  = "format=duration"
	FFprobeOutputFormat = "csv=p=0"

	ProgressPipeTarget = "pipe:2"
	ProgressTimePrefix = "out_time_us="

	OutputExtensionMP3 = ".mp3"
)

// Service extracts MP3 audio from local video files.
type Service struct {
	checker    *deps.Checker
	run        runner.Runner
	onProgress func(model.ProgressEvent)
}

// NewService creates a service using the real search path and runner.
func NewService() *Service {
	return New(deps.NewChecker(), runner.New())
}

// New creates a service with explicit collaborators for tests.
func New(checker *deps.Checker, run runner.Runner) *Service {
	return &Service{checker: checker, run: run}
}

// SetProgressCallback sets the callback receiving conversion progress.
func (s *Service) SetProgressCallback(callback func(model.ProgressEvent)) {
	s.onProgress = callback
}

// Extract converts inputPath into an MP3 next to it and returns the output
// path. An existing output file is overwritten.
func (s *Service) Extract(ctx context.Context, inputPath string) (string, error) {
	if _, err := os.Stat(inputPath); err != nil {
		return "", &model.KindError{Kind: model.ErrUnknownFailure, Message: fmt.Sprintf("input file does not exist: %s", inputPath)}
	}

	ffmpegPath, err := s.checker.ResolveFFmpeg()
	if err != nil {
		return "", err
	}

	outputPath := OutputPath(inputPath)

	// Duration drives the progress percentage; without it events still
	// flow, just with an unknown percent.
	duration := s.probeDuration(ctx, inputPath)

	handle, err := s.run.Start(ctx, ffmpegPath, BuildFFmpegArgs(inputPath, outputPath)...)
	if err != nil {
		return "", &model.KindError{Kind: model.ErrTranscodeFailure, Message: err.Error()}
	}

	var lastLine string
	for line := range handle.Lines() {
		lastLine = line
		s.notifyLine(line, duration)
	}

	if err := handle.Wait(); err != nil {
		os.Remove(outputPath)
		if ctx.Err() == context.Canceled {
			return "", &model.KindError{Kind: model.ErrCancelled, Message: "extraction cancelled"}
		}
		kind := model.ErrTranscodeFailure
		if strings.Contains(strings.ToLower(lastLine), "permission denied") {
			kind = model.ErrPermissionDenied
		}
		return "", &model.KindError{Kind: kind, Message: fmt.Sprintf("ffmpeg failed: %v | %s", err, lastLine)}
	}

	s.notify(model.ProgressEvent{Percent: 100, Stage: model.StageDone, Message: "saved " + outputPath})
	log.Info().Str("op", "extract").Msgf("audio extraction completed: %s", outputPath)
	return outputPath, nil
}

// BuildFFmpegArgs builds the ffmpeg command arguments for MP3 extraction.
func BuildFFmpegArgs(inputPath, outputPath string) []string {
	return []string{
		"-y", // overwrite output file
		"-nostdin",
		"-i", inputPath,
		"-vn", // no video
		"-acodec", AudioCodec,
		"-q:a", AudioQuality,
		"-progress", ProgressPipeTarget,
		"-nostats",
		outputPath,
	}
}

// OutputPath derives the MP3 path for a given input file.
func OutputPath(inputPath string) string {
	ext := filepath.Ext(inputPath)
	return strings.TrimSuffix(inputPath, ext) + OutputExtensionMP3
}

// probeDuration reads the input duration in seconds via ffprobe, or 0 when
// ffprobe is unavailable or the output is unparsable.
func (s *Service) probeDuration(ctx context.Context, inputPath string) float64 {
	out, err := s.run.Output(ctx, FFprobeCommand,
		"-v", FFprobeLogLevel,
		"-show_entries", FFprobeShowEntries,
		"-of", FFprobeOutputFormat,
		inputPath)
	if err != nil {
		log.Debug().Str("op", "extract").Err(err).Msg("ffprobe unavailable, progress percent will be coarse")
		return 0
	}
	duration, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		return 0
	}
	return duration
}

// notifyLine parses one ffmpeg -progress line and republishes it.
func (s *Service) notifyLine(line string, totalDuration float64) {
	if !strings.HasPrefix(line, ProgressTimePrefix) {
		return
	}
	us, err := strconv.ParseInt(strings.TrimPrefix(line, ProgressTimePrefix), 10, 64)
	if err != nil {
		return
	}
	percent := 0.0
	if totalDuration > 0 {
		percent = float64(us) / 1e6 / totalDuration * 100
		if percent > 100 {
			percent = 100
		}
	}
	s.notify(model.ProgressEvent{Percent: percent, Stage: model.StageConverting, Message: fmt.Sprintf("Converting %.0f%%", percent)})
}

func (s *Service) notify(event model.ProgressEvent) {
	if s.onProgress != nil {
		s.onProgress(event)
	}
}
