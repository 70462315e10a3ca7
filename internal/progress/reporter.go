// Package progress translates the free-form progress text emitted by the
// external tools into normalized ProgressEvents for the front ends.
package progress

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ytget/ytfetch/internal/model"
)

var (
	percentRegex = regexp.MustCompile(`\[(download|ffmpeg)\]\s+(\d+(\.\d+)?)%`)
	etaRegex     = regexp.MustCompile(`ETA\s+([0-9:]+)`)
)

// Markers yt-dlp prints when it hands the media over to post-processing.
var convertingMarkers = []string{
	"[ExtractAudio]",
	"[Merger]",
	"[VideoConvertor]",
	"[ffmpeg]",
	"[FixupM4a]",
}

// Reporter converts raw progress lines into ProgressEvents. A line that
// cannot be parsed carries the last known percent and stage forward rather
// than failing the download. Within a stage the reported percent never
// decreases; a stage change resets it.
type Reporter struct {
	lastPercent float64
	lastStage   model.Stage
}

// NewReporter creates a reporter positioned at the start of a download.
func NewReporter() *Reporter {
	return &Reporter{lastStage: model.StageDownloading}
}

// OnLine translates one raw output line into a ProgressEvent.
func (r *Reporter) OnLine(line string) model.ProgressEvent {
	stage := r.lastStage
	for _, marker := range convertingMarkers {
		if strings.Contains(line, marker) {
			stage = model.StageConverting
			break
		}
	}
	if stage != r.lastStage {
		// A new stage restarts its own 0-100 range.
		r.lastPercent = 0
		r.lastStage = stage
	}

	if percent, ok := parsePercent(line); ok {
		if percent > r.lastPercent {
			r.lastPercent = percent
		}
	}

	return model.ProgressEvent{
		Percent: r.lastPercent,
		Stage:   r.lastStage,
		Message: compactMessage(line, r.lastStage),
	}
}

// Done returns the terminal success event.
func (r *Reporter) Done(message string) model.ProgressEvent {
	r.lastPercent = 100
	r.lastStage = model.StageDone
	return model.ProgressEvent{Percent: 100, Stage: model.StageDone, Message: message}
}

// Failed returns the terminal failure event, keeping the last known
// percent so front ends show where the run stopped.
func (r *Reporter) Failed(message string) model.ProgressEvent {
	r.lastStage = model.StageFailed
	return model.ProgressEvent{Percent: r.lastPercent, Stage: model.StageFailed, Message: message}
}

func parsePercent(line string) (float64, bool) {
	m := percentRegex.FindStringSubmatch(line)
	if len(m) < 3 {
		return 0, false
	}
	percent, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return 0, false
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	return percent, true
}

// compactMessage produces a short human-readable status out of a raw line.
func compactMessage(line string, stage model.Stage) string {
	if m := percentRegex.FindStringSubmatch(line); len(m) >= 3 {
		if em := etaRegex.FindStringSubmatch(line); len(em) > 1 {
			return string(stage) + " " + m[2] + "% (ETA " + em[1] + ")"
		}
		return string(stage) + " " + m[2] + "%"
	}
	return line
}
