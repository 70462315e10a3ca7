package model

// Stage is the coarse phase a download is in, as reported to front ends.
type Stage string

const (
	// StageDownloading means the extractor is fetching media streams.
	StageDownloading Stage = "Downloading"

	// StageConverting means the media tool is transcoding or merging.
	StageConverting Stage = "Converting"

	// StageDone means the request finished successfully.
	StageDone Stage = "Done"

	// StageFailed means the request finished with an error.
	StageFailed Stage = "Failed"
)

// String returns the string representation of Stage.
func (s Stage) String() string {
	return string(s)
}

// IsTerminal reports whether no further progress events follow this stage.
func (s Stage) IsTerminal() bool {
	return s == StageDone || s == StageFailed
}

// ProgressEvent is a normalized progress signal republished to whichever
// front end is attached. Events are transient and never persisted.
type ProgressEvent struct {
	Percent float64 // 0-100
	Stage   Stage
	Message string
}

// DependencyStatus reports whether one required external tool was found on
// the search path. Computed fresh on each run.
type DependencyStatus struct {
	Tool   string
	Found  bool
	Path   string // resolved path when Found
	Reason string // absence reason when not Found
}
