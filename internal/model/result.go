package model

// Output is one file produced by a download run.
type Output struct {
	Mode Mode
	Path string
}

// DownloadResult is the terminal value for a DownloadRequest. Exactly one
// result is produced per request; failed requests are never retried
// automatically.
type DownloadResult struct {
	RequestID string
	Success   bool
	Outputs   []Output
	ErrKind   ErrorKind
	ErrDetail string

	// Partial holds per-sub-invocation failures for ModeBoth, where one
	// leg may fail without affecting the other.
	Partial map[Mode]ErrorKind
}

// OutputPaths returns the produced file paths in invocation order.
func (r DownloadResult) OutputPaths() []string {
	paths := make([]string, 0, len(r.Outputs))
	for _, o := range r.Outputs {
		paths = append(paths, o.Path)
	}
	return paths
}

// Failed reports whether the given mode's sub-invocation failed. For
// single-mode requests this is equivalent to !Success.
func (r DownloadResult) Failed(mode Mode) bool {
	if r.Partial != nil {
		_, failed := r.Partial[mode]
		return failed
	}
	return !r.Success
}
