package model

import "testing"

func TestStage_IsTerminal(t *testing.T) {
	tests := []struct {
		stage    Stage
		expected bool
	}{
		{StageDownloading, false},
		{StageConverting, false},
		{StageDone, true},
		{StageFailed, true},
	}

	for _, test := range tests {
		if got := test.stage.IsTerminal(); got != test.expected {
			t.Errorf("Stage(%s).IsTerminal() = %v, expected %v", test.stage, got, test.expected)
		}
	}
}

func TestErrorKind_ExitCode(t *testing.T) {
	tests := []struct {
		kind     ErrorKind
		expected int
	}{
		{ErrDependencyMissing, 2},
		{ErrURLInvalid, 3},
		{ErrNetworkFailure, 4},
		{ErrPermissionDenied, 5},
		{ErrTranscodeFailure, 6},
		{ErrCancelled, 7},
		{ErrUnknownFailure, 1},
	}

	seen := make(map[int]ErrorKind)
	for _, test := range tests {
		code := test.kind.ExitCode()
		if code != test.expected {
			t.Errorf("ErrorKind(%s).ExitCode() = %d, expected %d", test.kind, code, test.expected)
		}
		if code == 0 {
			t.Errorf("ErrorKind(%s) must not map to exit code 0", test.kind)
		}
		if prev, dup := seen[code]; dup {
			t.Errorf("ErrorKind(%s) and ErrorKind(%s) share exit code %d", test.kind, prev, code)
		}
		seen[code] = test.kind
	}
}

func TestKindOf(t *testing.T) {
	err := &KindError{Kind: ErrNetworkFailure, Message: "connection reset"}
	if kind := KindOf(err); kind != ErrNetworkFailure {
		t.Errorf("KindOf(KindError) = %s, expected %s", kind, ErrNetworkFailure)
	}

	if kind := KindOf(nil); kind != "" {
		t.Errorf("KindOf(nil) = %s, expected empty", kind)
	}
}

func TestDownloadResult_Failed(t *testing.T) {
	result := DownloadResult{
		Success: false,
		Outputs: []Output{{Mode: ModeVideoMP4, Path: "/tmp/video.mp4"}},
		Partial: map[Mode]ErrorKind{ModeAudioMP3: ErrTranscodeFailure},
	}

	if result.Failed(ModeVideoMP4) {
		t.Error("Expected video leg to be reported as succeeded")
	}
	if !result.Failed(ModeAudioMP3) {
		t.Error("Expected audio leg to be reported as failed")
	}
	if paths := result.OutputPaths(); len(paths) != 1 || paths[0] != "/tmp/video.mp4" {
		t.Errorf("Unexpected output paths: %v", paths)
	}
}
