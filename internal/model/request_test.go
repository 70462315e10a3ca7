package model

import (
	"strings"
	"testing"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		input    string
		expected Mode
		wantErr  bool
	}{
		{"video", ModeVideoMP4, false},
		{"mp4", ModeVideoMP4, false},
		{"VIDEO_MP4", ModeVideoMP4, false},
		{"audio", ModeAudioMP3, false},
		{"mp3", ModeAudioMP3, false},
		{"both", ModeBoth, false},
		{" both ", ModeBoth, false},
		{"", "", true},
		{"flac", "", true},
	}

	for _, test := range tests {
		mode, err := ParseMode(test.input)
		if test.wantErr {
			if err == nil {
				t.Errorf("ParseMode(%q) expected error, got %q", test.input, mode)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseMode(%q) unexpected error: %v", test.input, err)
			continue
		}
		if mode != test.expected {
			t.Errorf("ParseMode(%q) = %q, expected %q", test.input, mode, test.expected)
		}
	}
}

func TestMode_NeedsFFmpeg(t *testing.T) {
	tests := []struct {
		mode     Mode
		expected bool
	}{
		{ModeVideoMP4, false},
		{ModeAudioMP3, true},
		{ModeBoth, true},
	}

	for _, test := range tests {
		if got := test.mode.NeedsFFmpeg(); got != test.expected {
			t.Errorf("Mode(%s).NeedsFFmpeg() = %v, expected %v", test.mode, got, test.expected)
		}
	}
}

func TestNewDownloadRequest_Defaults(t *testing.T) {
	req := NewDownloadRequest("  https://www.youtube.com/watch?v=abc ", "", ModeVideoMP4)

	if req.URL != "https://www.youtube.com/watch?v=abc" {
		t.Errorf("Expected trimmed URL, got %q", req.URL)
	}
	if req.DestDir != "." {
		t.Errorf("Expected destination to default to current directory, got %q", req.DestDir)
	}
	if !strings.HasPrefix(req.ID, "req-") {
		t.Errorf("Expected request ID with req- prefix, got %q", req.ID)
	}
}

func TestDownloadRequest_Validate(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name     string
		url      string
		destDir  string
		wantKind ErrorKind
	}{
		{"valid https", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", dir, ""},
		{"valid http", "http://youtu.be/dQw4w9WgXcQ", dir, ""},
		{"empty url", "", dir, ErrURLInvalid},
		{"not a url", "not-a-url", dir, ErrURLInvalid},
		{"wrong scheme", "ftp://example.com/video", dir, ErrURLInvalid},
		{"no host", "https://", dir, ErrURLInvalid},
	}

	for _, test := range tests {
		req := NewDownloadRequest(test.url, test.destDir, ModeVideoMP4)
		err := req.Validate()
		if test.wantKind == "" {
			if err != nil {
				t.Errorf("%s: expected no error, got %v", test.name, err)
			}
			continue
		}
		if err == nil {
			t.Errorf("%s: expected error kind %s, got nil", test.name, test.wantKind)
			continue
		}
		if kind := KindOf(err); kind != test.wantKind {
			t.Errorf("%s: expected error kind %s, got %s", test.name, test.wantKind, kind)
		}
	}
}

func TestDownloadRequest_Validate_CreatesDestDir(t *testing.T) {
	dir := t.TempDir() + "/nested/downloads"
	req := NewDownloadRequest("https://www.youtube.com/watch?v=abc", dir, ModeAudioMP3)

	if err := req.Validate(); err != nil {
		t.Fatalf("Expected destination to be created, got %v", err)
	}
}
