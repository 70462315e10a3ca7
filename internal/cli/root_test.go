package cli

import (
	"testing"

	"github.com/ytget/ytfetch/internal/config"
	"github.com/ytget/ytfetch/internal/model"
)

func TestResolveMode(t *testing.T) {
	tests := []struct {
		name     string
		flag     string
		fileCfg  config.FileConfig
		expected model.Mode
		wantErr  bool
	}{
		{"defaults to both", "", config.FileConfig{}, model.ModeBoth, false},
		{"flag wins", "video", config.FileConfig{Mode: "audio"}, model.ModeVideoMP4, false},
		{"config file used when no flag", "", config.FileConfig{Mode: "audio"}, model.ModeAudioMP3, false},
		{"invalid flag", "flac", config.FileConfig{}, "", true},
	}

	for _, test := range tests {
		mode, err := resolveMode(test.flag, test.fileCfg)
		if test.wantErr {
			if err == nil {
				t.Errorf("%s: expected error, got %s", test.name, mode)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error: %v", test.name, err)
			continue
		}
		if mode != test.expected {
			t.Errorf("%s: expected %s, got %s", test.name, test.expected, mode)
		}
	}
}
