package config

import (
	"fyne.io/fyne/v2"

	"github.com/ytget/ytfetch/internal/model"
	"github.com/ytget/ytfetch/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyDownloadDir      = "download_directory"
	KeyDefaultMode      = "default_mode"
	KeyRevealOnComplete = "reveal_on_complete"
)

// Default values
const (
	DefaultMode             = model.ModeVideoMP4
	DefaultRevealOnComplete = false
)

// Settings manages the GUI application configuration, backed by Fyne
// preferences.
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager.
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetDownloadDirectory returns the configured download directory.
func (s *Settings) GetDownloadDirectory() string {
	dir := s.app.Preferences().String(KeyDownloadDir)
	if dir == "" {
		defaultDir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			defaultDir = "."
		}
		s.SetDownloadDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetDownloadDirectory sets the download directory.
func (s *Settings) SetDownloadDirectory(dir string) {
	s.app.Preferences().SetString(KeyDownloadDir, dir)
}

// GetDefaultMode returns the mode preselected in the download form.
func (s *Settings) GetDefaultMode() model.Mode {
	stored := s.app.Preferences().String(KeyDefaultMode)
	mode, err := model.ParseMode(stored)
	if err != nil {
		s.SetDefaultMode(DefaultMode)
		return DefaultMode
	}
	return mode
}

// SetDefaultMode sets the mode preselected in the download form.
func (s *Settings) SetDefaultMode(mode model.Mode) {
	s.app.Preferences().SetString(KeyDefaultMode, mode.String())
}

// GetRevealOnComplete returns whether to open the destination folder after
// a successful download.
func (s *Settings) GetRevealOnComplete() bool {
	return s.app.Preferences().BoolWithFallback(KeyRevealOnComplete, DefaultRevealOnComplete)
}

// SetRevealOnComplete sets whether to open the destination folder after a
// successful download.
func (s *Settings) SetRevealOnComplete(reveal bool) {
	s.app.Preferences().SetBool(KeyRevealOnComplete, reveal)
}

// GetModeOptions returns selectable mode options for the form.
func (s *Settings) GetModeOptions() []model.Mode {
	return []model.Mode{model.ModeVideoMP4, model.ModeAudioMP3, model.ModeBoth}
}
