package platform

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
)

// File permissions
const (
	DefaultDirPermissions = 0o755
)

// Command constants
const (
	OpenCommand     = "open"
	ExplorerCommand = "explorer"
	XDGOpenCommand  = "xdg-open"
)

// Fallback Linux file managers tried when xdg-open is unavailable.
var LinuxFileManagers = []string{"nautilus", "dolphin", "thunar", "nemo", "pcmanfm"}

// Characters that are unsafe in filenames on at least one supported OS.
var unsafeFilenameChars = regexp.MustCompile(`[\\/*?:"<>|]`)

// SanitizeTitle strips path-unsafe characters from a video title so it can
// be used as an output filename.
func SanitizeTitle(title string) string {
	cleaned := unsafeFilenameChars.ReplaceAllString(title, "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return "video"
	}
	return cleaned
}

// CreateDirectoryIfNotExists creates directory if it doesn't exist.
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// GetHomeDownloadsDir returns the standard Downloads directory for the user.
func GetHomeDownloadsDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, "Downloads"), nil
}

// OpenFolderInManager opens the given directory in the system file manager.
func OpenFolderInManager(dirPath string) error {
	absPath, err := filepath.Abs(dirPath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	switch runtime.GOOS {
	case OSDarwin:
		return exec.Command(OpenCommand, absPath).Run()
	case OSWindows:
		return exec.Command(ExplorerCommand, absPath).Run()
	case OSLinux:
		if err := exec.Command(XDGOpenCommand, absPath).Run(); err == nil {
			return nil
		}
		for _, fm := range LinuxFileManagers {
			if _, err := exec.LookPath(fm); err == nil {
				return exec.Command(fm, absPath).Run()
			}
		}
		return fmt.Errorf("no suitable file manager found")
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}
