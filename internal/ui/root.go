package ui

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog/log"

	"github.com/ytget/ytfetch/internal/config"
	"github.com/ytget/ytfetch/internal/download"
	"github.com/ytget/ytfetch/internal/model"
	"github.com/ytget/ytfetch/internal/platform"
)

// RootUI represents the main window content.
type RootUI struct {
	window fyne.Window

	urlEntry    *widget.Entry
	folderEntry *widget.Entry
	modeSelect  *widget.Select
	downloadBtn *widget.Button
	cancelBtn   *widget.Button
	progressBar *widget.ProgressBar
	statusLabel *widget.Label

	downloader download.Downloader
	settings   *config.Settings

	// Busy guard. Only one request runs at a time; a second submit
	// while one is in flight is rejected with a notice.
	mu       sync.Mutex
	inFlight bool
	cancel   context.CancelFunc
}

// NewRootUI creates and initializes the main UI.
func NewRootUI(window fyne.Window, app fyne.App, downloader download.Downloader) *RootUI {
	settings := config.NewSettings(app)

	// Ensure the configured downloads directory exists up front so the
	// folder field starts with a usable value.
	if err := platform.CreateDirectoryIfNotExists(settings.GetDownloadDirectory()); err != nil {
		log.Warn().Err(err).Str("op", "ui.init").Msg("cannot create downloads directory")
	}

	ui := &RootUI{
		window:     window,
		downloader: downloader,
		settings:   settings,
	}

	ui.setupUI()
	return ui
}

func (ui *RootUI) setupUI() {
	ui.createMenu()

	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.SetPlaceHolder("Enter video URL")
	ui.urlEntry.Validator = ui.validateURL
	// Trigger download when user presses Enter in the URL field
	ui.urlEntry.OnSubmitted = func(string) {
		ui.onDownloadClick()
	}

	ui.folderEntry = widget.NewEntry()
	ui.folderEntry.SetPlaceHolder("Output folder")
	ui.folderEntry.SetText(ui.settings.GetDownloadDirectory())
	browseBtn := widget.NewButton("Browse", ui.onBrowseFolder)
	folderRow := container.NewBorder(nil, nil, nil, browseBtn, ui.folderEntry)

	ui.modeSelect = widget.NewSelect(modeOptions(ui.settings), nil)
	ui.modeSelect.SetSelected(string(ui.settings.GetDefaultMode()))

	ui.downloadBtn = widget.NewButton("Download", ui.onDownloadClick)
	ui.downloadBtn.Importance = widget.HighImportance
	ui.cancelBtn = widget.NewButton("Cancel", ui.onCancelClick)
	ui.cancelBtn.Disable()

	ui.progressBar = widget.NewProgressBar()
	ui.statusLabel = widget.NewLabel("Ready")
	ui.statusLabel.Alignment = fyne.TextAlignLeading

	urlRow := container.NewBorder(nil, nil, nil, ui.downloadBtn, ui.urlEntry)
	modeRow := container.NewBorder(nil, nil, widget.NewLabel("Format"), ui.cancelBtn, ui.modeSelect)

	content := container.NewVBox(
		urlRow,
		folderRow,
		modeRow,
		ui.progressBar,
		ui.statusLabel,
	)

	ui.window.SetContent(container.NewPadded(content))
}

// createMenu creates the application menu.
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem("Settings", ui.onShowSettings)
	fileMenu := fyne.NewMenu("File", settingsItem)
	ui.window.SetMainMenu(fyne.NewMainMenu(fileMenu))
}

// modeOptions returns the selectable format labels.
func modeOptions(settings *config.Settings) []string {
	options := []string{}
	for _, mode := range settings.GetModeOptions() {
		options = append(options, string(mode))
	}
	return options
}

// validateURL validates the entered URL.
func (ui *RootUI) validateURL(input string) error {
	if strings.TrimSpace(input) == "" {
		return nil // Empty is allowed
	}

	parsedURL, err := url.Parse(input)
	if err != nil {
		return err
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("URL must start with http:// or https://")
	}

	return nil
}

// onDownloadClick handles the download button click.
func (ui *RootUI) onDownloadClick() {
	urlText := strings.TrimSpace(ui.urlEntry.Text)
	if urlText == "" {
		widget.ShowPopUp(widget.NewLabel("Please enter a URL"), ui.window.Canvas())
		return
	}

	if err := ui.validateURL(urlText); err != nil {
		widget.ShowPopUp(widget.NewLabel("Invalid URL: "+err.Error()), ui.window.Canvas())
		return
	}

	mode, err := model.ParseMode(ui.modeSelect.Selected)
	if err != nil {
		mode = ui.settings.GetDefaultMode()
	}

	ui.mu.Lock()
	if ui.inFlight {
		ui.mu.Unlock()
		widget.ShowPopUp(widget.NewLabel("A download is already in progress"), ui.window.Canvas())
		return
	}
	ui.inFlight = true
	ctx, cancel := context.WithCancel(context.Background())
	ui.cancel = cancel
	ui.mu.Unlock()

	req := model.NewDownloadRequest(urlText, strings.TrimSpace(ui.folderEntry.Text), mode)

	log.Info().Str("op", "ui.download").Str("url", req.URL).Str("mode", string(mode)).Msg("starting download")

	ui.setBusy(true)
	ui.progressBar.SetValue(0)
	ui.statusLabel.SetText("Starting...")

	go ui.runDownload(ctx, req)
}

// runDownload executes the request off the event loop and pushes all UI
// updates back through fyne.Do.
func (ui *RootUI) runDownload(ctx context.Context, req model.DownloadRequest) {
	defer func() {
		ui.mu.Lock()
		ui.inFlight = false
		ui.cancel = nil
		ui.mu.Unlock()
		fyne.Do(func() { ui.setBusy(false) })
	}()

	ui.downloader.SetProgressCallback(func(ev model.ProgressEvent) {
		fyne.Do(func() {
			ui.progressBar.SetValue(ev.Percent / 100)
			ui.statusLabel.SetText(fmt.Sprintf("[%s] %s", ev.Stage, ev.Message))
		})
	})

	result := ui.downloader.Download(ctx, req)

	fyne.Do(func() {
		if result.Success {
			paths := strings.Join(result.OutputPaths(), "\n")
			dialog.ShowInformation("Download complete", "Saved:\n"+paths, ui.window)
			if ui.settings.GetRevealOnComplete() {
				if err := platform.OpenFolderInManager(req.DestDir); err != nil {
					log.Warn().Err(err).Str("op", "ui.reveal").Msg("cannot open folder")
				}
			}
			return
		}

		if result.ErrKind == model.ErrCancelled {
			ui.statusLabel.SetText("Cancelled")
			ui.progressBar.SetValue(0)
			return
		}

		detail := result.ErrDetail
		if detail == "" {
			detail = string(result.ErrKind)
		}
		dialog.ShowError(errors.New(detail), ui.window)
	})
}

// onCancelClick stops the in-flight download, if any.
func (ui *RootUI) onCancelClick() {
	ui.mu.Lock()
	cancel := ui.cancel
	ui.mu.Unlock()

	if cancel != nil {
		ui.statusLabel.SetText("Cancelling...")
		cancel()
	}
}

// onBrowseFolder opens a folder picker for the output directory.
func (ui *RootUI) onBrowseFolder() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		ui.folderEntry.SetText(uri.Path())
	}, ui.window)
}

// onShowSettings shows the settings dialog.
func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, func() {
		ui.folderEntry.SetText(ui.settings.GetDownloadDirectory())
		ui.modeSelect.SetSelected(string(ui.settings.GetDefaultMode()))
	})
}

// setBusy disables the form while a request is in flight. Must be called
// from the UI thread.
func (ui *RootUI) setBusy(busy bool) {
	if busy {
		ui.downloadBtn.Disable()
		ui.urlEntry.Disable()
		ui.folderEntry.Disable()
		ui.modeSelect.Disable()
		ui.cancelBtn.Enable()
		return
	}
	ui.downloadBtn.Enable()
	ui.urlEntry.Enable()
	ui.folderEntry.Enable()
	ui.modeSelect.Enable()
	ui.cancelBtn.Disable()
}
