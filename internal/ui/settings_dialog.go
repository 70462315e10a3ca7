package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/ytfetch/internal/config"
	"github.com/ytget/ytfetch/internal/model"
)

// SettingsDialog represents the settings configuration dialog.
type SettingsDialog struct {
	settings *config.Settings
	window   fyne.Window
	dialog   *dialog.ConfirmDialog
	onSaved  func()

	downloadDirEntry *widget.Entry
	modeSelect       *widget.Select
	revealCheck      *widget.Check
}

// ShowSettingsDialog creates and displays the settings dialog. onSaved is
// invoked after the new values have been persisted.
func ShowSettingsDialog(window fyne.Window, settings *config.Settings, onSaved func()) {
	sd := &SettingsDialog{
		settings: settings,
		window:   window,
		onSaved:  onSaved,
	}

	sd.createUI()
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI.
func (sd *SettingsDialog) createUI() {
	sd.downloadDirEntry = widget.NewEntry()
	sd.downloadDirEntry.SetPlaceHolder("Download directory path")

	browseDirBtn := widget.NewButton("Browse", sd.onBrowseDirectory)
	downloadDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.downloadDirEntry)

	sd.modeSelect = widget.NewSelect(modeOptions(sd.settings), nil)

	sd.revealCheck = widget.NewCheck("Open folder when a download finishes", nil)

	form := container.NewVBox(
		widget.NewLabel("Download directory:"),
		downloadDirRow,
		widget.NewLabel("Default format:"),
		sd.modeSelect,
		sd.revealCheck,
	)

	sd.dialog = dialog.NewCustomConfirm("Settings", "Save", "Cancel", form,
		func(save bool) {
			if save {
				sd.saveSettings()
			}
		}, sd.window)
	sd.dialog.Resize(fyne.NewSize(420, 260))
}

// loadCurrentSettings populates the form with stored values.
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.downloadDirEntry.SetText(sd.settings.GetDownloadDirectory())
	sd.modeSelect.SetSelected(string(sd.settings.GetDefaultMode()))
	sd.revealCheck.SetChecked(sd.settings.GetRevealOnComplete())
}

// saveSettings persists the form values.
func (sd *SettingsDialog) saveSettings() {
	sd.settings.SetDownloadDirectory(sd.downloadDirEntry.Text)
	if mode, err := model.ParseMode(sd.modeSelect.Selected); err == nil {
		sd.settings.SetDefaultMode(mode)
	}
	sd.settings.SetRevealOnComplete(sd.revealCheck.Checked)

	if sd.onSaved != nil {
		sd.onSaved()
	}
}

// onBrowseDirectory opens a folder picker for the download directory.
func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.downloadDirEntry.SetText(uri.Path())
	}, sd.window)
}
