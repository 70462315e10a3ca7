package main

import (
	"fmt"
	"os"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ytget/ytfetch/internal/deps"
	"github.com/ytget/ytfetch/internal/download"
	"github.com/ytget/ytfetch/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.ytfetch"
	AppName = "ytfetch"

	WindowWidth  = 520
	WindowHeight = 260
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.DateTime})
	log.Info().Str("version", version).Msg("starting")

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	// Surface missing tools at startup rather than on first download.
	for _, status := range deps.NewChecker().Check() {
		if !status.Found {
			log.Warn().Str("tool", status.Tool).Str("reason", status.Reason).Msg("dependency missing")
		}
	}

	ui.NewRootUI(myWindow, myApp, download.NewOrchestrator())

	myWindow.ShowAndRun()
}
