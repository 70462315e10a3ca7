package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))   // green
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))   // red
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))  // cyan
	streamStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240")) // grey
)

// InitLogger configures the global zerolog logger for CLI runs.
func InitLogger(debug bool) {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.DateTime,
	}
	log.Logger = zerolog.New(output).With().Timestamp().Logger()
}

func printSuccess(text string) {
	fmt.Println(successStyle.Render("✓ " + text))
}

func printError(text string) {
	fmt.Println(errorStyle.Render("✗ " + text))
}

func printInfo(text string) {
	fmt.Println(infoStyle.Render(text))
}

// printProgressLine rewrites the current terminal line with the latest
// progress message.
func printProgressLine(text string) {
	fmt.Printf("\r\033[K%s", streamStyle.Render(text))
}
