// Package cli implements the terminal front end: a cobra command that
// drives the download orchestrator and renders its progress.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ytget/ytfetch/internal/config"
	"github.com/ytget/ytfetch/internal/download"
	"github.com/ytget/ytfetch/internal/model"
)

var Version = "dev"

var (
	modeFlag string
	debug    bool
)

var rootCmd = &cobra.Command{
	Use:     "ytfetch <url> [output_folder]",
	Short:   "Download a YouTube video as MP4 and/or extract its audio as MP3",
	Version: Version,
	Args:    cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		InitLogger(debug)

		fileCfg := loadFileConfig()

		destDir := ""
		if len(args) > 1 {
			destDir = args[1]
		} else if fileCfg.OutputDir != "" {
			destDir = fileCfg.OutputDir
		}

		mode, err := resolveMode(modeFlag, fileCfg)
		if err != nil {
			printError(err.Error())
			os.Exit(model.ErrUnknownFailure.ExitCode())
		}

		result := runDownload(args[0], destDir, mode)
		if !result.Success {
			printError(fmt.Sprintf("%s: %s", result.ErrKind, result.ErrDetail))
			os.Exit(result.ErrKind.ExitCode())
		}
		for _, out := range result.Outputs {
			printSuccess("saved " + out.Path)
		}
	},
}

// Execute runs the CLI front end.
func Execute() {
	rootCmd.Version = Version
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&modeFlag, "mode", "m", "", "Output mode: video, audio or both (default both)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(newExtractCmd())
	rootCmd.AddCommand(newDepsCmd())
}

// runDownload drives one request to completion, printing every progress
// event as it arrives. Ctrl-C cancels the external process.
func runDownload(url, destDir string, mode model.Mode) model.DownloadResult {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	orchestrator := download.NewOrchestrator()
	orchestrator.SetProgressCallback(func(event model.ProgressEvent) {
		if event.Stage.IsTerminal() {
			fmt.Println()
			return
		}
		printProgressLine(fmt.Sprintf("[%s] %5.1f%% %s", event.Stage, event.Percent, event.Message))
	})

	req := model.NewDownloadRequest(url, destDir, mode)
	printInfo(fmt.Sprintf("downloading %s (%s) to %s", req.URL, req.Mode, req.DestDir))
	return orchestrator.Download(ctx, req)
}

// resolveMode picks the output mode: flag, then config file, then both
// (matching the classic behavior of producing MP4 and MP3 together).
func resolveMode(flag string, fileCfg config.FileConfig) (model.Mode, error) {
	if flag != "" {
		return model.ParseMode(flag)
	}
	if fileCfg.Mode != "" {
		return model.ParseMode(fileCfg.Mode)
	}
	return model.ModeBoth, nil
}

func loadFileConfig() config.FileConfig {
	path, err := config.DefaultConfigPath()
	if err != nil {
		return config.FileConfig{}
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		log.Warn().Str("op", "cli/config").Err(err).Msg("ignoring unreadable config file")
		return config.FileConfig{}
	}
	return cfg
}
