package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ytget/ytfetch/internal/extract"
	"github.com/ytget/ytfetch/internal/model"
)

func newExtractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract <video-file>",
		Short: "Extract MP3 audio from an already-downloaded video file",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			InitLogger(debug)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			svc := extract.NewService()
			svc.SetProgressCallback(func(event model.ProgressEvent) {
				if event.Stage.IsTerminal() {
					fmt.Println()
					return
				}
				printProgressLine(event.Message)
			})

			out, err := svc.Extract(ctx, args[0])
			if err != nil {
				printError(err.Error())
				os.Exit(model.KindOf(err).ExitCode())
			}
			printSuccess("saved " + out)
		},
	}
}
