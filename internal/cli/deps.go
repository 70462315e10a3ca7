package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ytget/ytfetch/internal/deps"
	"github.com/ytget/ytfetch/internal/model"
)

func newDepsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check that yt-dlp and ffmpeg are installed",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			InitLogger(debug)

			missing := false
			for _, status := range deps.NewChecker().Check() {
				if status.Found {
					printSuccess(fmt.Sprintf("%s: %s", status.Tool, status.Path))
					continue
				}
				missing = true
				printError(fmt.Sprintf("%s: %s", status.Tool, status.Reason))
				printInfo("  " + deps.InstallHint(status.Tool))
			}
			if missing {
				os.Exit(model.ErrDependencyMissing.ExitCode())
			}
		},
	}
}
