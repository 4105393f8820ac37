package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/enumgen/driver"
)

// WatchCmd regenerates a module whenever one of its schemas changes
var WatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate on every schema change until interrupted",
	Long: `Generate once, then watch include/ and local_include/ of the module and
regenerate after each burst of changes to an Enums.* document.
Press Ctrl+C to stop.`,
	RunE: runWatch,
}

func init() {
	addModuleFlags(WatchCmd)
	WatchCmd.Flags().Bool("no-format", false, "Do not run the formatter on written files")
}

func runWatch(cmd *cobra.Command, args []string) error {
	c, err := moduleContext(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pterm.Info.Printfln("Watching %s (Ctrl+C to stop)", c.SourceDir)
	return driver.Watch(ctx, c, func(res *driver.Result, err error) {
		if err != nil {
			pterm.Error.Printfln("%s: %v", c.Module, err)
			return
		}
		printResult(c, res)
	})
}
