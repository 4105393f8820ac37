package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/enumgen/driver"
)

// CleanCmd removes the generated files of one module
var CleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the module's generated enum files",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := moduleContext(cmd)
		if err != nil {
			return err
		}
		removed, err := driver.Clean(c)
		if err != nil {
			return err
		}
		if len(removed) == 0 {
			pterm.Info.Println("Nothing to remove")
			return nil
		}
		for _, f := range removed {
			pterm.Printfln("  removed %s", f)
		}
		return nil
	},
}

func init() {
	addModuleFlags(CleanCmd)
}
