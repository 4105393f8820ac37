package commands

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/enumgen/config"
	"github.com/teranos/enumgen/errors"
	"github.com/teranos/enumgen/logger"
)

// InitCmd writes a default configuration file
var InitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a default enumgen.toml",
	Long: `Write enumgen.toml with the built-in defaults. An existing file is only
replaced with --force; the previous version is kept as .back1.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.FileName
		if len(args) == 1 {
			path = args[0]
		}
		force, _ := cmd.Flags().GetBool("force")
		if _, err := os.Stat(path); err == nil {
			if !force {
				return errors.WithHint(errors.Newf("%s already exists", path), "pass --force to overwrite it")
			}
			logger.Warnf("Overwriting %s; previous version kept as %s.back1", path, path)
		}

		if err := config.Save(path, config.Default()); err != nil {
			return err
		}
		pterm.Success.Printfln("Wrote %s", path)
		return nil
	},
}

func init() {
	InitCmd.Flags().BoolP("force", "f", false, "Overwrite an existing file")
}
