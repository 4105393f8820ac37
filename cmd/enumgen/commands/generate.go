package commands

import (
	"path/filepath"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/enumgen/driver"
	"github.com/teranos/enumgen/logger"
)

// GenerateCmd generates the enum files of one module
var GenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the module's enum header and source files",
	Long: `Generate C++ declarations and definitions from the module's schema documents.

Every artifact is rendered in memory first; nothing is written unless all
definitions build. The configured formatter runs afterwards; a missing or
failing formatter only produces a warning.

Examples:
  enumgen generate -m Core -t lib -s src/Core -g build/gen/Core
  enumgen generate --no-format          # skip clang-format
  enumgen generate -c tools/enumgen.toml`,
	RunE: runGenerate,
}

func init() {
	addModuleFlags(GenerateCmd)
	GenerateCmd.Flags().Bool("no-format", false, "Do not run the formatter on written files")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	c, err := moduleContext(cmd)
	if err != nil {
		return err
	}

	res, err := driver.Generate(cmd.Context(), c)
	if err != nil {
		return err
	}
	printResult(c, res)
	return nil
}

func printResult(c driver.Context, res *driver.Result) {
	if len(res.Files) == 0 {
		pterm.Info.Printfln("%s: no enum schemas under %s", c.Module, c.SourceDir)
		return
	}
	if logger.ShouldOutput(logger.Verbosity, logger.OutputTiming) {
		pterm.Success.Printfln("%s: %d definitions in %s", c.Module, res.Definitions, res.Duration.Round(time.Millisecond))
	} else {
		pterm.Success.Printfln("%s: %d definitions", c.Module, res.Definitions)
	}
	for _, f := range res.Files {
		rel, err := filepath.Rel(c.GenDir, f)
		if err != nil {
			rel = f
		}
		pterm.Printfln("  %s", rel)
	}
}
