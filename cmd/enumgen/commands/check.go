package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/enumgen/driver"
	"github.com/teranos/enumgen/errors"
)

// CheckCmd checks if generated files are up to date
var CheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check if generated enum files are up to date",
	Long: `Check if the generated files match the current schema documents.

This command generates into a temporary directory and compares the result
with the existing files, ignoring banner lines that change on every run.

Exit codes:
  0 - Files are up to date
  1 - Files are out of date (stale files listed)
  2 - Error during check

Examples:
  enumgen check -m Core -s src/Core -g build/gen/Core`,
	RunE: runCheck,
}

func init() {
	addModuleFlags(CheckCmd)
	CheckCmd.Flags().Bool("no-format", false, "Compare unformatted output (when the committed files were generated with --no-format)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	c, err := moduleContext(cmd)
	if err != nil {
		return err
	}
	res, err := driver.Check(cmd.Context(), c)
	if err != nil {
		return err
	}
	if res.UpToDate {
		pterm.Success.Printfln("%s: generated files are up to date", c.Module)
		return nil
	}

	pterm.Error.Printfln("%s: %d generated files are out of date", c.Module, len(res.Stale))
	for _, f := range res.Stale {
		pterm.Printfln("  %s", f)
	}
	pterm.Info.Println("Run 'enumgen generate' to update them")
	return errors.Wrapf(errors.ErrStale, "%d files", len(res.Stale))
}
