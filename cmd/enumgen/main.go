package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/enumgen/cmd/enumgen/commands"
	"github.com/teranos/enumgen/errors"
	"github.com/teranos/enumgen/logger"
)

var rootCmd = &cobra.Command{
	Use:   "enumgen",
	Short: "enumgen - C++ enum, flag and constant generator",
	Long: `enumgen - generate C++20 enums, flags and constant groups from schema documents.

Each module keeps its schemas in <src>/include/Enums.{json,yaml,toml}
(public) and <src>/local_include/Enums.{json,yaml,toml} (module-local).
enumgen writes one public header, one local header and one source file
into the module's gen directory.

Available commands:
  generate - Generate the module's enum files
  check    - Verify the generated files are up to date
  clean    - Remove the generated files
  watch    - Regenerate whenever a schema changes
  lookup   - Run a string-table lookup against a schema definition
  init     - Write a default enumgen.toml

Examples:
  enumgen generate -m Core -s src/Core -g build/gen/Core
  enumgen check -m Core -s src/Core -g build/gen/Core
  enumgen lookup src/Core/include/Enums.json Color green`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonLog, _ := cmd.Flags().GetBool("json-log")
		if err := logger.Initialize(jsonLog, verbosity); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger.Debugw("Logger initialized",
			"verbosity", logger.LevelName(verbosity),
			"shows", logger.VerbosityDescription(verbosity))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().Bool("json-log", false, "Emit logs as JSON for machine consumption")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to enumgen.toml (default: search upwards from the working directory)")

	rootCmd.AddCommand(commands.GenerateCmd)
	rootCmd.AddCommand(commands.CheckCmd)
	rootCmd.AddCommand(commands.CleanCmd)
	rootCmd.AddCommand(commands.WatchCmd)
	rootCmd.AddCommand(commands.LookupCmd)
	rootCmd.AddCommand(commands.InitCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	err := rootCmd.Execute()
	logger.Cleanup()
	if err != nil {
		if !errors.Is(err, errors.ErrStale) {
			fmt.Fprintln(os.Stderr, "Error:", err)
			for _, h := range errors.GetAllHints(err) {
				fmt.Fprintln(os.Stderr, "Hint:", h)
			}
			os.Exit(2)
		}
		os.Exit(1)
	}
}
