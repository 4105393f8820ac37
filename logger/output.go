package logger

// Output controls what categories of information are shown at each verbosity level.
//
// Unlike log levels (which filter by severity), output categories control
// WHAT types of information are displayed regardless of severity.
//
// Verbosity Levels:
//
//	0 (default) - Generated paths, errors with hints, final status
//	1 (-v)      - + Schema documents found, formatter status, stale files
//	2 (-vv)     - + Per-definition summaries, timing, config loaded
//	3 (-vvv)    - + Resolved expressions, sorted table order
//	4 (-vvvv)   - + Full model dumps

// OutputCategory defines a category of output that can be enabled/disabled
type OutputCategory int

const (
	// Level 0 (default) - Always shown
	OutputResults    OutputCategory = iota // Generated files, lookup results
	OutputErrors                           // Errors with hints and resolution steps
	OutputUserStatus                       // Final success/failure status

	// Level 1 (-v) - Informational
	OutputProgress  // Schema documents discovered, files written
	OutputFormatter // External formatter invocations

	// Level 2 (-vv) - Detailed
	OutputDefinitions // Per-definition summaries
	OutputTiming      // Operation timing
	OutputConfig      // Config values loaded/applied

	// Level 3 (-vvv) - Debug
	OutputResolver // Resolved value expressions
	OutputTables   // Sorted table order

	// Level 4 (-vvvv) - Full dump
	OutputModelDump // Full definition model contents
)

// categoryLevels maps each output category to its minimum verbosity level
var categoryLevels = map[OutputCategory]int{
	OutputResults:    VerbosityUser,
	OutputErrors:     VerbosityUser,
	OutputUserStatus: VerbosityUser,

	OutputProgress:  VerbosityInfo,
	OutputFormatter: VerbosityInfo,

	OutputDefinitions: VerbosityDebug,
	OutputTiming:      VerbosityDebug,
	OutputConfig:      VerbosityDebug,

	OutputResolver: VerbosityTrace,
	OutputTables:   VerbosityTrace,

	OutputModelDump: VerbosityAll,
}

// ShouldOutput returns true if the given category should be shown at the given verbosity
func ShouldOutput(verbosity int, category OutputCategory) bool {
	minLevel, ok := categoryLevels[category]
	if !ok {
		// Unknown category, default to highest verbosity required
		return verbosity >= VerbosityAll
	}
	return verbosity >= minLevel
}

var categoryNames = map[OutputCategory]string{
	OutputResults:     "results",
	OutputErrors:      "errors",
	OutputUserStatus:  "status",
	OutputProgress:    "progress",
	OutputFormatter:   "formatter",
	OutputDefinitions: "definitions",
	OutputTiming:      "timing",
	OutputConfig:      "config",
	OutputResolver:    "resolver",
	OutputTables:      "tables",
	OutputModelDump:   "model-dump",
}

// CategoryName returns the human-readable name for an output category
func CategoryName(category OutputCategory) string {
	if name, ok := categoryNames[category]; ok {
		return name
	}
	return "unknown"
}

// VerbosityDescription returns a description of what's shown at each level
func VerbosityDescription(verbosity int) string {
	switch verbosity {
	case VerbosityUser:
		return "results and errors only"
	case VerbosityInfo:
		return "results, errors, progress, and formatter status"
	case VerbosityDebug:
		return "above + definitions, timing, config details"
	case VerbosityTrace:
		return "above + resolved expressions and table order"
	case VerbosityAll:
		return "full output including model dumps"
	default:
		if verbosity > VerbosityAll {
			return "maximum verbosity"
		}
		return "unknown verbosity level"
	}
}
