package driver

import (
	"context"
	"os/exec"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/teranos/enumgen/logger"
)

// runFormatter formats files in place with the configured command, one
// invocation per file with the file appended. Every failure is logged and
// swallowed.
func runFormatter(ctx context.Context, f Formatter, files []string) (formatted int) {
	log := logger.LoggerFromContext(logger.WithComponent(ctx, "formatter"))

	args, err := shellquote.Split(f.Command)
	if err != nil || len(args) == 0 {
		log.Warnw("Formatter command cannot be parsed; skipping formatting",
			logger.FieldCommand, f.Command, logger.FieldError, err)
		return 0
	}
	if _, err := exec.LookPath(args[0]); err != nil {
		log.Warnw("Formatter not found; skipping formatting",
			logger.FieldCommand, args[0])
		return 0
	}

	for _, file := range files {
		fctx := ctx
		cancel := func() {}
		if f.Timeout > 0 {
			fctx, cancel = context.WithTimeout(ctx, f.Timeout)
		}
		cmd := exec.CommandContext(fctx, args[0], append(args[1:], file)...)
		out, err := cmd.CombinedOutput()
		cancel()
		if err != nil {
			log.Warnw("Formatter failed; file left unformatted",
				logger.FieldFile, file,
				logger.FieldError, err,
				"output", strings.TrimSpace(string(out)))
			continue
		}
		formatted++
	}
	log.Debugw("Formatted artifacts", logger.FieldCount, formatted)
	return formatted
}
