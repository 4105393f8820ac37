package driver

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"
	"time"
)

const bannerDateLayout = "2006-01-02 15:04:05"

// Banner lines that change from run to run.
var volatileBannerPrefixes = []string{
	" * Created on:",
	" * Working dir:",
	" * Cmd line:",
}

func (c Context) banner(header bool) string {
	var sb strings.Builder
	sb.WriteString("/* Auto generated enum file\n")
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	sb.WriteString(fmt.Sprintf(" * Created on: %s\n", now().Format(bannerDateLayout)))
	sb.WriteString(fmt.Sprintf(" * Working dir: %s\n", c.WorkingDir))
	sb.WriteString(fmt.Sprintf(" * Cmd line: %s\n", c.CommandLine))
	sb.WriteString(" */\n")
	if header {
		sb.WriteString("#pragma once\n")
	}
	sb.WriteString("\n")
	return sb.String()
}

// StripBanner drops the banner lines that vary between runs.
// Returns empty string if the scanner fails.
func StripBanner(content []byte) string {
	var result strings.Builder
	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if isVolatile(line) {
			continue
		}
		result.WriteString(line)
		result.WriteString("\n")
	}
	if err := scanner.Err(); err != nil {
		return ""
	}
	return result.String()
}

func isVolatile(line string) bool {
	for _, p := range volatileBannerPrefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}
