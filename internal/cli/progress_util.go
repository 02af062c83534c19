package cli

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
)

func nonEmptyOrDash(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "-"
	}
	return value
}

// truncateList keeps the first max entries and replaces the rest with a
// single "+N more" line.
func truncateList(entries []string, max int) []string {
	if max <= 0 || len(entries) <= max {
		return entries
	}
	truncated := make([]string, 0, max+1)
	truncated = append(truncated, entries[:max]...)
	truncated = append(truncated, fmt.Sprintf("+%d more", len(entries)-max))
	return truncated
}

func detectInteractiveProgress(out io.Writer, disabled bool) bool {
	if disabled {
		return false
	}
	file, ok := out.(*os.File)
	if !ok {
		return false
	}
	info, err := file.Stat()
	if err != nil {
		return false
	}
	if info.Mode()&os.ModeCharDevice == 0 {
		return false
	}
	if runtime.GOOS != "windows" {
		term := os.Getenv("TERM")
		if term == "" || strings.EqualFold(term, "dumb") {
			return false
		}
	}
	return true
}

func errorString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
