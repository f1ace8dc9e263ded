// Package verification compares a produced listing against a golden listing.
package verification

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/retroenv/retrogolib/log"
)

// ErrMismatch is returned when the produced listing differs from the golden listing.
var ErrMismatch = errors.New("listing mismatch")

// Diff returns a unified diff between the expected and the actual lines.
// The result is empty if both are equal.
func Diff(expected, actual []string) string {
	if slices.Equal(expected, actual) {
		return ""
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        withNewlines(expected),
		B:        withNewlines(actual),
		FromFile: "Expected",
		ToFile:   "Actual",
		Context:  1,
	})
	if err != nil {
		return fmt.Sprintf("creating diff: %s", err)
	}
	return diff
}

// VerifyOutput compares the produced listing against the golden listing file.
func VerifyOutput(logger *log.Logger, goldenFile string, produced []byte) error {
	golden, err := os.ReadFile(goldenFile)
	if err != nil {
		return fmt.Errorf("reading golden listing '%s': %w", goldenFile, err)
	}

	diff := Diff(splitLines(string(golden)), splitLines(string(produced)))
	if diff == "" {
		logger.Info("Output matches golden listing", log.String("file", goldenFile))
		return nil
	}

	logger.Error("Output differs from golden listing", log.String("file", goldenFile))
	return fmt.Errorf("%w:\n%s", ErrMismatch, diff)
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func withNewlines(lines []string) []string {
	result := make([]string, len(lines))
	for i, line := range lines {
		result[i] = line + "\n"
	}
	return result
}

