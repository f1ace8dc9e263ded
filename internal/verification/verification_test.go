package verification

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestDiff(t *testing.T) {
	lines := []string{"0|L--|00100000(4): 1 instructions", "1|L--|nop"}
	assert.Equal(t, "", Diff(lines, lines))

	diff := Diff(lines, []string{lines[0], "1|L--|r1 = r2"})
	assert.Contains(t, diff, "--- Expected")
	assert.Contains(t, diff, "+++ Actual")
	assert.Contains(t, diff, "-1|L--|nop")
	assert.Contains(t, diff, "+1|L--|r1 = r2")
}

func TestVerifyOutput(t *testing.T) {
	dir := t.TempDir()
	golden := filepath.Join(dir, "golden.txt")
	assert.NoError(t, os.WriteFile(golden, []byte("a\r\nb\n"), 0o600))

	var buf bytes.Buffer
	cfg := log.DefaultConfig()
	cfg.Output = &buf
	logger := log.NewWithConfig(cfg)
	assert.NoError(t, VerifyOutput(logger, golden, []byte("a\nb\n")))
	assert.Contains(t, buf.String(), "Output matches golden listing")

	err := VerifyOutput(logger, golden, []byte("a\nc\n"))
	assert.True(t, errors.Is(err, ErrMismatch))
	assert.ErrorContains(t, err, "+c")
	assert.Contains(t, buf.String(), "Output differs from golden listing")

	err = VerifyOutput(logger, filepath.Join(dir, "missing.txt"), nil)
	assert.ErrorContains(t, err, "reading golden listing")
}
