package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/matryer/is"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" DEBUG ": slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}

	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewFiltersByLevel(t *testing.T) {
	is := is.New(t)
	var buf bytes.Buffer

	logger := New(&buf, slog.LevelWarn)
	logger.Info("Debt updated", "debt_id", 1)
	is.Equal(buf.Len(), 0)

	logger.Warn("Group settled", "group_id", 7)
	out := buf.String()
	is.True(strings.Contains(out, "Group settled"))
	is.True(strings.Contains(out, "group_id=7"))
	is.True(!strings.Contains(out, "\x1b[")) // no color for non-terminals
}
