package logging_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/eykd/epubgen/internal/logging"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		level    string
		wantInfo bool
		wantWarn bool
	}{
		{level: "", wantInfo: false, wantWarn: true},
		{level: "debug", wantInfo: true, wantWarn: true},
		{level: "info", wantInfo: true, wantWarn: true},
		{level: "error", wantInfo: false, wantWarn: false},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger, err := logging.New(&buf, tt.level)
			if err != nil {
				t.Fatalf("New error = %v", err)
			}
			logger.Info("info line")
			logger.Warn("warn line")

			out := buf.String()
			if got := strings.Contains(out, "info line"); got != tt.wantInfo {
				t.Errorf("info logged = %v, want %v:\n%s", got, tt.wantInfo, out)
			}
			if got := strings.Contains(out, "warn line"); got != tt.wantWarn {
				t.Errorf("warn logged = %v, want %v:\n%s", got, tt.wantWarn, out)
			}
			if out != "" && !strings.Contains(out, logging.Prefix) {
				t.Errorf("output missing prefix %q:\n%s", logging.Prefix, out)
			}
		})
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	if _, err := logging.New(&bytes.Buffer{}, "loud"); err == nil {
		t.Error("New error = nil, want error for unknown level")
	}
}
