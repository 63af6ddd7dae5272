package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelsFilterOutput(t *testing.T) {
	tests := []struct {
		level     Level
		wantDebug bool
		wantInfo  bool
	}{
		{LevelOff, false, false},
		{LevelNormal, false, true},
		{LevelVerbose, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			var buf bytes.Buffer
			log := New(tt.level, &buf)

			log.Debug("debug %d", 1)
			log.Info("info %d", 2)

			out := buf.String()
			if got := strings.Contains(out, "[DBG] "); got != tt.wantDebug {
				t.Fatalf("debug present=%v, want %v; output=%q", got, tt.wantDebug, out)
			}
			if got := strings.Contains(out, "[INF] "); got != tt.wantInfo {
				t.Fatalf("info present=%v, want %v; output=%q", got, tt.wantInfo, out)
			}
		})
	}
}

func TestNamedSharesLevelAndPrefixes(t *testing.T) {
	var buf bytes.Buffer
	root := New(LevelNormal, &buf)
	child := root.Named("registry").Named("seed")

	child.Warn("loaded %d items", 3)
	if !strings.Contains(buf.String(), "registry.seed: loaded 3 items") {
		t.Fatalf("unexpected output: %q", buf.String())
	}

	root.SetLevel(LevelOff)
	buf.Reset()
	child.Error("dropped")
	if buf.Len() != 0 {
		t.Fatalf("expected child to follow root level, got %q", buf.String())
	}
	if child.GetLevel() != LevelOff {
		t.Fatalf("expected off, got %s", child.GetLevel())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"off", LevelOff, false},
		{"Quiet", LevelOff, false},
		{"", LevelNormal, false},
		{"normal", LevelNormal, false},
		{"debug", LevelVerbose, false},
		{" verbose ", LevelVerbose, false},
		{"loud", LevelNormal, true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseLevel(%q) err=%v, wantErr=%v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Fatalf("ParseLevel(%q)=%s, want %s", tt.in, got, tt.want)
		}
	}
}
