package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

// capture redirects stdout around fn and returns what was printed.
func capture(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w
	defer func() { os.Stdout = old }()

	fn()

	w.Close()
	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String()
}

func TestLines_CarryTagAndMessage(t *testing.T) {
	out := capture(t, func() {
		Info("ESI", "health check passed")
		Success("DB", "migrated")
		Warn("Market", "region skipped")
		Error("App", "boom")
	})

	for _, want := range []string{"[ESI]", "health check passed", "[DB]", "[Market]", "[App]", "boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestBanner_IncludesVersion(t *testing.T) {
	out := capture(t, func() {
		Banner("v1.0.0")
		Banner("")
	})
	if !strings.Contains(out, "v1.0.0") {
		t.Errorf("banner missing version:\n%s", out)
	}
}

func TestSectionAndStats_NoPanic(t *testing.T) {
	capture(t, func() {
		Section("Scan")
		Stats("Eligible regions", 42)
	})
}
