package shared

import (
	"strings"
	"testing"
)

func TestOpenBrowser(t *testing.T) {
	t.Run("rejects unsupported platforms", func(t *testing.T) {
		orig := getRuntime
		getRuntime = func() string { return "plan9" }
		defer func() { getRuntime = orig }()

		err := OpenBrowser("http://localhost:8000/live/1")
		if err == nil {
			t.Fatal("expected error for unsupported platform")
		}
		if !strings.Contains(err.Error(), "plan9") {
			t.Errorf("expected platform in error, got %q", err.Error())
		}
	})
}
