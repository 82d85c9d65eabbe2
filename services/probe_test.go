package services

import (
	"os"
	"path/filepath"
	"testing"
	"yt-fetch-api/config"
)

func writeVersionStub(t *testing.T, exitCode string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tool-stub")
	if err := os.WriteFile(path, []byte("#!/bin/sh\nexit "+exitCode+"\n"), 0755); err != nil {
		t.Fatalf("failed to write stub: %v", err)
	}
	return path
}

func swapToolPaths(t *testing.T, primary, fallback string) {
	t.Helper()
	oldPrimary, oldFallback := config.YtDlpPath, config.YoutubeDLPath
	t.Cleanup(func() {
		config.YtDlpPath = oldPrimary
		config.YoutubeDLPath = oldFallback
	})
	config.YtDlpPath = primary
	config.YoutubeDLPath = fallback
}

func TestProbeBothToolsAbsent(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no-such-binary")
	swapToolPaths(t, missing, missing)

	avail := Probe()
	if avail.Available {
		t.Errorf("Probe reported availability with no tool installed: %+v", avail)
	}
}

func TestProbePrimaryPresent(t *testing.T) {
	swapToolPaths(t, writeVersionStub(t, "0"), filepath.Join(t.TempDir(), "absent"))

	avail := Probe()
	if !avail.Available || avail.Tool != config.ToolYtDlp {
		t.Errorf("Probe = %+v, want primary tool available", avail)
	}
}

func TestProbeFallsBack(t *testing.T) {
	swapToolPaths(t, filepath.Join(t.TempDir(), "absent"), writeVersionStub(t, "0"))

	avail := Probe()
	if !avail.Available || avail.Tool != config.ToolYoutubeDL {
		t.Errorf("Probe = %+v, want fallback tool available", avail)
	}
}

func TestProbeRejectsBrokenTool(t *testing.T) {
	// A binary that exists but fails its version check is not usable
	swapToolPaths(t, writeVersionStub(t, "1"), filepath.Join(t.TempDir(), "absent"))

	if avail := Probe(); avail.Available {
		t.Errorf("Probe accepted a tool whose version check fails: %+v", avail)
	}
}
