package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDotEnvMissingFileIsQuiet(t *testing.T) {
	var buf bytes.Buffer
	loadDotEnv(&buf, filepath.Join(t.TempDir(), ".env"))
	if buf.Len() != 0 {
		t.Errorf("expected no warning for a missing .env, got %q", buf.String())
	}
}

func TestLoadDotEnvUnreadableFileWarns(t *testing.T) {
	var buf bytes.Buffer
	loadDotEnv(&buf, t.TempDir())
	if !strings.Contains(buf.String(), "warning: loading .env") {
		t.Errorf("expected a warning for an unreadable .env, got %q", buf.String())
	}
}

func TestLoadDotEnvSetsVariables(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("WEATHER_TEST_CITY=Oslo\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("WEATHER_TEST_CITY", "")
	os.Unsetenv("WEATHER_TEST_CITY")

	var buf bytes.Buffer
	loadDotEnv(&buf, path)
	if got := os.Getenv("WEATHER_TEST_CITY"); got != "Oslo" {
		t.Errorf("expected WEATHER_TEST_CITY=Oslo, got %q (%s)", got, buf.String())
	}
}
