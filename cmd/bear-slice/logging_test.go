package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func isolateLogs(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	prev := log.Writer()
	t.Cleanup(func() { log.SetOutput(prev) })
}

func TestSetupLoggingDiscardsWithoutDebug(t *testing.T) {
	isolateLogs(t)
	if f := setupLogging(false); f != nil {
		f.Close()
		t.Fatal("expected no log file without debug")
	}
	if log.Writer() != io.Discard {
		t.Errorf("log output = %v, want io.Discard", log.Writer())
	}
	if _, err := os.Stat(logDir); !os.IsNotExist(err) {
		t.Error("logs directory created without debug")
	}
}

func TestSetupLoggingWritesFile(t *testing.T) {
	isolateLogs(t)
	f := setupLogging(true)
	if f == nil {
		t.Fatal("expected a log file with debug")
	}
	defer f.Close()

	if out := log.Writer(); out == os.Stdout || out == os.Stderr {
		t.Error("log output must not reach the terminal")
	}
	log.Println("slice")

	data, err := os.ReadFile(filepath.Join(logDir, logFileName))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "slice") {
		t.Errorf("log file = %q", data)
	}
}

func TestSetupLoggingRotatesLargeFile(t *testing.T) {
	isolateLogs(t)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		t.Fatal(err)
	}
	logPath := filepath.Join(logDir, logFileName)
	if err := os.WriteFile(logPath, make([]byte, maxLogSize+1), 0644); err != nil {
		t.Fatal(err)
	}

	f := setupLogging(true)
	if f == nil {
		t.Fatal("expected a log file")
	}
	defer f.Close()

	entries, err := os.ReadDir(logDir)
	if err != nil {
		t.Fatal(err)
	}
	rotated := false
	for _, e := range entries {
		if e.Name() != logFileName && filepath.Ext(e.Name()) == ".log" {
			rotated = true
		}
	}
	if !rotated {
		t.Error("large log was not rotated")
	}
	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() > maxLogSize {
		t.Errorf("fresh log size = %d", info.Size())
	}
}
