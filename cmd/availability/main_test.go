package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"server-availability/internal/config"
	"server-availability/internal/ping"
)

func init() {
	logger.SetOutput(io.Discard)
}

func TestNewPinger(t *testing.T) {
	_, ok := newPinger(config.Config{Mode: config.ModeExec}).(*ping.Pinger)
	assert.True(t, ok)

	p, ok := newPinger(config.Config{Mode: config.ModeICMP, Privileged: true}).(*ping.ICMPPinger)
	assert.True(t, ok)
	assert.True(t, p.Privileged)
}

func TestRunInvalidConfig(t *testing.T) {
	assert.Equal(t, exitUsage, run("availability", []string{"-mode", "udp"}))
	assert.Equal(t, exitUsage, run("availability", []string{"-no-such-flag"}))
	assert.Equal(t, exitUsage, run("availability", []string{"--", "-f"}))
}

func TestRunHelp(t *testing.T) {
	assert.Equal(t, exitOK, run("availability", []string{"-h"}))
}

func TestRunEmptyBatch(t *testing.T) {
	if testing.Short() {
		t.Skip("needs a ping binary")
	}
	if err := ping.New().Available(); err != nil {
		t.Skip(err)
	}
	assert.Equal(t, exitOK, run("availability", []string{"-hosts", ""}))
}

// captureLog redirects the package logger into a buffer for one test
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	t.Cleanup(func() {
		logger.SetOutput(io.Discard)
	})
	return &buf
}

func TestRunMissingHostsFileIsLogged(t *testing.T) {
	logs := captureLog(t)
	path := filepath.Join(t.TempDir(), "nonexistent", "hosts.ini")

	assert.Equal(t, exitUsage, run("availability", []string{"-hosts-file", path}))
	assert.Contains(t, logs.String(), "Invalid configuration")
	assert.Contains(t, logs.String(), "hosts.ini")
}

func TestRunFlagErrorNotLoggedTwice(t *testing.T) {
	logs := captureLog(t)

	assert.Equal(t, exitUsage, run("availability", []string{"-no-such-flag"}))
	assert.Empty(t, logs.String())
}

func TestRunPingWithoutPrivilegeIsFatal(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not executable on windows")
	}

	dir := t.TempDir()
	script := "#!/bin/sh\necho 'ping: socket: Operation not permitted'\nexit 2\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ping"), []byte(script), 0o755))
	t.Setenv("PATH", dir)

	logs := captureLog(t)
	assert.Equal(t, exitUnavailable, run("availability", []string{"-hosts", "127.0.0.1,203.0.113.1"}))
	assert.Contains(t, logs.String(), "Probe mechanism unavailable")
	assert.Contains(t, logs.String(), "Operation not permitted")
}
