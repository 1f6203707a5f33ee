// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build !windows
// +build !windows

package backend

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"
)

// findBackendExecutable searches for the backend binary in common
// installation paths on Unix.
func (c *Client) findBackendExecutable() (string, error) {
	// Explicit override wins
	if c.config.Executable != "" {
		if _, err := os.Stat(c.config.Executable); err == nil {
			return c.config.Executable, nil
		}
		return "", fmt.Errorf("configured backend executable not found: %s", c.config.Executable)
	}

	// First, check if the backend is in PATH
	if path, err := exec.LookPath("filesearch-backend"); err == nil {
		return path, nil
	}

	// Common installation paths on Unix/macOS
	possiblePaths := []string{
		"/usr/local/bin/filesearch-backend",
		"/usr/bin/filesearch-backend",
		"/opt/filesearch/filesearch-backend",
	}

	// User home directory locations
	if home := os.Getenv("HOME"); home != "" {
		possiblePaths = append(possiblePaths,
			filepath.Join(home, ".local", "bin", "filesearch-backend"),
			filepath.Join(home, ".filesearch", "bin", "filesearch-backend"),
		)
	}

	// Next to our own binary (bundled install)
	if self, err := os.Executable(); err == nil {
		possiblePaths = append(possiblePaths,
			filepath.Join(filepath.Dir(self), "filesearch-backend"),
		)
	}

	for _, p := range possiblePaths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("filesearch-backend not found in PATH or common installation directories. " +
		"Please ensure the backend is installed. Checked: PATH, /usr/local/bin, /usr/bin, ~/.local/bin")
}

// startBackendProcess starts the backend service on Unix/macOS and waits for
// it to become ready.
func (c *Client) startBackendProcess(ctx context.Context) error {
	backendPath, err := c.findBackendExecutable()
	if err != nil {
		return &ClientError{
			Type:    ErrTypeNotRunning,
			Message: "failed to find backend executable",
			Cause:   err,
		}
	}

	cmd := exec.Command(backendPath)

	// Pass environment through so the backend sees the same index/model vars
	cmd.Env = os.Environ()

	// Setpgid: new process group, so terminating us does not take the
	// backend down mid-request and StopBackend can kill the whole group.
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid: true,
	}

	// Don't capture output - let it run independently
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.Stdin = nil

	if err := cmd.Start(); err != nil {
		return &ClientError{
			Type:    ErrTypeNotRunning,
			Message: fmt.Sprintf("failed to start backend (path: %s)", backendPath),
			Cause:   err,
		}
	}

	c.proc = &backendProcess{process: cmd.Process, path: backendPath}

	return c.waitForReady(ctx, backendPath)
}

// terminate kills the spawned backend's process group.
func (p *backendProcess) terminate() error {
	if p.process == nil {
		return nil
	}
	// Negative pid targets the process group created by Setpgid.
	if err := syscall.Kill(-p.process.Pid, syscall.SIGTERM); err != nil {
		return p.process.Kill()
	}
	return nil
}
