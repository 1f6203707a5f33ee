// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build windows
// +build windows

package backend

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"
)

// Windows-specific creation flags
const (
	// CREATE_NO_WINDOW prevents a console window from being created
	CREATE_NO_WINDOW = 0x08000000
	// DETACHED_PROCESS creates a new process that is detached from the console
	DETACHED_PROCESS = 0x00000008
)

// findBackendExecutable searches for the backend binary in common
// installation paths on Windows.
func (c *Client) findBackendExecutable() (string, error) {
	// Explicit override wins
	if c.config.Executable != "" {
		if _, err := os.Stat(c.config.Executable); err == nil {
			return c.config.Executable, nil
		}
		return "", fmt.Errorf("configured backend executable not found: %s", c.config.Executable)
	}

	// First, check if the backend is in PATH
	if path, err := exec.LookPath("filesearch-backend.exe"); err == nil {
		return path, nil
	}
	if path, err := exec.LookPath("filesearch-backend"); err == nil {
		return path, nil
	}

	possiblePaths := []string{}

	// User install location: %LOCALAPPDATA%\Programs\FileSearch
	if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
		possiblePaths = append(possiblePaths,
			filepath.Join(localAppData, "Programs", "FileSearch", "filesearch-backend.exe"))
	}

	// System install locations
	possiblePaths = append(possiblePaths,
		`C:\Program Files\FileSearch\filesearch-backend.exe`,
		`C:\Program Files (x86)\FileSearch\filesearch-backend.exe`,
	)

	// User profile locations
	if userProfile := os.Getenv("USERPROFILE"); userProfile != "" {
		possiblePaths = append(possiblePaths,
			filepath.Join(userProfile, ".filesearch", "bin", "filesearch-backend.exe"),
		)
	}

	// Next to our own binary (bundled install)
	if self, err := os.Executable(); err == nil {
		possiblePaths = append(possiblePaths,
			filepath.Join(filepath.Dir(self), "filesearch-backend.exe"),
		)
	}

	for _, p := range possiblePaths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("filesearch-backend.exe not found in PATH or common installation directories. " +
		"Please ensure the backend is installed. Checked: PATH, %%LOCALAPPDATA%%\\Programs\\FileSearch, " +
		"C:\\Program Files\\FileSearch")
}

// startBackendProcess starts the backend service on Windows and waits for it
// to become ready. Uses Windows-specific process creation flags for proper
// background execution.
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

	// - CREATE_NEW_PROCESS_GROUP: allows independent termination
	// - CREATE_NO_WINDOW: prevents a console window from appearing
	// - DETACHED_PROCESS: detaches from the parent console
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP | CREATE_NO_WINDOW | DETACHED_PROCESS,
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

// terminate kills the spawned backend process.
func (p *backendProcess) terminate() error {
	if p.process == nil {
		return nil
	}
	return p.process.Kill()
}
