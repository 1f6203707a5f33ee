// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

import (
	"context"
	"fmt"
	"os"
	"time"
)

// backendProcess tracks a backend process spawned by EnsureRunning so it can
// be terminated on shutdown. A backend that was already running when we
// connected is never tracked and never touched.
type backendProcess struct {
	process *os.Process
	path    string
}

// SpawnedBackend reports whether this client started the backend process
// itself (as opposed to connecting to one that was already running).
func (c *Client) SpawnedBackend() bool {
	return c.proc != nil
}

// StopBackend terminates a backend process previously spawned by
// EnsureRunning. It is a no-op when the backend was already running before
// we connected.
func (c *Client) StopBackend() error {
	if c.proc == nil {
		return nil
	}
	err := c.proc.terminate()
	c.proc = nil
	return err
}

// waitForReady polls the health endpoint until the backend answers or the
// configured attempt ceiling is reached. The ceiling is a soft failure:
// callers log it and carry on, the liveness monitor picks the backend up
// later if it was merely slow.
func (c *Client) waitForReady(ctx context.Context, path string) error {
	startTime := time.Now()
	var lastErr error

	fmt.Fprintf(os.Stderr, "Starting file-search backend...\n")

	for attempt := 0; attempt < c.config.StartupAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return &ClientError{
				Type:    ErrTypeConnection,
				Message: "backend startup cancelled",
				Cause:   ctx.Err(),
			}
		default:
		}

		checkCtx, cancel := context.WithTimeout(ctx, c.config.HealthTimeout)
		lastErr = c.CheckRunning(checkCtx)
		cancel()

		if lastErr == nil {
			elapsed := time.Since(startTime)
			fmt.Fprintf(os.Stderr, "Backend started successfully (%.1fs)\n", elapsed.Seconds())
			return nil
		}

		elapsed := time.Since(startTime)
		fmt.Fprintf(os.Stderr, "\rStarting file-search backend... %.1fs elapsed", elapsed.Seconds())

		time.Sleep(c.config.StartupDelay)
	}

	fmt.Fprintf(os.Stderr, "\n")

	return &ClientError{
		Type: ErrTypeConnection,
		Message: fmt.Sprintf("backend started but not responding after %d attempts (path: %s)",
			c.config.StartupAttempts, path),
		Cause: lastErr,
	}
}
