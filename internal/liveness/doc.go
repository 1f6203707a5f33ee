// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package liveness tracks whether the file-search backend is reachable.
//
// A Monitor polls the backend health endpoint on a fixed interval and folds
// every outcome into a single Snapshot. Failures are absorbed, never
// propagated: a refused connection, a timeout and a malformed body all
// produce the same observable result (Online = false) so the rest of the
// program only ever branches on the snapshot.
//
// At most one probe is in flight at a time. If a tick fires while the
// previous probe is still running, the tick is skipped rather than queued,
// so a hung backend cannot pile up goroutines.
package liveness
