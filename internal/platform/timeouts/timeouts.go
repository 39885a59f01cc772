// Package timeouts defines shared timeout constants used across the CLI.
// Centralizing these values prevents drift between call sites and makes the
// durations discoverable.
package timeouts

import "time"

// HTTPFetch caps one remote script or ad-list download. Installer payloads
// are small text files, so a slow transfer indicates a network fault rather
// than a large body.
const HTTPFetch = 30 * time.Second
