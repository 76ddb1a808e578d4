// Package timeouts defines shared timeout constants used across habbohub
// commands.
package timeouts

import "time"

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// FiguredataFetch caps a single download of a hotel's figuredata document.
const FiguredataFetch = 15 * time.Second

// StoreOpen caps the time spent opening a figure store and applying its
// migrations at startup.
const StoreOpen = 10 * time.Second
