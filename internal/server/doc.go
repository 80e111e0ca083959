// Package server implements the HTTP job service: it lists the available
// classes, converts submitted Markdown in a fresh work area, optionally
// compiles it, and serves the build artifacts.
//
// Every render failure is reported as a structured JSON response carrying
// the job log; the service never answers a render with a bare 500.
package server
