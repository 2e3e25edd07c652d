// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// This package has no clipflow-specific dependencies and could be extracted
// as a standalone library.
//
// Key types:
//   - Result: parsed ffprobe output containing streams and format metadata
//   - Stream: individual stream properties including dimensions and frame rate
//   - Format: container-level metadata (duration, size)
//
// Primary entry point:
//   - Inspect: executes ffprobe and returns parsed Result
//
// Helper methods provide convenient access to the first video stream, frame
// rates parsed from their rational form, and duration fallbacks.
package ffprobe
