// Package logging builds the slog loggers used across clipflow processes.
//
// It supports json and console output formats, multi-destination writers
// (stdout plus a per-component file under the configured log directory), and
// small attribute helpers so call sites stay uniform. Components obtain a
// tagged logger via NewComponentLogger and a silent one via NewNop for tests.
package logging
