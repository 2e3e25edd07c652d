// Package config loads, normalizes, and validates clipflow configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob the
// coordinator, CLI, and workers need: blob directories, the Redis fan-out
// channel, the coordinator callback URL, and ffmpeg/ffprobe tool paths.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
