// Package main hosts the clipflow CLI entrypoint and command graph.
//
// The Cobra-based command tree talks to the coordinator's HTTP API: it
// uploads videos, streams status events, inspects the registry, and
// scaffolds configuration. Heavy lifting lives in the internal packages;
// commands stay thin and declarative.
package main
