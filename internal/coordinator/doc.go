// Package coordinator runs the ingestion side of the pipeline: it accepts
// uploads over HTTP, persists them to the blob store, registers them in the
// completion registry, publishes one task per upload to the bus, and
// multicasts status transitions to connected observers.
//
// Workers report back through the /internal callback routes. Each callback is
// idempotent: the first report per video and role flips the registry flag and
// produces exactly one observer event, repeats are acknowledged without
// effect.
package coordinator
