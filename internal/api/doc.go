// Package api defines the wire-format types shared by the coordinator, the
// workers, and the CLI. It keeps transport shapes decoupled from internal
// registry models.
//
// Event is the observer push payload; EnhancementReport and MetadataReport are
// the internal callback bodies (both JSON); Video and StatusResponse are the
// read-side views the CLI renders.
//
// JSON tags use snake_case to match the public surface consumed by browser
// clients.
package api
