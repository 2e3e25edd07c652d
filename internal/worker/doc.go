// Package worker contains the runtime shared by both worker roles: the task
// consume loop and the HTTP client that delivers completion callbacks to the
// coordinator.
//
// Roles implement the Job interface; the Runner binds a Job to its consumer
// group on the task bus and keeps the loop alive across per-task failures.
package worker
