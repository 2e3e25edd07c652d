// Package bus adapts the Redis pub/sub channel used to fan tasks out to
// worker roles.
//
// Publish sends the raw video name as the task payload; Subscribe opens a
// private subscription per consumer group so both worker roles receive every
// task independently. Delivery is at-most-once: messages published while a
// role is disconnected are lost. Duplicate deliveries are harmless because
// the registry absorbs repeated completion reports.
package bus
