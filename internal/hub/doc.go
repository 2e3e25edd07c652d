// Package hub maintains the set of live observers and multicasts status
// events to them.
//
// Each observer owns a bounded outbound buffer; Broadcast enqueues without
// ever blocking on a slow client and drops members whose buffers overflow.
// Ordering is preserved per observer: events arrive in the order the hub
// processed the broadcasts.
package hub
