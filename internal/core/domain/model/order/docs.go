// Package order provides the Order aggregate of the supply pipeline and the
// Status state machine that drives it.
//
// The package includes:
//   - Order: identity, branch and item references, quantity, creation time and status
//   - Status: the lifecycle Pending -> Processing -> SentToSap | Failed, with Completed
//     reachable from SentToSap
//
// Key business rules:
//   - Orders start Pending and only their status may change afterwards
//   - Branch and item references are required and limited to 50 characters
//   - Quantity must be greater than zero
//   - Transitions are validated by a looplab/fsm table; anything else is rejected
package order
