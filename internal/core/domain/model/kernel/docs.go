// Package kernel holds the shared domain primitives of the order pipeline.
//
// At the moment it only provides UUID, the identifier value object used by the
// Order aggregate, the OrderCreated event and every storage adapter.
package kernel
