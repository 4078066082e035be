// Package events defines the closed set of domain events published by the
// order pipeline.
//
// Events are immutable value snapshots. Each one reports its Kind, which is the
// key handlers subscribe under. Adding an event means adding a Kind constant
// and a type implementing Event; no other package can implement Event.
package events
