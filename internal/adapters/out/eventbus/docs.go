// Package eventbus provides the in-process publish/subscribe bus that connects
// order acceptance to background submission.
//
// Handlers are registered per events.Kind at start-up and invoked in
// registration order for every publish. A failing or panicking handler is
// reported as a HandlerFault and never stops later handlers or reaches the
// publisher. Delivery is at-most-once and lives only in process memory.
package eventbus
