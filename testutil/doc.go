// Package testutil provides shared fixtures for converter tests.
//
// The fixtures mirror real platform exports: a capability bundle with a
// topic plugin, a callable function, legacy variable placeholders, and an
// opaque flow target, so end-to-end tests exercise every conversion stage
// from one document.
package testutil
