// Package types defines the data model shared across the converter:
// the agent definition input document, the optional conversion-rules
// override document, the produced agent-script document, and the typed
// error values used at the API boundary.
//
// All structures are plain value types created fresh per conversion call;
// nothing in this package holds process-wide state.
package types
