// Package rules resolves every customizable conversion setting through one
// cascading lookup: if the optional override document supplies a value —
// field present and non-nil at every level of its path — use it, otherwise
// use the built-in default.
//
// Resolution never fails. A missing, partial, or malformed override
// document degrades to defaults field by field; the worst outcome of a bad
// override is a debug log line.
package rules
