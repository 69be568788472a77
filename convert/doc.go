// Package convert turns heterogeneous agent definition documents into the
// canonical script document. Three input shapes are recognized, checked in
// fixed order: capability bundles (plugins), pre-structured topics, and a
// minimal fallback. Conversion itself never fails once the input parses;
// missing fields degrade to resolved defaults.
package convert
