// Package report analyzes a conversion after the fact: it summarizes the
// input agent, flags missing descriptions and action-less topics, and calls
// out custom actions whose targets are opaque record identifiers rather
// than readable API names. The output is structured data; presentation is
// the caller's concern.
package report
