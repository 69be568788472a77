// Package script renders the canonical script document as text. Emission is
// deterministic: map keys are sorted, and the section order and indentation
// are fixed. Free-text fields pass through placeholder rewriting and quote
// escaping on the way out; identifiers and labels are emitted verbatim.
package script
