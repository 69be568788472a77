// Package variables detects and rewrites legacy instruction placeholders
// like {!$var}, {$!var}, {$var}, and {!var} into the canonical
// {!@variables.var} form. Rewriting is sequential over the built-in (or
// override-provided) pattern list, so a placeholder rewritten by an earlier
// pattern is not visible to later ones, and rewriting an already-canonical
// reference is a no-op.
package variables
