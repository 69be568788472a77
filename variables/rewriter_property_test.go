package variables

import (
	"strings"
	"testing"

	"pgregory.net/rapid"
)

// genInstructionText builds text mixing plain words with every placeholder
// form the rewriter understands.
func genInstructionText() *rapid.Generator[string] {
	name := rapid.StringMatching(`[A-Za-z][A-Za-z0-9_]{0,12}`)
	segment := rapid.OneOf(
		rapid.StringMatching(`[a-z ]{0,16}`),
		rapid.Map(name, func(n string) string { return "{!$" + n + "}" }),
		rapid.Map(name, func(n string) string { return "{$!" + n + "}" }),
		rapid.Map(name, func(n string) string { return "{$" + n + "}" }),
		rapid.Map(name, func(n string) string { return "{!" + n + "}" }),
		rapid.Map(name, func(n string) string { return "{!@variables." + n + "}" }),
	)
	return rapid.Map(rapid.SliceOfN(segment, 0, 8), func(parts []string) string {
		return strings.Join(parts, " ")
	})
}

func TestRewriteIsIdempotent(t *testing.T) {
	rw := NewRewriter(nil, nil)
	rapid.Check(t, func(t *rapid.T) {
		text := genInstructionText().Draw(t, "text")
		once := rw.Rewrite(text)
		if twice := rw.Rewrite(once); twice != once {
			t.Fatalf("second rewrite changed output:\n once: %q\ntwice: %q", once, twice)
		}
	})
}

func TestRewriteQuiescesDetection(t *testing.T) {
	rw := NewRewriter(nil, nil)
	rapid.Check(t, func(t *rapid.T) {
		text := genInstructionText().Draw(t, "text")
		if rewritten := rw.Rewrite(text); rw.Detect(rewritten) {
			t.Fatalf("rewritten text still detected: %q", rewritten)
		}
	})
}

func TestRewritePreservesPlaceholderNames(t *testing.T) {
	rw := NewRewriter(nil, nil)
	rapid.Check(t, func(t *rapid.T) {
		text := genInstructionText().Draw(t, "text")
		before := ExtractNames(text)
		after := ExtractNames(rw.Rewrite(text))
		if len(before) != len(after) {
			t.Fatalf("name set changed: before %v, after %v", before, after)
		}
		for i := range before {
			if before[i] != after[i] {
				t.Fatalf("name set changed: before %v, after %v", before, after)
			}
		}
	})
}
