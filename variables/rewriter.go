package variables

import (
	"regexp"
	"sort"

	"go.uber.org/zap"

	"github.com/nga-tools/agentscript/types"
)

// detectPattern matches any legacy placeholder form in one pass:
// {!$...}, {$!...}, {$...}, or {!...} not already canonical.
var detectPattern = regexp.MustCompile(`\{!?\$!?[^}]+\}|\{![^@}][^}]*\}`)

// rewritePatterns are applied in order over the progressively rewritten
// text. Order matters: the more specific sigil combinations go first so
// the looser patterns never see their matches.
var rewritePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\{!\$([^}]+)\}`),
	regexp.MustCompile(`\{\$!([^}]+)\}`),
	regexp.MustCompile(`\{\$([^!}][^}]*)\}`),
	regexp.MustCompile(`\{!([^@}][^}]*)\}`),
}

const canonicalReplacement = "{!@variables.${1}}"

// namePatterns extract variable names for reporting; the canonical form is
// included so already-converted text still yields names.
var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\{!@variables\.([^}]+)\}`),
	regexp.MustCompile(`\{!\$([^}]+)\}`),
	regexp.MustCompile(`\{\$!([^}]+)\}`),
	regexp.MustCompile(`\{\$([^!}][^}]*)\}`),
	regexp.MustCompile(`\{!([^@}][^}]*)\}`),
}

type customPattern struct {
	re          *regexp.Regexp
	replacement string
}

// Rewriter rewrites legacy placeholders to the canonical form. The zero
// document gives built-in behavior; an override document can disable
// rewriting or replace the pattern list entirely.
type Rewriter struct {
	enabled bool
	custom  []customPattern
}

// NewRewriter builds a Rewriter from an optional rules document. Custom
// patterns that fail to compile are skipped individually with a warning;
// they never fail construction.
func NewRewriter(doc *types.ConversionRules, logger *zap.Logger) *Rewriter {
	if logger == nil {
		logger = zap.NewNop()
	}
	rw := &Rewriter{enabled: true}

	if doc == nil || doc.VariableConversion == nil {
		return rw
	}
	vc := doc.VariableConversion
	if vc.Enabled != nil && !*vc.Enabled {
		rw.enabled = false
		return rw
	}
	if vc.Patterns != nil {
		rw.custom = make([]customPattern, 0, len(vc.Patterns))
		for _, p := range vc.Patterns {
			re, err := regexp.Compile(p.Pattern)
			if err != nil {
				logger.Warn("skipping invalid variable pattern",
					zap.String("pattern", p.Pattern),
					zap.Error(err))
				continue
			}
			rw.custom = append(rw.custom, customPattern{re: re, replacement: p.Replacement})
		}
	}
	return rw
}

// Detect reports whether text contains placeholders the Rewriter would
// rewrite. With custom patterns configured, only those patterns count.
func (rw *Rewriter) Detect(text string) bool {
	if !rw.enabled {
		return false
	}
	if rw.custom != nil {
		for _, p := range rw.custom {
			if p.re.MatchString(text) {
				return true
			}
		}
		return false
	}
	return detectPattern.MatchString(text)
}

// Rewrite converts legacy placeholders in text to the canonical form.
func (rw *Rewriter) Rewrite(text string) string {
	if !rw.enabled || text == "" {
		return text
	}
	if rw.custom != nil {
		for _, p := range rw.custom {
			text = p.re.ReplaceAllString(text, p.replacement)
		}
		return text
	}
	for _, re := range rewritePatterns {
		text = re.ReplaceAllString(text, canonicalReplacement)
	}
	return text
}

// ExtractNames returns the sorted unique variable names referenced by any
// placeholder form in text, canonical or legacy.
func ExtractNames(text string) []string {
	seen := make(map[string]struct{})
	for _, re := range namePatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			seen[m[1]] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
