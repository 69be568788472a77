// Package textutil provides the shared text-shaping helpers of the
// converter: name sanitization, label casing, description cleaning, and
// output escaping.
package textutil

import (
	"regexp"
	"strings"
	"unicode"
)

// markdownTagRE matches inline markdown tags like #TagName#.
var markdownTagRE = regexp.MustCompile(`#[A-Za-z]+#`)

// SanitizeTopicName converts an arbitrary name into a lowercase
// underscore-separated identifier. An empty name yields "unnamed".
func SanitizeTopicName(name string) string {
	if name == "" {
		name = "unnamed"
	}
	return strings.ToLower(sanitizeIdentifier(name))
}

// SanitizeActionName converts an arbitrary name into an
// underscore-separated identifier, preserving case. An empty name yields
// "action".
func SanitizeActionName(name string) string {
	if name == "" {
		name = "action"
	}
	return sanitizeIdentifier(name)
}

func sanitizeIdentifier(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}

	parts := strings.Split(b.String(), "_")
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Trim(strings.Join(kept, "_"), "_")
}

// DeveloperName derives an uppercase developer identifier from a label or
// name, capped at 80 runes.
func DeveloperName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) || r == '_' {
			b.WriteRune(r)
		}
	}
	joined := strings.ToUpper(strings.Join(strings.Fields(b.String()), "_"))

	runes := []rune(joined)
	if len(runes) > 80 {
		runes = runes[:80]
	}
	return string(runes)
}

// FormatLabel converts snake_case or lowercase names to Title Case labels.
func FormatLabel(name string) string {
	words := strings.Fields(strings.ReplaceAll(name, "_", " "))
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.TrimSpace(strings.Join(words, " "))
}

// CleanDescription strips inline #Tag# markers and normalizes whitespace.
func CleanDescription(desc string) string {
	cleaned := markdownTagRE.ReplaceAllString(desc, "")
	return strings.TrimSpace(strings.Join(strings.Fields(cleaned), " "))
}

// FormatLocales joins locales into the comma-separated form used by the
// language section.
func FormatLocales(locales []string) string {
	return strings.Join(locales, ", ")
}

// EscapeString escapes a free-text value for emission inside a
// double-quoted output scalar.
func EscapeString(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		`"`, `\"`,
		"\n", `\n`,
		"\r", `\r`,
		"\t", `\t`,
	)
	return r.Replace(s)
}

// MergeDescriptionScope merges a cleaned description and cleaned scope into
// one description, falling back to a generic sentence built from the name.
func MergeDescriptionScope(description, scope, fallbackName string) string {
	var parts []string
	if description != "" {
		parts = append(parts, CleanDescription(description))
	}
	if scope != "" {
		parts = append(parts, CleanDescription(scope))
	}
	if len(parts) == 0 {
		return "Handles " + fallbackName + " requests"
	}
	return strings.Join(parts, " ")
}

// FirstNonEmpty returns the first non-empty string of its arguments.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
