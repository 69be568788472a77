// Package agentscript provides a top-level convenience entry point for
// converting agent definition documents with minimal boilerplate.
//
// Usage:
//
//	import "github.com/nga-tools/agentscript"
//
//	def, err := agentscript.Load(data, agentscript.FormatAuto, nil)
//	result, err := agentscript.Convert(def, nil, nil)
//	doc := agentscript.BuildReport(def, result.Text, report.Metadata{...})
//
// This is a thin wrapper around the convert, variables, rules and report
// packages; both produce identical results. Use this package when you
// prefer the shorter import path.
package agentscript

import (
	"go.uber.org/zap"

	"github.com/nga-tools/agentscript/convert"
	"github.com/nga-tools/agentscript/report"
	"github.com/nga-tools/agentscript/rules"
	"github.com/nga-tools/agentscript/types"
	"github.com/nga-tools/agentscript/variables"
)

// Input encodings accepted by [Load] and [LoadRules].
const (
	FormatAuto = convert.FormatAuto
	FormatJSON = convert.FormatJSON
	FormatYAML = convert.FormatYAML
)

// Result is the outcome of a conversion.
type Result = convert.Result

// Convert transforms an agent definition into an agent script document.
// A nil rules document means built-in defaults; a nil logger disables
// logging.
func Convert(def *types.AgentDefinition, rulesDoc *types.ConversionRules, logger *zap.Logger) (*Result, error) {
	return convert.Convert(def, rulesDoc, logger)
}

// Load parses an agent definition from JSON or YAML bytes.
var Load = convert.LoadBytes

// LoadRules parses an optional conversion-rules document. Malformed
// documents degrade to nil (defaults), never to an error.
var LoadRules = convert.LoadRules

// DetectLegacyPlaceholders reports whether text contains legacy variable
// placeholder syntax, honoring any custom patterns of the rules document.
func DetectLegacyPlaceholders(text string, rulesDoc *types.ConversionRules) bool {
	return variables.NewRewriter(rulesDoc, nil).Detect(text)
}

// AlertMessage resolves the placeholder alert message of a rules document.
var AlertMessage = rules.AlertMessage

// StatusSuffix resolves the placeholder status suffix of a rules document.
var StatusSuffix = rules.StatusSuffix

// BuildReport analyzes a conversion after the fact.
var BuildReport = report.Build
