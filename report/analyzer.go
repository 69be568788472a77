package report

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/nga-tools/agentscript/internal/textutil"
	"github.com/nga-tools/agentscript/types"
	"github.com/nga-tools/agentscript/variables"
)

// DefaultAlertMessage is the placeholder alert used when the conversion
// did not supply one of its own.
const DefaultAlertMessage = "Variables within instructions were converted to @variables format."

// customActionTypes are the action types whose targets are record
// identifiers in exported bundles and must be re-selected by hand.
var customActionTypes = map[string]struct{}{
	"flow":                    {},
	"apex":                    {},
	"standardinvocableaction": {},
	"invocableaction":         {},
	"generatepromptresponse":  {},
	"externalservice":         {},
}

// Metadata carries conversion facts the analyzer cannot derive from the
// input document alone.
type Metadata struct {
	InputFormat        string `json:"input_format" yaml:"input_format"`
	TopicCount         int    `json:"topic_count" yaml:"topic_count"`
	ActionCount        int    `json:"action_count" yaml:"action_count"`
	LegacyPlaceholders bool   `json:"has_legacy_placeholders" yaml:"has_legacy_placeholders"`
	AlertMessage       string `json:"alert_message,omitempty" yaml:"alert_message,omitempty"`
	StatusSuffix       string `json:"status_suffix,omitempty" yaml:"status_suffix,omitempty"`
}

// AgentInfo summarizes the agent identity fields of the input document.
type AgentInfo struct {
	Name             string `json:"name" yaml:"name"`
	Label            string `json:"label" yaml:"label"`
	Description      string `json:"description" yaml:"description"`
	Role             string `json:"role,omitempty" yaml:"role,omitempty"`
	Company          string `json:"company,omitempty" yaml:"company,omitempty"`
	Tone             string `json:"tone,omitempty" yaml:"tone,omitempty"`
	Locale           string `json:"locale,omitempty" yaml:"locale,omitempty"`
	SecondaryLocales string `json:"secondary_locales,omitempty" yaml:"secondary_locales,omitempty"`
}

// ActionReport is one action of a reported topic.
type ActionReport struct {
	Name        string `json:"name" yaml:"name"`
	Label       string `json:"label" yaml:"label"`
	Description string `json:"description" yaml:"description"`
	Target      string `json:"target" yaml:"target"`
	Type        string `json:"type" yaml:"type"`
}

// TopicReport is one topic of the report, with its actions.
type TopicReport struct {
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description" yaml:"description"`
	IsStart     bool           `json:"is_start" yaml:"is_start"`
	Actions     []ActionReport `json:"actions" yaml:"actions"`
}

// VariableReport is one variable of the report.
type VariableReport struct {
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type" yaml:"type"`
	Source      string `json:"source,omitempty" yaml:"source,omitempty"`
	Description string `json:"description" yaml:"description"`
}

// PlaceholderSummary reports legacy placeholder rewriting.
type PlaceholderSummary struct {
	Detected     bool     `json:"detected" yaml:"detected"`
	AlertMessage string   `json:"alert_message,omitempty" yaml:"alert_message,omitempty"`
	Names        []string `json:"names,omitempty" yaml:"names,omitempty"`
}

// Document is the full post-conversion analysis.
type Document struct {
	Agent        AgentInfo          `json:"agent_info" yaml:"agent_info"`
	Topics       []TopicReport      `json:"topics" yaml:"topics"`
	Variables    []VariableReport   `json:"variables" yaml:"variables"`
	Placeholders PlaceholderSummary `json:"variables_in_instructions" yaml:"variables_in_instructions"`
	Notes        []string           `json:"notes" yaml:"notes"`
	Meta         Metadata           `json:"metadata" yaml:"metadata"`
}

// Analyzer builds report documents from an input definition and the
// rendered script text.
type Analyzer struct {
	logger *zap.Logger
}

// NewAnalyzer creates an analyzer. A nil logger disables logging.
func NewAnalyzer(logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{logger: logger}
}

// Build analyzes one conversion with a throwaway analyzer.
func Build(def *types.AgentDefinition, scriptText string, meta Metadata) *Document {
	return NewAnalyzer(nil).Build(def, scriptText, meta)
}

// Build assembles the report document. The definition may be nil, in which
// case only script-derived sections are populated.
func (a *Analyzer) Build(def *types.AgentDefinition, scriptText string, meta Metadata) *Document {
	if def == nil {
		def = &types.AgentDefinition{}
	}

	doc := &Document{
		Agent:        extractAgentInfo(def),
		Topics:       extractTopics(def),
		Variables:    collectVariables(def, scriptText),
		Placeholders: summarizePlaceholders(def, scriptText, meta),
		Meta:         meta,
	}
	doc.Notes = analysisNotes(doc, meta)

	a.logger.Debug("report built",
		zap.Int("topics", len(doc.Topics)),
		zap.Int("variables", len(doc.Variables)),
		zap.Int("notes", len(doc.Notes)))
	return doc
}

func extractAgentInfo(def *types.AgentDefinition) AgentInfo {
	return AgentInfo{
		Name:             textutil.FirstNonEmpty(def.Name, def.Label, "Unnamed Agent"),
		Label:            textutil.FirstNonEmpty(def.Label, def.Name, "Unnamed Agent"),
		Description:      textutil.FirstNonEmpty(def.Description, "No description provided"),
		Role:             def.PlannerRole,
		Company:          def.PlannerCompany,
		Tone:             def.PlannerToneType,
		Locale:           def.Locale,
		SecondaryLocales: strings.Join(def.SecondaryLocales, ", "),
	}
}

func extractTopics(def *types.AgentDefinition) []TopicReport {
	if len(def.Plugins) > 0 {
		return topicsFromPlugins(def.Plugins)
	}
	return topicsFromStructured(def.Topics)
}

func topicsFromPlugins(plugins []types.Plugin) []TopicReport {
	var topics []TopicReport
	for i, p := range plugins {
		if p.PluginType != "" && p.PluginType != types.PluginTypeTopic {
			continue
		}

		topic := TopicReport{
			Name:        textutil.FirstNonEmpty(p.LocalDevName, p.Name, fmt.Sprintf("topic_%d", i)),
			Description: mergedTopicDescription(p.Description, p.Scope),
			IsStart:     i == 0,
		}
		for _, fn := range p.Functions {
			topic.Actions = append(topic.Actions, ActionReport{
				Name:        textutil.FirstNonEmpty(fn.LocalDevName, fn.Name, "unknown"),
				Label:       textutil.FirstNonEmpty(fn.Label, fn.Name),
				Description: fn.Description,
				Target:      textutil.FirstNonEmpty(fn.InvocationTargetName, fn.InvocationTargetID, fn.Name, "N/A"),
				Type:        textutil.FirstNonEmpty(fn.InvocationTargetType, "unknown"),
			})
		}
		if p.CanEscalate {
			topic.Actions = append(topic.Actions, ActionReport{
				Name:        "escalate_to_human",
				Label:       "Escalate to Human",
				Description: "Transfer to a live human agent",
				Target:      "@utils.escalate",
				Type:        "escalation",
			})
		}
		topics = append(topics, topic)
	}
	return topics
}

func topicsFromStructured(inputs []types.TopicInput) []TopicReport {
	var topics []TopicReport
	for i, t := range inputs {
		topic := TopicReport{
			Name:        textutil.FirstNonEmpty(t.Name, t.ID, fmt.Sprintf("topic_%d", i)),
			Description: mergedTopicDescription(t.Description, t.Scope),
			IsStart:     t.IsStart || i == 0,
		}
		for _, act := range t.Actions {
			topic.Actions = append(topic.Actions, ActionReport{
				Name:        textutil.FirstNonEmpty(act.Name, act.ID, "action"),
				Label:       textutil.FirstNonEmpty(act.Label, act.Name),
				Description: act.Description,
				Target:      textutil.FirstNonEmpty(act.Target, act.InvocationTarget, "N/A"),
				Type:        textutil.FirstNonEmpty(act.Type, "unknown"),
			})
		}
		topics = append(topics, topic)
	}
	return topics
}

// mergedTopicDescription keeps both the description and the scope when the
// input carries both, separated by a blank line.
func mergedTopicDescription(description, scope string) string {
	if description != "" && scope != "" {
		return description + "\n\n" + scope
	}
	return textutil.FirstNonEmpty(description, scope, "No description")
}

// collectVariables reads the variables section back out of the rendered
// script and merges in the declared variables of the input. The script is
// not strict YAML, so a failed parse simply yields the declared set.
func collectVariables(def *types.AgentDefinition, scriptText string) []VariableReport {
	byName := map[string]VariableReport{}

	var parsed map[string]any
	if err := yaml.Unmarshal([]byte(scriptText), &parsed); err == nil {
		if section, ok := parsed["variables"].(map[string]any); ok {
			for name, raw := range section {
				v := VariableReport{Name: name, Type: "unknown", Description: "No description"}
				if fields, ok := raw.(map[string]any); ok {
					if s, ok := fields["type"].(string); ok && s != "" {
						v.Type = s
					}
					if s, ok := fields["source"].(string); ok {
						v.Source = s
					}
					if s, ok := fields["description"].(string); ok && s != "" {
						v.Description = s
					}
				}
				byName[name] = v
			}
		}
	}

	for _, decl := range def.Variables {
		name := textutil.FirstNonEmpty(decl.Name, decl.ID)
		if name == "" {
			continue
		}
		if _, exists := byName[name]; exists {
			continue
		}
		byName[name] = VariableReport{
			Name:        name,
			Type:        textutil.FirstNonEmpty(decl.Type, "unknown"),
			Source:      decl.Source,
			Description: textutil.FirstNonEmpty(decl.Description, "No description"),
		}
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	vars := make([]VariableReport, 0, len(names))
	for _, name := range names {
		vars = append(vars, byName[name])
	}
	return vars
}

func summarizePlaceholders(def *types.AgentDefinition, scriptText string, meta Metadata) PlaceholderSummary {
	summary := PlaceholderSummary{Detected: meta.LegacyPlaceholders}
	if !summary.Detected {
		return summary
	}
	summary.AlertMessage = textutil.FirstNonEmpty(meta.AlertMessage, DefaultAlertMessage)

	seen := map[string]struct{}{}
	if raw, err := json.Marshal(def); err == nil {
		for _, name := range variables.ExtractNames(string(raw)) {
			seen[name] = struct{}{}
		}
	}
	for _, name := range variables.ExtractNames(scriptText) {
		seen[name] = struct{}{}
	}
	for name := range seen {
		summary.Names = append(summary.Names, name)
	}
	sort.Strings(summary.Names)
	return summary
}

func analysisNotes(doc *Document, meta Metadata) []string {
	var notes []string

	var topicsNoDescription, topicsNoActions []string
	actionsNoDescription := 0
	type reviewRow struct {
		topic, action, actionType, target string
	}
	var reviews []reviewRow

	for _, topic := range doc.Topics {
		if isDescriptionMissing(topic.Description) {
			topicsNoDescription = append(topicsNoDescription, topic.Name)
		}
		if len(topic.Actions) == 0 {
			topicsNoActions = append(topicsNoActions, topic.Name)
		}
		for _, action := range topic.Actions {
			if isDescriptionMissing(action.Description) {
				actionsNoDescription++
			}
			if isCustomActionType(action.Type) && isOpaqueIdentifier(action.Target) {
				reviews = append(reviews, reviewRow{topic.Name, action.Name, action.Type, action.Target})
			}
		}
	}

	if len(topicsNoDescription) > 0 {
		notes = append(notes, fmt.Sprintf("- %d topic(s) are missing descriptions: %s",
			len(topicsNoDescription), strings.Join(topicsNoDescription, ", ")))
	}
	if len(topicsNoActions) > 0 {
		notes = append(notes, fmt.Sprintf("- %d topic(s) have no actions: %s",
			len(topicsNoActions), strings.Join(topicsNoActions, ", ")))
	}
	if actionsNoDescription > 0 {
		notes = append(notes, fmt.Sprintf("- %d action(s) are missing descriptions", actionsNoDescription))
	}

	var varsNoDescription []string
	for _, v := range doc.Variables {
		if isDescriptionMissing(v.Description) {
			varsNoDescription = append(varsNoDescription, v.Name)
		}
	}
	if len(varsNoDescription) > 0 {
		notes = append(notes, fmt.Sprintf("- %d variable(s) are missing descriptions: %s",
			len(varsNoDescription), strings.Join(varsNoDescription, ", ")))
	}

	if len(reviews) > 0 {
		notes = append(notes,
			fmt.Sprintf("- ⚠️ **MANUAL ACTION REQUIRED:** %d custom action(s) have target record IDs instead of API names:", len(reviews)),
			"  - **Custom actions (flow, Apex, standardInvocableAction, etc.) show the target record ID in the output.**",
			"  - **You must manually re-select the target for each action in Agentforce Builder.**",
			"",
			"  | Topic | Action | Type | Target (Record ID) |",
			"  |-------|--------|------|-------------------|")
		for _, row := range reviews {
			notes = append(notes, fmt.Sprintf("  | `%s` | `%s` | %s | `%s` |",
				row.topic, row.action, row.actionType, row.target))
		}
		notes = append(notes,
			"",
			"  - **Steps to fix:** In Agentforce Builder, navigate to each topic/action listed above and manually select the correct target from the available options.")
	}

	if meta.StatusSuffix != "" {
		notes = append(notes, "- "+meta.StatusSuffix)
	}
	return notes
}

func isDescriptionMissing(desc string) bool {
	trimmed := strings.TrimSpace(desc)
	return trimmed == "" || trimmed == "No description"
}

// isOpaqueIdentifier reports whether a target looks like a generated record
// identifier rather than a readable API name: all alphanumeric with both
// letters and digits, and either digit-led or carrying a run of three or
// more digits.
func isOpaqueIdentifier(target string) bool {
	if target == "" {
		return false
	}
	hasLetter, hasDigit := false, false
	digitRun, maxDigitRun := 0, 0
	for _, r := range target {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
			digitRun = 0
		case unicode.IsDigit(r):
			hasDigit = true
			digitRun++
			if digitRun > maxDigitRun {
				maxDigitRun = digitRun
			}
		default:
			return false
		}
	}
	if !hasLetter || !hasDigit {
		return false
	}
	first := []rune(target)[0]
	return unicode.IsDigit(first) || maxDigitRun >= 3
}

// isCustomActionType reports whether an action type names a platform
// construct whose exported target is a record identifier.
func isCustomActionType(actionType string) bool {
	_, ok := customActionTypes[strings.ToLower(actionType)]
	return ok
}
