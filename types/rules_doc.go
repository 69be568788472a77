package types

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// ConversionRules is the optional override document. Every field is
// independently absent-or-present; a nil pointer at any level means "use
// the built-in default" for everything underneath it. Resolution lives in
// package rules — this file only models the document shape.
type ConversionRules struct {
	Version            *string             `json:"version,omitempty" yaml:"version,omitempty"`
	VariableConversion *VariableConversion `json:"variable_conversion,omitempty" yaml:"variable_conversion,omitempty"`
	OutputFormat       *OutputFormatRules  `json:"output_format,omitempty" yaml:"output_format,omitempty"`
	TargetFormat       *TargetFormatRules  `json:"target_format,omitempty" yaml:"target_format,omitempty"`
	TypeMappings       *TypeMappingRules   `json:"type_mappings,omitempty" yaml:"type_mappings,omitempty"`
	Templates          *TemplateRules      `json:"templates,omitempty" yaml:"templates,omitempty"`
	SecurityRules      *SecurityRuleSet    `json:"security_rules,omitempty" yaml:"security_rules,omitempty"`
	Connection         *ConnectionRules    `json:"connection,omitempty" yaml:"connection,omitempty"`
	System             *SystemRules        `json:"system,omitempty" yaml:"system,omitempty"`
	Language           *LanguageRules      `json:"language,omitempty" yaml:"language,omitempty"`
}

// VariableConversion configures legacy-placeholder rewriting. When Enabled
// is explicitly false, detection reports false and rewriting is a no-op.
type VariableConversion struct {
	Enabled      *bool             `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Patterns     []VariablePattern `json:"patterns,omitempty" yaml:"patterns,omitempty"`
	AlertMessage *string           `json:"alert_message,omitempty" yaml:"alert_message,omitempty"`
	StatusSuffix *string           `json:"status_suffix,omitempty" yaml:"status_suffix,omitempty"`
}

// VariablePattern is one custom regex/replacement pair. A malformed
// pattern is skipped individually at resolution time.
type VariablePattern struct {
	Pattern     string `json:"pattern" yaml:"pattern"`
	Replacement string `json:"replacement" yaml:"replacement"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// OutputFormatRules configures serializer formatting.
type OutputFormatRules struct {
	Indentation      *IndentationRules      `json:"indentation,omitempty" yaml:"indentation,omitempty"`
	ActionDefinition *ActionDefinitionRules `json:"action_definition,omitempty" yaml:"action_definition,omitempty"`
	Reasoning        *ReasoningFormatRules  `json:"reasoning,omitempty" yaml:"reasoning,omitempty"`
}

// IndentationRules carries indentation widths.
type IndentationRules struct {
	Base   *int `json:"base,omitempty" yaml:"base,omitempty"`
	Nested *int `json:"nested,omitempty" yaml:"nested,omitempty"`
}

// ActionDefinitionRules configures detailed-action emission.
type ActionDefinitionRules struct {
	BooleanFormat *BooleanFormat `json:"boolean_format,omitempty" yaml:"boolean_format,omitempty"`
}

// BooleanFormat overrides the boolean literals emitted by the serializer.
type BooleanFormat struct {
	True  *string `json:"true,omitempty" yaml:"true,omitempty"`
	False *string `json:"false,omitempty" yaml:"false,omitempty"`
}

// ReasoningFormatRules configures reasoning-block emission.
type ReasoningFormatRules struct {
	InstructionsFormat *InstructionsFormat `json:"instructions_format,omitempty" yaml:"instructions_format,omitempty"`
}

// InstructionsFormat overrides the instruction block header indicator and
// per-line marker.
type InstructionsFormat struct {
	Indicator  *string `json:"indicator,omitempty" yaml:"indicator,omitempty"`
	LinePrefix *string `json:"line_prefix,omitempty" yaml:"line_prefix,omitempty"`
}

// TargetFormatRules overrides the invocation-type lookup table used when
// building action target URIs.
type TargetFormatRules struct {
	Syntax   *string           `json:"syntax,omitempty" yaml:"syntax,omitempty"`
	Mappings map[string]string `json:"mappings,omitempty" yaml:"mappings,omitempty"`
}

// TypeMappingRules overrides schema-type → script-type mapping.
type TypeMappingRules struct {
	Primitive map[string]string `json:"primitive,omitempty" yaml:"primitive,omitempty"`
	Complex   map[string]string `json:"complex,omitempty" yaml:"complex,omitempty"`
	Default   *string           `json:"default,omitempty" yaml:"default,omitempty"`
}

// TemplateRules carries the four named topic templates.
type TemplateRules struct {
	TopicSelector     *TopicTemplate `json:"topic_selector,omitempty" yaml:"topic_selector,omitempty"`
	Escalation        *TopicTemplate `json:"escalation,omitempty" yaml:"escalation,omitempty"`
	OffTopic          *TopicTemplate `json:"off_topic,omitempty" yaml:"off_topic,omitempty"`
	AmbiguousQuestion *TopicTemplate `json:"ambiguous_question,omitempty" yaml:"ambiguous_question,omitempty"`
}

// TopicTemplate overrides label, description, and reasoning of one
// synthesized topic. IncludeSecurityRules and BaseInstructions apply to the
// off-topic and ambiguous-question templates only.
type TopicTemplate struct {
	Label                *string            `json:"label,omitempty" yaml:"label,omitempty"`
	Description          *string            `json:"description,omitempty" yaml:"description,omitempty"`
	IncludeSecurityRules *bool              `json:"include_security_rules,omitempty" yaml:"include_security_rules,omitempty"`
	BaseInstructions     *string            `json:"base_instructions,omitempty" yaml:"base_instructions,omitempty"`
	Reasoning            *TemplateReasoning `json:"reasoning,omitempty" yaml:"reasoning,omitempty"`
}

// TemplateReasoning overrides instruction text and the transition map of a
// synthesized topic.
type TemplateReasoning struct {
	Instructions *string                   `json:"instructions,omitempty" yaml:"instructions,omitempty"`
	Actions      map[string]TemplateAction `json:"actions,omitempty" yaml:"actions,omitempty"`
}

// TemplateAction is the heterogeneous action value of a template: either a
// bare string (the target) or an object carrying target plus optional
// description. It is resolved into this one canonical shape at ingestion so
// no other component sees the dual encoding.
type TemplateAction struct {
	Target      string `json:"target" yaml:"target"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// UnmarshalJSON accepts either a plain string or an object form. Any other
// value is kept verbatim as its compact JSON encoding, so malformed
// entries degrade instead of failing the whole rules document.
func (a *TemplateAction) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		a.Target = s
		a.Description = ""
		return nil
	}

	var obj struct {
		Target      *string `json:"target"`
		Description *string `json:"description"`
	}
	if err := json.Unmarshal(data, &obj); err == nil && obj.Target != nil {
		a.Target = *obj.Target
		if obj.Description != nil {
			a.Description = *obj.Description
		}
		return nil
	}

	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	compact, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	a.Target = string(compact)
	a.Description = ""
	return nil
}

// UnmarshalYAML mirrors UnmarshalJSON for YAML rules documents.
func (a *TemplateAction) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		a.Target = node.Value
		a.Description = ""
		return nil
	}

	var obj struct {
		Target      *string `yaml:"target"`
		Description *string `yaml:"description"`
	}
	if err := node.Decode(&obj); err == nil && obj.Target != nil {
		a.Target = *obj.Target
		if obj.Description != nil {
			a.Description = *obj.Description
		}
		return nil
	}

	var generic any
	if err := node.Decode(&generic); err != nil {
		return err
	}
	compact, err := json.Marshal(generic)
	if err != nil {
		return err
	}
	a.Target = string(compact)
	a.Description = ""
	return nil
}

// SecurityRuleSet carries the default security-rule sentences appended to
// guard-style topics.
type SecurityRuleSet struct {
	DefaultRules []string `json:"default_rules,omitempty" yaml:"default_rules,omitempty"`
}

// ConnectionRules overrides connection-section defaults.
type ConnectionRules struct {
	Fields *ConnectionFields `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// ConnectionFields carries per-field connection defaults.
type ConnectionFields struct {
	AdaptiveResponseAllowed *DefaultBool `json:"adaptive_response_allowed,omitempty" yaml:"adaptive_response_allowed,omitempty"`
}

// SystemRules overrides system-section defaults.
type SystemRules struct {
	Fields *SystemFields `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// SystemFields carries per-field system defaults.
type SystemFields struct {
	Instructions *DefaultString       `json:"instructions,omitempty" yaml:"instructions,omitempty"`
	Messages     *SystemMessagesField `json:"messages,omitempty" yaml:"messages,omitempty"`
}

// SystemMessagesField nests the welcome/error message defaults.
type SystemMessagesField struct {
	Fields *SystemMessagesFields `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// SystemMessagesFields carries the welcome and error message defaults.
type SystemMessagesFields struct {
	Welcome *DefaultString `json:"welcome,omitempty" yaml:"welcome,omitempty"`
	Error   *DefaultString `json:"error,omitempty" yaml:"error,omitempty"`
}

// LanguageRules overrides language-section defaults.
type LanguageRules struct {
	Fields *LanguageFields `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// LanguageFields carries per-field language defaults.
type LanguageFields struct {
	DefaultLocale        *DefaultString `json:"default_locale,omitempty" yaml:"default_locale,omitempty"`
	AllAdditionalLocales *DefaultBool   `json:"all_additional_locales,omitempty" yaml:"all_additional_locales,omitempty"`
}

// DefaultString is a field-level override: {"default": "..."}.
type DefaultString struct {
	Default *string `json:"default,omitempty" yaml:"default,omitempty"`
}

// DefaultBool is a field-level override: {"default": true}.
type DefaultBool struct {
	Default *bool `json:"default,omitempty" yaml:"default,omitempty"`
}
