package rules

import (
	"go.uber.org/zap"

	"github.com/nga-tools/agentscript/types"
)

// Resolver answers every "override or default?" question of a single
// conversion. It is cheap to construct and safe for concurrent use; a nil
// rules document resolves everything to defaults.
type Resolver struct {
	doc    *types.ConversionRules
	logger *zap.Logger
}

// NewResolver creates a Resolver over an optional override document.
func NewResolver(doc *types.ConversionRules, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{doc: doc, logger: logger}
}

// Doc returns the underlying override document; may be nil.
func (r *Resolver) Doc() *types.ConversionRules { return r.doc }

// strOr and boolOr are the defaulted-lookup primitives applied uniformly:
// a nil pointer means "absent", anything else is an explicit override.
func strOr(v *string, def string) string {
	if v != nil {
		return *v
	}
	return def
}

func boolOr(v *bool, def bool) bool {
	if v != nil {
		return *v
	}
	return def
}

// ---------------------------------------------------------------------------
// Type mappings
// ---------------------------------------------------------------------------

// PrimitiveMappings returns the primitive type map.
func (r *Resolver) PrimitiveMappings() map[string]string {
	if r.doc != nil && r.doc.TypeMappings != nil && r.doc.TypeMappings.Primitive != nil {
		return r.doc.TypeMappings.Primitive
	}
	return DefaultPrimitiveMappings()
}

// ComplexMappings returns the complex type map, including the list format
// template under the "array" key.
func (r *Resolver) ComplexMappings() map[string]string {
	if r.doc != nil && r.doc.TypeMappings != nil && r.doc.TypeMappings.Complex != nil {
		return r.doc.TypeMappings.Complex
	}
	return DefaultComplexMappings()
}

// MappedTypeDefault returns the fallback type name.
func (r *Resolver) MappedTypeDefault() string {
	if r.doc != nil && r.doc.TypeMappings != nil {
		return strOr(r.doc.TypeMappings.Default, DefaultMappedType)
	}
	return DefaultMappedType
}

// TargetMappings returns the invocation-type lookup table.
func (r *Resolver) TargetMappings() map[string]string {
	if r.doc != nil && r.doc.TargetFormat != nil && r.doc.TargetFormat.Mappings != nil {
		return r.doc.TargetFormat.Mappings
	}
	return DefaultTargetMappings()
}

// ---------------------------------------------------------------------------
// Security rules
// ---------------------------------------------------------------------------

// SecurityRules returns the default security-rule sentences; empty when the
// override document supplies none.
func (r *Resolver) SecurityRules() []string {
	if r.doc != nil && r.doc.SecurityRules != nil {
		return r.doc.SecurityRules.DefaultRules
	}
	return nil
}

// ---------------------------------------------------------------------------
// Topic templates
// ---------------------------------------------------------------------------

// Template is a fully resolved topic template: every field carries either
// the override value or the built-in default.
type Template struct {
	Label                string
	Description          string
	Instructions         string
	BaseInstructions     string
	IncludeSecurityRules bool
	Actions              map[string]types.TransitionRef
}

func (r *Resolver) template(pick func(*types.TemplateRules) *types.TopicTemplate) *types.TopicTemplate {
	if r.doc == nil || r.doc.Templates == nil {
		return nil
	}
	return pick(r.doc.Templates)
}

func resolveTemplate(t *types.TopicTemplate, label, desc, instr, base string) Template {
	out := Template{
		Label:                label,
		Description:          desc,
		Instructions:         instr,
		BaseInstructions:     base,
		IncludeSecurityRules: true,
	}
	if t == nil {
		return out
	}
	out.Label = strOr(t.Label, label)
	out.Description = strOr(t.Description, desc)
	out.BaseInstructions = strOr(t.BaseInstructions, base)
	out.IncludeSecurityRules = boolOr(t.IncludeSecurityRules, true)
	if t.Reasoning != nil {
		out.Instructions = strOr(t.Reasoning.Instructions, instr)
		if len(t.Reasoning.Actions) > 0 {
			out.Actions = make(map[string]types.TransitionRef, len(t.Reasoning.Actions))
			for name, a := range t.Reasoning.Actions {
				out.Actions[name] = types.TransitionRef{Target: a.Target, Description: a.Description}
			}
		}
	}
	return out
}

// TopicSelectorTemplate resolves the entry dispatcher template.
func (r *Resolver) TopicSelectorTemplate() Template {
	return resolveTemplate(
		r.template(func(t *types.TemplateRules) *types.TopicTemplate { return t.TopicSelector }),
		DefaultSelectorLabel, DefaultSelectorDescription, DefaultSelectorInstructions, "",
	)
}

// EscalationTemplate resolves the default escalation topic template.
func (r *Resolver) EscalationTemplate() Template {
	return resolveTemplate(
		r.template(func(t *types.TemplateRules) *types.TopicTemplate { return t.Escalation }),
		DefaultEscalationLabel, DefaultEscalationDescription, DefaultEscalationInstructions, "",
	)
}

// OffTopicTemplate resolves the default off-topic topic template.
func (r *Resolver) OffTopicTemplate() Template {
	return resolveTemplate(
		r.template(func(t *types.TemplateRules) *types.TopicTemplate { return t.OffTopic }),
		DefaultOffTopicLabel, DefaultOffTopicDescription, "", DefaultOffTopicInstructions,
	)
}

// AmbiguousQuestionTemplate resolves the default ambiguous-question topic
// template.
func (r *Resolver) AmbiguousQuestionTemplate() Template {
	return resolveTemplate(
		r.template(func(t *types.TemplateRules) *types.TopicTemplate { return t.AmbiguousQuestion }),
		DefaultAmbiguousLabel, DefaultAmbiguousDescription, "", DefaultAmbiguousInstructions,
	)
}

// SelectorTransitions returns the transition entries the topic selector must
// carry: the template-provided ones (targets only) plus the three required
// defaults for any key the template did not provide.
func (r *Resolver) SelectorTransitions() map[string]types.TransitionRef {
	out := make(map[string]types.TransitionRef)
	for name, a := range r.TopicSelectorTemplate().Actions {
		out[name] = types.TransitionRef{Target: a.Target}
	}
	required := map[string]string{
		"go_to_escalation":         "@utils.transition to @topic.escalation",
		"go_to_off_topic":          "@utils.transition to @topic.off_topic",
		"go_to_ambiguous_question": "@utils.transition to @topic.ambiguous_question",
	}
	for name, target := range required {
		if _, ok := out[name]; !ok {
			out[name] = types.TransitionRef{Target: target}
		}
	}
	return out
}

// ---------------------------------------------------------------------------
// Serializer formatting
// ---------------------------------------------------------------------------

// FormatBool renders a boolean with the resolved output literals.
func (r *Resolver) FormatBool(v bool) string {
	trueLit, falseLit := DefaultTrueLiteral, DefaultFalseLiteral
	if r.doc != nil && r.doc.OutputFormat != nil &&
		r.doc.OutputFormat.ActionDefinition != nil &&
		r.doc.OutputFormat.ActionDefinition.BooleanFormat != nil {
		bf := r.doc.OutputFormat.ActionDefinition.BooleanFormat
		trueLit = strOr(bf.True, trueLit)
		falseLit = strOr(bf.False, falseLit)
	}
	if v {
		return trueLit
	}
	return falseLit
}

func (r *Resolver) instructionsFormat() *types.InstructionsFormat {
	if r.doc != nil && r.doc.OutputFormat != nil && r.doc.OutputFormat.Reasoning != nil {
		return r.doc.OutputFormat.Reasoning.InstructionsFormat
	}
	return nil
}

// InstructionIndicator returns the instruction block header token.
func (r *Resolver) InstructionIndicator() string {
	if f := r.instructionsFormat(); f != nil {
		return strOr(f.Indicator, DefaultInstructionIndicator)
	}
	return DefaultInstructionIndicator
}

// InstructionLinePrefix returns the per-line instruction marker.
func (r *Resolver) InstructionLinePrefix() string {
	if f := r.instructionsFormat(); f != nil {
		return strOr(f.LinePrefix, DefaultInstructionLinePrefix)
	}
	return DefaultInstructionLinePrefix
}

// ---------------------------------------------------------------------------
// Connection / system / language field defaults
// ---------------------------------------------------------------------------

// AdaptiveResponseAllowed resolves the connection flag.
func (r *Resolver) AdaptiveResponseAllowed() bool {
	if r.doc != nil && r.doc.Connection != nil && r.doc.Connection.Fields != nil &&
		r.doc.Connection.Fields.AdaptiveResponseAllowed != nil {
		return boolOr(r.doc.Connection.Fields.AdaptiveResponseAllowed.Default, DefaultAdaptiveResponseAllowed)
	}
	return DefaultAdaptiveResponseAllowed
}

func (r *Resolver) systemFields() *types.SystemFields {
	if r.doc != nil && r.doc.System != nil {
		return r.doc.System.Fields
	}
	return nil
}

// SystemInstructions resolves the default system instruction text.
func (r *Resolver) SystemInstructions() string {
	if f := r.systemFields(); f != nil && f.Instructions != nil {
		return strOr(f.Instructions.Default, DefaultSystemInstructions)
	}
	return DefaultSystemInstructions
}

func (r *Resolver) systemMessages() *types.SystemMessagesFields {
	if f := r.systemFields(); f != nil && f.Messages != nil {
		return f.Messages.Fields
	}
	return nil
}

// WelcomeMessage resolves the default welcome message.
func (r *Resolver) WelcomeMessage() string {
	if m := r.systemMessages(); m != nil && m.Welcome != nil {
		return strOr(m.Welcome.Default, DefaultWelcomeMessage)
	}
	return DefaultWelcomeMessage
}

// ErrorMessage resolves the default error message.
func (r *Resolver) ErrorMessage() string {
	if m := r.systemMessages(); m != nil && m.Error != nil {
		return strOr(m.Error.Default, DefaultErrorMessage)
	}
	return DefaultErrorMessage
}

func (r *Resolver) languageFields() *types.LanguageFields {
	if r.doc != nil && r.doc.Language != nil {
		return r.doc.Language.Fields
	}
	return nil
}

// DefaultLocale resolves the language default locale.
func (r *Resolver) DefaultLocale() string {
	if f := r.languageFields(); f != nil && f.DefaultLocale != nil {
		return strOr(f.DefaultLocale.Default, DefaultLocale)
	}
	return DefaultLocale
}

// AllAdditionalLocales resolves the language flag.
func (r *Resolver) AllAdditionalLocales() bool {
	if f := r.languageFields(); f != nil && f.AllAdditionalLocales != nil {
		return boolOr(f.AllAdditionalLocales.Default, DefaultAllAdditionalLocales)
	}
	return DefaultAllAdditionalLocales
}

// ---------------------------------------------------------------------------
// Variable-conversion messages
// ---------------------------------------------------------------------------

// AlertMessage resolves the placeholder-conversion alert message.
func AlertMessage(doc *types.ConversionRules) string {
	if doc != nil && doc.VariableConversion != nil {
		return strOr(doc.VariableConversion.AlertMessage, DefaultAlertMessage)
	}
	return DefaultAlertMessage
}

// StatusSuffix resolves the placeholder-conversion status suffix.
func StatusSuffix(doc *types.ConversionRules) string {
	if doc != nil && doc.VariableConversion != nil {
		return strOr(doc.VariableConversion.StatusSuffix, DefaultStatusSuffix)
	}
	return DefaultStatusSuffix
}
