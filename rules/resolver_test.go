package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nga-tools/agentscript/types"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestResolverDefaults(t *testing.T) {
	r := NewResolver(nil, nil)

	assert.Equal(t, "You are an AI Agent.", r.SystemInstructions())
	assert.Equal(t, "Sorry, it looks like something has gone wrong.", r.ErrorMessage())
	assert.Equal(t, "en_US", r.DefaultLocale())
	assert.False(t, r.AllAdditionalLocales())
	assert.True(t, r.AdaptiveResponseAllowed())
	assert.Equal(t, "True", r.FormatBool(true))
	assert.Equal(t, "False", r.FormatBool(false))
	assert.Equal(t, "->", r.InstructionIndicator())
	assert.Equal(t, "|", r.InstructionLinePrefix())
	assert.Equal(t, "object", r.MappedTypeDefault())
	assert.Empty(t, r.SecurityRules())
}

func TestResolverTypeMappings(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		r := NewResolver(nil, nil)
		assert.Equal(t, "number", r.PrimitiveMappings()["integer"])
		assert.Equal(t, "list[{itemType}]", r.ComplexMappings()["array"])
		assert.Equal(t, "flow", r.TargetMappings()["flow"])
	})

	t.Run("overridden", func(t *testing.T) {
		doc := &types.ConversionRules{
			TypeMappings: &types.TypeMappingRules{
				Primitive: map[string]string{"string": "text"},
				Default:   strPtr("any"),
			},
			TargetFormat: &types.TargetFormatRules{
				Mappings: map[string]string{"apex": "apexClass"},
			},
		}
		r := NewResolver(doc, nil)
		assert.Equal(t, map[string]string{"string": "text"}, r.PrimitiveMappings())
		assert.Equal(t, "any", r.MappedTypeDefault())
		assert.Equal(t, "apexClass", r.TargetMappings()["apex"])
		// Complex map untouched by a primitive-only override.
		assert.Equal(t, "object", r.ComplexMappings()["object"])
	})
}

func TestResolverBooleanLiterals(t *testing.T) {
	doc := &types.ConversionRules{
		OutputFormat: &types.OutputFormatRules{
			ActionDefinition: &types.ActionDefinitionRules{
				BooleanFormat: &types.BooleanFormat{
					True:  strPtr("yes"),
					False: strPtr("no"),
				},
			},
		},
	}
	r := NewResolver(doc, nil)
	assert.Equal(t, "yes", r.FormatBool(true))
	assert.Equal(t, "no", r.FormatBool(false))
}

func TestResolverTemplates(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		r := NewResolver(nil, nil)

		sel := r.TopicSelectorTemplate()
		assert.Equal(t, "Topic Selector", sel.Label)
		assert.NotEmpty(t, sel.Instructions)
		assert.Empty(t, sel.Actions)

		esc := r.EscalationTemplate()
		assert.Equal(t, "Escalation", esc.Label)
		assert.Contains(t, esc.Instructions, "escalate")

		off := r.OffTopicTemplate()
		assert.True(t, off.IncludeSecurityRules)
		assert.NotEmpty(t, off.BaseInstructions)

		amb := r.AmbiguousQuestionTemplate()
		assert.Equal(t, "Ambiguous Question", amb.Label)
	})

	t.Run("partial override keeps remaining defaults", func(t *testing.T) {
		doc := &types.ConversionRules{
			Templates: &types.TemplateRules{
				OffTopic: &types.TopicTemplate{
					Label:                strPtr("Out Of Scope"),
					IncludeSecurityRules: boolPtr(false),
				},
			},
		}
		r := NewResolver(doc, nil)
		off := r.OffTopicTemplate()
		assert.Equal(t, "Out Of Scope", off.Label)
		assert.False(t, off.IncludeSecurityRules)
		assert.Equal(t, DefaultOffTopicDescription, off.Description)
		assert.Equal(t, DefaultOffTopicInstructions, off.BaseInstructions)
	})

	t.Run("template actions carry descriptions", func(t *testing.T) {
		doc := &types.ConversionRules{
			Templates: &types.TemplateRules{
				Escalation: &types.TopicTemplate{
					Reasoning: &types.TemplateReasoning{
						Actions: map[string]types.TemplateAction{
							"escalate_to_human": {
								Target:      "@utils.escalate",
								Description: "Hand the user over.",
							},
						},
					},
				},
			},
		}
		r := NewResolver(doc, nil)
		esc := r.EscalationTemplate()
		require.Contains(t, esc.Actions, "escalate_to_human")
		assert.Equal(t, "Hand the user over.", esc.Actions["escalate_to_human"].Description)
	})
}

func TestSelectorTransitions(t *testing.T) {
	t.Run("all required defaults present", func(t *testing.T) {
		r := NewResolver(nil, nil)
		got := r.SelectorTransitions()
		require.Len(t, got, 3)
		assert.Equal(t, "@utils.transition to @topic.escalation", got["go_to_escalation"].Target)
		assert.Equal(t, "@utils.transition to @topic.off_topic", got["go_to_off_topic"].Target)
		assert.Equal(t, "@utils.transition to @topic.ambiguous_question", got["go_to_ambiguous_question"].Target)
	})

	t.Run("template entries win and drop descriptions", func(t *testing.T) {
		doc := &types.ConversionRules{
			Templates: &types.TemplateRules{
				TopicSelector: &types.TopicTemplate{
					Reasoning: &types.TemplateReasoning{
						Actions: map[string]types.TemplateAction{
							"go_to_escalation": {
								Target:      "@utils.transition to @topic.human_handoff",
								Description: "ignored",
							},
							"go_to_billing": {Target: "@utils.transition to @topic.billing"},
						},
					},
				},
			},
		}
		r := NewResolver(doc, nil)
		got := r.SelectorTransitions()
		require.Len(t, got, 4)
		assert.Equal(t, "@utils.transition to @topic.human_handoff", got["go_to_escalation"].Target)
		assert.Empty(t, got["go_to_escalation"].Description)
		assert.Equal(t, "@utils.transition to @topic.billing", got["go_to_billing"].Target)
		assert.Contains(t, got, "go_to_off_topic")
		assert.Contains(t, got, "go_to_ambiguous_question")
	})
}

func TestResolverSectionFieldOverrides(t *testing.T) {
	doc := &types.ConversionRules{
		Connection: &types.ConnectionRules{
			Fields: &types.ConnectionFields{
				AdaptiveResponseAllowed: &types.DefaultBool{Default: boolPtr(false)},
			},
		},
		System: &types.SystemRules{
			Fields: &types.SystemFields{
				Instructions: &types.DefaultString{Default: strPtr("You are a support bot.")},
				Messages: &types.SystemMessagesField{
					Fields: &types.SystemMessagesFields{
						Error: &types.DefaultString{Default: strPtr("Something broke.")},
					},
				},
			},
		},
		Language: &types.LanguageRules{
			Fields: &types.LanguageFields{
				DefaultLocale:        &types.DefaultString{Default: strPtr("de_DE")},
				AllAdditionalLocales: &types.DefaultBool{Default: boolPtr(true)},
			},
		},
	}
	r := NewResolver(doc, nil)

	assert.False(t, r.AdaptiveResponseAllowed())
	assert.Equal(t, "You are a support bot.", r.SystemInstructions())
	assert.Equal(t, "Something broke.", r.ErrorMessage())
	// Welcome not overridden, keeps the default.
	assert.Equal(t, DefaultWelcomeMessage, r.WelcomeMessage())
	assert.Equal(t, "de_DE", r.DefaultLocale())
	assert.True(t, r.AllAdditionalLocales())
}

func TestAlertMessageAndStatusSuffix(t *testing.T) {
	assert.Equal(t, DefaultAlertMessage, AlertMessage(nil))
	assert.Equal(t, DefaultStatusSuffix, StatusSuffix(nil))

	doc := &types.ConversionRules{
		VariableConversion: &types.VariableConversion{
			AlertMessage: strPtr("custom alert"),
		},
	}
	assert.Equal(t, "custom alert", AlertMessage(doc))
	assert.Equal(t, DefaultStatusSuffix, StatusSuffix(doc))
}
