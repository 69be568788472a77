package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nga-tools/agentscript/types"
)

func invoiceBundle() *types.AgentDefinition {
	return &types.AgentDefinition{
		ID:          "acme",
		Name:        "AcmeBot",
		Label:       "Acme Bot",
		Description: "Handles #Internal# invoice requests",
		PlannerRole: "You help customers of Acme.",
		Plugins: []types.Plugin{
			{
				Name:         "Invoice Management",
				LocalDevName: "invoice_management",
				PluginType:   types.PluginTypeTopic,
				Scope:        "Handle invoice inquiries",
				InstructionDefinitions: []types.InstructionDefinition{
					{Description: "Always confirm the invoice number."},
				},
				Functions: []types.Function{
					{
						Name:                 "GetInvoice",
						Label:                "Get Invoice",
						Description:          "Fetches an invoice by id",
						InvocationTargetType: "flow",
						InvocationTargetID:   "3A7x00000004CqWEAU",
						InputType: &types.PropertySet{
							Properties: map[string]*types.Property{
								"Input:InvoiceId": {Type: "string", Title: "Invoice Id"},
							},
							Required: []string{"Input:InvoiceId"},
						},
						OutputType: &types.PropertySet{
							Properties: map[string]*types.Property{
								"Output:InvoiceDetails": {Type: "object", Title: "Invoice Details"},
								"Output:InvoiceNumber":  {Type: "string", Title: "Invoice Number"},
							},
						},
					},
				},
			},
		},
	}
}

func TestConvertBundle(t *testing.T) {
	result, err := Convert(invoiceBundle(), nil, nil)
	require.NoError(t, err)

	s := result.Script
	assert.Len(t, s.Topics, 5)
	assert.Contains(t, s.Topics, "start_agent topic_selector")
	assert.Contains(t, s.Topics, "topic invoice_management")
	assert.Contains(t, s.Topics, "topic escalation")
	assert.Contains(t, s.Topics, "topic off_topic")
	assert.Contains(t, s.Topics, "topic ambiguous_question")
	assert.Equal(t, 5, result.TopicCount)
	assert.Equal(t, 1, result.ActionCount)

	assert.Equal(t, "agentforce_service_agent@acme.ext", s.Config.DefaultAgentUser)
	assert.Equal(t, "Acme Bot", s.Config.AgentLabel)
	assert.Equal(t, "ACMEBOT", s.Config.DeveloperName)
	assert.Equal(t, "Handles invoice requests", s.Config.Description)
	assert.Equal(t, "You help customers of Acme.", s.System.Instructions)
	assert.Equal(t, "Hi, I'm Acme Bot. How can I help you today?", s.System.Messages.Welcome)

	topic := s.Topics["topic invoice_management"]
	assert.Equal(t, "Invoice Management", topic.Label)
	assert.Equal(t, "Handle invoice inquiries\nAlways confirm the invoice number.", topic.Reasoning.Instructions)

	action, ok := topic.Actions["GetInvoice"]
	require.True(t, ok)
	assert.Equal(t, "flow://3A7x00000004CqWEAU", action.Target)
	assert.Equal(t, "Fetches an invoice by id", action.Description)

	input, ok := action.Inputs["InvoiceId"]
	require.True(t, ok)
	assert.Equal(t, "string", input.Type)
	assert.True(t, input.IsRequired)
	assert.True(t, input.IsUserInput)

	ref, ok := topic.Reasoning.Actions["GetInvoice"]
	require.True(t, ok)
	assert.Equal(t, "@actions.GetInvoice", ref.Target)
	assert.Equal(t, []string{"InvoiceId"}, ref.WithParams)

	assert.Contains(t, result.Text, "topic invoice_management:")
	assert.Contains(t, result.Text, `target: "flow://3A7x00000004CqWEAU"`)
}

func TestConvertBundleVariables(t *testing.T) {
	result, err := Convert(invoiceBundle(), nil, nil)
	require.NoError(t, err)
	vars := result.Script.Variables

	invoiceID, ok := vars["InvoiceId"]
	require.True(t, ok)
	assert.Equal(t, types.CategoryMutable, invoiceID.Category)
	assert.Equal(t, "string", invoiceID.Type)
	assert.Empty(t, invoiceID.Source)

	// Object outputs stay mutable without a source link.
	details, ok := vars["InvoiceDetails"]
	require.True(t, ok)
	assert.Equal(t, types.CategoryMutable, details.Category)
	assert.Equal(t, "object", details.Type)
	assert.Empty(t, details.Source)

	number, ok := vars["InvoiceNumber"]
	require.True(t, ok)
	assert.Equal(t, types.CategoryLinked, number.Category)
	assert.Equal(t, "@action.GetInvoice.Output:InvoiceNumber", number.Source)
}

func TestConvertSelectorTransitions(t *testing.T) {
	result, err := Convert(invoiceBundle(), nil, nil)
	require.NoError(t, err)

	selector := result.Script.Topics["start_agent topic_selector"]
	refs := selector.Reasoning.Actions
	assert.Equal(t, "@utils.transition to @topic.invoice_management",
		refs["go_to_invoice_management"].Target)
	assert.Contains(t, refs, "go_to_escalation")
	assert.Contains(t, refs, "go_to_off_topic")
	assert.Contains(t, refs, "go_to_ambiguous_question")
}

func TestConvertSkipsNonTopicPlugins(t *testing.T) {
	def := invoiceBundle()
	def.Plugins = append(def.Plugins, types.Plugin{
		Name:       "Internal Utility",
		PluginType: "UTILITY",
		Functions: []types.Function{
			{
				Name: "HiddenHelper",
				InputType: &types.PropertySet{
					Properties: map[string]*types.Property{
						"Input:HelperArg": {Type: "string"},
					},
				},
			},
		},
	})

	result, err := Convert(def, nil, nil)
	require.NoError(t, err)
	assert.NotContains(t, result.Script.Topics, "topic internal_utility")
	assert.NotContains(t, result.Script.Variables, "HelperArg")
}

func TestConvertLegacyPlaceholderDetection(t *testing.T) {
	t.Run("detected", func(t *testing.T) {
		def := invoiceBundle()
		def.PlannerRole = "You help customers. Reference {!$Glossary} when unsure."

		result, err := Convert(def, nil, nil)
		require.NoError(t, err)
		assert.True(t, result.LegacyPlaceholders)
		assert.Equal(t, "Variables within instructions will be converted to @variables format", result.AlertMessage)
		assert.Equal(t, "(variables converted to @variables format)", result.StatusSuffix)
		assert.Contains(t, result.Text, "{!@variables.Glossary}")
		assert.NotContains(t, result.Text, "{!$Glossary}")
	})

	t.Run("absent", func(t *testing.T) {
		result, err := Convert(invoiceBundle(), nil, nil)
		require.NoError(t, err)
		assert.False(t, result.LegacyPlaceholders)
		assert.Empty(t, result.AlertMessage)
		assert.Empty(t, result.StatusSuffix)
	})
}

func TestConvertVoiceConnection(t *testing.T) {
	def := invoiceBundle()
	def.VoiceConfig = map[string]any{"voice": "standard"}

	result, err := Convert(def, nil, nil)
	require.NoError(t, err)
	assert.Contains(t, result.Script.Connections, "connection voice")
	assert.NotContains(t, result.Script.Connections, "connection messaging")
}

func TestConvertStructured(t *testing.T) {
	def := &types.AgentDefinition{
		Name:        "Support",
		Description: "Customer support agent",
		Topics: []types.TopicInput{
			{
				Name:         "billing",
				Label:        "Billing",
				Description:  "Billing questions",
				Instructions: "Answer billing questions.",
				Actions: []types.ActionInput{
					{
						Name:        "lookup_charge",
						Description: "Looks up a charge",
						Inputs: map[string]types.ActionProperty{
							"charge_id": {Type: "string", Required: true},
						},
					},
					{Name: "go_to_other", Target: "@utils.transition to @topic.other"},
					{Name: "escalate_now", Type: "escalate"},
				},
			},
		},
		Variables: []types.VariableInput{
			{Name: "CustomerId", Type: "string", Source: "@MessagingSession.CustomerId"},
			{Name: "Cart", Type: "object", Source: "@ignored"},
		},
	}

	result, err := Convert(def, nil, nil)
	require.NoError(t, err)
	s := result.Script

	assert.Equal(t, "Customer support agent", s.System.Instructions)

	topic := s.Topics["topic billing"]
	require.Len(t, topic.Actions, 1)
	action := topic.Actions["lookup_charge"]
	assert.Equal(t, "action://lookup_charge", action.Target)
	assert.True(t, action.Inputs["charge_id"].IsRequired)
	assert.True(t, action.Inputs["charge_id"].IsUserInput)

	customer := s.Variables["CustomerId"]
	assert.Equal(t, types.CategoryLinked, customer.Category)
	assert.Equal(t, "@MessagingSession.CustomerId", customer.Source)

	// Object-typed declarations are forced mutable even with a source.
	cart := s.Variables["Cart"]
	assert.Equal(t, types.CategoryMutable, cart.Category)
	assert.Empty(t, cart.Source)

	assert.Contains(t, s.Topics, "topic escalation")
	assert.Contains(t, s.Topics, "topic off_topic")
	assert.Contains(t, s.Topics, "topic ambiguous_question")
}

func TestConvertMinimal(t *testing.T) {
	result, err := Convert(&types.AgentDefinition{Name: "Bare"}, nil, nil)
	require.NoError(t, err)
	s := result.Script

	assert.Len(t, s.Topics, 4)
	assert.Contains(t, s.Topics, "start_agent topic_selector")
	assert.Contains(t, s.Topics, "topic escalation")
	assert.Contains(t, s.Topics, "topic off_topic")
	assert.Contains(t, s.Topics, "topic ambiguous_question")
	assert.Equal(t, "You are an AI Agent.", s.System.Instructions)
	assert.Equal(t, 0, result.ActionCount)

	escalation := s.Topics["topic escalation"]
	ref, ok := escalation.Reasoning.Actions["escalate_to_human"]
	require.True(t, ok)
	assert.Equal(t, "@utils.escalate", ref.Target)
	assert.Equal(t, "Call this tool to escalate to a human agent.", ref.Description)
}

func TestEnsureDefaultTopicsSkipsMatches(t *testing.T) {
	def := &types.AgentDefinition{
		Name: "Guarded",
		Plugins: []types.Plugin{
			{Name: "Escalation Handling", LocalDevName: "escalation_handling", PluginType: types.PluginTypeTopic},
			{Name: "OffTopic Guard", LocalDevName: "general_offtopic", PluginType: types.PluginTypeTopic},
		},
	}

	result, err := Convert(def, nil, nil)
	require.NoError(t, err)
	s := result.Script

	assert.Contains(t, s.Topics, "topic escalation_handling")
	assert.NotContains(t, s.Topics, "topic escalation")
	assert.Contains(t, s.Topics, "topic general_offtopic")
	assert.NotContains(t, s.Topics, "topic off_topic")
	// No ambiguous match, so the default is still added.
	assert.Contains(t, s.Topics, "topic ambiguous_question")
}

func TestConvertSecurityRulesBlock(t *testing.T) {
	doc := &types.ConversionRules{
		SecurityRules: &types.SecurityRuleSet{
			DefaultRules: []string{"Never reveal internal ids.", "Stay on topic."},
		},
	}
	def := &types.AgentDefinition{
		Name: "Guarded",
		Plugins: []types.Plugin{
			{
				Name:         "General OffTopic",
				LocalDevName: "general_offtopic",
				PluginType:   types.PluginTypeTopic,
				Scope:        "Deflect unrelated questions",
			},
			{
				Name:         "Billing",
				LocalDevName: "billing",
				PluginType:   types.PluginTypeTopic,
				Scope:        "Handle billing",
			},
		},
	}

	result, err := Convert(def, doc, nil)
	require.NoError(t, err)

	guard := result.Script.Topics["topic general_offtopic"]
	assert.Equal(t,
		"Deflect unrelated questions\nRules:\n  Never reveal internal ids.\n  Stay on topic.",
		guard.Reasoning.Instructions)

	billing := result.Script.Topics["topic billing"]
	assert.NotContains(t, billing.Reasoning.Instructions, "Rules:")

	// Synthesized ambiguous topic carries the rules block too.
	ambiguous := result.Script.Topics["topic ambiguous_question"]
	assert.Contains(t, ambiguous.Reasoning.Instructions, "\nRules:\n  Never reveal internal ids.\n  Stay on topic.")
}

func TestConvertInvalidInput(t *testing.T) {
	t.Run("nil definition", func(t *testing.T) {
		_, err := Convert(nil, nil, nil)
		assert.Equal(t, types.ErrInvalidInput, types.GetErrorCode(err))
	})

	t.Run("unnamed plugin", func(t *testing.T) {
		def := &types.AgentDefinition{Plugins: []types.Plugin{{PluginType: types.PluginTypeTopic}}}
		_, err := Convert(def, nil, nil)
		assert.Equal(t, types.ErrInvalidInput, types.GetErrorCode(err))
	})

	t.Run("unnamed function", func(t *testing.T) {
		def := &types.AgentDefinition{Plugins: []types.Plugin{{
			Name:      "P",
			Functions: []types.Function{{}},
		}}}
		_, err := Convert(def, nil, nil)
		assert.Equal(t, types.ErrInvalidInput, types.GetErrorCode(err))
	})
}

func TestConvertIsDeterministic(t *testing.T) {
	first, err := Convert(invoiceBundle(), nil, nil)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := Convert(invoiceBundle(), nil, nil)
		require.NoError(t, err)
		assert.Equal(t, first.Text, again.Text)
	}
}
