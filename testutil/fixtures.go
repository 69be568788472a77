package testutil

import "github.com/nga-tools/agentscript/types"

// BundleJSON is a capability-bundle export carrying a topic plugin, a flow
// function with an opaque record-ID target, and a legacy placeholder in the
// planner role.
const BundleJSON = `{
  "id": "acme",
  "name": "AcmeBot",
  "label": "Acme Bot",
  "description": "Handles invoice questions for Acme customers.",
  "plannerRole": "You help {$CustomerName} with invoices.",
  "plannerToneType": "CASUAL",
  "locale": "en_US",
  "plugins": [
    {
      "name": "invoice_management",
      "label": "Invoice Management",
      "description": "Invoice lookups and summaries",
      "scope": "Handle invoice requests",
      "pluginType": "TOPIC",
      "functions": [
        {
          "name": "GetInvoice",
          "label": "Get Invoice",
          "description": "Fetches one invoice by its identifier",
          "invocationTargetType": "flow",
          "invocationTargetId": "3A7x00000004CqWEAU",
          "inputType": {
            "properties": {
              "Input:InvoiceId": {"type": "string", "description": "Invoice identifier"}
            },
            "required": ["Input:InvoiceId"]
          },
          "outputType": {
            "properties": {
              "Output:InvoiceNumber": {"type": "string", "description": "Resolved invoice number"}
            }
          }
        }
      ]
    }
  ]
}`

// Bundle returns the typed equivalent of [BundleJSON] for tests that build
// definitions directly.
func Bundle() *types.AgentDefinition {
	required := []string{"Input:InvoiceId"}
	return &types.AgentDefinition{
		ID:              "acme",
		Name:            "AcmeBot",
		Label:           "Acme Bot",
		Description:     "Handles invoice questions for Acme customers.",
		PlannerRole:     "You help {$CustomerName} with invoices.",
		PlannerToneType: "CASUAL",
		Locale:          "en_US",
		Plugins: []types.Plugin{
			{
				Name:        "invoice_management",
				Label:       "Invoice Management",
				Description: "Invoice lookups and summaries",
				Scope:       "Handle invoice requests",
				PluginType:  types.PluginTypeTopic,
				Functions: []types.Function{
					{
						Name:                 "GetInvoice",
						Label:                "Get Invoice",
						Description:          "Fetches one invoice by its identifier",
						InvocationTargetType: "flow",
						InvocationTargetID:   "3A7x00000004CqWEAU",
						InputType: &types.PropertySet{
							Properties: map[string]*types.Property{
								"Input:InvoiceId": {Type: "string", Description: "Invoice identifier"},
							},
							Required: required,
						},
						OutputType: &types.PropertySet{
							Properties: map[string]*types.Property{
								"Output:InvoiceNumber": {Type: "string", Description: "Resolved invoice number"},
							},
						},
					},
				},
			},
		},
	}
}
