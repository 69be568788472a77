package rules

// Built-in defaults. Every value here can be replaced by the corresponding
// field of the override document; none of them is reachable any other way.

const (
	// DefaultSystemInstructions is the system prompt used when the input
	// supplies no planner fields.
	DefaultSystemInstructions = "You are an AI Agent."

	// DefaultWelcomeMessage greets the user when the input has no welcome
	// message of its own.
	DefaultWelcomeMessage = "Hi, I'm an AI assistant. How can I help you?"

	// DefaultErrorMessage is emitted into the system messages section.
	DefaultErrorMessage = "Sorry, it looks like something has gone wrong."

	// DefaultLocale is the language default.
	DefaultLocale = "en_US"

	// DefaultAllAdditionalLocales is the language flag default.
	DefaultAllAdditionalLocales = false

	// DefaultAdaptiveResponseAllowed is the connection flag default.
	DefaultAdaptiveResponseAllowed = true

	// Boolean literals emitted by the serializer.
	DefaultTrueLiteral  = "True"
	DefaultFalseLiteral = "False"

	// Instruction block tokens.
	DefaultInstructionIndicator  = "->"
	DefaultInstructionLinePrefix = "|"

	// DefaultMappedType is the fallback when a declared type matches
	// neither the primitive nor the complex map.
	DefaultMappedType = "object"

	// DefaultListFormat is the parametrized list type template.
	DefaultListFormat = "list[{itemType}]"

	// DefaultGenericInstruction is the fallback topic instruction.
	DefaultGenericInstruction = "Handle user requests appropriately."

	// DefaultAlertMessage flags that legacy placeholders were rewritten.
	DefaultAlertMessage = "Variables within instructions will be converted to @variables format"

	// DefaultStatusSuffix is appended to conversion status text when
	// legacy placeholders were rewritten.
	DefaultStatusSuffix = "(variables converted to @variables format)"
)

// Default topic-selector template prose.
const (
	DefaultSelectorLabel        = "Topic Selector"
	DefaultSelectorDescription  = "Welcome the user and determine the appropriate topic based on user input"
	DefaultSelectorInstructions = "Select the best tool to call based on conversation history and user's intent."
)

// Default escalation template prose.
const (
	DefaultEscalationLabel        = "Escalation"
	DefaultEscalationDescription  = "Handles requests from users who want to transfer or escalate their conversation to a live human agent."
	DefaultEscalationInstructions = "If a user explicitly asks to transfer to a live agent, escalate the conversation.\n" +
		"If escalation to a live agent fails for any reason, acknowledge the issue and ask the user whether they would like to log a support case instead."
	DefaultEscalateActionTarget      = "@utils.escalate"
	DefaultEscalateActionDescription = "Call this tool to escalate to a human agent."
)

// Default off-topic template prose.
const (
	DefaultOffTopicLabel        = "Off Topic"
	DefaultOffTopicDescription  = "Redirect conversation to relevant topics when user request goes off-topic"
	DefaultOffTopicInstructions = "Your job is to redirect the conversation to relevant topics politely and succinctly.\n" +
		"The user request is off-topic. NEVER answer general knowledge questions. Only respond to general greetings and questions about your capabilities.\n" +
		"Do not acknowledge the user's off-topic question. Redirect the conversation by asking how you can help with questions related to the pre-defined topics."
)

// Default ambiguous-question template prose.
const (
	DefaultAmbiguousLabel        = "Ambiguous Question"
	DefaultAmbiguousDescription  = "Redirect conversation to relevant topics when user request is too ambiguous"
	DefaultAmbiguousInstructions = "Your job is to help the user provide clearer, more focused requests for better assistance.\n" +
		"Do not answer any of the user's ambiguous questions. Do not invoke any actions.\n" +
		"Politely guide the user to provide more specific details about their request.\n" +
		"Encourage them to focus on their most important concern first to ensure you can provide the most helpful response."
)

// DefaultPrimitiveMappings returns the built-in primitive type map.
func DefaultPrimitiveMappings() map[string]string {
	return map[string]string{
		"string":  "string",
		"number":  "number",
		"integer": "number",
		"boolean": "boolean",
	}
}

// DefaultComplexMappings returns the built-in complex type map.
func DefaultComplexMappings() map[string]string {
	return map[string]string{
		"object": "object",
		"array":  DefaultListFormat,
	}
}

// DefaultTargetMappings returns the built-in invocation-type lookup table.
// Unknown invocation types pass through unchanged.
func DefaultTargetMappings() map[string]string {
	return map[string]string{
		"flow":                    "flow",
		"apex":                    "apex",
		"standardInvocableAction": "standardInvocableAction",
		"generatePromptResponse":  "generatePromptResponse",
	}
}
