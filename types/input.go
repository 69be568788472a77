package types

// AgentDefinition is the heterogeneous input document. Exactly one of three
// shapes is recognized, checked in fixed order: capability-bundle shape
// (non-empty Plugins), pre-structured shape (non-empty Topics), or a
// minimal shape (anything else). It is designed to be deserialized from
// JSON or YAML text by the binding layer.
type AgentDefinition struct {
	ID               string           `json:"id,omitempty" yaml:"id,omitempty"`
	Name             string           `json:"name,omitempty" yaml:"name,omitempty"`
	Label            string           `json:"label,omitempty" yaml:"label,omitempty"`
	Description      string           `json:"description,omitempty" yaml:"description,omitempty"`
	PlannerRole      string           `json:"plannerRole,omitempty" yaml:"plannerRole,omitempty"`
	PlannerCompany   string           `json:"plannerCompany,omitempty" yaml:"plannerCompany,omitempty"`
	PlannerToneType  string           `json:"plannerToneType,omitempty" yaml:"plannerToneType,omitempty"`
	Locale           string           `json:"locale,omitempty" yaml:"locale,omitempty"`
	SecondaryLocales []string         `json:"secondaryLocales,omitempty" yaml:"secondaryLocales,omitempty"`
	WelcomeMessage   string           `json:"welcomeMessage,omitempty" yaml:"welcomeMessage,omitempty"`
	WelcomeMessageAlt string          `json:"welcomeMessageAlt,omitempty" yaml:"welcomeMessageAlt,omitempty"`
	UserLocation     string           `json:"userLocation,omitempty" yaml:"userLocation,omitempty"`
	VoiceConfig      map[string]any   `json:"voiceConfig,omitempty" yaml:"voiceConfig,omitempty"`
	Plugins          []Plugin         `json:"plugins,omitempty" yaml:"plugins,omitempty"`
	Topics           []TopicInput     `json:"topics,omitempty" yaml:"topics,omitempty"`
	Variables        []VariableInput  `json:"variables,omitempty" yaml:"variables,omitempty"`
}

// Plugin is a capability bundle: a scope of responsibility with callable
// functions. Only bundles tagged with the topic plugin type become topics.
type Plugin struct {
	Name                   string                  `json:"name" yaml:"name"`
	LocalDevName           string                  `json:"localDevName,omitempty" yaml:"localDevName,omitempty"`
	Label                  string                  `json:"label,omitempty" yaml:"label,omitempty"`
	Description            string                  `json:"description,omitempty" yaml:"description,omitempty"`
	Scope                  string                  `json:"scope,omitempty" yaml:"scope,omitempty"`
	PluginType             string                  `json:"pluginType,omitempty" yaml:"pluginType,omitempty"`
	InstructionDefinitions []InstructionDefinition `json:"instructionDefinitions,omitempty" yaml:"instructionDefinitions,omitempty"`
	Functions              []Function              `json:"functions,omitempty" yaml:"functions,omitempty"`
	CanEscalate            bool                    `json:"canEscalate,omitempty" yaml:"canEscalate,omitempty"`
}

// PluginTypeTopic tags a capability bundle that becomes a topic.
const PluginTypeTopic = "TOPIC"

// InstructionDefinition is one instruction fragment of a capability bundle.
type InstructionDefinition struct {
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Function is a callable action of a capability bundle.
type Function struct {
	Name                       string           `json:"name" yaml:"name"`
	LocalDevName               string           `json:"localDevName,omitempty" yaml:"localDevName,omitempty"`
	Label                      string           `json:"label,omitempty" yaml:"label,omitempty"`
	Description                string           `json:"description,omitempty" yaml:"description,omitempty"`
	InvocationTargetType       string           `json:"invocationTargetType,omitempty" yaml:"invocationTargetType,omitempty"`
	InvocationTargetName       string           `json:"invocationTargetName,omitempty" yaml:"invocationTargetName,omitempty"`
	InvocationTargetID         string           `json:"invocationTargetId,omitempty" yaml:"invocationTargetId,omitempty"`
	InputType                  *PropertySet     `json:"inputType,omitempty" yaml:"inputType,omitempty"`
	OutputType                 *PropertySet     `json:"outputType,omitempty" yaml:"outputType,omitempty"`
	RequireUserConfirmation    bool             `json:"requireUserConfirmation,omitempty" yaml:"requireUserConfirmation,omitempty"`
	IncludeInProgressIndicator bool             `json:"includeInProgressIndicator,omitempty" yaml:"includeInProgressIndicator,omitempty"`
	ProgressIndicatorMessage   string           `json:"progressIndicatorMessage,omitempty" yaml:"progressIndicatorMessage,omitempty"`
	Source                     string           `json:"source,omitempty" yaml:"source,omitempty"`
}

// PropertySet is a schema-like input or output property tree of a function.
type PropertySet struct {
	Properties map[string]*Property `json:"properties,omitempty" yaml:"properties,omitempty"`
	Required   []string             `json:"required,omitempty" yaml:"required,omitempty"`
}

// Property is one node of a property tree. The capability flags use the
// prefixed key spelling of the source export format.
type Property struct {
	Type        string    `json:"type,omitempty" yaml:"type,omitempty"`
	Title       string    `json:"title,omitempty" yaml:"title,omitempty"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Items       *Property `json:"items,omitempty" yaml:"items,omitempty"`
	ConstValue  any       `json:"constValue,omitempty" yaml:"constValue,omitempty"`

	IsUserInput     *bool `json:"copilotAction:isUserInput,omitempty" yaml:"copilotAction:isUserInput,omitempty"`
	IsDisplayable   *bool `json:"copilotAction:isDisplayable,omitempty" yaml:"copilotAction:isDisplayable,omitempty"`
	IsUsedByPlanner *bool `json:"copilotAction:isUsedByPlanner,omitempty" yaml:"copilotAction:isUsedByPlanner,omitempty"`

	LightningType string `json:"lightning:type,omitempty" yaml:"lightning:type,omitempty"`
	Ref           string `json:"$ref,omitempty" yaml:"$ref,omitempty"`
	DefaultValue  any    `json:"default,omitempty" yaml:"default,omitempty"`
}

// TopicInput is one topic of the pre-structured input shape.
type TopicInput struct {
	Name         string        `json:"name,omitempty" yaml:"name,omitempty"`
	ID           string        `json:"id,omitempty" yaml:"id,omitempty"`
	Label        string        `json:"label,omitempty" yaml:"label,omitempty"`
	Description  string        `json:"description,omitempty" yaml:"description,omitempty"`
	Scope        string        `json:"scope,omitempty" yaml:"scope,omitempty"`
	Instructions string        `json:"instructions,omitempty" yaml:"instructions,omitempty"`
	Reasoning    string        `json:"reasoning,omitempty" yaml:"reasoning,omitempty"`
	Actions      []ActionInput `json:"actions,omitempty" yaml:"actions,omitempty"`
	IsStart      bool          `json:"is_start,omitempty" yaml:"is_start,omitempty"`
}

// ActionInput is one action of a pre-structured topic.
type ActionInput struct {
	Name                       string                    `json:"name,omitempty" yaml:"name,omitempty"`
	ID                         string                    `json:"id,omitempty" yaml:"id,omitempty"`
	Label                      string                    `json:"label,omitempty" yaml:"label,omitempty"`
	Description                string                    `json:"description,omitempty" yaml:"description,omitempty"`
	Target                     string                    `json:"target,omitempty" yaml:"target,omitempty"`
	InvocationTarget           string                    `json:"invocation_target,omitempty" yaml:"invocation_target,omitempty"`
	TargetName                 string                    `json:"target_name,omitempty" yaml:"target_name,omitempty"`
	Type                       string                    `json:"type,omitempty" yaml:"type,omitempty"`
	Inputs                     map[string]ActionProperty `json:"inputs,omitempty" yaml:"inputs,omitempty"`
	Outputs                    map[string]ActionProperty `json:"outputs,omitempty" yaml:"outputs,omitempty"`
	RequireUserConfirmation    bool                      `json:"require_user_confirmation,omitempty" yaml:"require_user_confirmation,omitempty"`
	IncludeInProgressIndicator bool                      `json:"include_in_progress_indicator,omitempty" yaml:"include_in_progress_indicator,omitempty"`
	ProgressIndicatorMessage   string                    `json:"progress_indicator_message,omitempty" yaml:"progress_indicator_message,omitempty"`
	Source                     string                    `json:"source,omitempty" yaml:"source,omitempty"`
}

// ActionProperty is one input or output property of a pre-structured action.
type ActionProperty struct {
	Type                string `json:"type,omitempty" yaml:"type,omitempty"`
	Description         string `json:"description,omitempty" yaml:"description,omitempty"`
	Label               string `json:"label,omitempty" yaml:"label,omitempty"`
	Required            bool   `json:"required,omitempty" yaml:"required,omitempty"`
	Default             any    `json:"default,omitempty" yaml:"default,omitempty"`
	IsUserInput         *bool  `json:"is_user_input,omitempty" yaml:"is_user_input,omitempty"`
	IsDisplayable       *bool  `json:"is_displayable,omitempty" yaml:"is_displayable,omitempty"`
	IsUsedByPlanner     *bool  `json:"is_used_by_planner,omitempty" yaml:"is_used_by_planner,omitempty"`
	ComplexType         string `json:"complex_type,omitempty" yaml:"complex_type,omitempty"`
	ComplexDataTypeName string `json:"complex_data_type_name,omitempty" yaml:"complex_data_type_name,omitempty"`
}

// VariableInput is one variable declaration of the pre-structured shape.
type VariableInput struct {
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
	ID          string `json:"id,omitempty" yaml:"id,omitempty"`
	Label       string `json:"label,omitempty" yaml:"label,omitempty"`
	Type        string `json:"type,omitempty" yaml:"type,omitempty"`
	Source      string `json:"source,omitempty" yaml:"source,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}
